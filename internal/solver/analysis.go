package solver

import (
	"sort"

	"codecrack/internal/game"
)

// Options tune the analyzer.
type Options struct {
	// UniqueSecretPremise drops every candidate that shares its full
	// response vector with another admissible code. The physical game
	// promises a secret that is the unique code consistent with all cards,
	// so under that premise a shared vector can never be the secret.
	// Off by default: the solver then works over the full admissible space
	// and reports unseparable codes instead of assuming them away.
	UniqueSecretPremise bool
}

// Analysis is the static picture of one challenge over one code space:
// which codes the cards can judge at all, which of those the cards can
// tell apart, and the candidate set the planner will work on.
type Analysis struct {
	matrix     *Matrix
	opts       Options
	undefined  []int
	admissible []int
	groups     [][]int // response classes over admissible, in first-member order
	candidates []int
}

// Analyze classifies the whole code space against the challenge. Pure and
// cheap next to tree construction; call it once per session and share it.
func Analyze(m *Matrix, opts Options) *Analysis {
	a := &Analysis{matrix: m, opts: opts}

	for id := 0; id < m.space.Count(); id++ {
		if m.DefinedAll(id) {
			a.admissible = append(a.admissible, id)
		} else {
			a.undefined = append(a.undefined, id)
		}
	}

	byVector := make(map[string]int, len(a.admissible))
	for _, id := range a.admissible {
		key := m.vectorKey(id)
		g, ok := byVector[key]
		if !ok {
			g = len(a.groups)
			byVector[key] = g
			a.groups = append(a.groups, nil)
		}
		a.groups[g] = append(a.groups[g], id)
	}

	if opts.UniqueSecretPremise {
		for _, g := range a.groups {
			if len(g) == 1 {
				a.candidates = append(a.candidates, g[0])
			}
		}
		// groups were filled in first-member order, so this stays sorted.
	} else {
		a.candidates = a.admissible
	}
	return a
}

// Matrix returns the rule matrix the analysis was computed from.
func (a *Analysis) Matrix() *Matrix { return a.matrix }

// Options returns the options the analysis was computed with.
func (a *Analysis) Options() Options { return a.opts }

// Undefined returns the codes at least one card cannot judge. Those codes
// can never be the secret: the table would have rejected them.
func (a *Analysis) Undefined() []game.Code { return a.codesOf(a.undefined) }

// Admissible returns the codes every card can judge, in space order.
func (a *Analysis) Admissible() []game.Code { return a.codesOf(a.admissible) }

// Candidates returns the codes the planner treats as possible secrets:
// the admissible codes, minus shared-vector codes when the unique-secret
// premise is on.
func (a *Analysis) Candidates() []game.Code { return a.codesOf(a.candidates) }

// AdmissibleCount returns len(Admissible()) without copying.
func (a *Analysis) AdmissibleCount() int { return len(a.admissible) }

// UndefinedCount returns len(Undefined()) without copying.
func (a *Analysis) UndefinedCount() int { return len(a.undefined) }

// CandidateCount returns len(Candidates()) without copying.
func (a *Analysis) CandidateCount() int { return len(a.candidates) }

// Groups returns the response classes over the admissible codes: two codes
// share a class exactly when no query can tell them apart. Classes are in
// first-member order; members are in space order.
func (a *Analysis) Groups() [][]game.Code {
	out := make([][]game.Code, len(a.groups))
	for i, g := range a.groups {
		out[i] = a.codesOf(g)
	}
	return out
}

// GroupCount returns the number of response classes.
func (a *Analysis) GroupCount() int { return len(a.groups) }

// AmbiguousGroups returns only the classes with two or more members, the
// sets no plan can split.
func (a *Analysis) AmbiguousGroups() [][]game.Code {
	var out [][]game.Code
	for _, g := range a.groups {
		if len(g) >= 2 {
			out = append(out, a.codesOf(g))
		}
	}
	return out
}

// PremiseDropped returns the admissible codes the unique-secret premise
// removed from the candidate set. Empty when the premise is off.
func (a *Analysis) PremiseDropped() []game.Code {
	if !a.opts.UniqueSecretPremise {
		return nil
	}
	var ids []int
	for _, g := range a.groups {
		if len(g) >= 2 {
			ids = append(ids, g...)
		}
	}
	sort.Ints(ids)
	return a.codesOf(ids)
}

// Solvable reports whether queries can always identify the secret exactly,
// assuming the secret is among the candidates. False means some runs must
// end with an ambiguous set.
func (a *Analysis) Solvable() bool {
	if len(a.candidates) == 0 {
		return false
	}
	seen := make(map[string]bool, len(a.candidates))
	for _, id := range a.candidates {
		key := a.matrix.vectorKey(id)
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}

// candidateIDs exposes the candidate set to the planner without copies.
func (a *Analysis) candidateIDs() []int { return a.candidates }

func (a *Analysis) codesOf(ids []int) []game.Code {
	out := make([]game.Code, len(ids))
	for i, id := range ids {
		out[i] = a.matrix.space.At(id)
	}
	return out
}
