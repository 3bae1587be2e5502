package solver

import (
	"context"
	"encoding/binary"
	"math"
	"math/bits"
	"sort"

	"codecrack/internal/game"
)

// BuildTree finds a cost-optimal query plan for the analysis' candidate
// set. Cost is lexicographic: the worst-case query count first, then the
// code-weighted total. The search is exhaustive over memoized candidate
// sets, so the plan is exact, and ties break on fixed query order, so the
// plan is deterministic.
//
// Candidate sets the cards cannot split become multi-code leaves; the plan
// is still optimal for everything that can be split.
func BuildTree(ctx context.Context, a *Analysis) (*Tree, error) {
	ids := a.candidateIDs()
	if len(ids) == 0 {
		return nil, ErrNoCandidates
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b := &builder{
		ctx:  ctx,
		m:    a.matrix,
		pool: buildPool(a.matrix),
		memo: make(map[string]memoEntry),
	}
	if _, err := b.solve(ids); err != nil {
		return nil, err
	}
	return &Tree{Root: b.materialize(ids)}, nil
}

// probeQuery is one distinct question: a challenge position and a target
// result, carried by the lowest-ID code producing that result. Any other
// probe with the same result would induce the same split, so one canonical
// probe per (card, result) covers the whole query universe.
type probeQuery struct {
	rulePos int
	value   uint8
	probeID int
}

// memoEntry is the exact optimum for one candidate set: the cost pair and
// the pool index of the first query achieving it, -1 for leaves.
type memoEntry struct {
	depth int
	total int
	query int
}

type builder struct {
	ctx    context.Context
	m      *Matrix
	pool   []probeQuery
	memo   map[string]memoEntry
	visits int
}

// buildPool enumerates the query universe in fixed order: challenge
// position ascending, result values in first-occurrence order over the
// space. Order matters only for tie-breaking.
func buildPool(m *Matrix) []probeQuery {
	var pool []probeQuery
	for r := 0; r < m.ch.Size(); r++ {
		seen := make(map[uint8]bool)
		for id := 0; id < m.space.Count(); id++ {
			v, ok := m.Value(r, id)
			if !ok || seen[v] {
				continue
			}
			seen[v] = true
			pool = append(pool, probeQuery{rulePos: r, value: v, probeID: id})
		}
	}
	return pool
}

// solve computes the exact optimum for a sorted candidate set.
func (b *builder) solve(ids []int) (memoEntry, error) {
	if len(ids) == 1 {
		return memoEntry{query: -1}, nil
	}
	key := setKey(ids)
	if e, ok := b.memo[key]; ok {
		return e, nil
	}

	b.visits++
	if b.visits&1023 == 0 {
		select {
		case <-b.ctx.Done():
			return memoEntry{}, b.ctx.Err()
		default:
		}
	}

	// All candidates answering every query alike: nothing splits them.
	if b.uniform(ids) {
		e := memoEntry{query: -1}
		b.memo[key] = e
		return e, nil
	}

	// Gather useful queries: both answer branches must keep someone alive.
	type split struct {
		pq     int
		eq, ne []int
	}
	var splits []split
	for i, q := range b.pool {
		eq, ne := b.partition(ids, q)
		if len(eq) == 0 || len(ne) == 0 {
			continue
		}
		splits = append(splits, split{pq: i, eq: eq, ne: ne})
	}
	// Most-balanced first: good splits found early tighten the depth bound
	// for everything after. Stable, so pool order still decides ties.
	sort.SliceStable(splits, func(i, j int) bool {
		return len(splits[i].eq)*len(splits[i].ne) > len(splits[j].eq)*len(splits[j].ne)
	})

	best := memoEntry{depth: math.MaxInt, total: math.MaxInt, query: -1}
	for _, s := range splits {
		// A branch holding k response classes needs at least ceil(log2 k)
		// queries, whatever the plan. Skipping is only safe when the bound
		// strictly beats the incumbent on the primary criterion.
		if 1+max(b.lowerBound(s.eq), b.lowerBound(s.ne)) > best.depth {
			continue
		}
		eqE, err := b.solve(s.eq)
		if err != nil {
			return memoEntry{}, err
		}
		neE, err := b.solve(s.ne)
		if err != nil {
			return memoEntry{}, err
		}
		e := memoEntry{
			depth: 1 + max(eqE.depth, neE.depth),
			total: len(ids) + eqE.total + neE.total,
			query: s.pq,
		}
		if e.depth < best.depth || (e.depth == best.depth && e.total < best.total) {
			best = e
		}
	}

	b.memo[key] = best
	return best, nil
}

// materialize rebuilds the chosen plan from the memo.
func (b *builder) materialize(ids []int) *Node {
	node := &Node{Candidates: make([]game.Code, len(ids))}
	for i, id := range ids {
		node.Candidates[i] = b.m.space.At(id)
	}
	if len(ids) == 1 {
		return node
	}
	e := b.memo[setKey(ids)]
	if e.query < 0 {
		return node
	}
	q := b.pool[e.query]
	node.Query = &Query{
		RulePos: q.rulePos,
		Rule:    b.m.ch.Rule(q.rulePos),
		Probe:   b.m.space.At(q.probeID),
	}
	eq, ne := b.partition(ids, q)
	node.Equal = b.materialize(eq)
	node.NotEqual = b.materialize(ne)
	return node
}

// partition splits candidates by whether they share the query's result.
// Input order is preserved, keeping every downstream set sorted.
func (b *builder) partition(ids []int, q probeQuery) (eq, ne []int) {
	for _, id := range ids {
		if v, _ := b.m.Value(q.rulePos, id); v == q.value {
			eq = append(eq, id)
		} else {
			ne = append(ne, id)
		}
	}
	return eq, ne
}

// uniform reports whether all candidates share one response vector.
func (b *builder) uniform(ids []int) bool {
	first := b.m.vectorKey(ids[0])
	for _, id := range ids[1:] {
		if b.m.vectorKey(id) != first {
			return false
		}
	}
	return true
}

// lowerBound is ceil(log2) of the number of response classes in the set:
// binary answers cannot distinguish k classes any faster.
func (b *builder) lowerBound(ids []int) int {
	classes := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		classes[b.m.vectorKey(id)] = struct{}{}
	}
	return bits.Len(uint(len(classes) - 1))
}

// setKey packs sorted candidate IDs into a map key.
func setKey(ids []int) string {
	buf := make([]byte, 4*len(ids))
	for i, id := range ids {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(id))
	}
	return string(buf)
}
