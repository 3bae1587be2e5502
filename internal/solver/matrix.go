package solver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"codecrack/internal/game"
)

// Matrix caches every rule evaluation the solver will ever need: one row
// per challenge card, one column per code in the space. Built once per
// session; read-only afterwards, so concurrent readers need no locking.
type Matrix struct {
	space   *game.Space
	ch      *game.Challenge
	values  [][]uint8 // [rulePos][codeID], meaningful only where defined
	defined [][]bool  // [rulePos][codeID]
}

// NewMatrix evaluates every challenge card over the whole code space.
// Rows are independent and each row is written by exactly one goroutine,
// so with workers above 1 they are filled in parallel. Zero means one
// worker per CPU; the result is identical either way.
func NewMatrix(ctx context.Context, space *game.Space, ch *game.Challenge, workers int) (*Matrix, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	m := &Matrix{
		space:   space,
		ch:      ch,
		values:  make([][]uint8, ch.Size()),
		defined: make([][]bool, ch.Size()),
	}
	for r := 0; r < ch.Size(); r++ {
		m.values[r] = make([]uint8, space.Count())
		m.defined[r] = make([]bool, space.Count())
	}

	if workers == 1 {
		for r := 0; r < ch.Size(); r++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			m.fillRow(r)
		}
		return m, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for r := 0; r < ch.Size(); r++ {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			m.fillRow(r)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Matrix) fillRow(r int) {
	rule := m.ch.Rule(r)
	for id := 0; id < m.space.Count(); id++ {
		v, ok := rule.Eval(m.space.At(id))
		m.values[r][id] = v
		m.defined[r][id] = ok
	}
}

// Space returns the code space the matrix was built over.
func (m *Matrix) Space() *game.Space { return m.space }

// Challenge returns the cards the matrix was built for.
func (m *Matrix) Challenge() *game.Challenge { return m.ch }

// Value returns the card's result for a code, and whether the card has a
// defined result there at all.
func (m *Matrix) Value(rulePos, codeID int) (uint8, bool) {
	return m.values[rulePos][codeID], m.defined[rulePos][codeID]
}

// DefinedAll reports whether every card in play can judge the code.
func (m *Matrix) DefinedAll(codeID int) bool {
	for r := range m.defined {
		if !m.defined[r][codeID] {
			return false
		}
	}
	return true
}

// Matches reports whether two codes get the same result from one card.
// This is exactly the question a query puts to the verifier. Only
// meaningful where both codes are defined for the card.
func (m *Matrix) Matches(rulePos, probeID, codeID int) bool {
	return m.values[rulePos][probeID] == m.values[rulePos][codeID]
}

// vectorKey packs a code's results across all cards into a comparable key.
// Codes with equal keys answer every possible query identically. Only
// meaningful for codes where DefinedAll holds.
func (m *Matrix) vectorKey(codeID int) string {
	buf := make([]byte, len(m.values))
	for r := range m.values {
		buf[r] = m.values[r][codeID]
	}
	return string(buf)
}
