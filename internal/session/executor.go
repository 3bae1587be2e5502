package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"codecrack/internal/game"
	"codecrack/internal/solver"
)

// Step records one asked query and its answer, with the candidate counts
// around it. Together the steps form a full transcript of the run.
type Step struct {
	Query  solver.Query
	Equal  bool
	Before int
	After  int
}

// Outcome is the end state of an interactive run. Exactly one of
// Identified and Residual is meaningful: either the plan pinned the secret
// to one code, or the surviving set could not be split further.
type Outcome struct {
	Identified *game.Code
	Residual   []game.Code
	Steps      []Step
}

// Resolved reports whether the run identified the secret exactly.
func (o *Outcome) Resolved() bool { return o.Identified != nil }

// Run walks the query plan against live answers. Each answer narrows the
// candidate set; the run ends at a leaf. Answers are trusted: the executor
// never backtracks, and every reachable leaf is non-empty by construction,
// so an answer sequence can never strand the run.
func (s *Session) Run(ctx context.Context, provider AnswerProvider) (*Outcome, error) {
	tree, err := s.Plan(ctx)
	if err != nil {
		return nil, err
	}

	out := &Outcome{}
	node := tree.Root
	for !node.IsLeaf() {
		q := *node.Query
		answer, err := provider.Answer(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("query %d (%s): %w", len(out.Steps)+1, q, err)
		}

		next := node.NotEqual
		if answer {
			next = node.Equal
		}
		out.Steps = append(out.Steps, Step{
			Query:  q,
			Equal:  answer,
			Before: len(node.Candidates),
			After:  len(next.Candidates),
		})
		s.log.Debug("answer narrowed candidates",
			zap.String("session_id", s.id),
			zap.Int("step", len(out.Steps)),
			zap.String("query", q.String()),
			zap.Bool("equal", answer),
			zap.Int("remaining", len(next.Candidates)))
		node = next
	}

	if len(node.Candidates) == 1 {
		code := node.Candidates[0]
		out.Identified = &code
	} else {
		out.Residual = append([]game.Code(nil), node.Candidates...)
	}
	return out, nil
}
