// Package solver turns a game definition and a challenge into decisions:
// which codes the cards can judge, which codes the cards can tell apart,
// and the cheapest adaptive sequence of questions that pins the secret
// down. Everything in this package is deterministic and side-effect free;
// the only concurrency is the rule matrix precompute, and the only
// blocking entry points take a context.
package solver

import "errors"

var (
	// ErrNoCandidates marks a challenge whose candidate set is empty:
	// every code in the space is rejected before the first question.
	ErrNoCandidates = errors.New("no candidate codes for challenge")
)
