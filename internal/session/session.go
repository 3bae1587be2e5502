// Package session wires one solving run end to end: resolve the challenge,
// enumerate the code space, precompute the rule matrix, analyze it, and on
// demand build and execute the query plan. A session is immutable once
// created; plans are built lazily and cached.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"codecrack/internal/game"
	"codecrack/internal/solver"
)

// Config describes one session. Zero values mean: builtin catalog, one
// matrix worker per CPU, premise off, no logging.
type Config struct {
	Definition game.Definition
	RuleIDs    []game.RuleID
	Catalog    *game.Catalog // nil means game.Builtin()
	Workers    int
	Options    solver.Options
	Logger     *zap.Logger
}

// Timings records how long each pipeline stage took, for verbose reports.
type Timings struct {
	Enumerate time.Duration
	Matrix    time.Duration
	Analyze   time.Duration
	Plan      time.Duration
}

// Session is one fully prepared solving run.
type Session struct {
	id        string
	log       *zap.Logger
	challenge *game.Challenge
	space     *game.Space
	matrix    *solver.Matrix
	analysis  *solver.Analysis

	planOnce sync.Once
	planErr  error
	tree     *solver.Tree

	timings Timings
}

// New runs the preparation pipeline. Everything up to and including the
// analysis happens here; the query plan waits until Plan or Run asks for
// it. Any stage error aborts the session.
func New(ctx context.Context, cfg Config) (*Session, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		id:  uuid.NewString(),
		log: log,
	}

	catalog := cfg.Catalog
	if catalog == nil {
		catalog = game.Builtin()
	}
	ch, err := game.NewChallenge(catalog, cfg.RuleIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve challenge: %w", err)
	}
	s.challenge = ch

	start := time.Now()
	space, err := game.NewSpace(cfg.Definition)
	if err != nil {
		return nil, fmt.Errorf("enumerate space: %w", err)
	}
	s.space = space
	s.timings.Enumerate = time.Since(start)

	start = time.Now()
	matrix, err := solver.NewMatrix(ctx, space, ch, cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("fill rule matrix: %w", err)
	}
	s.matrix = matrix
	s.timings.Matrix = time.Since(start)

	start = time.Now()
	s.analysis = solver.Analyze(matrix, cfg.Options)
	s.timings.Analyze = time.Since(start)

	log.Debug("session prepared",
		zap.String("session_id", s.id),
		zap.Ints("rules", ruleInts(cfg.RuleIDs)),
		zap.Int("codes", space.Count()),
		zap.Int("admissible", s.analysis.AdmissibleCount()),
		zap.Int("candidates", s.analysis.CandidateCount()),
		zap.Bool("unique_premise", cfg.Options.UniqueSecretPremise),
		zap.Duration("enumerate", s.timings.Enumerate),
		zap.Duration("matrix", s.timings.Matrix),
		zap.Duration("analyze", s.timings.Analyze))

	if s.analysis.CandidateCount() == 0 {
		return nil, fmt.Errorf("challenge %v: %w", ch.IDs(), solver.ErrNoCandidates)
	}
	return s, nil
}

// ID returns the session's correlation ID, present in every log line.
func (s *Session) ID() string { return s.id }

// Challenge returns the cards in play.
func (s *Session) Challenge() *game.Challenge { return s.challenge }

// Space returns the enumerated code space.
func (s *Session) Space() *game.Space { return s.space }

// Analysis returns the static challenge analysis.
func (s *Session) Analysis() *solver.Analysis { return s.analysis }

// Timings returns stage durations measured so far. The Plan stage is zero
// until a plan has been built.
func (s *Session) Timings() Timings { return s.timings }

// Plan returns the optimal query plan, building it on first use. Safe for
// concurrent callers; all of them get the same tree.
func (s *Session) Plan(ctx context.Context) (*solver.Tree, error) {
	s.planOnce.Do(func() {
		start := time.Now()
		s.tree, s.planErr = solver.BuildTree(ctx, s.analysis)
		s.timings.Plan = time.Since(start)
		if s.planErr != nil {
			s.log.Warn("plan construction failed",
				zap.String("session_id", s.id),
				zap.Error(s.planErr))
			return
		}
		stats := s.tree.Stats()
		s.log.Debug("plan constructed",
			zap.String("session_id", s.id),
			zap.Int("max_depth", stats.MaxDepth),
			zap.Float64("expected_queries", stats.ExpectedQueries),
			zap.Int("leaves", stats.Leaves),
			zap.Int("ambiguous_leaves", stats.AmbiguousLeaves),
			zap.Duration("took", s.timings.Plan))
	})
	return s.tree, s.planErr
}

func ruleInts(ids []game.RuleID) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
