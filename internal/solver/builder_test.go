package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codecrack/internal/game"
)

func buildFor(t *testing.T, m *Matrix, opts Options) *Tree {
	t.Helper()
	tree, err := BuildTree(context.Background(), Analyze(m, opts))
	require.NoError(t, err)
	return tree
}

// renderPlan flattens a tree into one line per node so two plans can be
// compared for exact equality.
func renderPlan(tree *Tree) string {
	var sb strings.Builder
	tree.Walk(func(n *Node, depth int) {
		fmt.Fprintf(&sb, "%d:", depth)
		if n.Query != nil {
			fmt.Fprintf(&sb, " ask rule %d probe %s ->", n.Query.Rule.ID, n.Query.Probe)
		}
		for _, c := range n.Candidates {
			sb.WriteString(" " + c.String())
		}
		sb.WriteString("\n")
	})
	return sb.String()
}

func TestBuildTree_SingleCandidate(t *testing.T) {
	m := syntheticMatrix(t, 4, tableRule(1, map[uint8]uint8{2: 0}))
	tree := buildFor(t, m, Options{})

	require.True(t, tree.Root.IsLeaf())
	assert.True(t, tree.Root.Resolved())
	assert.Equal(t, "2", tree.Root.Candidates[0].String())

	stats := tree.Stats()
	assert.Equal(t, 0, stats.MaxDepth)
	assert.Equal(t, 1, stats.Leaves)
	assert.Equal(t, 0, stats.TotalQueries)
}

// Two complementary two-valued rules over four codes admit perfectly
// balanced splits, so the plan must hit the information-theoretic floor:
// two queries for every code.
func TestBuildTree_BalancedRulesHitLogBound(t *testing.T) {
	m := syntheticMatrix(t, 4,
		tableRule(1, map[uint8]uint8{1: 0, 2: 0, 3: 1, 4: 1}),
		tableRule(2, map[uint8]uint8{1: 1, 2: 0, 3: 1, 4: 0}),
	)
	tree := buildFor(t, m, Options{})
	stats := tree.Stats()

	assert.Equal(t, 2, stats.MaxDepth)
	assert.Equal(t, 8, stats.TotalQueries)
	assert.Equal(t, 2.0, stats.ExpectedQueries)
	assert.Equal(t, 4, stats.Leaves)
	assert.Equal(t, 0, stats.AmbiguousLeaves)

	tree.Walk(func(n *Node, depth int) {
		if n.IsLeaf() && !n.Resolved() {
			t.Errorf("leaf %v not resolved", codeStrings(n.Candidates))
		}
	})
}

// A single rule with pairwise-distinct values can only peel off one code
// per query, so four codes force a worst case of three questions.
func TestBuildTree_DistinctValuesForceLinearPlan(t *testing.T) {
	m := syntheticMatrix(t, 4, tableRule(1, map[uint8]uint8{1: 0, 2: 1, 3: 2, 4: 3}))
	tree := buildFor(t, m, Options{})
	stats := tree.Stats()

	assert.Equal(t, 3, stats.MaxDepth)
	assert.Equal(t, 9, stats.TotalQueries, "depths must be 1+2+3+3")
	assert.Equal(t, 0, stats.AmbiguousLeaves)
}

// Codes 2 and 3 share their only rule value: the analyzer must flag them
// and the plan must park them in one two-code leaf instead of pretending
// to resolve them.
func TestBuildTree_AmbiguousLeaf(t *testing.T) {
	m := syntheticMatrix(t, 4, tableRule(1, map[uint8]uint8{1: 0, 2: 1, 3: 1, 4: 2}))

	a := Analyze(m, Options{})
	assert.False(t, a.Solvable())
	require.Len(t, a.AmbiguousGroups(), 1)
	assert.Equal(t, []string{"2", "3"}, codeStrings(a.AmbiguousGroups()[0]))

	tree, err := BuildTree(context.Background(), a)
	require.NoError(t, err)
	stats := tree.Stats()
	assert.Equal(t, 1, stats.AmbiguousLeaves)

	found := false
	tree.Walk(func(n *Node, depth int) {
		if n.IsLeaf() && len(n.Candidates) == 2 {
			found = true
			assert.Equal(t, []string{"2", "3"}, codeStrings(n.Candidates))
		}
	})
	assert.True(t, found, "the unsplittable pair must surface as a leaf")
}

// Every inner node's children must partition its candidates exactly, with
// membership decided by the node's own query.
func TestBuildTree_PartitionInvariant(t *testing.T) {
	m := classicMatrix(t, []game.RuleID{2, 6, 14, 17}, 1)
	tree := buildFor(t, m, Options{})

	space := m.Space()
	tree.Walk(func(n *Node, depth int) {
		if n.IsLeaf() {
			if len(n.Candidates) > 1 {
				// Unsplittable: all members share every rule value.
				first, _ := space.IndexOf(n.Candidates[0])
				for _, c := range n.Candidates[1:] {
					id, _ := space.IndexOf(c)
					for r := 0; r < m.Challenge().Size(); r++ {
						if !m.Matches(r, first, id) {
							t.Errorf("leaf %v is splittable by rule position %d",
								codeStrings(n.Candidates), r)
						}
					}
				}
			}
			return
		}

		require.NotNil(t, n.Equal)
		require.NotNil(t, n.NotEqual)
		require.NotEmpty(t, n.Equal.Candidates, "useless query survived: empty equal side")
		require.NotEmpty(t, n.NotEqual.Candidates, "useless query survived: empty not-equal side")

		probeID, ok := space.IndexOf(n.Query.Probe)
		require.True(t, ok, "probe must come from the space")

		seen := make(map[game.Code]bool, len(n.Candidates))
		for _, c := range n.Candidates {
			seen[c] = true
		}
		total := 0
		for _, child := range []*Node{n.Equal, n.NotEqual} {
			wantEqual := child == n.Equal
			for _, c := range child.Candidates {
				if !seen[c] {
					t.Fatalf("child code %s missing from parent at depth %d", c, depth)
				}
				id, _ := space.IndexOf(c)
				if m.Matches(n.Query.RulePos, probeID, id) != wantEqual {
					t.Fatalf("code %s on the wrong side of %s", c, n.Query)
				}
			}
			total += len(child.Candidates)
		}
		assert.Equal(t, len(n.Candidates), total, "children must cover the parent exactly")
	})
}

// bruteOptimal recomputes the lexicographic optimum the slow way: every
// probe, no ordering heuristic, no pruning. Small spaces only.
func bruteOptimal(m *Matrix, ids []int) (depth, total int) {
	if len(ids) <= 1 {
		return 0, 0
	}
	sameVector := true
	for _, id := range ids[1:] {
		if m.vectorKey(id) != m.vectorKey(ids[0]) {
			sameVector = false
			break
		}
	}
	if sameVector {
		return 0, 0
	}

	bestD, bestT := math.MaxInt, math.MaxInt
	for r := 0; r < m.ch.Size(); r++ {
		tried := make(map[uint8]bool)
		for probe := 0; probe < m.space.Count(); probe++ {
			v, ok := m.Value(r, probe)
			if !ok || tried[v] {
				continue
			}
			tried[v] = true

			var eq, ne []int
			for _, id := range ids {
				if cv, _ := m.Value(r, id); cv == v {
					eq = append(eq, id)
				} else {
					ne = append(ne, id)
				}
			}
			if len(eq) == 0 || len(ne) == 0 {
				continue
			}
			dEq, tEq := bruteOptimal(m, eq)
			dNe, tNe := bruteOptimal(m, ne)
			d := 1 + max(dEq, dNe)
			tt := len(ids) + tEq + tNe
			if d < bestD || (d == bestD && tt < bestT) {
				bestD, bestT = d, tt
			}
		}
	}
	return bestD, bestT
}

func TestBuildTree_MatchesBruteForce(t *testing.T) {
	cases := []struct {
		name  string
		build func(t *testing.T) *Matrix
	}{
		{"five codes two rules", func(t *testing.T) *Matrix {
			return syntheticMatrix(t, 5,
				tableRule(1, map[uint8]uint8{1: 0, 2: 0, 3: 0, 4: 1, 5: 1}),
				tableRule(2, map[uint8]uint8{1: 0, 2: 1, 3: 2, 4: 0, 5: 1}),
			)
		}},
		{"partial rule", func(t *testing.T) *Matrix {
			return syntheticMatrix(t, 4,
				tableRule(1, map[uint8]uint8{1: 0, 2: 1, 3: 0}),
				tableRule(2, map[uint8]uint8{1: 0, 2: 0, 3: 1, 4: 0}),
			)
		}},
		{"six codes three rules", func(t *testing.T) *Matrix {
			return syntheticMatrix(t, 6,
				tableRule(1, map[uint8]uint8{1: 0, 2: 0, 3: 1, 4: 1, 5: 2, 6: 2}),
				tableRule(2, map[uint8]uint8{1: 0, 2: 1, 3: 0, 4: 1, 5: 0, 6: 1}),
				tableRule(3, map[uint8]uint8{1: 0, 2: 0, 3: 0, 4: 0, 5: 0, 6: 1}),
			)
		}},
		{"unsplittable pair present", func(t *testing.T) *Matrix {
			return syntheticMatrix(t, 5,
				tableRule(1, map[uint8]uint8{1: 0, 2: 1, 3: 1, 4: 2, 5: 3}),
			)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := tc.build(t)
			a := Analyze(m, Options{})
			tree, err := BuildTree(context.Background(), a)
			require.NoError(t, err)
			stats := tree.Stats()

			wantDepth, wantTotal := bruteOptimal(m, a.candidateIDs())
			assert.Equal(t, wantDepth, stats.MaxDepth, "worst case must match brute force")
			assert.Equal(t, wantTotal, stats.TotalQueries, "weighted total must match brute force")
		})
	}
}

func TestBuildTree_Deterministic(t *testing.T) {
	build := func() string {
		m := classicMatrix(t, []game.RuleID{2, 6, 14}, 4)
		return renderPlan(buildFor(t, m, Options{}))
	}
	first := build()
	second := build()
	if first != second {
		t.Fatal("two builds of the same challenge produced different plans")
	}
	assert.NotEmpty(t, first)
}

func TestBuildTree_NoCandidates(t *testing.T) {
	m := syntheticMatrix(t, 3, tableRule(1, nil))
	_, err := BuildTree(context.Background(), Analyze(m, Options{}))
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("error = %v, want ErrNoCandidates", err)
	}
}

func TestBuildTree_Cancelled(t *testing.T) {
	m := classicMatrix(t, []game.RuleID{5, 6}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BuildTree(ctx, Analyze(m, Options{}))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}
