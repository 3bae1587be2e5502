package solver

import "codecrack/internal/game"

// Node is one point in a query plan. Inner nodes carry the query to ask
// next: Equal is taken when the verifier reports the probe's result
// matches the secret's, NotEqual otherwise. Leaves carry the candidates
// surviving the path; a leaf with more than one candidate is a set the
// cards cannot split further.
type Node struct {
	Candidates []game.Code
	Query      *Query
	Equal      *Node
	NotEqual   *Node
}

// IsLeaf reports whether the node asks no further query.
func (n *Node) IsLeaf() bool { return n.Query == nil }

// Resolved reports whether the node pins the secret to exactly one code.
func (n *Node) Resolved() bool { return n.IsLeaf() && len(n.Candidates) == 1 }

// Tree is a complete adaptive query plan over a candidate set.
type Tree struct {
	Root *Node
}

// Walk visits every node in preorder (node, Equal subtree, NotEqual
// subtree) with its query depth, the number of answers already seen on the
// path.
func (t *Tree) Walk(fn func(n *Node, depth int)) {
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		if n == nil {
			return
		}
		fn(n, depth)
		visit(n.Equal, depth+1)
		visit(n.NotEqual, depth+1)
	}
	visit(t.Root, 0)
}

// Stats summarize plan cost. Depth counts queries along a path, so a
// single-candidate plan has MaxDepth 0.
type Stats struct {
	Candidates      int
	MaxDepth        int
	TotalQueries    int // sum over candidates of their path length
	ExpectedQueries float64
	Leaves          int
	AmbiguousLeaves int
}

// Stats walks the plan and aggregates its cost figures.
func (t *Tree) Stats() Stats {
	var s Stats
	t.Walk(func(n *Node, depth int) {
		if !n.IsLeaf() {
			return
		}
		s.Leaves++
		s.Candidates += len(n.Candidates)
		s.TotalQueries += depth * len(n.Candidates)
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		if len(n.Candidates) > 1 {
			s.AmbiguousLeaves++
		}
	})
	if s.Candidates > 0 {
		s.ExpectedQueries = float64(s.TotalQueries) / float64(s.Candidates)
	}
	return s
}
