package ui

import (
	"fmt"
	"strconv"
	"strings"

	"codecrack/internal/game"
	"codecrack/internal/solver"
)

// Code renders a code with per-position digit colors.
func (s Styles) Code(def game.Definition, c game.Code) string {
	var b strings.Builder
	for i := 0; i < c.Len(); i++ {
		b.WriteString(s.DigitStyle(def, i).Render(strconv.Itoa(int(c.Digit(i)))))
	}
	return b.String()
}

// CodeList renders codes space-separated, wrapping after perLine entries.
func (s Styles) CodeList(def game.Definition, codes []game.Code, perLine int) string {
	if perLine < 1 {
		perLine = 10
	}
	var b strings.Builder
	for i, c := range codes {
		if i > 0 {
			if i%perLine == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(s.Code(def, c))
	}
	return b.String()
}

// Query renders one question in card terms: the table label, the card
// name, and the colored probe.
func (s Styles) Query(def game.Definition, ch *game.Challenge, q solver.Query) string {
	return fmt.Sprintf("card %s (%s) vs %s",
		s.Bold.Render(ch.Label(q.RulePos)), q.Rule.Name, s.Code(def, q.Probe))
}

// Tree renders a query plan: each branch question followed by its ✓ and ✗
// subtrees, indented two spaces per answer.
func (s Styles) Tree(def game.Definition, ch *game.Challenge, t *solver.Tree) string {
	var b strings.Builder
	s.renderNode(&b, def, ch, t.Root, 0)
	return b.String()
}

func (s Styles) renderNode(b *strings.Builder, def game.Definition, ch *game.Challenge, n *solver.Node, indent int) {
	if n.IsLeaf() {
		if n.Resolved() {
			b.WriteString(s.Code(def, n.Candidates[0]))
		} else {
			b.WriteString(s.Warning.Render("ambiguous:"))
			for _, c := range n.Candidates {
				b.WriteByte(' ')
				b.WriteString(s.Code(def, c))
			}
		}
		b.WriteByte('\n')
		return
	}
	fmt.Fprintf(b, "ask %s\n", s.Query(def, ch, *n.Query))
	pad := strings.Repeat("  ", indent+1)
	b.WriteString(pad + s.Check() + ": ")
	s.renderNode(b, def, ch, n.Equal, indent+1)
	b.WriteString(pad + s.Cross() + ": ")
	s.renderNode(b, def, ch, n.NotEqual, indent+1)
}

// Groups renders indistinguishable candidate groups, one braced set per
// group.
func (s Styles) Groups(def game.Definition, groups [][]game.Code) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		rendered := make([]string, 0, len(g))
		for _, c := range g {
			rendered = append(rendered, s.Code(def, c))
		}
		parts = append(parts, "{"+strings.Join(rendered, ", ")+"}")
	}
	return strings.Join(parts, "  ")
}

// Stats renders plan cost figures on one line.
func (s Styles) Stats(st solver.Stats) string {
	line := fmt.Sprintf("depth %d worst case, %.2f expected questions, %d leaves",
		st.MaxDepth, st.ExpectedQueries, st.Leaves)
	if st.AmbiguousLeaves > 0 {
		line += " " + s.Warning.Render(fmt.Sprintf("(%d ambiguous)", st.AmbiguousLeaves))
	}
	return line
}
