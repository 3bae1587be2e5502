package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"codecrack/internal/game"
	"codecrack/internal/session"
	"codecrack/internal/solver"
)

type playPhase int

const (
	phaseBuilding playPhase = iota
	phaseAsking
	phaseDone
	phaseFailed
)

// planReadyMsg carries the finished (or failed) plan into the update loop.
type planReadyMsg struct {
	tree *solver.Tree
	err  error
}

// PlayModel drives one interactive solving session: a spinner while the
// plan is computed, then one yes/no question per plan node, then the
// outcome. The model walks the plan tree directly; the line-mode provider
// in internal/session covers non-TUI runs.
type PlayModel struct {
	sess   *session.Session
	ctx    context.Context
	styles Styles
	def    game.Definition

	spinner spinner.Model
	header  string

	phase   playPhase
	stats   solver.Stats
	node    *solver.Node
	steps   []session.Step
	flash   string
	err     error
	aborted bool
}

// NewPlayModel prepares the play program for a session whose plan has not
// been built yet.
func NewPlayModel(ctx context.Context, sess *session.Session, styles Styles) PlayModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	ch := sess.Challenge()
	parts := make([]string, 0, ch.Size())
	for i, r := range ch.Rules() {
		parts = append(parts, fmt.Sprintf("%s %s", ch.Label(i), r.Name))
	}

	return PlayModel{
		sess:    sess,
		ctx:     ctx,
		styles:  styles,
		def:     sess.Space().Definition(),
		spinner: sp,
		header:  strings.Join(parts, " · "),
		phase:   phaseBuilding,
	}
}

// Err returns the plan construction error, if the session failed.
func (m PlayModel) Err() error { return m.err }

// Aborted reports whether the player quit before reaching a leaf.
func (m PlayModel) Aborted() bool { return m.aborted }

func (m PlayModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.buildPlan)
}

func (m PlayModel) buildPlan() tea.Msg {
	tree, err := m.sess.Plan(m.ctx)
	return planReadyMsg{tree: tree, err: err}
}

func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planReadyMsg:
		if msg.err != nil {
			m.err = msg.err
			m.phase = phaseFailed
			return m, tea.Quit
		}
		m.stats = msg.tree.Stats()
		m.node = msg.tree.Root
		m.phase = phaseAsking
		if m.node.IsLeaf() {
			m.phase = phaseDone
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseBuilding {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch strings.ToLower(msg.String()) {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit
		case "y":
			return m.answer(true)
		case "n":
			return m.answer(false)
		default:
			if m.phase == phaseAsking {
				m.flash = `press "y" or "n"`
			}
			return m, nil
		}
	}
	return m, nil
}

// answer records the response and descends one level of the plan.
func (m PlayModel) answer(equal bool) (tea.Model, tea.Cmd) {
	if m.phase != phaseAsking {
		return m, nil
	}
	m.flash = ""
	next := m.node.NotEqual
	if equal {
		next = m.node.Equal
	}
	m.steps = append(m.steps, session.Step{
		Query:  *m.node.Query,
		Equal:  equal,
		Before: len(m.node.Candidates),
		After:  len(next.Candidates),
	})
	m.node = next
	if m.node.IsLeaf() {
		m.phase = phaseDone
		return m, tea.Quit
	}
	return m, nil
}

func (m PlayModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Badge.Render("CRACK"))
	b.WriteString("  ")
	b.WriteString(m.styles.Muted.Render(m.header))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseBuilding:
		fmt.Fprintf(&b, "%s computing the query plan for %d candidates...\n",
			m.spinner.View(), m.sess.Analysis().CandidateCount())

	case phaseAsking:
		m.writeTranscript(&b)
		fmt.Fprintf(&b, "question %d of at most %d · %d candidates remain\n",
			len(m.steps)+1, m.stats.MaxDepth, len(m.node.Candidates))
		fmt.Fprintf(&b, "ask %s\n", m.styles.Query(m.def, m.sess.Challenge(), *m.node.Query))
		b.WriteString(m.styles.Prompt.Render("same result as the secret?"))
		b.WriteString(m.styles.Muted.Render(" [y/n · q quits]"))
		b.WriteByte('\n')
		if m.flash != "" {
			b.WriteString(m.styles.Warning.Render(m.flash))
			b.WriteByte('\n')
		}

	case phaseDone:
		m.writeTranscript(&b)
		if m.node.Resolved() {
			fmt.Fprintf(&b, "%s secret identified: %s (%d questions)\n",
				m.styles.Check(),
				m.styles.Code(m.def, m.node.Candidates[0]),
				len(m.steps))
		} else {
			fmt.Fprintf(&b, "%s cannot narrow further: %s share every card's answers\n",
				m.styles.Cross(),
				m.styles.CodeList(m.def, m.node.Candidates, 10))
		}

	case phaseFailed:
		fmt.Fprintf(&b, "%s %v\n", m.styles.Cross(), m.err)
	}
	return b.String()
}

// writeTranscript lists the questions asked so far with their answers.
func (m PlayModel) writeTranscript(b *strings.Builder) {
	for i, st := range m.steps {
		mark := m.styles.Cross()
		if st.Equal {
			mark = m.styles.Check()
		}
		fmt.Fprintf(b, " %2d. %s → %s\n",
			i+1, m.styles.Query(m.def, m.sess.Challenge(), st.Query), mark)
	}
	if len(m.steps) > 0 {
		b.WriteByte('\n')
	}
}
