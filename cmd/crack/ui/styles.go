// Package ui provides the visual styling and rendering for the crack CLI:
// colored code digits, query prompts, plan trees, and the interactive play
// program.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"codecrack/internal/game"
)

// Semantic colors, shared across commands.
var (
	ColorSuccess = lipgloss.Color("#8BC34A")
	ColorError   = lipgloss.Color("#e53935")
	ColorWarning = lipgloss.Color("#FFC107")
	ColorInfo    = lipgloss.Color("#2196F3")
	ColorMuted   = lipgloss.Color("245")
)

// Styles holds the styled components for command output.
type Styles struct {
	NoColor bool

	Title   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Badge   lipgloss.Style
	Prompt  lipgloss.Style
	Spinner lipgloss.Style
}

// NewStyles builds the style set. With noColor every style renders plain
// text, which also keeps output stable in pipes and tests.
func NewStyles(noColor bool) Styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return Styles{
			NoColor: true,
			Title:   plain,
			Muted:   plain,
			Bold:    plain,
			Success: plain,
			Error:   plain,
			Warning: plain,
			Info:    plain,
			Badge:   plain,
			Prompt:  plain,
			Spinner: plain,
		}
	}
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Bold: lipgloss.NewStyle().
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(ColorInfo),

		Badge: lipgloss.NewStyle().
			Background(ColorInfo).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(ColorSuccess),
	}
}

// Check renders the affirmative branch mark.
func (s Styles) Check() string { return s.Success.Render("✓") }

// Cross renders the negative branch mark.
func (s Styles) Cross() string { return s.Error.Render("✗") }

// DigitStyle returns the style for one code position, colored per the
// board definition. Positions without a color fall back to bold.
func (s Styles) DigitStyle(def game.Definition, pos int) lipgloss.Style {
	if s.NoColor {
		return lipgloss.NewStyle()
	}
	style := lipgloss.NewStyle().Bold(true)
	if pos < len(def.Positions) && def.Positions[pos].Color != "" {
		style = style.Foreground(lipgloss.Color(def.Positions[pos].Color))
	}
	return style
}
