package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"codecrack/cmd/crack/ui"
	"codecrack/internal/game"
	"codecrack/internal/session"
	"codecrack/internal/solver"
)

var (
	playPlain     bool
	playNoPremise bool
)

// playCmd runs the interactive solving session
var playCmd = &cobra.Command{
	Use:   "play [rule-id]...",
	Short: "Solve a live challenge interactively",
	Long: `play asks the plan's questions one at a time; consult the named
verifier card with the probe code and answer whether its result matches
your secret's. Without rule IDs a picker lists the catalog.

A published challenge has exactly one code satisfying all cards, so play
assumes the secret's response vector is unique among admissible codes.
Disable that with --no-premise for homemade card sets.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playPlain, "plain", false, "Line-mode prompts instead of the full-screen interface")
	playCmd.Flags().BoolVar(&playNoPremise, "no-premise", false, "Do not assume the secret's response vector is unique")
}

func runPlay(cmd *cobra.Command, args []string) error {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	var ids []game.RuleID
	var err error
	if len(args) > 0 {
		ids, err = parseRuleIDs(args)
		if err != nil {
			return err
		}
	} else {
		if !interactive {
			return errors.New("rule IDs required when stdin is not a terminal")
		}
		ids, err = pickRules(game.Builtin())
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if len(ids) < 4 {
		fmt.Fprintln(out, styles.Warning.Render("note:")+
			" published challenges use 4 to 6 cards; fewer often cannot single out a secret")
	}

	ctx, cancel := signalContext()
	defer cancel()

	sess, err := newSession(ctx, ids, !playNoPremise)
	if err != nil {
		return err
	}

	if playPlain || !interactive || !isatty.IsTerminal(os.Stdout.Fd()) {
		return playLineMode(ctx, cmd, sess)
	}

	model := ui.NewPlayModel(ctx, sess, styles)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(ui.PlayModel); ok {
		if m.Err() != nil {
			return m.Err()
		}
		if m.Aborted() {
			fmt.Fprintln(out, styles.Muted.Render("aborted"))
		}
	}
	return nil
}

// playLineMode drives the session over plain prompts, for pipes and
// --plain runs.
func playLineMode(ctx context.Context, cmd *cobra.Command, sess *session.Session) error {
	out := cmd.OutOrStdout()
	def := cfg.Game.Definition

	provider := session.NewPromptProvider(cmd.InOrStdin(), out)
	provider.Render = func(q solver.Query) string {
		return fmt.Sprintf("ask %s. same result as the secret? [y/n] ",
			styles.Query(def, sess.Challenge(), q))
	}

	outcome, err := sess.Run(ctx, provider)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	for i, st := range outcome.Steps {
		mark := styles.Cross()
		if st.Equal {
			mark = styles.Check()
		}
		fmt.Fprintf(out, " %2d. %s → %s (%d left)\n",
			i+1, styles.Query(def, sess.Challenge(), st.Query), mark, st.After)
	}
	if outcome.Resolved() {
		fmt.Fprintf(out, "%s secret identified: %s (%d questions)\n",
			styles.Check(), styles.Code(def, *outcome.Identified), len(outcome.Steps))
		return nil
	}
	fmt.Fprintf(out, "%s cannot narrow further: %s share every card's answers\n",
		styles.Cross(), styles.CodeList(def, outcome.Residual, 10))
	return nil
}

// pickRules opens the catalog picker used when play gets no rule IDs.
func pickRules(catalog *game.Catalog) ([]game.RuleID, error) {
	var selected []int
	opts := make([]huh.Option[int], 0, catalog.Size())
	for _, r := range catalog.All() {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%2d  %-16s %s", r.ID, r.Name, r.Desc), int(r.ID)))
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[int]().
			Title("Verifier cards on the board").
			Description("Space toggles a card, enter confirms.").
			Options(opts...).
			Validate(func(ids []int) error {
				if len(ids) == 0 {
					return errors.New("pick at least one card")
				}
				return nil
			}).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		return nil, err
	}

	ids := make([]game.RuleID, len(selected))
	for i, id := range selected {
		ids[i] = game.RuleID(id)
	}
	return ids, nil
}
