package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	analyzeUniquePremise bool
	analyzeShowCodes     bool
)

// errDegenerate distinguishes "this challenge cannot single out a secret"
// from operational failures; main maps it to exit code 2.
var errDegenerate = errors.New("challenge cannot identify a unique secret")

// analyzeCmd reports challenge degeneracy before any game is played
var analyzeCmd = &cobra.Command{
	Use:   "analyze <rule-id>...",
	Short: "Check whether a challenge can identify a unique secret",
	Long: `analyze enumerates the code space, drops the codes some card cannot
score, and groups the rest by their full response vectors. Codes in one
group answer every possible question identically, so no sequence of
questions tells them apart.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeUniquePremise, "unique-premise", false, "Assume the secret is the only code with its response vector")
	analyzeCmd.Flags().BoolVar(&analyzeShowCodes, "show-codes", false, "List the candidate codes")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ids, err := parseRuleIDs(args)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	premise := cfg.Solver.UniquePremise
	if cmd.Flags().Changed("unique-premise") {
		premise = analyzeUniquePremise
	}
	sess, err := newSession(ctx, ids, premise)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	a := sess.Analysis()
	ch := sess.Challenge()
	def := cfg.Game.Definition

	fmt.Fprintln(out, styles.Title.Render("challenge"))
	for i, r := range ch.Rules() {
		fmt.Fprintf(out, "  %s  rule %2d  %s\n", styles.Bold.Render(ch.Label(i)), r.ID, r.Name)
	}

	fmt.Fprintf(out, "\ncodes       %d total, %d undefined, %d admissible\n",
		sess.Space().Count(), a.UndefinedCount(), a.AdmissibleCount())
	if dropped := a.PremiseDropped(); len(dropped) > 0 {
		fmt.Fprintf(out, "premise     drops %d codes sharing response vectors\n", len(dropped))
	}
	fmt.Fprintf(out, "candidates  %d\n", a.CandidateCount())
	fmt.Fprintf(out, "groups      %d distinguishable outcomes\n", a.GroupCount())

	if analyzeShowCodes {
		fmt.Fprintf(out, "\n%s\n%s\n", styles.Title.Render("candidates"),
			styles.CodeList(def, a.Candidates(), 12))
	}

	fmt.Fprintln(out)
	if a.Solvable() {
		fmt.Fprintf(out, "%s every candidate is uniquely identifiable\n", styles.Check())
		return nil
	}
	ambiguous := a.AmbiguousGroups()
	fmt.Fprintf(out, "%s %d groups cannot be split by any question:\n  %s\n",
		styles.Cross(), len(ambiguous), styles.Groups(def, ambiguous))
	return errDegenerate
}
