package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	planShowTree      bool
	planUniquePremise bool
)

// planCmd builds and reports the optimal question plan
var planCmd = &cobra.Command{
	Use:   "plan <rule-id>...",
	Short: "Build the optimal question plan for a challenge",
	Long: `plan builds the adaptive question tree minimizing the worst-case number
of questions, breaking ties by the expected count over a uniform secret.
Candidates the challenge cannot tell apart end in shared leaves.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&planShowTree, "show-tree", false, "Render the full question tree")
	planCmd.Flags().BoolVar(&planUniquePremise, "unique-premise", false, "Assume the secret is the only code with its response vector")
}

func runPlan(cmd *cobra.Command, args []string) error {
	ids, err := parseRuleIDs(args)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	premise := cfg.Solver.UniquePremise
	if cmd.Flags().Changed("unique-premise") {
		premise = planUniquePremise
	}
	sess, err := newSession(ctx, ids, premise)
	if err != nil {
		return err
	}
	tree, err := sess.Plan(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	st := tree.Stats()
	fmt.Fprintf(out, "candidates  %d\n", st.Candidates)
	fmt.Fprintf(out, "plan        %s\n", styles.Stats(st))

	t := sess.Timings()
	logger.Debug("pipeline timings",
		zap.String("session", sess.ID()),
		zap.Duration("enumerate", t.Enumerate),
		zap.Duration("matrix", t.Matrix),
		zap.Duration("analyze", t.Analyze),
		zap.Duration("plan", t.Plan))

	if planShowTree {
		fmt.Fprintf(out, "\n%s", styles.Tree(cfg.Game.Definition, sess.Challenge(), tree))
	}
	return nil
}
