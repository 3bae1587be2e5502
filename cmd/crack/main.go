package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codecrack/cmd/crack/ui"
	"codecrack/internal/config"
	"codecrack/internal/game"
	"codecrack/internal/logging"
	"codecrack/internal/session"
	"codecrack/internal/solver"
)

// version is stamped by the release build.
var version = "0.4.0"

var (
	// Global flags
	cfgFile     string
	verbose     bool
	noColor     bool
	workersFlag int

	// Built by PersistentPreRunE, shared by every command
	cfg    *config.Config
	logger *zap.Logger
	styles ui.Styles
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "crack",
	Short: "crack - decision support for code-breaking deductions",
	Long: `crack computes optimal question plans for code-breaking challenges:
a secret code is scored by a set of verifier cards, and each question asks
one card whether a probe code gets the same result as the secret.

crack enumerates the code space, reports which codes the challenge can
tell apart, and builds the adaptive plan minimizing the worst-case
question count. Run "crack play" to solve a live game.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("workers") {
			cfg.Solver.Workers = workersFlag
		}
		if noColor {
			cfg.UI.NoColor = true
		}

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		styles = ui.NewStyles(cfg.UI.NoColor)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "crack %s\n", version)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.config/crack/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().IntVar(&workersFlag, "workers", 0, "Matrix workers (0 = one per CPU)")

	// Add commands to root
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errDegenerate) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// parseRuleIDs reads rule IDs from args, accepting space- and
// comma-separated forms ("2 6 14", "2,6,14").
func parseRuleIDs(args []string) ([]game.RuleID, error) {
	var ids []game.RuleID
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("rule ID %q is not a number", part)
			}
			ids = append(ids, game.RuleID(n))
		}
	}
	if len(ids) == 0 {
		return nil, errors.New("no rule IDs given")
	}
	return ids, nil
}

// newSession prepares a session from the loaded configuration.
func newSession(ctx context.Context, ids []game.RuleID, premise bool) (*session.Session, error) {
	return session.New(ctx, session.Config{
		Definition: cfg.Game.Definition,
		RuleIDs:    ids,
		Workers:    cfg.Solver.Workers,
		Options:    solver.Options{UniqueSecretPremise: premise},
		Logger:     logger,
	})
}
