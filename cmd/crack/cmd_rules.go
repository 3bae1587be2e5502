package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"codecrack/internal/game"
)

var rulesPlain bool

// rulesCmd prints the verifier card reference
var rulesCmd = &cobra.Command{
	Use:   "rules [rule-id]",
	Short: "Show the verifier card catalog",
	Long: `Without arguments, lists every implemented verifier card. With a rule
ID, shows that card's description and how its results distribute over the
configured board.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().BoolVar(&rulesPlain, "plain", false, "Print raw markdown without terminal rendering")
}

func runRules(cmd *cobra.Command, args []string) error {
	catalog := game.Builtin()

	var md string
	if len(args) == 1 {
		ids, err := parseRuleIDs(args)
		if err != nil {
			return err
		}
		rule, err := catalog.Get(ids[0])
		if err != nil {
			return err
		}
		md = ruleDetailMarkdown(rule)
	} else {
		md = catalogMarkdown(catalog)
	}
	return renderMarkdown(cmd, md)
}

func catalogMarkdown(catalog *game.Catalog) string {
	var b strings.Builder
	b.WriteString("# Verifier cards\n\n")
	b.WriteString("| ID | Card | Checks |\n|---:|------|--------|\n")
	for _, r := range catalog.All() {
		fmt.Fprintf(&b, "| %d | %s | %s |\n", r.ID, r.Name, r.Desc)
	}
	return b.String()
}

func ruleDetailMarkdown(rule game.Rule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Card %d: %s\n\n%s\n", rule.ID, rule.Name, rule.Desc)

	space, err := game.NewSpace(cfg.Game.Definition)
	if err != nil {
		return b.String()
	}
	counts := make(map[uint8]int)
	undefined := 0
	for _, c := range space.Codes() {
		if v, ok := rule.Eval(c); ok {
			counts[v]++
		} else {
			undefined++
		}
	}

	fmt.Fprintf(&b, "\n## Distribution\n\nAcross the %d codes of the configured board:\n\n", space.Count())
	values := make([]int, 0, len(counts))
	for v := range counts {
		values = append(values, int(v))
	}
	sort.Ints(values)
	for _, v := range values {
		fmt.Fprintf(&b, "- result %d: %d codes\n", v, counts[uint8(v)])
	}
	if undefined > 0 {
		fmt.Fprintf(&b, "- undefined: %d codes (excluded from play)\n", undefined)
	}
	return b.String()
}

// renderMarkdown pretty-prints markdown on terminals and falls back to the
// raw text everywhere else.
func renderMarkdown(cmd *cobra.Command, md string) error {
	out := cmd.OutOrStdout()
	if rulesPlain || cfg.UI.NoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprint(out, md)
		return nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Fprint(out, md)
		return nil
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		fmt.Fprint(out, md)
		return nil
	}
	fmt.Fprint(out, rendered)
	return nil
}
