package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"astgen/internal/grammar"
	"astgen/internal/typegen"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [flags] grammar.json",
	Short: "Dump the normalized rule set in emission order",
	Long: `Rules prints every rule after choice hoisting, including synthetic
rules, in the order their types would be emitted. Terminal rules are
marked with t, extra (trivia) rules with x.`,
	Args: cobra.ExactArgs(1),
	RunE: runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	g, err := grammar.DecodeFile(args[0])
	if err != nil {
		return err
	}

	gen := typegen.NewFor(g)
	for _, r := range g.Rules {
		if err := gen.AddRule(r); err != nil {
			return err
		}
	}
	ordered, err := gen.Ordered()
	if err != nil {
		return err
	}

	// Rule names may be non-ASCII; pad by display width, not bytes.
	nameWidth := 0
	for _, r := range ordered {
		if w := runewidth.StringWidth(r.Name); w > nameWidth {
			nameWidth = w
		}
	}

	out := cmd.OutOrStdout()
	for _, r := range ordered {
		pad := strings.Repeat(" ", nameWidth-runewidth.StringWidth(r.Name))
		fmt.Fprintf(out, "%s%s  %s = %s\n", r.Name, pad, ruleMarks(r), r.Body)
	}
	return nil
}

func ruleMarks(r typegen.OrderedRule) string {
	marks := [2]byte{'-', '-'}
	if r.Terminal {
		marks[0] = 't'
	}
	if r.Extra {
		marks[1] = 'x'
	}
	return string(marks[:])
}
