package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a rule document without evaluating anything",
	Run: func(cmd *cobra.Command, args []string) {
		t, cfg, err := compileTable()
		if err != nil {
			exitErr("compile failed", err)
		}
		fmt.Printf("%s: ok\n", cfg.RulesPath)
		fmt.Printf("  rules:     %d\n", len(t.Rules))
		targets := make([]string, 0, len(t.Config))
		for name := range t.Config {
			targets = append(targets, name)
		}
		sort.Strings(targets)
		fmt.Printf("  config:    %d targets %v\n", len(targets), targets)
		fmt.Printf("  threshold: %g\n", t.Threshold)
		for _, w := range t.Warnings {
			fmt.Printf("  warning:   %s\n", w)
		}
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
