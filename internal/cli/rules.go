package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the compiled rules in declaration order",
	Run: func(cmd *cobra.Command, args []string) {
		t, _, err := compileTable()
		if err != nil {
			exitErr("compile failed", err)
		}
		for _, r := range t.Rules {
			fmt.Printf("%-24s confidence=%.2f\n", r.Name, r.Confidence)
		}
	},
}

func init() {
	RootCmd.AddCommand(rulesCmd)
}
