package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aria-labs/tinyaria/internal/engine"
	"github.com/aria-labs/tinyaria/internal/predicate"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive mode: evaluate each line you type",
	Run: func(cmd *cobra.Command, args []string) {
		t, cfg, err := compileTable()
		if err != nil {
			exitErr("compile failed", err)
		}
		fmt.Printf("loaded %d rules from %s\n", len(t.Rules), cfg.RulesPath)
		fmt.Println("type 'quit' or 'exit' to stop")

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("you: ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			switch strings.ToLower(line) {
			case "quit", "exit", "q":
				return
			}
			d := t.Select(&predicate.Context{Input: line})
			switch d.Reason {
			case engine.ReasonMatched:
				fmt.Printf("aria: %s\n", d.Action)
			case engine.ReasonBelowThreshold:
				fmt.Printf("aria: (unsure: %s at %.2f, threshold %.2f)\n", d.Rule, d.Confidence, t.Threshold)
			default:
				fmt.Println("aria: (no matching rule)")
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(replCmd)
}
