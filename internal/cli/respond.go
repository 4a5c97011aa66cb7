package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aria-labs/tinyaria/internal/predicate"
)

var (
	respondInput string
	respondJSON  bool
)

var respondCmd = &cobra.Command{
	Use:   "respond",
	Short: "Evaluate a single input against the rule document",
	Run: func(cmd *cobra.Command, args []string) {
		if respondInput == "" {
			exitErr("respond", fmt.Errorf("--input is required"))
		}
		t, _, err := compileTable()
		if err != nil {
			exitErr("compile failed", err)
		}
		d := t.Select(&predicate.Context{Input: respondInput})
		if respondJSON {
			_ = json.NewEncoder(os.Stdout).Encode(d)
			return
		}
		switch {
		case d.Action != "":
			fmt.Println(d.Action)
		default:
			fmt.Printf("no response (%s", d.Reason)
			if d.Rule != "" {
				fmt.Printf(": %s at %.2f", d.Rule, d.Confidence)
			}
			fmt.Println(")")
		}
	},
}

func init() {
	respondCmd.Flags().StringVarP(&respondInput, "input", "i", "", "Input text to evaluate")
	respondCmd.Flags().BoolVar(&respondJSON, "json", false, "Print the full decision as JSON")
	RootCmd.AddCommand(respondCmd)
}
