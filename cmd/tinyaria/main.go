package main

import (
	"os"

	"github.com/aria-labs/tinyaria/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
