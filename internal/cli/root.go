// Package cli implements the tinyaria CLI commands.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/aria-labs/tinyaria/internal/config"
	"github.com/aria-labs/tinyaria/internal/engine"
	"github.com/aria-labs/tinyaria/internal/predicate"
)

var (
	configDir   string
	environment string
	rulesPath   string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "tinyaria",
	Short: "Rule-driven response engine",
	Long:  "Compiles a declarative rule document and evaluates user input against it. Text in, weighted decision out.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", "configs", "Configuration directory")
	RootCmd.PersistentFlags().StringVarP(&environment, "environment", "e", "", "Environment overlay (development, production)")
	RootCmd.PersistentFlags().StringVarP(&rulesPath, "rules", "r", "", "Rule document path (default: rules_path from config)")
}

// loadConfig reads the service configuration, tolerating a missing
// directory: the CLI is usable with nothing but a rule document.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configDir, environment)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = &config.Config{}
		if rulesPath == "" {
			return nil, fmt.Errorf("no configuration at %s and no --rules given", configDir)
		}
	} else if err != nil {
		return nil, err
	}
	if rulesPath != "" {
		cfg.RulesPath = rulesPath
	}
	if cfg.Subsystems == nil {
		cfg.Subsystems = make(config.Subsystems)
	}
	return cfg, nil
}

// compileTable loads configuration plus the rule document and compiles.
func compileTable() (*engine.RuleTable, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	text, err := os.ReadFile(cfg.RulesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read rules %s: %w", cfg.RulesPath, err)
	}
	t, err := engine.Compile(string(text), cfg.Subsystems, predicate.Builtins(), engine.CompileOptions{})
	if err != nil {
		return nil, nil, err
	}
	return t, cfg, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
