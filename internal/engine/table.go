package engine

import (
	"errors"
	"time"

	"github.com/aria-labs/tinyaria/internal/config"
	"github.com/aria-labs/tinyaria/internal/dsl"
	"github.com/aria-labs/tinyaria/internal/predicate"
)

// ErrCompileTimeout is returned when a compilation exceeds its wall-clock
// budget. Callers keep serving the previous table; a slow compile must
// never leave the system without usable rules.
var ErrCompileTimeout = errors.New("rule compilation exceeded its time budget")

const (
	defaultTimeout   = 5 * time.Second
	defaultThreshold = 0.7
)

// CompileOptions tunes one compilation run.
type CompileOptions struct {
	// Timeout is the wall-clock budget. Zero means take it from the base
	// configuration (dsl.compilation_timeout_ms), falling back to 5s.
	Timeout time.Duration
}

// RuleTable is the immutable compiled form of one rule document: rules in
// declaration order plus the effective configuration snapshot. It is never
// mutated after Compile returns, so any number of selections may run
// against it concurrently without locking.
type RuleTable struct {
	Rules      []*dsl.RuleDef
	Config     config.Subsystems
	Threshold  float64
	Warnings   []string
	CompiledAt time.Time
}

// Compile runs the full pipeline (lex, parse, validate, config merge) under
// the configured time budget and returns the compiled table. Any error
// leaves the caller's current table untouched.
func Compile(text string, base config.Subsystems, reg *predicate.Registry, opts CompileOptions) (*RuleTable, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = compileBudget(base)
	}

	type outcome struct {
		table *RuleTable
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		t, err := build(text, base, reg)
		done <- outcome{t, err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case o := <-done:
		return o.table, o.err
	case <-timer.C:
		return nil, ErrCompileTimeout
	}
}

func build(text string, base config.Subsystems, reg *predicate.Registry) (*RuleTable, error) {
	doc, err := dsl.Parse(dsl.Tokenize(text), reg)
	if err != nil {
		return nil, err
	}
	eff, warnings := config.Merge(base, doc.Configs)
	return &RuleTable{
		Rules:      doc.Rules,
		Config:     eff,
		Threshold:  lookupFloat(eff, "metacognition", "confidence_threshold", defaultThreshold),
		Warnings:   warnings,
		CompiledAt: time.Now(),
	}, nil
}

func compileBudget(base config.Subsystems) time.Duration {
	ms := lookupFloat(base, "dsl", "compilation_timeout_ms", 0)
	if ms <= 0 {
		return defaultTimeout
	}
	return time.Duration(ms) * time.Millisecond
}

func lookupFloat(s config.Subsystems, section, key string, fallback float64) float64 {
	sec, ok := s[section]
	if !ok {
		return fallback
	}
	if f, ok := toFloat64(sec[key]); ok {
		return f
	}
	return fallback
}

// toFloat64 coerces the numeric types YAML and JSON decoders produce.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
