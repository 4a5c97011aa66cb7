package engine

import (
	"sync/atomic"
	"time"

	"github.com/aria-labs/tinyaria/internal/config"
	"github.com/aria-labs/tinyaria/internal/metrics"
	"github.com/aria-labs/tinyaria/internal/predicate"
)

// Engine owns the active RuleTable snapshot. Recompilation builds a new
// table off to the side and swaps the reference atomically, so in-flight
// selections finish against the snapshot they started with and a failed
// compile leaves the previous table in effect.
type Engine struct {
	table atomic.Pointer[RuleTable]
	reg   *predicate.Registry
	base  config.Subsystems
	opts  CompileOptions
}

// New creates an Engine with no table loaded yet.
func New(base config.Subsystems, reg *predicate.Registry, opts CompileOptions) *Engine {
	return &Engine{reg: reg, base: base, opts: opts}
}

// Load compiles text and, on success, makes the result the active table.
// On failure the previous table (if any) stays active.
func (e *Engine) Load(text string) (*RuleTable, error) {
	start := time.Now()
	t, err := Compile(text, e.base, e.reg, e.opts)
	metrics.CompileDuration.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.CompilesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.CompilesTotal.WithLabelValues("ok").Inc()
	e.table.Store(t)
	return t, nil
}

// Table returns the active snapshot, or nil before the first Load.
func (e *Engine) Table() *RuleTable {
	return e.table.Load()
}

// Ready reports whether a table has been loaded.
func (e *Engine) Ready() bool {
	return e.table.Load() != nil
}

// Select evaluates ctx against the current snapshot. With no table loaded
// it reports no_match: an engine without rules matches nothing.
func (e *Engine) Select(ctx *predicate.Context) Decision {
	t := e.table.Load()
	if t == nil {
		metrics.SelectionsTotal.WithLabelValues(string(ReasonNoMatch)).Inc()
		return Decision{Reason: ReasonNoMatch}
	}
	d := t.Select(ctx)
	metrics.SelectionsTotal.WithLabelValues(string(d.Reason)).Inc()
	if d.Reason == ReasonMatched {
		metrics.RuleMatches.WithLabelValues(d.Rule).Inc()
	}
	return d
}
