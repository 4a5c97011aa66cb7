package config

import (
	"fmt"

	"github.com/aria-labs/tinyaria/internal/dsl"
)

// Merge overlays DSL config blocks onto the base subsystem settings and
// returns the effective configuration snapshot. Explicit DSL keys override
// base keys; keys absent from a block keep their base value. A block whose
// target has no base section introduces a new section rather than failing.
// Multiple blocks for the same target are tolerated with last-one-wins
// semantics; each repeat is reported as a warning.
func Merge(base Subsystems, blocks []*dsl.ConfigBlock) (Subsystems, []string) {
	eff := base.Clone()
	seen := make(map[string]bool)
	var warnings []string

	for _, b := range blocks {
		if seen[b.Target] {
			warnings = append(warnings,
				fmt.Sprintf("duplicate config target %q at %s: later settings win", b.Target, b.Pos))
		}
		seen[b.Target] = true

		sec := eff[b.Target]
		if sec == nil {
			sec = make(map[string]any, len(b.Settings))
			eff[b.Target] = sec
		}
		for k, v := range b.Settings {
			sec[k] = v
		}
	}
	return eff, warnings
}
