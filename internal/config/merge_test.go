package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-labs/tinyaria/internal/dsl"
)

func TestMerge_Precedence(t *testing.T) {
	base := Subsystems{
		"memory": {"working_size": 7, "compression_enabled": false},
		"ethics": {"harm_threshold": 0.1},
	}
	blocks := []*dsl.ConfigBlock{
		{Target: "memory", Settings: map[string]any{"compression_enabled": true}},
	}

	eff, warnings := Merge(base, blocks)
	assert.Empty(t, warnings)
	assert.Equal(t, true, eff["memory"]["compression_enabled"], "DSL key overrides")
	assert.Equal(t, 7, eff["memory"]["working_size"], "sibling base key retained")
	assert.Equal(t, 0.1, eff["ethics"]["harm_threshold"], "untouched section retained")
}

func TestMerge_NewTargetRetained(t *testing.T) {
	base := Subsystems{"memory": {"working_size": 7}}
	blocks := []*dsl.ConfigBlock{
		{Target: "quantum", Settings: map[string]any{"qubits": float64(8)}},
	}

	eff, warnings := Merge(base, blocks)
	assert.Empty(t, warnings)
	require.NotNil(t, eff["quantum"], "DSL may introduce unknown subsystems")
	assert.Equal(t, float64(8), eff["quantum"]["qubits"])
}

func TestMerge_DuplicateTargetLastWins(t *testing.T) {
	base := Subsystems{}
	blocks := []*dsl.ConfigBlock{
		{Target: "memory", Settings: map[string]any{"working_size": float64(3)}, Pos: dsl.Pos{Line: 1, Col: 1}},
		{Target: "memory", Settings: map[string]any{"working_size": float64(9)}, Pos: dsl.Pos{Line: 5, Col: 1}},
	}

	eff, warnings := Merge(base, blocks)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `"memory"`)
	assert.Equal(t, float64(9), eff["memory"]["working_size"])
}

func TestMerge_DoesNotMutateBase(t *testing.T) {
	base := Subsystems{"memory": {"working_size": 7}}
	blocks := []*dsl.ConfigBlock{
		{Target: "memory", Settings: map[string]any{"working_size": float64(1)}},
	}

	_, _ = Merge(base, blocks)
	assert.Equal(t, 7, base["memory"]["working_size"], "base snapshot must stay untouched")
}
