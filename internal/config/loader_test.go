package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const defaultYAML = `
listen_addr: ":8080"
rules_path: "configs/rules.aria"
subsystems:
  memory:
    working_size: 7
    compression_enabled: false
  metacognition:
    confidence_threshold: 0.7
`

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", defaultYAML)

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "configs/rules.aria", cfg.RulesPath)
	assert.Equal(t, 7, cfg.Subsystems["memory"]["working_size"])
}

func TestLoad_EnvironmentOverlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", defaultYAML)
	writeFile(t, dir, "production.yaml", `
listen_addr: ":9090"
subsystems:
  memory:
    working_size: 12
`)

	cfg, err := Load(dir, "production")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "configs/rules.aria", cfg.RulesPath, "unset overlay fields keep defaults")
	assert.Equal(t, 12, cfg.Subsystems["memory"]["working_size"])
	assert.Equal(t, false, cfg.Subsystems["memory"]["compression_enabled"], "sibling keys survive the overlay")
	assert.Equal(t, 0.7, cfg.Subsystems["metacognition"]["confidence_threshold"])
}

func TestLoad_MissingEnvironmentFileIsFine(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", defaultYAML)

	cfg, err := Load(dir, "staging")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestLoad_MissingDefaultFails(t *testing.T) {
	_, err := Load(t.TempDir(), "")
	assert.Error(t, err)
}

func TestLoad_EmptyFileGetsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.yaml", "")

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "configs/rules.aria", cfg.RulesPath)
	assert.NotNil(t, cfg.Subsystems)
}
