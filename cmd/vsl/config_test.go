package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vsl/internal/config"
)

func TestGetConfigValue_KnownKeys(t *testing.T) {
	cfg := config.DefaultExtended()

	v, err := getConfigValue(cfg, "source.path")
	require.NoError(t, err)
	assert.Equal(t, cfg.Source.Path, v)

	v, err = getConfigValue(cfg, "output.color")
	require.NoError(t, err)
	assert.Equal(t, cfg.Output.Color, v)
}

func TestGetConfigValue_UnknownKey(t *testing.T) {
	cfg := config.DefaultExtended()
	_, err := getConfigValue(cfg, "nonsense.key")
	assert.Error(t, err)
}

func TestGetConfigFilePath_HonorsEnvOverride(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "custom.yaml")
	t.Setenv("VSL_CONFIG", override)

	assert.Equal(t, override, getConfigFilePath())
}

func TestRunConfigInit_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	t.Setenv("VSL_CONFIG", path)

	err := runConfigInit(false, "yaml")
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestRunConfigInit_RefusesToOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	t.Setenv("VSL_CONFIG", path)

	require.NoError(t, runConfigInit(false, "yaml"))
	err := runConfigInit(false, "yaml")
	assert.Error(t, err)
}

func TestRunConfigInit_ForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	t.Setenv("VSL_CONFIG", path)

	require.NoError(t, runConfigInit(false, "yaml"))
	assert.NoError(t, runConfigInit(true, "yaml"))
}

func TestFormatBool(t *testing.T) {
	st := newStyles(false)
	assert.Equal(t, "true", formatBool(true, st))
	assert.Equal(t, "false", formatBool(false, st))
}

func TestFormatSlice_EmptyAndShortAndLong(t *testing.T) {
	st := newStyles(false)
	assert.Equal(t, "(none)", formatSlice(nil, st))
	assert.Equal(t, "a, b", formatSlice([]string{"a", "b"}, st))
	assert.Contains(t, formatSlice([]string{"a", "b", "c", "d"}, st), "+1 more")
}
