package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\neditor: nano\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "nano", cfg.Editor)
	// Unset keys keep their defaults.
	assert.Equal(t, "auto", cfg.Color)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: [oops\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultPathEnvOverride(t *testing.T) {
	t.Setenv("FTAG_CONFIG", "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", DefaultPath())

	t.Setenv("FTAG_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "ftag", "config.yaml"), DefaultPath())
}
