// Package config loads the optional ftag configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the user-level ftag settings.
type Config struct {
	// LogLevel sets logging verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// Color controls colored output: auto, always or never.
	Color string `yaml:"color"`

	// Editor is the command used by `ftag edit` when $EDITOR is unset.
	Editor string `yaml:"editor"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Color:    "auto",
		Editor:   "vi",
	}
}

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/ftag/config.yaml or ~/.config/ftag/config.yaml. The
// FTAG_CONFIG environment variable overrides it.
func DefaultPath() string {
	if p := os.Getenv("FTAG_CONFIG"); p != "" {
		return p
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "ftag", "config.yaml")
}

// Load reads configuration from path, merging file values over defaults. A
// missing file is not an error and yields the defaults; a malformed file
// is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.Color != "" {
		cfg.Color = fileCfg.Color
	}
	if fileCfg.Editor != "" {
		cfg.Editor = fileCfg.Editor
	}
	return cfg, nil
}
