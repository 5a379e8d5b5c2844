package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrison/ftag/internal/config"
	"github.com/harrison/ftag/internal/logger"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for ftag
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ftag",
		Short: "Tag and query files in a directory tree",
		Long: `ftag tracks tags and descriptions for files through plain-text
sidecar files stored alongside the files themselves.

Each directory may carry one sidecar describing the directory and its
files; tags declared on a directory are inherited by everything below
it. Query the tree with boolean filters combining tags with &, | and !.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringP("path", "p", ".", "Root of the tracked directory tree")
	cmd.PersistentFlags().String("config", "", "Path to config file (default: ~/.config/ftag/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log verbosity: trace, debug, info, warn, error")

	cmd.AddCommand(NewQueryCommand())
	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewUntrackedCommand())
	cmd.AddCommand(NewTagsCommand())
	cmd.AddCommand(NewWhatisCommand())
	cmd.AddCommand(NewEditCommand())
	cmd.AddCommand(NewInteractiveCommand())
	cmd.AddCommand(NewExportCommand())
	cmd.AddCommand(NewStatsCommand())

	return cmd
}

// rootDir resolves the --path flag to an absolute path.
func rootDir(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("path")
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root %s: %w", path, err)
	}
	return abs, nil
}

// setup loads configuration and builds the logger for a command
// invocation. Flags override config file settings.
func setup(cmd *cobra.Command) (*config.Config, *logger.Console, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.LogLevel
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		level = flagLevel
	}
	log := logger.New(cmd.ErrOrStderr(), level, cfg.Color)
	return cfg, log, nil
}
