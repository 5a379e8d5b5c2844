package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/harrison/ftag/internal/filelock"
	"github.com/harrison/ftag/internal/store"
)

// sidecarTemplate seeds a new sidecar so the user edits a file with the
// expected headers already in place.
const sidecarTemplate = `[desc]

[tags]

`

// runEditor launches the editor on path. Replaced in tests.
var runEditor = func(editor, path string) error {
	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// NewEditCommand creates the edit subcommand
func NewEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [path]",
		Short: "Open the sidecar of a directory or file in an editor",
		Long: `Open the sidecar file of the given directory (or of the directory
containing the given file) in an editor. Before opening, the current
sidecar content is snapshotted to a backup next to it.

The editor is taken from $EDITOR, falling back to the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			sc, err := store.SidecarPath(target, false)
			if err != nil {
				return err
			}

			lock := filelock.New(sc)
			if err := lock.Acquire(); err != nil {
				return err
			}
			data, readErr := os.ReadFile(sc)
			switch {
			case readErr == nil:
				if err := filelock.AtomicWrite(store.BackupPath(sc), data); err != nil {
					lock.Release()
					return fmt.Errorf("failed to back up %s: %w", sc, err)
				}
				log.Debugf("backed up %s", sc)
			case os.IsNotExist(readErr):
				if err := filelock.AtomicWrite(sc, []byte(sidecarTemplate)); err != nil {
					lock.Release()
					return err
				}
				log.Debugf("created %s", sc)
			default:
				lock.Release()
				return fmt.Errorf("failed to read %s: %w", sc, readErr)
			}
			if err := lock.Release(); err != nil {
				return err
			}

			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = cfg.Editor
			}
			if editor == "" {
				return fmt.Errorf("no editor configured: set $EDITOR or the editor config key")
			}
			return runEditor(editor, sc)
		},
	}
	return cmd
}
