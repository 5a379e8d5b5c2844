package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/ftag/internal/query"
)

// NewCheckCommand creates the check subcommand
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report declared file patterns that match nothing",
		Long: `Verify every file entry declared in a sidecar matches at least one
real file in its directory. Sidecars that fail to parse are reported as
problems too.

Exit code: 0 if clean, 1 if problems were found`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := rootDir(cmd)
			if err != nil {
				return err
			}
			problems, err := query.Check(root)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(problems) == 0 {
				fmt.Fprintln(out, "No problems found.")
				return nil
			}
			for _, p := range problems {
				fmt.Fprintln(out, p.String())
			}
			return fmt.Errorf("found %d problem(s)", len(problems))
		},
	}
	return cmd
}

// NewUntrackedCommand creates the untracked subcommand
func NewUntrackedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "untracked",
		Short: "List files not covered by any sidecar entry",
		Long: `List every file in the tree that no declared pattern matches.
Files in directories without a sidecar are all untracked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := rootDir(cmd)
			if err != nil {
				return err
			}
			paths, err := query.Untracked(root)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, path := range paths {
				fmt.Fprintln(out, path)
			}
			return nil
		},
	}
	return cmd
}
