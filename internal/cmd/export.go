package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/ftag/internal/report"
)

// NewExportCommand creates the export subcommand
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a static HTML catalog of the tree",
		Long: `Generate a standalone HTML page listing every tracked file with its
tags, with sidecar descriptions rendered as markdown. The page is
written atomically, so an existing catalog is never left half-updated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := setup(cmd)
			if err != nil {
				return err
			}
			root, err := rootDir(cmd)
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("out")
			rep, err := report.Export(root, out)
			if err != nil {
				return err
			}
			for _, p := range rep.Problems {
				log.Warnf("skipped %s", p)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d files, %d tags (report %s)\n",
				out, rep.FileCount, rep.TagCount, rep.ID)
			return nil
		},
	}
	cmd.Flags().String("out", "ftag-catalog.html", "Output file for the HTML catalog")
	return cmd
}
