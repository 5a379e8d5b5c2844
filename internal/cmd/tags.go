package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/ftag/internal/query"
)

// NewTagsCommand creates the tags subcommand
func NewTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List every tag used in the tree",
		Long: `Print the sorted union of all tags in the tree: tags declared on
directories and files, plus implicit year tags derived from names such
as 1998_vacation or 2019_2021_project.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := rootDir(cmd)
			if err != nil {
				return err
			}
			tags, err := query.AllTags(root)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, tag := range tags {
				fmt.Fprintln(out, tag)
			}
			return nil
		},
	}
	return cmd
}

// NewStatsCommand creates the stats subcommand
func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count tracked files and distinct tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := rootDir(cmd)
			if err != nil {
				return err
			}
			files, tags, err := query.Stats(root)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d files tagged with %d tags\n", files, tags)
			return nil
		},
	}
	return cmd
}

// NewWhatisCommand creates the whatis subcommand
func NewWhatisCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whatis <path>",
		Short: "Show the tags and description of one file or directory",
		Long: `Print the tags and description recorded for a path. For a file,
every sidecar entry whose pattern matches the file name contributes,
together with the directory's own tags and description.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := query.Describe(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	return cmd
}
