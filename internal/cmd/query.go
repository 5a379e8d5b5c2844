package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/ftag/internal/query"
)

// NewQueryCommand creates the query subcommand
func NewQueryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query <filter>",
		Aliases: []string{"q"},
		Short:   "List files matching a boolean tag filter",
		Long: `List all tracked files whose tags satisfy the given filter.

A filter combines tag names with & (and), | (or), ! (not) and
parentheses. Binary operators apply left to right; use parentheses to
group. A bare tag name matches every file carrying that tag, including
tags inherited from enclosing directories.

Examples:
  ftag query photo
  ftag query "2021 & photo"
  ftag q "(project & !draft) | archived"`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTags,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := setup(cmd)
			if err != nil {
				return err
			}
			root, err := rootDir(cmd)
			if err != nil {
				return err
			}
			res, err := query.Matches(root, args[0])
			if err != nil {
				return err
			}
			for _, de := range res.DirErrors {
				log.Warnf("skipped %s: %v", de.Path, de.Err)
			}
			out := cmd.OutOrStdout()
			for _, path := range res.Matches {
				fmt.Fprintln(out, path)
			}
			return nil
		},
	}
	return cmd
}

// completeTags offers the tag names of the current tree as shell
// completions for filter arguments.
func completeTags(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	root, err := rootDir(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	tags, err := query.AllTags(root)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return tags, cobra.ShellCompDirectiveNoFileComp
}
