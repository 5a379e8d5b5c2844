package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/ftag/internal/filter"
	"github.com/harrison/ftag/internal/index"
	"github.com/harrison/ftag/internal/query"
)

// NewInteractiveCommand creates the interactive subcommand
func NewInteractiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Explore the tree with an interactive filter session",
		Long: `Start a line-oriented session over the current tree. The index is
built once; each command updates the active filter and reprints the
matching files.

Commands:
  filter <expr>   set the active filter
  reset           clear the active filter
  tags            list all tags in the tree
  quit            leave the session`,
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
			tab, err := index.Build(root)
			if err != nil {
				return err
			}
			for _, de := range tab.Errors() {
				log.Warnf("skipped %s: %v", de.Path, de.Err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d files, %d tags. Type 'filter <expr>' to narrow, 'quit' to leave.\n",
				tab.Len(), len(tab.Tags()))
			scanner := bufio.NewScanner(cmd.InOrStdin())
			var active *filter.Expr
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				switch {
				case line == "":
					continue
				case line == "quit" || line == "exit":
					return nil
				case line == "tags":
					for _, tag := range tab.Tags() {
						fmt.Fprintln(out, tag)
					}
				case line == "reset":
					active = nil
					fmt.Fprintf(out, "filter cleared, %d files\n", tab.Len())
				case strings.HasPrefix(line, "filter "):
					expr, err := filter.Parse(strings.TrimPrefix(line, "filter "), query.Resolver(tab))
					if err != nil {
						fmt.Fprintf(out, "error: %v\n", err)
						continue
					}
					active = expr
					matches := query.EvalAll(tab, active)
					for _, path := range matches {
						fmt.Fprintln(out, path)
					}
					fmt.Fprintf(out, "(%d of %d files match %s)\n", len(matches), tab.Len(), active)
				default:
					fmt.Fprintf(out, "unknown command %q; try 'filter <expr>', 'reset', 'tags' or 'quit'\n", line)
				}
			}
		},
	}
	return cmd
}
