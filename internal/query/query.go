// Package query orchestrates the indexing pipeline: it builds a tag index
// table for a root directory and answers filter queries and integrity
// questions against it. It is the surface the CLI commands call into.
package query

import (
	"fmt"
	"sort"

	"github.com/harrison/ftag/internal/filter"
	"github.com/harrison/ftag/internal/index"
)

// Result is the outcome of one filter query.
type Result struct {
	// Matches holds root-relative paths of files the filter accepted,
	// sorted for stable output.
	Matches []string
	// DirErrors holds directories whose sidecar files failed to load; they
	// contributed nothing to the index.
	DirErrors []index.DirError
}

// Matches builds the index under root and returns the files matching the
// filter string. A filter naming tags that exist nowhere under root yields
// zero matches, not an error; a malformed filter string is an error.
func Matches(root, filterStr string) (*Result, error) {
	tab, err := index.Build(root)
	if err != nil {
		return nil, err
	}
	expr, err := filter.Parse(filterStr, Resolver(tab))
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", filterStr, err)
	}
	return &Result{
		Matches:   EvalAll(tab, expr),
		DirErrors: tab.Errors(),
	}, nil
}

// Resolver adapts a table's tag registry to the filter parser. Unregistered
// tags become the always-false sentinel.
func Resolver(tab *index.Table) filter.Resolver {
	return func(name string) *filter.Expr {
		if i, ok := tab.Lookup(name); ok {
			return filter.Tag(name, int(i))
		}
		return filter.Unknown(name)
	}
}

// EvalAll evaluates a parsed filter against every entry of a built table
// and returns the matching paths, sorted.
func EvalAll(tab *index.Table, expr *filter.Expr) []string {
	var out []string
	tab.Each(func(rel string, flag func(int) bool) {
		if expr.Eval(flag) {
			out = append(out, rel)
		}
	})
	sort.Strings(out)
	return out
}
