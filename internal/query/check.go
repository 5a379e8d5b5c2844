package query

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/harrison/ftag/internal/glob"
	"github.com/harrison/ftag/internal/store"
	"github.com/harrison/ftag/internal/walker"
)

// Problem is one integrity finding from Check.
type Problem struct {
	// Dir is the absolute directory the finding belongs to.
	Dir string
	// Pattern is the declared pattern that matched no real file. Empty when
	// the finding is a sidecar load failure instead.
	Pattern string
	// Err is set for sidecar load failures.
	Err error
}

func (p Problem) String() string {
	if p.Err != nil {
		return p.Err.Error()
	}
	return fmt.Sprintf("no files matching %q in %s", p.Pattern, p.Dir)
}

// Check verifies the declared metadata against the real directory contents:
// every declared file pattern must match at least one file, and every
// sidecar file must parse. It returns one Problem per finding; an empty
// slice means the tree is clean.
func Check(root string) ([]Problem, error) {
	w, err := walker.New(root, store.Options{Files: true})
	if err != nil {
		return nil, err
	}
	var (
		problems []Problem
		matcher  glob.Matcher
		names    []string
		patterns []string
	)
	for {
		v, ok := w.Next()
		if !ok {
			break
		}
		if v.MetaErr != nil {
			problems = append(problems, Problem{Dir: v.AbsPath, Err: v.MetaErr})
			continue
		}
		if v.Meta == nil {
			continue
		}
		names = names[:0]
		for _, f := range v.Files {
			names = append(names, f.Name)
		}
		patterns = patterns[:0]
		for _, e := range v.Meta.Entries {
			patterns = append(patterns, e.Pattern)
		}
		// Only existence matters here, so stop at the first match per
		// pattern.
		matcher.FindMatches(names, patterns, true)
		for pi, pattern := range patterns {
			if !matcher.PatternMatched(pi) {
				problems = append(problems, Problem{Dir: v.AbsPath, Pattern: pattern})
			}
		}
	}
	return problems, nil
}

// Untracked lists the real files under root that no declared pattern
// matches, as sorted root-relative paths. Files in directories without a
// sidecar file are all untracked.
func Untracked(root string) ([]string, error) {
	w, err := walker.New(root, store.Options{Files: true})
	if err != nil {
		return nil, err
	}
	var (
		untracked []string
		matcher   glob.Matcher
		names     []string
		patterns  []string
	)
	for {
		v, ok := w.Next()
		if !ok {
			break
		}
		names = names[:0]
		for _, f := range v.Files {
			names = append(names, f.Name)
		}
		if v.Meta == nil {
			// No metadata (or it failed to load): nothing here is tracked.
			for _, name := range names {
				untracked = append(untracked, filepath.Join(v.RelPath, name))
			}
			continue
		}
		patterns = patterns[:0]
		for _, e := range v.Meta.Entries {
			patterns = append(patterns, e.Pattern)
		}
		matcher.FindMatches(names, patterns, false)
		for fi, name := range names {
			if !matcher.FileMatched(fi) {
				untracked = append(untracked, filepath.Join(v.RelPath, name))
			}
		}
	}
	sort.Strings(untracked)
	return untracked, nil
}
