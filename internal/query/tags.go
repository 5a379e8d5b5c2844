package query

import (
	"path/filepath"
	"sort"

	"github.com/harrison/ftag/internal/glob"
	"github.com/harrison/ftag/internal/store"
	"github.com/harrison/ftag/internal/walker"
)

// AllTags returns the sorted, deduplicated union of every tag under root:
// directory tags, file entry tags, and implicit tags of directory and
// tracked file names.
func AllTags(root string) ([]string, error) {
	tags, _, err := gather(root)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(tags))
	for tag := range tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out, nil
}

// Stats returns the number of tracked files and distinct tags under root.
func Stats(root string) (files, tags int, err error) {
	set, nfiles, err := gather(root)
	if err != nil {
		return 0, 0, err
	}
	return nfiles, len(set), nil
}

func gather(root string) (map[string]struct{}, int, error) {
	w, err := walker.New(root, store.Options{DirTags: true, Files: true, FileTags: true})
	if err != nil {
		return nil, 0, err
	}
	tags := make(map[string]struct{})
	add := func(ts []string) {
		for _, t := range ts {
			tags[t] = struct{}{}
		}
	}
	var (
		nfiles   int
		matcher  glob.Matcher
		names    []string
		patterns []string
	)
	for {
		v, ok := w.Next()
		if !ok {
			break
		}
		if v.Meta == nil {
			continue
		}
		add(v.Meta.Tags)
		if v.RelPath != "" {
			add(store.ImplicitTags(filepath.Base(v.RelPath)))
		}
		names = names[:0]
		for _, f := range v.Files {
			names = append(names, f.Name)
		}
		patterns = patterns[:0]
		for _, e := range v.Meta.Entries {
			add(e.Tags)
			patterns = append(patterns, e.Pattern)
		}
		matcher.FindMatches(names, patterns, false)
		for fi, name := range names {
			if matcher.FileMatched(fi) {
				add(store.ImplicitTags(name))
				nfiles++
			}
		}
	}
	return tags, nfiles, nil
}
