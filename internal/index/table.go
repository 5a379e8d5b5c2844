// Package index builds the tag index table for a directory tree: a dense
// registry mapping every distinct tag string to an integer index, and for
// every tracked file a bitmap marking which tags apply to it, both its own
// and those inherited from ancestor directories.
package index

import (
	"path/filepath"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/harrison/ftag/internal/glob"
	"github.com/harrison/ftag/internal/store"
	"github.com/harrison/ftag/internal/walker"
)

// DirError records a sidecar file that could not be loaded during a build.
// The directory contributes no tags or files; the build itself continues.
type DirError struct {
	Path string
	Err  error
}

// Table is the built tag index for one root directory. It lives for one
// query session and is rebuilt from scratch on the next invocation.
//
// File iteration order is map order; callers needing stable output must
// sort.
type Table struct {
	root     string
	files    map[string]*roaring.Bitmap
	tags     []string
	tagIndex map[string]uint32
	dirErrs  []DirError
}

// Build walks the tree under root and folds every visited directory into a
// new Table. Tag indices are assigned densely in first-seen order and are
// never reused across builds.
func Build(root string) (*Table, error) {
	w, err := walker.New(root, store.Options{DirTags: true, Files: true, FileTags: true})
	if err != nil {
		return nil, err
	}
	t := &Table{
		root:     root,
		files:    make(map[string]*roaring.Bitmap),
		tagIndex: make(map[string]uint32),
	}
	var (
		inh      inherited
		matcher  glob.Matcher
		names    []string
		patterns []string
	)
	for {
		v, ok := w.Next()
		if !ok {
			break
		}
		// Scopes track every visited directory, including ones without
		// metadata, so that the pop/push bookkeeping stays aligned with the
		// walk.
		if err := inh.enter(v.RelComponents()); err != nil {
			return nil, err
		}
		if v.MetaErr != nil {
			t.dirErrs = append(t.dirErrs, DirError{Path: v.AbsPath, Err: v.MetaErr})
			continue
		}
		if v.Meta == nil {
			continue
		}
		// Directory tags, declared and implicit, extend the inherited set
		// for this directory and everything below it.
		for _, tag := range v.Meta.Tags {
			inh.push(t.resolve(tag))
		}
		if v.RelPath != "" {
			for _, tag := range store.ImplicitTags(filepath.Base(v.RelPath)) {
				inh.push(t.resolve(tag))
			}
		}
		names = names[:0]
		for _, f := range v.Files {
			names = append(names, f.Name)
		}
		patterns = patterns[:0]
		for _, e := range v.Meta.Entries {
			patterns = append(patterns, e.Pattern)
		}
		matcher.FindMatches(names, patterns, false)
		for fi, name := range names {
			if !matcher.FileMatched(fi) {
				continue
			}
			flags := roaring.New()
			for _, pi := range matcher.MatchedPatterns(fi) {
				for _, tag := range v.Meta.Entries[pi].Tags {
					flags.Add(t.resolve(tag))
				}
			}
			for _, tag := range store.ImplicitTags(name) {
				flags.Add(t.resolve(tag))
			}
			flags.AddMany(inh.indices)
			t.files[filepath.Join(v.RelPath, name)] = flags
		}
	}
	return t, nil
}

// resolve returns the dense index for a tag string, assigning the next free
// index on first occurrence.
func (t *Table) resolve(tag string) uint32 {
	if i, ok := t.tagIndex[tag]; ok {
		return i
	}
	i := uint32(len(t.tags))
	t.tags = append(t.tags, tag)
	t.tagIndex[tag] = i
	return i
}

// Root returns the directory this table was built from.
func (t *Table) Root() string { return t.root }

// Tags returns all registered tag strings ordered by index.
func (t *Table) Tags() []string { return t.tags }

// Lookup returns the index for a tag string. A tag never registered during
// the build reports ok false; querying it is legal and matches nothing.
func (t *Table) Lookup(tag string) (uint32, bool) {
	i, ok := t.tagIndex[tag]
	return i, ok
}

// Len returns the number of tracked files.
func (t *Table) Len() int { return len(t.files) }

// Errors returns the sidecar load failures encountered during the build.
func (t *Table) Errors() []DirError { return t.dirErrs }

// Each calls fn for every tracked file with its root-relative path and a
// flag lookup over tag indices. Iteration order is unspecified.
func (t *Table) Each(fn func(relPath string, flag func(index int) bool)) {
	for path, flags := range t.files {
		fn(path, func(i int) bool { return i >= 0 && flags.Contains(uint32(i)) })
	}
}

// FileTags returns the tag strings set for one tracked file, ordered by
// index, or nil when the path is not tracked.
func (t *Table) FileTags(relPath string) []string {
	flags, ok := t.files[relPath]
	if !ok {
		return nil
	}
	var tags []string
	it := flags.Iterator()
	for it.HasNext() {
		tags = append(tags, t.tags[it.Next()])
	}
	return tags
}
