// Package walker implements a pull-based depth-first traversal of a
// directory tree. Each step visits one directory and reports its children
// together with the parsed sidecar metadata for that directory.
//
// The traversal keeps an explicit stack of pending directories instead of
// recursing, so callers can step through it incrementally and stop at any
// point by simply not calling Next again.
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/ftag/internal/store"
)

// DirEntry is one filesystem child discovered during traversal.
type DirEntry struct {
	Name  string
	IsDir bool
	Depth int
}

// Visit is one "directory visited" event. Dirs come before Files in
// traversal order; Files are sorted lexicographically by name.
//
// Meta holds the parsed sidecar metadata when a sidecar file exists and
// parsed cleanly. A missing sidecar leaves Meta and MetaErr nil; a sidecar
// that failed to read or parse leaves Meta nil and MetaErr set.
type Visit struct {
	Depth   int
	AbsPath string
	RelPath string
	Dirs    []DirEntry
	Files   []DirEntry
	Meta    *store.DirData
	MetaErr error
}

// RelComponents returns the root-relative path split into components. The
// root itself yields nil.
func (v *Visit) RelComponents() []string {
	if v.RelPath == "" {
		return nil
	}
	return strings.Split(v.RelPath, string(filepath.Separator))
}

type frame struct {
	depth int
	name  string
}

// Walker produces directories of a tree in depth-first pre-order. The root
// is visited at depth 1. Create one with New, then call Next until it
// returns false.
type Walker struct {
	root  string
	opts  store.Options
	stack []frame
	rel   []string
	depth int
}

// New creates a Walker rooted at root. The root must be an existing
// directory. opts controls which parts of sidecar files are parsed.
func New(root string, opts store.Options) (*Walker, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("invalid path %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("invalid path %s: not a directory", root)
	}
	return &Walker{
		root:  root,
		opts:  opts,
		stack: []frame{{depth: 1, name: ""}},
	}, nil
}

// Next advances to the next directory in depth-first pre-order. It returns
// false when the traversal is exhausted. The returned Visit is owned by the
// caller. A directory that cannot be listed contributes zero children; no
// error is surfaced for it.
func (w *Walker) Next() (Visit, bool) {
	if len(w.stack) == 0 {
		return Visit{}, false
	}
	f := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]

	// Rewind path components accumulated below this frame's parent.
	for w.depth > f.depth-1 {
		w.rel = w.rel[:len(w.rel)-1]
		w.depth--
	}
	if f.name != "" {
		w.rel = append(w.rel, f.name)
	} else {
		w.rel = append(w.rel, "")
	}
	w.depth++

	relPath := filepath.Join(w.rel...)
	if relPath == "." {
		relPath = ""
	}
	absPath := filepath.Join(w.root, relPath)

	visit := Visit{
		Depth:   f.depth,
		AbsPath: absPath,
		RelPath: relPath,
	}

	entries, err := os.ReadDir(absPath)
	if err != nil {
		entries = nil
	}
	// os.ReadDir sorts by filename, which gives the lexicographic order the
	// glob matcher's binary search depends on.
	for _, e := range entries {
		name := e.Name()
		if store.IsSidecarName(name) {
			continue
		}
		child := DirEntry{Name: name, Depth: f.depth + 1}
		if e.IsDir() {
			child.IsDir = true
			visit.Dirs = append(visit.Dirs, child)
		} else if e.Type().IsRegular() {
			visit.Files = append(visit.Files, child)
		}
	}
	// Push subdirectories in reverse so they pop in lexicographic order.
	for i := len(visit.Dirs) - 1; i >= 0; i-- {
		w.stack = append(w.stack, frame{depth: f.depth + 1, name: visit.Dirs[i].Name})
	}

	if sidecar, err := store.SidecarPath(absPath, true); err == nil {
		visit.Meta, visit.MetaErr = store.Load(sidecar, w.opts)
	}
	return visit, true
}
