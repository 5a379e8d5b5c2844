// Package store defines the sidecar metadata file format: per-directory text
// files that declare free-text tags and descriptions for the directory itself
// and for glob-matched files inside it.
//
// A sidecar file is a flat sequence of bracket headers, each followed by
// free-text content running up to the next header:
//
//	[tags]
//	photo 2021_2023
//
//	[desc]
//	Holiday pictures.
//
//	[path]
//	*.jpg
//
//	[tags]
//	image
//
// Headers before the first [path] apply to the directory. A [path] header
// starts a file entry (one glob pattern per line); [tags] and [desc] headers
// that follow apply to that entry until the next [path].
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Sidecar filenames. SidecarFile is authoritative; LegacySidecarFile is
// accepted as a fallback candidate when no primary file exists.
const (
	SidecarFile       = ".ftag"
	LegacySidecarFile = ".fstore"
	BackupFile        = ".ftag.bak"
)

// ErrNotFound is returned when a sidecar file is required but absent.
var ErrNotFound = errors.New("no sidecar file")

// ParseError describes a structurally malformed sidecar file.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse sidecar file %s: %s", e.Path, e.Reason)
}

// FileEntry is one declared entry from a sidecar file's [path] section.
// Pattern is either a literal filename or a shell glob.
type FileEntry struct {
	Pattern string
	Desc    string
	Tags    []string
}

// DirData is the parsed content of one sidecar file.
type DirData struct {
	Desc    string
	Tags    []string
	Entries []FileEntry
}

// IsSidecarName reports whether name is one of the reserved sidecar
// filenames. The directory walker uses this to keep sidecar files (and their
// backups) out of the children it reports.
func IsSidecarName(name string) bool {
	return name == SidecarFile || name == LegacySidecarFile || name == BackupFile
}

// SidecarPath resolves the sidecar file governing path. A directory path maps
// to a child sidecar file; a file path maps to a sibling. The primary name
// wins over the legacy name when both exist. With mustExist false the primary
// candidate path is returned even when no file exists yet, so callers can
// create it.
func SidecarPath(path string, mustExist bool) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %s: %w", path, err)
	}
	dir := path
	if !info.IsDir() {
		dir = filepath.Dir(path)
	}
	primary := filepath.Join(dir, SidecarFile)
	if _, err := os.Stat(primary); err == nil {
		return primary, nil
	}
	legacy := filepath.Join(dir, LegacySidecarFile)
	if _, err := os.Stat(legacy); err == nil {
		return legacy, nil
	}
	if mustExist {
		return "", ErrNotFound
	}
	return primary, nil
}

// BackupPath returns the backup sidecar path for the directory containing
// path (or for path itself when it is a directory).
func BackupPath(path string) string {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return filepath.Join(filepath.Dir(path), BackupFile)
	}
	return filepath.Join(path, BackupFile)
}

// Load reads and parses the sidecar file at path.
func Load(path string, opts Options) (*DirData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read sidecar file %s: %w", path, err)
	}
	return Parse(string(raw), path, opts)
}
