// Package filelock guards sidecar files against concurrent edits and
// provides atomic replacement so a crashed write never leaves a
// half-written sidecar behind.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock is an advisory exclusive lock on a sidecar file. The lock file
// lives next to the guarded file with a ".lock" suffix.
type Lock struct {
	fl   *flock.Flock
	path string
}

// New creates a lock guarding path.
func New(path string) *Lock {
	lockPath := path + ".lock"
	return &Lock{fl: flock.New(lockPath), path: path}
}

// Acquire blocks until the exclusive lock is held.
func (l *Lock) Acquire() error {
	if err := l.fl.Lock(); err != nil {
		return fmt.Errorf("failed to lock %s: %w", l.path, err)
	}
	return nil
}

// TryAcquire attempts the lock without blocking. It reports whether the
// lock was obtained.
func (l *Lock) TryAcquire() (bool, error) {
	held, err := l.fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", l.path, err)
	}
	return held, nil
}

// Release gives the lock up.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock %s: %w", l.path, err)
	}
	return nil
}

// AtomicWrite replaces path with data via a temp file in the same
// directory followed by a rename, so readers never observe a partial
// file. The original content survives any failure before the rename.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".ftag-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	tmp = nil
	return nil
}

// WriteLocked takes the lock for path, atomically writes data, and
// releases the lock.
func WriteLocked(path string, data []byte) error {
	l := New(path)
	if err := l.Acquire(); err != nil {
		return err
	}
	defer l.Release()
	return AtomicWrite(path, data)
}
