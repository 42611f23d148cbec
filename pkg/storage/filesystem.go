// Package storage keeps generated schedule artifacts — schedule.json,
// rendered reports, exports — on local disk, and mints HMAC-signed
// download tokens for serving them over the observability HTTP surface.
package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Dir is a flat-ish artifact directory. Names passed to its methods are
// interpreted relative to the base directory; absolute names are used
// as-is.
type Dir struct {
	base string
}

// NewDir creates the base directory if needed and returns a handle to it.
func NewDir(base string) (*Dir, error) {
	if base == "" {
		base = "./exports"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", base, err)
	}
	return &Dir{base: base}, nil
}

// Save writes data under name, creating intermediate directories, and
// returns the name back for convenience.
func (d *Dir) Save(name string, data []byte) (string, error) {
	path := d.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("storage: prepare %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", name, err)
	}
	return name, nil
}

// Open returns a read-only handle to a stored artifact.
func (d *Dir) Open(name string) (*os.File, error) {
	f, err := os.Open(d.Path(name))
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", name, err)
	}
	return f, nil
}

// Sweep deletes artifacts older than maxAge and reports how many were
// removed. Used to keep the report directory from accumulating expired
// downloads.
func (d *Dir) Sweep(maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	removed := 0
	err := filepath.WalkDir(d.base, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		removed++
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("storage: sweep %s: %w", d.base, err)
	}
	return removed, nil
}

// Path resolves name against the base directory.
func (d *Dir) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.base, name)
}
