package fs

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// SweepTemp deletes temp files left behind by interrupted writes
// ("<name><ext>.<random>.tmp") whose modification time is older than
// olderThan. The grace period keeps in-flight writes of this process safe.
// It returns the number of files removed.
func (r *Repository) SweepTemp(ctx context.Context, olderThan time.Duration) (int, error) {
	if err := r.EnsureDirectory(ctx); err != nil {
		return 0, err
	}

	entries, err := r.fsys.ReadDir(r.Path)
	if err != nil {
		return 0, err
	}

	pattern := "*" + r.config.Extension + ".*" + TempFileSuffix
	removed := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if ok, _ := doublestar.Match(pattern, e.Name()); !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < olderThan {
			continue
		}
		if err := r.fsys.Remove(filepath.Join(r.Path, e.Name())); err != nil {
			if r.config.Logger != nil {
				r.config.Logger.Warn("failed to remove orphaned temp file", "name", e.Name(), "error", err)
			}
			continue
		}
		removed++
	}

	if r.config.Logger != nil && removed > 0 {
		r.config.Logger.Info("swept orphaned temp files", "count", removed)
	}
	r.recordSweep()
	return removed, nil
}
