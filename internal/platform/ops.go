package platform

import (
	"context"
	"time"

	"github.com/aretw0/mininotes/pkg/adapters/fs"
)

// openRepository resolves the data root and builds the filesystem adapter.
func openRepository(path string, o *options) (*fs.Repository, error) {
	if path == "" {
		def, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		path = def
	}

	useTemp := o.forceTemp || (o.devSafety && IsDevRun())
	resolvedPath := ResolvePath(path, useTemp)

	if IsDevRun() && o.logger != nil {
		if useTemp {
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "original_path", path, "resolved_path", resolvedPath)
		} else {
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolvedPath)
		}
	}

	return fs.NewRepository(fs.Config{
		Path:              resolvedPath,
		Extension:         o.extension,
		Logger:            o.logger,
		CorruptionHandler: o.corruptionHandler,
		ErrorHandler:      o.errorHandler,
		RenameAttempts:    o.renameAttempts,
	}), nil
}

// Sweep removes orphaned temp files older than olderThan from the data
// directory at path and reports how many were deleted.
func Sweep(ctx context.Context, path string, olderThan time.Duration, opts ...Option) (int, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	repo, err := openRepository(path, o)
	if err != nil {
		return 0, err
	}
	return repo.SweepTemp(ctx, olderThan)
}
