package mininotes

import (
	"log/slog"
	"time"

	"github.com/aretw0/mininotes/internal/platform"
	"github.com/aretw0/mininotes/pkg/core"
)

// --- Types ---

// Note is a public alias for the stored note entity.
type Note = core.Note

// CreateInput is a public alias for the fields accepted by Create.
type CreateInput = core.CreateInput

// Patch is a public alias for a partial update.
type Patch = core.Patch

// Store is an open note store: the Record Store plus its file layer.
type Store = platform.Store

// ErrNotFound is returned by Get and Update for missing or unreadable notes.
var ErrNotFound = core.ErrNotFound

// --- Configuration ---

// Option defines a functional option for configuring a Store.
type Option = platform.Option

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithExtension changes the record file extension.
func WithExtension(ext string) Option {
	return platform.WithExtension(ext)
}

// WithMaxTextLength caps title and content length in runes.
func WithMaxTextLength(n int) Option {
	return platform.WithMaxTextLength(n)
}

// WithSeedLimit bounds how many notes a single Seed call may create.
func WithSeedLimit(n int) Option {
	return platform.WithSeedLimit(n)
}

// WithSerializedUpdates enables per-note locking of Update and Delete.
func WithSerializedUpdates(enabled bool) Option {
	return platform.WithSerializedUpdates(enabled)
}

// WithCorruptionHandler registers a callback for unreadable records.
func WithCorruptionHandler(fn func(name string, err error)) Option {
	return platform.WithCorruptionHandler(fn)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithClock overrides the time source for note timestamps.
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// WithForceTemp forces the data directory into the dev sandbox.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox applied under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithSweepOnOpen removes orphaned temp files older than grace on Open.
func WithSweepOnOpen(grace time.Duration) Option {
	return platform.WithSweepOnOpen(grace)
}

// --- Entry points ---

// Open opens the note store rooted at dir. An empty dir selects DefaultDataDir.
func Open(dir string, opts ...Option) (*Store, error) {
	return platform.New(dir, opts...)
}

// DefaultDataDir returns the per-user directory notes live in by default.
func DefaultDataDir() (string, error) {
	return platform.DefaultDataDir()
}
