package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/mininotes/pkg/core"
)

// DefaultSweepGrace is the minimum age of an orphaned temp file before a
// sweep removes it. Younger files may belong to a write still in flight.
const DefaultSweepGrace = time.Hour

// options holds the internal configuration for a note store.
type options struct {
	logger            *slog.Logger
	extension         string
	maxTextLength     int
	seedLimit         int
	serializeUpdates  bool
	corruptionHandler func(name string, err error)
	errorHandler      func(error)
	clock             func() time.Time
	devSafety         bool
	forceTemp         bool
	sweepOnOpen       bool
	sweepGrace        time.Duration
	renameAttempts    uint
}

// Option defines a functional option for configuring a note store.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		extension:     core.FileExtension,
		maxTextLength: core.DefaultMaxTextLength,
		seedLimit:     core.DefaultSeedLimit,
		devSafety:     true,
		sweepGrace:    DefaultSweepGrace,
	}
}

// WithLogger sets the logger shared by the store and its repository.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithExtension changes the record file extension (default ".json").
func WithExtension(ext string) Option {
	return func(o *options) {
		o.extension = ext
	}
}

// WithMaxTextLength caps title and content, in runes after trimming.
func WithMaxTextLength(n int) Option {
	return func(o *options) {
		o.maxTextLength = n
	}
}

// WithSeedLimit bounds how many notes a single Seed call may create.
func WithSeedLimit(n int) Option {
	return func(o *options) {
		o.seedLimit = n
	}
}

// WithSerializedUpdates guards Update and Delete with a per-id mutex so that
// concurrent partial updates of one note do not lose fields.
// Disabled by default.
func WithSerializedUpdates(enabled bool) Option {
	return func(o *options) {
		o.serializeUpdates = enabled
	}
}

// WithCorruptionHandler registers a callback for records that exist but cannot
// be read or parsed. Reads still report core.ErrNotFound.
func WithCorruptionHandler(fn func(name string, err error)) Option {
	return func(o *options) {
		o.corruptionHandler = fn
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures
// (e.g. permission denied) which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithClock overrides the time source used for note timestamps.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithForceTemp forces the data directory into the dev sandbox.
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox applied when running via `go run` or
// `go test`. By default (true) the data directory is re-rooted under the
// system temp dir. Setting this to false operates on the real path.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithSweepOnOpen removes orphaned temp files older than grace when the
// store is opened. A zero grace uses DefaultSweepGrace.
func WithSweepOnOpen(grace time.Duration) Option {
	return func(o *options) {
		o.sweepOnOpen = true
		if grace > 0 {
			o.sweepGrace = grace
		}
	}
}

// WithRenameAttempts sets how many times the final rename of an atomic write
// is attempted before the write fails.
func WithRenameAttempts(n uint) Option {
	return func(o *options) {
		o.renameAttempts = n
	}
}
