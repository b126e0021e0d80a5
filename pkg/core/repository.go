package core

import "context"

// Repository defines the contract for the directory of records backing the
// Service. Implementations know nothing about notes: they move named,
// structured values between memory and durable storage.
type Repository interface {
	// EnsureDirectory creates the storage location if it is missing.
	EnsureDirectory(ctx context.Context) error

	// ListFiles returns the record names ending in ext. Order is unspecified.
	ListFiles(ctx context.Context, ext string) ([]string, error)

	// ReadRecord decodes the named record into v.
	// Every failure (absent, unreadable, malformed, bad name) is ErrNotFound.
	ReadRecord(ctx context.Context, name string, v any) error

	// WriteRecord atomically replaces the named record with v.
	WriteRecord(ctx context.Context, name string, v any) error

	// DeleteRecord removes the named record and reports whether it did.
	DeleteRecord(ctx context.Context, name string) bool

	// DirectorySizeBytes sums the size of all records.
	DirectorySizeBytes(ctx context.Context) (int64, error)
}

// Watchable defines an interface for repositories that can report changes.
type Watchable interface {
	// Watch observes record changes whose name matches pattern.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
