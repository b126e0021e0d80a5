package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/mininotes/pkg/core"
)

// ErrInvalidName is returned when a record name lacks the configured
// extension. Names are derived internally from generated ids, so this
// signals a programming error upstream.
var ErrInvalidName = errors.New("invalid record name")

// Repository implements core.Repository over a single data directory.
//
// Every caller-supplied name is reduced to its final path component before it
// is joined to Path, and names without the configured extension are rejected
// before any I/O. Writes go through a temp file and a rename, so a reader
// never observes a partially written record.
type Repository struct {
	Path   string
	fsys   fileSystem
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastSweep     *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string
	Extension string // Defaults to core.FileExtension.
	Logger    *slog.Logger
	// CorruptionHandler is called when a record exists but cannot be read or
	// parsed. The read itself still reports core.ErrNotFound.
	CorruptionHandler func(name string, err error)
	// ErrorHandler receives runtime watcher failures.
	ErrorHandler   func(error)
	RenameAttempts uint
}

// NewRepository creates a new filesystem-backed repository.
// It performs no I/O; the directory is created lazily.
func NewRepository(config Config) *Repository {
	if config.Extension == "" {
		config.Extension = core.FileExtension
	}
	return &Repository{
		Path:   config.Path,
		fsys:   osFS{},
		config: config,
	}
}

// EnsureDirectory creates the data directory and its parents if absent.
func (r *Repository) EnsureDirectory(ctx context.Context) error {
	if err := r.fsys.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// ListFiles returns the names of the regular files directly inside the data
// directory that end with ext.
func (r *Repository) ListFiles(ctx context.Context, ext string) ([]string, error) {
	if err := r.EnsureDirectory(ctx); err != nil {
		return nil, err
	}

	entries, err := r.fsys.ReadDir(r.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if strings.HasSuffix(e.Name(), ext) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// ReadRecord decodes the named record into v.
// Missing, unreadable and malformed files all yield core.ErrNotFound; the
// cause of the last two is handed to the logger and CorruptionHandler.
func (r *Repository) ReadRecord(ctx context.Context, name string, v any) error {
	if !r.hasExtension(name) {
		return core.ErrNotFound
	}

	data, err := r.fsys.ReadFile(r.resolve(name))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			r.reportCorruption(name, err)
		}
		return core.ErrNotFound
	}

	if err := json.Unmarshal(data, v); err != nil {
		r.reportCorruption(name, fmt.Errorf("invalid json: %w", err))
		return core.ErrNotFound
	}
	return nil
}

// WriteRecord serializes v as indented JSON and atomically replaces the named record.
func (r *Repository) WriteRecord(ctx context.Context, name string, v any) error {
	if !r.hasExtension(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if err := r.EnsureDirectory(ctx); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}

	fullPath := r.resolve(name)
	if r.config.Logger != nil {
		r.config.Logger.Debug("writing record to disk", "name", name, "path", fullPath)
	}

	if err := writeFileAtomic(r.fsys, fullPath, data, 0644, r.config.RenameAttempts); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// DeleteRecord removes the named record. Both "already absent" and
// "permission denied" are reported as false.
func (r *Repository) DeleteRecord(ctx context.Context, name string) bool {
	if !r.hasExtension(name) {
		return false
	}

	if err := r.fsys.Remove(r.resolve(name)); err != nil {
		if r.config.Logger != nil && !errors.Is(err, os.ErrNotExist) {
			r.config.Logger.Warn("failed to remove record", "name", name, "error", err)
		}
		return false
	}
	return true
}

// DirectorySizeBytes sums the sizes of all records. A file that disappears or
// cannot be stat'ed between listing and stat is skipped; the remaining files
// are still counted.
func (r *Repository) DirectorySizeBytes(ctx context.Context) (int64, error) {
	files, err := r.ListFiles(ctx, r.config.Extension)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, f := range files {
		info, err := r.fsys.Stat(filepath.Join(r.Path, f))
		if err != nil {
			if r.config.Logger != nil {
				r.config.Logger.Debug("skipping record in size computation", "name", f, "error", err)
			}
			continue
		}
		total += info.Size()
	}
	return total, nil
}

// Extension returns the record suffix this repository accepts.
func (r *Repository) Extension() string {
	return r.config.Extension
}

func (r *Repository) hasExtension(name string) bool {
	return strings.HasSuffix(name, r.config.Extension)
}

// resolve confines name to the data directory by keeping only its base name.
func (r *Repository) resolve(name string) string {
	return filepath.Join(r.Path, filepath.Base(name))
}

func (r *Repository) reportCorruption(name string, err error) {
	if r.config.Logger != nil {
		r.config.Logger.Warn("unreadable record treated as missing", "name", name, "error", err)
	}
	if r.config.CorruptionHandler != nil {
		r.config.CorruptionHandler(name, err)
	}
}

var _ core.Repository = (*Repository)(nil)
