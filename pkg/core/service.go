package core

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultMaxTextLength caps title and content, counted in runes after trimming.
	DefaultMaxTextLength = 10_000
	// DefaultSeedLimit is the upper bound applied to Seed counts.
	DefaultSeedLimit = 500
)

// ServiceConfig holds the tunables of a Service. Zero values select defaults.
type ServiceConfig struct {
	Logger        *slog.Logger
	MaxTextLength int
	SeedLimit     int
	// Extension is the record suffix; it must match the repository's.
	// Defaults to FileExtension.
	Extension string
	// SerializeUpdates guards Update and Delete with a per-id mutex.
	// Without it, two racing updates of one id both read the same prior
	// state and the last rename wins.
	SerializeUpdates bool
	// Clock overrides time.Now for timestamps.
	Clock func() time.Time
}

// Service implements the note lifecycle on top of a Repository.
// It keeps no note in memory between calls: every operation goes back to
// the repository, which is the single source of truth.
type Service struct {
	repo          Repository
	logger        *slog.Logger
	clock         func() time.Time
	maxTextLength int
	seedLimit     int
	ext           string
	locks         *keyedMutex
}

// NewService creates a new Service.
func NewService(repo Repository, cfg ServiceConfig) *Service {
	s := &Service{
		repo:          repo,
		logger:        cfg.Logger,
		clock:         cfg.Clock,
		maxTextLength: cfg.MaxTextLength,
		seedLimit:     cfg.SeedLimit,
		ext:           cfg.Extension,
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.maxTextLength <= 0 {
		s.maxTextLength = DefaultMaxTextLength
	}
	if s.seedLimit <= 0 {
		s.seedLimit = DefaultSeedLimit
	}
	if s.ext == "" {
		s.ext = FileExtension
	}
	if cfg.SerializeUpdates {
		s.locks = newKeyedMutex()
	}
	return s
}

// List returns every note that can be read back from the repository.
// Records that fail to parse or carry no id are skipped. No ordering is guaranteed.
func (s *Service) List(ctx context.Context) ([]Note, error) {
	files, err := s.repo.ListFiles(ctx, s.ext)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	notes := make([]Note, 0, len(files))
	for _, name := range files {
		var n Note
		if err := s.repo.ReadRecord(ctx, name, &n); err != nil {
			continue
		}
		if n.ID == "" {
			if s.logger != nil {
				s.logger.Debug("skipping record without id", "name", name)
			}
			continue
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// Get retrieves a note by id. Absent and corrupt records both yield ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (Note, error) {
	var n Note
	if err := s.repo.ReadRecord(ctx, s.fileName(id), &n); err != nil {
		return Note{}, ErrNotFound
	}
	if n.ID == "" {
		return Note{}, ErrNotFound
	}
	return n, nil
}

// Create assigns a fresh id and timestamps, sanitizes the text fields and
// persists the note.
func (s *Service) Create(ctx context.Context, in CreateInput) (Note, error) {
	now := s.now()
	n := Note{
		ID:        uuid.NewString(),
		Title:     sanitizeText(in.Title, s.maxTextLength),
		Content:   sanitizeText(in.Content, s.maxTextLength),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.WriteRecord(ctx, s.fileName(n.ID), n); err != nil {
		return Note{}, fmt.Errorf("failed to write note %s: %w", n.ID, err)
	}

	if s.logger != nil {
		s.logger.Debug("note created", "id", n.ID)
	}
	return n, nil
}

// Update applies the fields present in patch to an existing note and
// refreshes UpdatedAt, even when nothing else changed.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Note, error) {
	unlock := s.lock(id)
	defer unlock()

	n, err := s.Get(ctx, id)
	if err != nil {
		return Note{}, err
	}

	if patch.Title != nil {
		n.Title = sanitizeText(*patch.Title, s.maxTextLength)
	}
	if patch.Content != nil {
		n.Content = sanitizeText(*patch.Content, s.maxTextLength)
	}
	n.UpdatedAt = s.now()

	if err := s.repo.WriteRecord(ctx, s.fileName(id), n); err != nil {
		return Note{}, fmt.Errorf("failed to write note %s: %w", id, err)
	}

	if s.logger != nil {
		s.logger.Debug("note updated", "id", id)
	}
	return n, nil
}

// Delete removes the note and reports whether a record was actually removed.
func (s *Service) Delete(ctx context.Context, id string) bool {
	unlock := s.lock(id)
	defer unlock()

	removed := s.repo.DeleteRecord(ctx, s.fileName(id))
	if removed && s.logger != nil {
		s.logger.Debug("note deleted", "id", id)
	}
	return removed
}

// Seed creates placeholder notes. count is clamped into [0, SeedLimit].
// It returns how many notes were created; on a write failure that is the
// number persisted before the error.
func (s *Service) Seed(ctx context.Context, count int) (int, error) {
	count = min(max(count, 0), s.seedLimit)

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		in := CreateInput{
			Title:   fmt.Sprintf("Note %d", i+1),
			Content: placeholderContent(),
		}
		if _, err := s.Create(ctx, in); err != nil {
			return i, err
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded notes", "count", count)
	}
	return count, nil
}

// DirectorySizeBytes reports the on-disk footprint of all notes.
func (s *Service) DirectorySizeBytes(ctx context.Context) (int64, error) {
	return s.repo.DirectorySizeBytes(ctx)
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, fmt.Errorf("repository does not support watching")
	}
	return w.Watch(ctx, pattern)
}

func (s *Service) fileName(id string) string {
	return id + s.ext
}

func (s *Service) now() time.Time {
	return s.clock().UTC()
}

func (s *Service) lock(id string) func() {
	if s.locks == nil {
		return func() {}
	}
	return s.locks.Lock(id)
}

func placeholderContent() string {
	return "Sample content " + strconv.FormatUint(rand.Uint64(), 36)
}
