package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/mininotes/pkg/adapters/fs"
	"github.com/aretw0/mininotes/pkg/core"
)

// Store bundles the note service with the repository backing it.
type Store struct {
	*core.Service
	Repository *fs.Repository
}

// Path returns the resolved data directory.
func (s *Store) Path() string {
	return s.Repository.Path
}

// New opens a note store rooted at path. An empty path selects
// DefaultDataDir. No directory is created until the first write.
//
//	store, err := platform.New("./notes", platform.WithSerializedUpdates(true))
func New(path string, opts ...Option) (*Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	repo, err := openRepository(path, o)
	if err != nil {
		return nil, err
	}

	if o.sweepOnOpen {
		n, err := repo.SweepTemp(context.Background(), o.sweepGrace)
		if err != nil {
			return nil, fmt.Errorf("failed to sweep temp files: %w", err)
		}
		if n > 0 && o.logger != nil {
			o.logger.Info("removed orphaned temp files", "count", n, "path", repo.Path)
		}
	}

	service := core.NewService(repo, core.ServiceConfig{
		Logger:           o.logger,
		MaxTextLength:    o.maxTextLength,
		SeedLimit:        o.seedLimit,
		Extension:        repo.Extension(),
		SerializeUpdates: o.serializeUpdates,
		Clock:            o.clock,
	})

	return &Store{Service: service, Repository: repo}, nil
}
