package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path           string     `json:"path"`
	Extension      string     `json:"extension"`
	RenameAttempts uint       `json:"rename_attempts"`
	WatcherActive  bool       `json:"watcher_active"`
	LastSweep      *time.Time `json:"last_sweep,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	attempts := r.config.RenameAttempts
	if attempts == 0 {
		attempts = defaultRenameAttempts
	}

	return RepositoryState{
		Path:           r.Path,
		Extension:      r.config.Extension,
		RenameAttempts: attempts,
		WatcherActive:  r.watcherActive,
		LastSweep:      r.lastSweep,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs-repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}

func (r *Repository) recordSweep() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastSweep = &now
}
