package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	RepositoryType    string `json:"repository_type"`
	MaxTextLength     int    `json:"max_text_length"`
	SeedLimit         int    `json:"seed_limit"`
	SerializedUpdates bool   `json:"serialized_updates"`
	ActiveLocks       int    `json:"active_locks"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	state := ServiceState{
		RepositoryType:    repoType,
		MaxTextLength:     s.maxTextLength,
		SeedLimit:         s.seedLimit,
		SerializedUpdates: s.locks != nil,
	}
	if s.locks != nil {
		state.ActiveLocks = s.locks.Len()
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
