package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Name             string `json:"name"`
	Key              string `json:"key"`
	Size             int    `json:"size"`
	Subscribers      int    `json:"subscribers"`
	Writes           int    `json:"writes"`
	StorageType      string `json:"storage_type"`
	LastPersistError string `json:"last_persist_error,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	st := StoreState{
		Name:   s.name,
		Key:    s.key,
		Size:   len(s.items),
		Writes: s.writes,
	}
	if s.lastErr != nil {
		st.LastPersistError = s.lastErr.Error()
	}
	s.mu.RUnlock()

	s.subMu.Lock()
	st.Subscribers = len(s.subs)
	s.subMu.Unlock()

	st.StorageType = "storage"
	if comp, ok := s.storage.(introspection.Component); ok {
		st.StorageType = comp.ComponentType()
	}
	return st
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
