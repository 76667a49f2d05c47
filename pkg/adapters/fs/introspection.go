package fs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/introspection"
)

// StorageState exposes internal state for observability.
type StorageState struct {
	Path          string     `json:"path"`
	Keys          []string   `json:"keys"`
	Tracked       int        `json:"tracked_checksums"`
	WatcherActive bool       `json:"watcher_active"`
	Watchers      int        `json:"watchers"`
	LastWrite     *time.Time `json:"last_write,omitempty"`
	TempDebris    bool       `json:"temp_debris,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.mu.RLock()
	st := StorageState{
		Path:          s.Path,
		Tracked:       len(s.written),
		WatcherActive: s.watcherActive,
		Watchers:      s.watchers,
		LastWrite:     s.lastWrite,
	}
	s.mu.RUnlock()

	entries, _ := os.ReadDir(s.Path)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), TempFilePrefix) {
			st.TempDebris = true
			continue
		}
		if key, ok := s.keyFor(filepath.Join(s.Path, e.Name())); ok {
			st.Keys = append(st.Keys, key)
		}
	}
	sort.Strings(st.Keys)
	return st
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "fs-storage"
}

var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)

