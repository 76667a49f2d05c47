// Package memory provides an in-process core.Storage.
//
// A Host plays the role of a shared durable medium (the browser's local
// storage, a file system): every execution context opens its own Storage
// handle on the same Host, and a write through one handle is reported to the
// watchers of every other handle.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/Tanya2303/Edvora/pkg/core"
)

// watchBuffer bounds the pending notifications per watcher. Notifications
// only tell the receiver to reload, so when the buffer is full a pending one
// already covers the new write.
const watchBuffer = 16

// Host holds the shared records.
type Host struct {
	mu       sync.Mutex
	data     map[string][]byte
	watchers map[*watcher]struct{}
	writes   int
}

type watcher struct {
	owner   *Storage
	pattern string
	ch      chan core.Event
}

// NewHost creates an empty Host.
func NewHost() *Host {
	return &Host{
		data:     make(map[string][]byte),
		watchers: make(map[*watcher]struct{}),
	}
}

// Open returns a Storage handle for one execution context.
func (h *Host) Open(name string) *Storage {
	return &Storage{host: h, name: name}
}

// Storage is one context's handle on a Host.
type Storage struct {
	host *Host
	name string
}

// Read implements core.Storage.
func (s *Storage) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.host.mu.Lock()
	defer s.host.mu.Unlock()

	data, ok := s.host.data[key]
	if !ok {
		return nil, core.ErrNotExist
	}
	return append([]byte(nil), data...), nil
}

// Write implements core.Storage. Watchers opened through other handles are
// notified before Write returns.
func (s *Storage) Write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h := s.host
	h.mu.Lock()
	defer h.mu.Unlock()

	h.data[key] = append([]byte(nil), data...)
	h.writes++

	e := core.Event{Type: core.EventExternal, Key: key, Origin: s.name, Timestamp: time.Now().Unix()}
	for w := range h.watchers {
		if w.owner == s {
			continue
		}
		if ok, _ := doublestar.Match(w.pattern, key); !ok {
			continue
		}
		select {
		case w.ch <- e:
		default:
		}
	}
	return nil
}

// Watch implements core.Watchable. The channel is closed when ctx is done.
func (s *Storage) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}
	w := &watcher{owner: s, pattern: pattern, ch: make(chan core.Event, watchBuffer)}

	h := s.host
	h.mu.Lock()
	h.watchers[w] = struct{}{}
	h.mu.Unlock()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.watchers, w)
		close(w.ch)
		h.mu.Unlock()
		return nil
	})
	return w.ch, nil
}

// HostState is the introspection view of a Storage handle.
type HostState struct {
	Handle   string   `json:"handle"`
	Keys     []string `json:"keys"`
	Watchers int      `json:"watchers"`
	Writes   int      `json:"writes"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	h := s.host
	h.mu.Lock()
	defer h.mu.Unlock()

	st := HostState{Handle: s.name, Watchers: len(h.watchers), Writes: h.writes}
	for k := range h.data {
		st.Keys = append(st.Keys, k)
	}
	return st
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "memory-storage"
}

var (
	_ core.Storage                 = (*Storage)(nil)
	_ core.Watchable               = (*Storage)(nil)
	_ introspection.Introspectable = (*Storage)(nil)
	_ introspection.Component      = (*Storage)(nil)
)
