// Package bridge keeps several Stores over the same durable record in sync.
//
// A Bridge listens on two channels. Local mutations on one attached Store
// reload every other attached Store, and modifications reported by the
// storage's watcher (another process, another handle) reload every attached
// Store. Synchronization is whole-collection: there is no merge, and the
// last writer wins.
package bridge

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/introspection"
	"github.com/aretw0/lifecycle"

	"github.com/Tanya2303/Edvora/pkg/core"
)

// Bridge propagates change notifications between Stores.
type Bridge struct {
	storage core.Storage
	pattern string
	logger  *slog.Logger

	mu       sync.Mutex
	stores   []*attached
	external int
	watching bool
	ctx      context.Context
}

type attached struct {
	store   *core.Store
	unsub   func()
	reloads int
	failed  int
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger for the bridge.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithPattern sets the key pattern watched on the storage.
// Defaults to core.DefaultKey.
func WithPattern(pattern string) Option {
	return func(b *Bridge) {
		if pattern != "" {
			b.pattern = pattern
		}
	}
}

// New creates a Bridge. storage may be nil, in which case only local
// propagation between attached Stores takes place. Otherwise it should be the
// same Storage the local Stores write through, so the watcher can tell local
// writes from foreign ones.
func New(storage core.Storage, opts ...Option) *Bridge {
	b := &Bridge{
		storage: storage,
		pattern: core.DefaultKey,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach subscribes the Bridge to s. The returned func detaches it.
func (b *Bridge) Attach(s *core.Store) (detach func()) {
	a := &attached{store: s}
	a.unsub = s.Subscribe(func(e core.Event) {
		if !e.Type.IsMutation() {
			return
		}
		if e.Unsaved {
			// Siblings would only reload the stale stored record.
			b.logger.Warn("change not persisted, not propagating", "store", s.Name(), "event", e.String())
			return
		}
		b.propagate(a, e)
	})

	b.mu.Lock()
	b.stores = append(b.stores, a)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.unsub()
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, other := range b.stores {
				if other == a {
					b.stores = append(b.stores[:i:i], b.stores[i+1:]...)
					return
				}
			}
		})
	}
}

// propagate reloads every attached Store except the origin.
func (b *Bridge) propagate(origin *attached, e core.Event) {
	b.mu.Lock()
	targets := make([]*attached, 0, len(b.stores))
	for _, a := range b.stores {
		if a != origin && a.store.Key() == origin.store.Key() {
			targets = append(targets, a)
		}
	}
	ctx := b.ctx
	b.mu.Unlock()

	b.logger.Debug("propagating change", "event", e.String(), "targets", len(targets))
	for _, a := range targets {
		b.reload(ctx, a)
	}
}

func (b *Bridge) reload(ctx context.Context, a *attached) {
	err := a.store.Reload(ctx)

	b.mu.Lock()
	if err != nil {
		a.failed++
	} else {
		a.reloads++
	}
	b.mu.Unlock()

	if err != nil {
		b.logger.Warn("failed to reload store, keeping current collection", "store", a.store.Name(), "error", err)
	}
}

// Run consumes the storage watcher until ctx is cancelled, reloading every
// attached Store on each reported change. If the storage cannot be watched,
// Run only waits for ctx.
func (b *Bridge) Run(ctx context.Context) error {
	b.mu.Lock()
	b.ctx = context.WithoutCancel(ctx)
	b.mu.Unlock()

	w, ok := b.storage.(core.Watchable)
	if !ok {
		<-ctx.Done()
		return nil
	}

	events, err := w.Watch(ctx, b.pattern)
	if err != nil {
		return fmt.Errorf("failed to watch %q: %w", b.pattern, err)
	}
	b.setWatching(true)
	defer b.setWatching(false)

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watch channel closed")
			}
			b.handleExternal(ctx, e)
		}
	}
}

func (b *Bridge) handleExternal(ctx context.Context, e core.Event) {
	b.mu.Lock()
	b.external++
	targets := make([]*attached, 0, len(b.stores))
	for _, a := range b.stores {
		if e.Key == "" || a.store.Key() == e.Key {
			targets = append(targets, a)
		}
	}
	b.mu.Unlock()

	b.logger.Debug("external change", "event", e.String(), "targets", len(targets))
	for _, a := range targets {
		b.reload(ctx, a)
	}
}

// Start runs the Bridge on a tracked goroutine and returns immediately.
func (b *Bridge) Start(ctx context.Context) error {
	lifecycle.Go(ctx, b.Run, lifecycle.WithErrorHandler(func(err error) {
		b.logger.Error("bridge stopped", "error", err)
	}))
	return nil
}

func (b *Bridge) setWatching(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.watching = v
}

// Watching reports whether Run is consuming the storage watcher.
func (b *Bridge) Watching() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.watching
}

// StoreStats is the per-store part of State.
type StoreStats struct {
	Name    string `json:"name"`
	Key     string `json:"key"`
	Reloads int    `json:"reloads"`
	Failed  int    `json:"failed_reloads,omitempty"`
}

// BridgeState exposes internal state for observability.
type BridgeState struct {
	Pattern        string       `json:"pattern"`
	Watching       bool         `json:"watching"`
	ExternalEvents int          `json:"external_events"`
	Stores         []StoreStats `json:"stores"`
}

// State implements introspection.Introspectable.
func (b *Bridge) State() any {
	b.mu.Lock()
	defer b.mu.Unlock()

	st := BridgeState{
		Pattern:        b.pattern,
		Watching:       b.watching,
		ExternalEvents: b.external,
		Stores:         make([]StoreStats, 0, len(b.stores)),
	}
	for _, a := range b.stores {
		st.Stores = append(st.Stores, StoreStats{
			Name:    a.store.Name(),
			Key:     a.store.Key(),
			Reloads: a.reloads,
			Failed:  a.failed,
		})
	}
	return st
}

// ComponentType implements introspection.Component.
func (b *Bridge) ComponentType() string {
	return "bridge"
}

var _ introspection.Introspectable = (*Bridge)(nil)
var _ introspection.Component = (*Bridge)(nil)
