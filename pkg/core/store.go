package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

// DefaultKey is the storage record that holds the reminder collection.
const DefaultKey = "reminders"

// Store is the single source of truth for a reminder collection within one
// context. It mediates all mutation, persists the whole collection after
// every change and notifies subscribers.
type Store struct {
	storage        Storage
	key            string
	name           string
	logger         *slog.Logger
	now            func() time.Time
	newID          func() string
	onPersistError func(error)

	mu          sync.RWMutex
	items       []Reminder
	retired     map[string]struct{}
	lastCreated time.Time
	writes      int
	lastErr     error

	subMu   sync.Mutex
	subs    []subscription
	nextSub uint64
}

type subscription struct {
	id uint64
	fn Listener
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKey sets the storage record name. Defaults to DefaultKey.
func WithKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithName labels the store (one per context) in logs and events.
func WithName(name string) StoreOption {
	return func(s *Store) { s.name = name }
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the wall clock used for CreatedAt.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the ID generator used when callers omit an ID.
func WithIDGenerator(fn func() string) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithPersistErrorHandler registers a callback for writes that failed after
// the retry. The in-memory mutation is kept regardless.
func WithPersistErrorHandler(fn func(error)) StoreOption {
	return func(s *Store) { s.onPersistError = fn }
}

// NewStore creates a Store backed by storage. Call Initialize before use.
func NewStore(storage Storage, opts ...StoreOption) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		name:    "default",
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		newID:   uuid.NewString,
		retired: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage record name of the collection.
func (s *Store) Key() string { return s.key }

// Name returns the context label of the store.
func (s *Store) Name() string { return s.name }

// Initialize loads the collection from storage.
// Absent or malformed bytes yield an empty collection and the stored bytes
// are left untouched until the next successful mutation. A read failure also
// yields an empty collection, but is returned as a *PersistenceError.
func (s *Store) Initialize(ctx context.Context) error {
	items, err := s.load(ctx)
	s.mu.Lock()
	s.replaceLocked(items)
	s.mu.Unlock()
	return err
}

// Reload replaces the in-memory collection with the stored one and emits a
// RELOAD event. On a read failure the current collection is kept.
func (s *Store) Reload(ctx context.Context) error {
	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.replaceLocked(items)
	s.mu.Unlock()

	s.notify(Event{Type: EventReload})
	return nil
}

func (s *Store) load(ctx context.Context) ([]Reminder, error) {
	data, err := s.storage.Read(ctx, s.key)
	if errors.Is(err, ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		s.logger.Warn("failed to read reminders, starting empty", "store", s.name, "key", s.key, "error", err)
		return nil, &PersistenceError{Op: "read", Key: s.key, Err: err}
	}
	if len(data) == 0 {
		return nil, nil
	}

	items, err := DecodeCollection(data)
	if err != nil {
		s.logger.Warn("stored reminders are malformed, starting empty", "store", s.name, "key", s.key, "error", err)
		return nil, nil
	}
	return items, nil
}

// replaceLocked swaps in a freshly loaded collection. IDs that disappear are
// retired so a caller cannot hand them out again.
func (s *Store) replaceLocked(items []Reminder) {
	kept := make(map[string]struct{}, len(items))
	for _, r := range items {
		kept[r.ID] = struct{}{}
	}
	for _, r := range s.items {
		if _, ok := kept[r.ID]; !ok {
			s.retired[r.ID] = struct{}{}
		}
	}
	s.items = items
	for _, r := range items {
		if r.CreatedAt.After(s.lastCreated) {
			s.lastCreated = r.CreatedAt
		}
	}
}

// Add validates r, assigns ID and CreatedAt when omitted, appends it to the
// collection and persists. It returns the stored reminder.
func (s *Store) Add(ctx context.Context, r Reminder) (Reminder, error) {
	if err := r.validate(); err != nil {
		return Reminder{}, err
	}

	s.mu.Lock()
	if r.ID == "" {
		r.ID = s.newID()
	} else if s.indexLocked(r.ID) >= 0 {
		s.mu.Unlock()
		return Reminder{}, &ValidationError{Field: "id", Reason: "is already in use"}
	} else if _, gone := s.retired[r.ID]; gone {
		s.mu.Unlock()
		return Reminder{}, &ValidationError{Field: "id", Reason: "belonged to a deleted reminder"}
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.nextCreatedAtLocked()
	} else {
		r.CreatedAt = r.CreatedAt.Truncate(time.Millisecond)
		if r.CreatedAt.After(s.lastCreated) {
			s.lastCreated = r.CreatedAt
		}
	}
	s.items = append(s.items, r)
	perr := s.persistLocked(ctx)
	s.mu.Unlock()

	s.reportPersist(perr)
	s.logger.Debug("reminder added", "store", s.name, "id", r.ID)
	s.notify(Event{Type: EventCreate, ID: r.ID, Unsaved: perr != nil})
	return r, nil
}

// Update replaces every mutable field of the reminder with the same ID.
// ID and CreatedAt are preserved from the existing record.
func (s *Store) Update(ctx context.Context, r Reminder) error {
	if r.ID == "" {
		return &ValidationError{Field: "id", Reason: "is required"}
	}
	if err := r.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	i := s.indexLocked(r.ID)
	if i < 0 {
		s.mu.Unlock()
		return &NotFoundError{ID: r.ID}
	}
	r.CreatedAt = s.items[i].CreatedAt
	s.items[i] = r
	perr := s.persistLocked(ctx)
	s.mu.Unlock()

	s.reportPersist(perr)
	s.notify(Event{Type: EventModify, ID: r.ID, Unsaved: perr != nil})
	return nil
}

// Delete removes the reminder with the given ID. Deleting an absent ID is a
// no-op: another context may legitimately have removed it first.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	s.retired[id] = struct{}{}
	perr := s.persistLocked(ctx)
	s.mu.Unlock()

	s.reportPersist(perr)
	s.notify(Event{Type: EventDelete, ID: id, Unsaved: perr != nil})
	return nil
}

// ToggleComplete flips the Completed flag of the reminder with the given ID.
func (s *Store) ToggleComplete(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return &NotFoundError{ID: id}
	}
	s.items[i].Completed = !s.items[i].Completed
	perr := s.persistLocked(ctx)
	s.mu.Unlock()

	s.reportPersist(perr)
	s.notify(Event{Type: EventModify, ID: id, Unsaved: perr != nil})
	return nil
}

// Snapshot returns a point-in-time copy of the collection in storage order.
// Mutating the returned slice does not affect the store.
func (s *Store) Snapshot() []Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Reminder, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the reminder with the given ID.
func (s *Store) Get(id string) (Reminder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexLocked(id); i >= 0 {
		return s.items[i], true
	}
	return Reminder{}, false
}

// Len returns the number of reminders in the collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Subscribe registers fn for change notifications. Listeners run
// synchronously, in subscription order, after the change is persisted.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subMu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) notify(e Event) {
	e.Key = s.key
	e.Origin = s.name
	e.Timestamp = s.now().Unix()

	s.subMu.Lock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(e)
	}
}

func (s *Store) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) nextCreatedAtLocked() time.Time {
	t := s.now().Truncate(time.Millisecond)
	if !t.After(s.lastCreated) {
		t = s.lastCreated.Add(time.Millisecond)
	}
	s.lastCreated = t
	return t
}

// persistLocked writes the entire collection, retrying once.
func (s *Store) persistLocked(ctx context.Context) error {
	data, err := EncodeCollection(s.items)
	if err != nil {
		return &PersistenceError{Op: "write", Key: s.key, Err: err}
	}

	write := func() error { return s.storage.Write(ctx, s.key, data) }
	retry := backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 1)
	err = backoff.RetryNotify(write, retry, func(err error, _ time.Duration) {
		s.logger.Warn("write failed, retrying", "store", s.name, "key", s.key, "error", err)
	})
	if err != nil {
		return &PersistenceError{Op: "write", Key: s.key, Err: err}
	}
	s.writes++
	s.lastErr = nil
	return nil
}

func (s *Store) reportPersist(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()

	s.logger.Error("reminders not persisted, keeping in-memory changes", "store", s.name, "key", s.key, "error", err)
	if s.onPersistError != nil {
		s.onPersistError(err)
	}
}
