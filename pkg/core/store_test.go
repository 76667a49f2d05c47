package core_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tanya2303/Edvora/pkg/core"
)

// MockStorage implements core.Storage in memory with failure injection.
type MockStorage struct {
	mu        sync.Mutex
	data      map[string][]byte
	writes    int
	failNext  int
	readErr   error
	writeHook func(key string, data []byte)
}

func NewMockStorage() *MockStorage {
	return &MockStorage{data: make(map[string][]byte)}
}

func (m *MockStorage) Read(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	d, ok := m.data[key]
	if !ok {
		return nil, core.ErrNotExist
	}
	return append([]byte(nil), d...), nil
}

func (m *MockStorage) Write(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	if m.failNext > 0 {
		m.failNext--
		m.mu.Unlock()
		return errors.New("disk full")
	}
	m.data[key] = append([]byte(nil), data...)
	m.writes++
	hook := m.writeHook
	m.mu.Unlock()

	if hook != nil {
		hook(key, data)
	}
	return nil
}

func (m *MockStorage) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func newStore(t *testing.T, storage core.Storage, opts ...core.StoreOption) *core.Store {
	t.Helper()
	s := core.NewStore(storage, opts...)
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func essay(t *testing.T) core.Reminder {
	t.Helper()
	due, err := core.ParseDueDate("2025-01-10T09:00")
	require.NoError(t, err)
	return core.Reminder{
		Title:    "Essay",
		Subject:  "English",
		DueDate:  due,
		Priority: core.PriorityHigh,
	}
}

func TestStore_AddAssignsIdentity(t *testing.T) {
	storage := NewMockStorage()
	s := newStore(t, storage)
	ctx := context.Background()

	added, err := s.Add(ctx, essay(t))
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.False(t, added.CreatedAt.IsZero())
	assert.False(t, added.Completed)

	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.True(t, snap[0].Equal(added))
	assert.Equal(t, "Essay", snap[0].Title)
	assert.Equal(t, core.PriorityHigh, snap[0].Priority)

	second, err := s.Add(ctx, essay(t))
	require.NoError(t, err)
	assert.NotEqual(t, added.ID, second.ID)
	assert.Equal(t, 2, storage.Writes())
}

func TestStore_AddDefaults(t *testing.T) {
	s := newStore(t, NewMockStorage())

	r := essay(t)
	r.Priority = ""
	r.Title = "  Lab report  "
	added, err := s.Add(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, core.PriorityMedium, added.Priority)
	assert.Equal(t, "Lab report", added.Title)
}

func TestStore_AddValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *core.Reminder)
		field  string
	}{
		{"blank title", func(r *core.Reminder) { r.Title = "   " }, "title"},
		{"missing subject", func(r *core.Reminder) { r.Subject = "" }, "subject"},
		{"missing due date", func(r *core.Reminder) { r.DueDate = time.Time{} }, "dueDate"},
		{"unknown priority", func(r *core.Reminder) { r.Priority = "urgent" }, "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewMockStorage()
			s := newStore(t, storage)

			r := essay(t)
			tt.mutate(&r)
			_, err := s.Add(context.Background(), r)

			var verr *core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorIs(t, err, core.ErrValidation)
			assert.Empty(t, s.Snapshot())
			assert.Zero(t, storage.Writes())
		})
	}
}

func TestStore_AddRejectsDuplicateID(t *testing.T) {
	s := newStore(t, NewMockStorage())
	ctx := context.Background()

	r := essay(t)
	r.ID = "fixed"
	_, err := s.Add(ctx, r)
	require.NoError(t, err)

	_, err = s.Add(ctx, r)
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.Len(t, s.Snapshot(), 1)
}

func TestStore_DeletedIDsAreNotReused(t *testing.T) {
	ctx := context.Background()

	t.Run("After Delete", func(t *testing.T) {
		s := newStore(t, NewMockStorage())
		r := essay(t)
		r.ID = "fixed"
		_, err := s.Add(ctx, r)
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, r.ID))

		_, err = s.Add(ctx, r)
		var verr *core.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "id", verr.Field)
		assert.Empty(t, s.Snapshot())
	})

	t.Run("After Reload Drops It", func(t *testing.T) {
		storage := NewMockStorage()
		s := newStore(t, storage)
		other := newStore(t, storage)

		r := essay(t)
		r.ID = "fixed"
		_, err := s.Add(ctx, r)
		require.NoError(t, err)

		require.NoError(t, other.Reload(ctx))
		require.NoError(t, other.Delete(ctx, r.ID))
		require.NoError(t, s.Reload(ctx))

		_, err = s.Add(ctx, r)
		assert.ErrorIs(t, err, core.ErrValidation)
	})
}

func TestStore_ParseDueDateRejectsGarbage(t *testing.T) {
	_, err := core.ParseDueDate("next tuesday")
	assert.ErrorIs(t, err, core.ErrValidation)

	_, err = core.ParseDueDate("")
	assert.ErrorIs(t, err, core.ErrValidation)

	got, err := core.ParseDueDate("2025-01-10T09:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-10T09:00", core.FormatDueDate(got))
}

func TestStore_MissingIDs(t *testing.T) {
	storage := NewMockStorage()
	s := newStore(t, storage)
	ctx := context.Background()

	_, err := s.Add(ctx, essay(t))
	require.NoError(t, err)
	before := s.Snapshot()

	ghost := essay(t)
	ghost.ID = "ghost"
	err = s.Update(ctx, ghost)
	var nf *core.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "ghost", nf.ID)

	assert.ErrorIs(t, s.ToggleComplete(ctx, "ghost"), core.ErrNotFound)

	require.NoError(t, s.Delete(ctx, "ghost"))
	require.NoError(t, s.Delete(ctx, "ghost"))

	after := s.Snapshot()
	require.Len(t, after, 1)
	assert.True(t, before[0].Equal(after[0]))
	assert.Equal(t, 1, storage.Writes(), "failed or no-op mutations must not write")
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	s := newStore(t, NewMockStorage())
	ctx := context.Background()

	a, err := s.Add(ctx, essay(t))
	require.NoError(t, err)
	b, err := s.Add(ctx, essay(t))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, a.ID))
	once := s.Snapshot()
	require.NoError(t, s.Delete(ctx, a.ID))
	twice := s.Snapshot()

	require.Len(t, once, 1)
	require.Len(t, twice, 1)
	assert.Equal(t, b.ID, twice[0].ID)
}

func TestStore_UpdatePreservesIdentity(t *testing.T) {
	s := newStore(t, NewMockStorage())
	ctx := context.Background()

	added, err := s.Add(ctx, essay(t))
	require.NoError(t, err)

	edited := added
	edited.Title = "Essay draft 2"
	edited.Notes = "cite three sources"
	edited.Priority = core.PriorityLow
	edited.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Update(ctx, edited))

	got, ok := s.Get(added.ID)
	require.True(t, ok)
	assert.Equal(t, "Essay draft 2", got.Title)
	assert.Equal(t, "cite three sources", got.Notes)
	assert.Equal(t, core.PriorityLow, got.Priority)
	assert.True(t, got.CreatedAt.Equal(added.CreatedAt))

	edited.Title = ""
	assert.ErrorIs(t, s.Update(ctx, edited), core.ErrValidation)
	got, _ = s.Get(added.ID)
	assert.Equal(t, "Essay draft 2", got.Title)
}

func TestStore_ToggleTwiceRestores(t *testing.T) {
	s := newStore(t, NewMockStorage())
	ctx := context.Background()

	added, err := s.Add(ctx, essay(t))
	require.NoError(t, err)

	require.NoError(t, s.ToggleComplete(ctx, added.ID))
	got, _ := s.Get(added.ID)
	assert.True(t, got.Completed)

	require.NoError(t, s.ToggleComplete(ctx, added.ID))
	got, _ = s.Get(added.ID)
	assert.False(t, got.Completed)
}

func TestStore_RoundTrip(t *testing.T) {
	storage := NewMockStorage()
	s := newStore(t, storage)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		r := essay(t)
		r.Title = fmt.Sprintf("Essay %d", i)
		r.Notes = "notes"
		_, err := s.Add(ctx, r)
		require.NoError(t, err)
	}
	require.NoError(t, s.ToggleComplete(ctx, s.Snapshot()[1].ID))

	reloaded := newStore(t, storage)
	want, got := s.Snapshot(), reloaded.Snapshot()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "element %d differs: %+v vs %+v", i, want[i], got[i])
	}
}

func TestStore_InitializeFailSoft(t *testing.T) {
	t.Run("Malformed Bytes", func(t *testing.T) {
		storage := NewMockStorage()
		storage.data[core.DefaultKey] = []byte("{not json")

		s := newStore(t, storage)
		assert.Empty(t, s.Snapshot())
		assert.Equal(t, "{not json", string(storage.data[core.DefaultKey]), "corrupt bytes are not repaired on load")
	})

	t.Run("Incompatible Shape", func(t *testing.T) {
		storage := NewMockStorage()
		storage.data[core.DefaultKey] = []byte(`{"reminders": []}`)

		s := newStore(t, storage)
		assert.Empty(t, s.Snapshot())
	})

	t.Run("Read Error", func(t *testing.T) {
		storage := NewMockStorage()
		storage.readErr = errors.New("permission denied")

		s := core.NewStore(storage)
		err := s.Initialize(context.Background())
		assert.ErrorIs(t, err, core.ErrPersistence)
		assert.Empty(t, s.Snapshot())

		storage.readErr = nil
		_, err = s.Add(context.Background(), essay(t))
		assert.NoError(t, err, "store stays usable after a failed load")
	})

	t.Run("Original Client Format", func(t *testing.T) {
		storage := NewMockStorage()
		storage.data[core.DefaultKey] = []byte(`[{"id":"1736499600000","title":"Essay","subject":"English",` +
			`"dueDate":"2025-01-10T09:00","priority":"high","notes":"","completed":false,` +
			`"createdAt":"2025-01-01T08:00:00.000Z"}]`)

		s := newStore(t, storage)
		snap := s.Snapshot()
		require.Len(t, snap, 1)
		assert.Equal(t, "1736499600000", snap[0].ID)
		assert.Equal(t, "2025-01-10T09:00", core.FormatDueDate(snap[0].DueDate))
	})
}

func TestStore_PersistBeforeNotify(t *testing.T) {
	storage := NewMockStorage()
	s := newStore(t, storage)
	ctx := context.Background()

	var events []core.Event
	s.Subscribe(func(e core.Event) {
		data, err := storage.Read(ctx, core.DefaultKey)
		require.NoError(t, err)
		persisted, err := core.DecodeCollection(data)
		require.NoError(t, err)
		assert.Len(t, persisted, len(s.Snapshot()), "notification observed data not yet durable")
		events = append(events, e)
	})

	added, err := s.Add(ctx, essay(t))
	require.NoError(t, err)
	require.NoError(t, s.ToggleComplete(ctx, added.ID))
	require.NoError(t, s.Delete(ctx, added.ID))

	require.Len(t, events, 3)
	assert.Equal(t, core.EventCreate, events[0].Type)
	assert.Equal(t, core.EventModify, events[1].Type)
	assert.Equal(t, core.EventDelete, events[2].Type)
	assert.Equal(t, added.ID, events[2].ID)
	assert.Equal(t, core.DefaultKey, events[0].Key)
	assert.Equal(t, 3, storage.Writes())
}

func TestStore_PersistFailureKeepsMutation(t *testing.T) {
	t.Run("Retry Succeeds", func(t *testing.T) {
		storage := NewMockStorage()
		var reported []error
		s := newStore(t, storage, core.WithPersistErrorHandler(func(err error) { reported = append(reported, err) }))

		var events []core.Event
		s.Subscribe(func(e core.Event) { events = append(events, e) })

		storage.failNext = 1
		_, err := s.Add(context.Background(), essay(t))
		require.NoError(t, err)
		assert.Empty(t, reported)
		assert.Equal(t, 1, storage.Writes())
		require.Len(t, events, 1)
		assert.False(t, events[0].Unsaved)
	})

	t.Run("Retry Fails", func(t *testing.T) {
		storage := NewMockStorage()
		var reported []error
		s := newStore(t, storage, core.WithPersistErrorHandler(func(err error) { reported = append(reported, err) }))

		var events []core.Event
		s.Subscribe(func(e core.Event) { events = append(events, e) })

		storage.failNext = 2
		added, err := s.Add(context.Background(), essay(t))
		require.NoError(t, err)

		require.Len(t, reported, 1)
		assert.ErrorIs(t, reported[0], core.ErrPersistence)
		_, ok := s.Get(added.ID)
		assert.True(t, ok, "in-memory state stays authoritative")
		require.Len(t, events, 1)
		assert.True(t, events[0].Unsaved)

		state := s.State().(core.StoreState)
		assert.NotEmpty(t, state.LastPersistError)
	})
}

func TestStore_Unsubscribe(t *testing.T) {
	s := newStore(t, NewMockStorage())
	ctx := context.Background()

	var a, b int
	unsubA := s.Subscribe(func(core.Event) { a++ })
	s.Subscribe(func(core.Event) { b++ })

	_, err := s.Add(ctx, essay(t))
	require.NoError(t, err)
	unsubA()
	unsubA()
	_, err = s.Add(ctx, essay(t))
	require.NoError(t, err)

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestStore_CreatedAtIsMonotonic(t *testing.T) {
	frozen := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := newStore(t, NewMockStorage(), core.WithClock(func() time.Time { return frozen }))
	ctx := context.Background()

	var last time.Time
	for i := 0; i < 5; i++ {
		r, err := s.Add(ctx, essay(t))
		require.NoError(t, err)
		assert.True(t, r.CreatedAt.After(last), "createdAt must increase")
		last = r.CreatedAt
	}
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := newStore(t, NewMockStorage())
	_, err := s.Add(context.Background(), essay(t))
	require.NoError(t, err)

	snap := s.Snapshot()
	snap[0].Title = "tampered"
	assert.Equal(t, "Essay", s.Snapshot()[0].Title)
}

func TestStore_ReloadEmitsEvent(t *testing.T) {
	storage := NewMockStorage()
	writer := newStore(t, storage, core.WithName("writer"))
	reader := newStore(t, storage, core.WithName("reader"))
	ctx := context.Background()

	var got []core.Event
	reader.Subscribe(func(e core.Event) { got = append(got, e) })

	_, err := writer.Add(ctx, essay(t))
	require.NoError(t, err)
	assert.Empty(t, reader.Snapshot())

	require.NoError(t, reader.Reload(ctx))
	assert.Len(t, reader.Snapshot(), 1)
	require.Len(t, got, 1)
	assert.Equal(t, core.EventReload, got[0].Type)
	assert.Equal(t, "reader", got[0].Origin)

	storage.readErr = errors.New("io")
	assert.ErrorIs(t, reader.Reload(ctx), core.ErrPersistence)
	assert.Len(t, reader.Snapshot(), 1, "failed reload keeps the current collection")
}
