package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tanya2303/Edvora/pkg/adapters/sqlite"
	"github.com/Tanya2303/Edvora/pkg/core"
)

func open(t *testing.T, path string) *sqlite.Storage {
	t.Helper()
	s, err := sqlite.Open(path, sqlite.WithPollInterval(20*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestStorage_ReadWrite(t *testing.T) {
	s := open(t, filepath.Join(t.TempDir(), "edvora.db"))
	ctx := context.Background()

	_, err := s.Read(ctx, "reminders")
	assert.ErrorIs(t, err, core.ErrNotExist)

	require.NoError(t, s.Write(ctx, "reminders", []byte("[]")))
	require.NoError(t, s.Write(ctx, "reminders", []byte(`[{"id":"1"}]`)))

	got, err := s.Read(ctx, "reminders")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	state := s.State().(sqlite.StorageState)
	assert.Equal(t, 2, state.Writes)
	assert.Equal(t, "sqlite-storage", s.ComponentType())
}

func TestStorage_SharedBetweenHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "edvora.db")
	a, b := open(t, path), open(t, path)
	ctx := context.Background()

	due, err := core.ParseDueDate("2025-01-01")
	require.NoError(t, err)

	writer := core.NewStore(a)
	require.NoError(t, writer.Initialize(ctx))
	_, err = writer.Add(ctx, core.Reminder{Title: "Essay", Subject: "English", DueDate: due})
	require.NoError(t, err)

	reader := core.NewStore(b)
	require.NoError(t, reader.Initialize(ctx))
	want, got := writer.Snapshot(), reader.Snapshot()
	require.Len(t, got, 1)
	assert.True(t, want[0].Equal(got[0]))
}

func TestStorage_Watch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edvora.db")
	self, other := open(t, path), open(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := self.Watch(ctx, "reminders")
	require.NoError(t, err)

	require.NoError(t, self.Write(ctx, "reminders", []byte("[]")))
	select {
	case e := <-events:
		t.Fatalf("own write reported: %v", e)
	case <-time.After(150 * time.Millisecond):
	}

	require.NoError(t, other.Write(ctx, "reminders", []byte("[]")))
	select {
	case e := <-events:
		assert.Equal(t, core.EventExternal, e.Type)
		assert.Equal(t, "reminders", e.Key)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for external event")
	}

	require.NoError(t, other.Write(ctx, "settings", []byte("{}")))
	select {
	case e := <-events:
		t.Fatalf("unmatched key reported: %v", e)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}
