package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tanya2303/Edvora/pkg/adapters/lifecycle"
	"github.com/Tanya2303/Edvora/pkg/adapters/memory"
	"github.com/Tanya2303/Edvora/pkg/core"
)

func TestSource_ForwardsEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan core.Event, 1)
	src := lifecycle.NewSource(in)
	require.NoError(t, src.Start(ctx))

	in <- core.Event{Type: core.EventExternal, Key: "reminders"}
	select {
	case e := <-src.Events():
		assert.Equal(t, "EXTERNAL reminders", e.String())
	case <-time.After(time.Second):
		t.Fatal("event not forwarded")
	}

	close(in)
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-src.Events():
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestStoreSource(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := core.NewStore(memory.NewHost().Open("a"))
	require.NoError(t, store.Initialize(ctx))

	src := lifecycle.NewStoreSource(store)
	require.NoError(t, src.Start(ctx))

	due, err := core.ParseDueDate("2025-01-10")
	require.NoError(t, err)
	added, err := store.Add(ctx, core.Reminder{Title: "Essay", Subject: "English", DueDate: due})
	require.NoError(t, err)

	select {
	case e := <-src.Events():
		assert.Equal(t, "CREATE reminders/"+added.ID, e.String())
	case <-time.After(time.Second):
		t.Fatal("store event not forwarded")
	}
}
