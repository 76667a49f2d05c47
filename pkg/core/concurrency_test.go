package core_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tanya2303/Edvora/pkg/core"
)

// TestStore_ConcurrentMutations hammers one Store from many goroutines.
// Every mutation must be applied and the last write must hold all of them.
func TestStore_ConcurrentMutations(t *testing.T) {
	storage := NewMockStorage()
	store := core.NewStore(storage)
	require.NoError(t, store.Initialize(context.Background()))

	const workers, perWorker = 8, 25
	due := time.Now().Add(time.Hour)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen []core.Event
	)
	store.Subscribe(func(e core.Event) {
		mu.Lock()
		seen = append(seen, e)
		mu.Unlock()
	})

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				r, err := store.Add(context.Background(), core.Reminder{
					Title:   fmt.Sprintf("w%d-%d", w, i),
					Subject: "Stress",
					DueDate: due,
				})
				if !assert.NoError(t, err) {
					return
				}
				if i%2 == 0 {
					assert.NoError(t, store.ToggleComplete(context.Background(), r.ID))
				}
			}
		}(w)
	}
	wg.Wait()

	snap := store.Snapshot()
	require.Len(t, snap, workers*perWorker)

	stored, err := core.DecodeCollection(storage.data[core.DefaultKey])
	require.NoError(t, err)
	require.Len(t, stored, len(snap))
	for i := range snap {
		assert.True(t, snap[i].Equal(stored[i]), "stored record %d differs", i)
	}

	// CreatedAt stays strictly increasing in collection order.
	for i := 1; i < len(snap); i++ {
		assert.True(t, snap[i].CreatedAt.After(snap[i-1].CreatedAt))
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, workers*perWorker+workers*((perWorker+1)/2))
}
