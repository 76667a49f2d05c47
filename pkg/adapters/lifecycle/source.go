// Package lifecycle exposes reminder change events as lifecycle sources.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/Tanya2303/Edvora/pkg/core"
)

// storeBuffer bounds events queued between a Store listener and the source.
const storeBuffer = 64

type eventSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits reminder events read from
// events (for instance a storage Watch channel).
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &eventSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *eventSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *eventSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

type storeSource struct {
	*eventSource
	store *core.Store
	in    chan core.Event
}

// NewStoreSource creates a lifecycle.Source that emits every notification
// of store, including reloads. Listeners run synchronously inside the Store,
// so events are dropped rather than block a mutation when the consumer falls
// behind by more than a small buffer.
func NewStoreSource(store *core.Store) lifecycle.Source {
	in := make(chan core.Event, storeBuffer)
	return &storeSource{
		eventSource: &eventSource{events: in, out: make(chan lifecycle.Event)},
		store:       store,
		in:          in,
	}
}

func (s *storeSource) Start(ctx context.Context) error {
	unsub := s.store.Subscribe(func(e core.Event) {
		select {
		case s.in <- e:
		default:
		}
	})
	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		unsub()
		return nil
	})
	return s.eventSource.Start(ctx)
}
