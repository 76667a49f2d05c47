package core

import "context"

// Storage is the persistence adapter: a durable key/value byte store.
// Adhering to this interface keeps the Store independent of the underlying
// mechanism (files, SQLite, an in-process host).
type Storage interface {
	// Read returns the bytes stored under key, or ErrNotExist if the key was never written.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the bytes stored under key. Implementations must make the
	// new value visible to other contexts atomically.
	Write(ctx context.Context, key string, data []byte) error
}

// Watchable defines an interface for storages that report modifications made
// by other execution contexts.
type Watchable interface {
	// Watch emits an EventExternal for every key matching pattern that another
	// context modifies. The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Initializer is implemented by storages that need setup before first use
// (create directories, schema migration).
type Initializer interface {
	Initialize(ctx context.Context) error
}
