package platform

import (
	"log/slog"
	"time"

	"github.com/Tanya2303/Edvora/pkg/adapters/memory"
	"github.com/Tanya2303/Edvora/pkg/core"
)

// options holds the internal configuration for an edvora instance.
type options struct {
	storage core.Storage
	host    *memory.Host
	logger  *slog.Logger
	adapter string
	config  map[string]interface{}
}

// Option defines a functional option for configuring edvora.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
		config:  make(map[string]interface{}),
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithLogger sets the logger for the store, storage and bridge.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStorage allows injecting a custom storage adapter.
// If provided, the named adapter is skipped.
func WithStorage(storage core.Storage) Option {
	return func(o *options) {
		o.storage = storage
	}
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite", "memory").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithHost shares a memory Host between instances opened with the
// "memory" adapter. Each instance gets its own handle.
func WithHost(host *memory.Host) Option {
	return func(o *options) {
		o.host = host
	}
}

// WithStoreKey sets the record name holding the collection.
func WithStoreKey(key string) Option {
	return func(o *options) {
		o.config["store_key"] = key
	}
}

// WithName labels the store (one per execution context) in logs and events.
func WithName(name string) Option {
	return func(o *options) {
		o.config["name"] = name
	}
}

// WithPollInterval sets how often the sqlite adapter polls for changes.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		o.config["poll_interval"] = d
	}
}

// WithWatcherErrorHandler registers a callback for non-fatal errors in the
// file watcher (e.g. permission denied), which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithPersistErrorHandler registers a callback for writes that failed after
// the store's retry.
func WithPersistErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["persist_error_handler"] = fn
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test`. By default (true) the data directory is re-rooted into a
// temporary directory to prevent touching real data.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}
