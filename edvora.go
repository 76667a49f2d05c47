package edvora

import (
	"log/slog"
	"time"

	"github.com/Tanya2303/Edvora/internal/platform"
	"github.com/Tanya2303/Edvora/pkg/adapters/memory"
	"github.com/Tanya2303/Edvora/pkg/core"
)

// --- Types ---

// Instance is one execution context: storage, Store and Bridge.
type Instance = platform.Instance

// Reminder is a public alias for the domain record.
type Reminder = core.Reminder

// ProjectDirName is the directory that holds a project-local store.
const ProjectDirName = platform.ProjectDirName

// --- Configuration ---

// Option defines a functional option for configuring Edvora.
type Option = platform.Option

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithLogger sets the logger for the store, storage and bridge.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStorage allows injecting a custom storage adapter.
func WithStorage(storage core.Storage) Option {
	return platform.WithStorage(storage)
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite", "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithHost shares an in-memory host between instances.
func WithHost(host *memory.Host) Option {
	return platform.WithHost(host)
}

// WithStoreKey sets the record name holding the collection.
func WithStoreKey(key string) Option {
	return platform.WithStoreKey(key)
}

// WithName labels the instance's store in logs and events.
func WithName(name string) Option {
	return platform.WithName(name)
}

// WithPollInterval sets how often the sqlite adapter polls for changes.
func WithPollInterval(d time.Duration) Option {
	return platform.WithPollInterval(d)
}

// WithWatcherErrorHandler registers a callback for non-fatal watcher errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithPersistErrorHandler registers a callback for failed writes.
func WithPersistErrorHandler(fn func(error)) Option {
	return platform.WithPersistErrorHandler(fn)
}

// WithDevSafety controls the temp-dir sandbox used by `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// New opens the storage at uri, loads the collection and attaches a Bridge.
func New(uri string, opts ...Option) (*Instance, error) {
	return platform.New(uri, opts...)
}

// Open prepares a storage adapter without building a Store.
func Open(uri string, opts ...Option) (core.Storage, error) {
	return platform.Open(uri, opts...)
}

// --- Safety & Utils ---

// ResolveDataPath determines the actual data directory based on safety rules.
func ResolveDataPath(userPath string, forceTemp bool) string {
	return platform.ResolveDataPath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// ProjectDataDir returns the nearest project-local ".edvora" directory at or
// above startDir.
func ProjectDataDir(startDir string) (string, bool) {
	return platform.ProjectDataDir(startDir)
}

// FindRoot looks upwards from startDir for a project-local ".edvora" directory.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
