package fs

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/aretw0/lifecycle/pkg/core/supervisor"
	"github.com/aretw0/lifecycle/pkg/core/worker"

	"github.com/Tanya2303/Edvora/pkg/core"
)

// Ext is the file extension of every record.
const Ext = ".json"

// Storage implements core.Storage with one JSON file per key.
type Storage struct {
	Path   string
	config Config

	mu            sync.RWMutex
	written       map[string][sha256.Size]byte
	watcherActive bool
	watchers      int
	lastWrite     *time.Time
}

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path      string
	MustExist bool
	Perm      os.FileMode // defaults to 0644
	Logger    *slog.Logger

	// ErrorHandler receives watcher errors that are not fatal to the watch.
	ErrorHandler func(error)
}

// NewStorage creates a new filesystem-backed storage.
func NewStorage(config Config) *Storage {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.Perm == 0 {
		config.Perm = 0644
	}
	return &Storage{
		Path:    config.Path,
		config:  config,
		written: make(map[string][sha256.Size]byte),
	}
}

// Initialize creates the data directory unless MustExist is set.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.config.MustExist {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data path does not exist: %s", s.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat data path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", s.Path)
		}
		s.sweep()
		return nil
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	s.sweep()
	return nil
}

// sweep removes temp files left behind by writers that died mid-write.
func (s *Storage) sweep() {
	n, err := sweepTempFiles(s.Path, staleTempAge)
	if err != nil {
		s.config.Logger.Warn("failed to remove stale temp files", "path", s.Path, "error", err)
	}
	if n > 0 {
		s.config.Logger.Info("removed stale temp files", "path", s.Path, "count", n)
	}
}

// Read implements core.Storage.
func (s *Storage) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, core.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Write implements core.Storage. The file is replaced atomically, so other
// processes never observe a partially written collection.
func (s *Storage) Write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}

	// Record the checksum first so the watcher never reports this write.
	s.mu.Lock()
	prev, hadPrev := s.written[key]
	s.written[key] = sha256.Sum256(data)
	s.mu.Unlock()

	if err := writeFileAtomic(path, data, s.config.Perm); err != nil {
		s.mu.Lock()
		if hadPrev {
			s.written[key] = prev
		} else {
			delete(s.written, key)
		}
		s.mu.Unlock()
		return err
	}

	now := time.Now()
	s.mu.Lock()
	s.lastWrite = &now
	s.mu.Unlock()

	s.config.Logger.Debug("record written", "key", key, "bytes", len(data))
	return nil
}

// Watch implements core.Watchable. It reports modifications of records
// whose key matches pattern (doublestar syntax) made by anyone but this
// Storage. The watcher runs under a supervisor that restarts it on failure;
// the channel is closed once ctx is cancelled and the watcher has stopped.
func (s *Storage) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if err := validatePattern(pattern); err != nil {
		return nil, err
	}
	if _, err := os.Stat(s.Path); err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	events := make(chan core.Event)
	spec := supervisor.Spec{
		Name: "fs-watcher",
		Type: string(worker.TypeGoroutine),
		Factory: func() (worker.Worker, error) {
			return newWatchWorker(s, pattern, events), nil
		},
		Backoff: supervisor.Backoff{
			InitialInterval: 50 * time.Millisecond,
			MaxInterval:     2 * time.Second,
			Multiplier:      2,
			ResetDuration:   30 * time.Second,
			MaxRestarts:     5,
			MaxDuration:     time.Minute,
		},
		RestartPolicy: supervisor.RestartOnFailure,
	}

	sup := supervisor.New("fs-watch-"+pattern, supervisor.StrategyOneForOne, spec)
	if err := sup.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start watcher: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := sup.Stop(stopCtx)
		close(events)
		return err
	}, lifecycle.WithErrorHandler(func(err error) {
		s.config.Logger.Error("failed to stop watcher", "error", err)
	}))

	return events, nil
}

func (s *Storage) pathFor(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid record key %q", key)
	}
	return filepath.Join(s.Path, key+Ext), nil
}

// keyFor maps a file path back to its record key.
func (s *Storage) keyFor(path string) (string, bool) {
	name := filepath.Base(path)
	if filepath.Dir(path) != filepath.Clean(s.Path) {
		return "", false
	}
	if strings.HasPrefix(name, TempFilePrefix) || !strings.HasSuffix(name, Ext) {
		return "", false
	}
	return strings.TrimSuffix(name, Ext), true
}

// consumeOwnWrite reports whether data is exactly what this Storage last
// wrote under key. The checksum is forgotten either way: it suppresses at
// most one watcher event, so another writer later producing the same bytes
// is still reported.
func (s *Storage) consumeOwnWrite(key string, data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum, ok := s.written[key]
	delete(s.written, key)
	return ok && data != nil && sum == sha256.Sum256(data)
}

func (s *Storage) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if active {
		s.watchers++
	} else if s.watchers > 0 {
		s.watchers--
	}
	s.watcherActive = s.watchers > 0
}

var (
	_ core.Storage     = (*Storage)(nil)
	_ core.Watchable   = (*Storage)(nil)
	_ core.Initializer = (*Storage)(nil)
)
