// Package sqlite provides a core.Storage backed by a single SQLite table.
//
// Several processes may open the same database file; each Storage gets its
// own writer identity so that Watch only reports other writers' changes.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Tanya2303/Edvora/pkg/core"
)

// DefaultPollInterval is how often Watch checks for foreign writes.
const DefaultPollInterval = 250 * time.Millisecond

// Storage implements core.Storage on a key/value table.
type Storage struct {
	db     *sql.DB
	path   string
	writer string
	poll   time.Duration
	logger *slog.Logger

	mu       sync.Mutex
	writes   int
	watchers int
}

// Option configures a Storage.
type Option func(*Storage)

// WithPollInterval sets how often Watch polls for changes.
func WithPollInterval(d time.Duration) Option {
	return func(s *Storage) {
		if d > 0 {
			s.poll = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Storage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWriterID overrides the random writer identity.
func WithWriterID(id string) Option {
	return func(s *Storage) {
		if id != "" {
			s.writer = id
		}
	}
}

// Open opens (or creates) the database at path with WAL journaling.
func Open(path string, opts ...Option) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Storage{
		db:     db,
		path:   path,
		writer: uuid.NewString(),
		poll:   DefaultPollInterval,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Initialize creates the table if needed.
func (s *Storage) Initialize(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT    PRIMARY KEY,
			value      BLOB    NOT NULL,
			writer     TEXT    NOT NULL,
			rev        INTEGER NOT NULL DEFAULT 1,
			updated_at TEXT    NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Read implements core.Storage.
func (s *Storage) Read(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Write implements core.Storage. The row is replaced in a single statement.
func (s *Storage) Write(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, writer, rev, updated_at) VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			writer     = excluded.writer,
			rev        = kv.rev + 1,
			updated_at = excluded.updated_at
	`, key, data, s.writer, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	s.mu.Lock()
	s.writes++
	s.mu.Unlock()
	return nil
}

type revision struct {
	rev    int64
	writer string
}

func (s *Storage) revisions(ctx context.Context) (map[string]revision, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, rev, writer FROM kv`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]revision)
	for rows.Next() {
		var key string
		var r revision
		if err := rows.Scan(&key, &r.rev, &r.writer); err != nil {
			return nil, err
		}
		out[key] = r
	}
	return out, rows.Err()
}

// Watch implements core.Watchable by polling row revisions. A change is
// reported when the revision of a matching key moved and its last writer is
// not this Storage.
func (s *Storage) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}
	seen, err := s.revisions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read revisions: %w", err)
	}

	events := make(chan core.Event)
	s.setWatching(1)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer s.setWatching(-1)

		ticker := time.NewTicker(s.poll)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}

			current, err := s.revisions(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				s.logger.Warn("failed to poll revisions", "error", err)
				continue
			}

			for key, r := range current {
				if prev, ok := seen[key]; ok && prev.rev == r.rev {
					continue
				}
				if r.writer == s.writer {
					continue
				}
				if ok, _ := doublestar.Match(pattern, key); !ok {
					continue
				}
				select {
				case events <- core.Event{Type: core.EventExternal, Key: key, Origin: r.writer, Timestamp: time.Now().Unix()}:
				case <-ctx.Done():
					return nil
				}
			}
			seen = current
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("sqlite watcher panic", "error", err)
	}))

	return events, nil
}

func (s *Storage) setWatching(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers += delta
}

// StorageState exposes internal state for observability.
type StorageState struct {
	Path     string `json:"path"`
	Writer   string `json:"writer"`
	Writes   int    `json:"writes"`
	Watchers int    `json:"watchers"`
	Poll     string `json:"poll_interval"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StorageState{
		Path:     s.path,
		Writer:   s.writer,
		Writes:   s.writes,
		Watchers: s.watchers,
		Poll:     s.poll.String(),
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "sqlite-storage"
}

var (
	_ core.Storage                 = (*Storage)(nil)
	_ core.Watchable               = (*Storage)(nil)
	_ core.Initializer             = (*Storage)(nil)
	_ introspection.Introspectable = (*Storage)(nil)
	_ introspection.Component      = (*Storage)(nil)
)
