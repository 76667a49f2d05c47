package platform

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Tanya2303/Edvora/pkg/adapters/fs"
	"github.com/Tanya2303/Edvora/pkg/adapters/memory"
	"github.com/Tanya2303/Edvora/pkg/adapters/sqlite"
	"github.com/Tanya2303/Edvora/pkg/core"
)

// SQLiteFile is the database file created inside the data directory.
const SQLiteFile = "edvora.db"

// Open prepares the storage adapter selected by the options.
// The 'uri' argument is adapter-specific: the data directory for "fs" and
// "sqlite", and the handle name for "memory".
func Open(uri string, opts ...Option) (core.Storage, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return open(uri, o)
}

func open(uri string, o *options) (core.Storage, error) {
	if o.storage != nil {
		return o.storage, nil
	}

	var (
		storage core.Storage
		err     error
	)
	switch o.adapter {
	case "fs":
		storage = openFS(uri, o)
	case "sqlite":
		storage, err = openSQLite(uri, o)
	case "memory":
		storage = openMemory(uri, o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, err
	}

	if in, ok := storage.(core.Initializer); ok {
		if err := in.Initialize(context.Background()); err != nil {
			return nil, err
		}
	}
	return storage, nil
}

// resolvePath applies dev safety to a user supplied data directory.
func resolvePath(path string, o *options) string {
	tempDir, _ := o.config["temp_dir"].(bool)

	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	useTemp := tempDir || (IsDevRun() && devSafety)
	resolved := ResolveDataPath(path, useTemp)

	if o.logger != nil {
		switch {
		case useTemp && resolved != filepath.Clean(path):
			o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolved)
		case IsDevRun() && !devSafety:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolved)
		}
	}
	return resolved
}

func openFS(path string, o *options) *fs.Storage {
	mustExist, _ := o.config["must_exist"].(bool)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	return fs.NewStorage(fs.Config{
		Path:         resolvePath(path, o),
		MustExist:    mustExist,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	})
}

func openSQLite(path string, o *options) (*sqlite.Storage, error) {
	sqlOpts := []sqlite.Option{sqlite.WithLogger(o.logger)}
	if d, ok := o.config["poll_interval"].(time.Duration); ok {
		sqlOpts = append(sqlOpts, sqlite.WithPollInterval(d))
	}
	return sqlite.Open(filepath.Join(resolvePath(path, o), SQLiteFile), sqlOpts...)
}

func openMemory(name string, o *options) *memory.Storage {
	host := o.host
	if host == nil {
		host = memory.NewHost()
	}
	if name == "" {
		name = "memory"
	}
	return host.Open(name)
}
