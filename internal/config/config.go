// Package config loads edvora settings from defaults, an optional YAML file
// and EDVORA_ environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides. Nested keys use a double
// underscore: EDVORA_CHAT__DELAY_MIN_MS sets chat.delay_min_ms.
const EnvPrefix = "EDVORA_"

type Config struct {
	DataDir   string      `koanf:"data_dir"`
	Adapter   string      `koanf:"adapter"`
	DevSafety bool        `koanf:"dev_safety"`
	Store     StoreConfig `koanf:"store"`
	User      UserConfig  `koanf:"user"`
	Chat      ChatConfig  `koanf:"chat"`
	UI        UIConfig    `koanf:"ui"`
	Watch     WatchConfig `koanf:"watch"`
}

type StoreConfig struct {
	Key string `koanf:"key"`
}

type UserConfig struct {
	Name string `koanf:"name"`
}

type ChatConfig struct {
	DelayMinMS int `koanf:"delay_min_ms"`
	DelayMaxMS int `koanf:"delay_max_ms"`
	MaxHistory int `koanf:"max_history"`
}

// DelayRange returns the thinking delay bounds.
func (c ChatConfig) DelayRange() (time.Duration, time.Duration) {
	return time.Duration(c.DelayMinMS) * time.Millisecond, time.Duration(c.DelayMaxMS) * time.Millisecond
}

type UIConfig struct {
	ColoredOutput bool `koanf:"colored_output"`
	Markdown      bool `koanf:"markdown"`
}

type WatchConfig struct {
	PollIntervalMS int `koanf:"poll_interval_ms"`
}

// PollInterval returns the sqlite watch interval.
func (w WatchConfig) PollInterval() time.Duration {
	return time.Duration(w.PollIntervalMS) * time.Millisecond
}

// Load reads the configuration. A missing file at configPath is not an error.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = ExpandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.DataDir = ExpandPath(cfg.DataDir)
	cfg.Adapter = strings.ToLower(strings.TrimSpace(cfg.Adapter))

	return &cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func (c *Config) Validate() error {
	switch c.Adapter {
	case AdapterFS, AdapterSQLite, AdapterMemory:
	default:
		return fmt.Errorf("unknown adapter: %s (supported: %s, %s, %s)",
			c.Adapter, AdapterFS, AdapterSQLite, AdapterMemory)
	}

	if c.DataDir == "" && c.Adapter != AdapterMemory {
		return fmt.Errorf("data_dir is required")
	}

	if c.Store.Key == "" || strings.ContainsAny(c.Store.Key, `/\`) {
		return fmt.Errorf("store.key must be a plain name, got %q", c.Store.Key)
	}

	if c.Chat.DelayMinMS < 0 || c.Chat.DelayMaxMS < 0 {
		return fmt.Errorf("chat delays must not be negative")
	}

	if c.Chat.DelayMaxMS < c.Chat.DelayMinMS {
		return fmt.Errorf("chat.delay_max_ms must be >= chat.delay_min_ms")
	}

	if c.Chat.MaxHistory <= 0 {
		return fmt.Errorf("chat.max_history must be positive")
	}

	if c.Watch.PollIntervalMS <= 0 {
		return fmt.Errorf("watch.poll_interval_ms must be positive")
	}

	return nil
}

// ExpandPath resolves a leading "~/" against the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
