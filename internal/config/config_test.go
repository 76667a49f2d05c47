package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tanya2303/Edvora/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, config.AdapterFS, cfg.Adapter)
	assert.Equal(t, "reminders", cfg.Store.Key)
	assert.True(t, cfg.DevSafety)
	assert.True(t, filepath.IsAbs(cfg.DataDir) || cfg.DataDir == "~/.edvora")

	lo, hi := cfg.Chat.DelayRange()
	assert.Equal(t, time.Second, lo)
	assert.Equal(t, 3*time.Second, hi)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.PollInterval())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
adapter: sqlite
data_dir: /tmp/edvora-test
user:
  name: Ada
chat:
  delay_min_ms: 0
  delay_max_ms: 10
`), 0644))

	t.Setenv("EDVORA_USER__NAME", "Grace")
	t.Setenv("EDVORA_CHAT__MAX_HISTORY", "7")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, config.AdapterSQLite, cfg.Adapter)
	assert.Equal(t, "/tmp/edvora-test", cfg.DataDir)
	assert.Equal(t, "Grace", cfg.User.Name, "env overrides file")
	assert.Equal(t, 7, cfg.Chat.MaxHistory)
	assert.Equal(t, 10, cfg.Chat.DelayMaxMS)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.AdapterFS, cfg.Adapter)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("adapter: [unterminated"), 0644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		cfg, err := config.Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"Unknown Adapter", func(c *config.Config) { c.Adapter = "redis" }},
		{"Empty Data Dir", func(c *config.Config) { c.DataDir = "" }},
		{"Key With Slash", func(c *config.Config) { c.Store.Key = "a/b" }},
		{"Negative Delay", func(c *config.Config) { c.Chat.DelayMinMS = -1 }},
		{"Inverted Delay", func(c *config.Config) { c.Chat.DelayMinMS, c.Chat.DelayMaxMS = 5, 1 }},
		{"Zero History", func(c *config.Config) { c.Chat.MaxHistory = 0 }},
		{"Zero Poll", func(c *config.Config) { c.Watch.PollIntervalMS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := valid()
	cfg.Adapter = config.AdapterMemory
	cfg.DataDir = ""
	assert.NoError(t, cfg.Validate())
}
