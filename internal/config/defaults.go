package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

// Adapter names accepted by the adapter key.
const (
	AdapterFS     = "fs"
	AdapterSQLite = "sqlite"
	AdapterMemory = "memory"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"data_dir":   "~/.edvora",
		"adapter":    AdapterFS,
		"dev_safety": true,
		"store": map[string]interface{}{
			"key": "reminders",
		},
		"user": map[string]interface{}{
			"name": "",
		},
		"chat": map[string]interface{}{
			"delay_min_ms": 1000,
			"delay_max_ms": 3000,
			"max_history":  200,
		},
		"ui": map[string]interface{}{
			"colored_output": true,
			"markdown":       true,
		},
		"watch": map[string]interface{}{
			"poll_interval_ms": 250, // sqlite adapter only
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.edvora/config.yaml"
}
