package config

import "os"

// loadFromEnv overrides config from TASKPAD_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TASKPAD_STORE"); v != "" {
		cfg.StoreBackend = v
		set("store_backend")
	}
	if v := os.Getenv("TASKPAD_STORE_PATH"); v != "" {
		cfg.StorePath = v
		set("store_path")
	}
	if v := os.Getenv("TASKPAD_STORAGE_KEY"); v != "" {
		cfg.StorageKey = v
		set("storage_key")
	}

	// Logging configuration
	if v := os.Getenv("TASKPAD_LOG_DIR"); v != "" {
		cfg.LogDir = v
		set("log_dir")
	}
	if v := os.Getenv("TASKPAD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("TASKPAD_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("TASKPAD_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv("TASKPAD_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
}
