package config

import (
	"fmt"
	"strings"

	"github.com/nibzard/taskpad/internal/kv"
	"github.com/nibzard/taskpad/internal/todo"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultStoreBackend = kv.BackendSQLite
	DefaultLogDir       = "~/.taskpad/logs"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Config holds the full configuration for taskpad.
type Config struct {
	// Storage
	StoreBackend string `toml:"store_backend"`
	StorePath    string `toml:"store_path"` // empty means the backend default under ~/.taskpad
	StorageKey   string `toml:"storage_key"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Config files applied, lowest priority first (computed)
	Files []string `toml:"-"`
}

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// configFields returns the configurable field names, matching their TOML keys.
func configFields() []string {
	return []string{
		"store_backend",
		"store_path",
		"storage_key",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.StoreBackend = DefaultStoreBackend
	cfg.StorePath = ""
	cfg.StorageKey = todo.DefaultKey
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}

// Validate reports configuration values that cannot be used.
func (c *Config) Validate() error {
	if !kv.ValidBackend(c.StoreBackend) {
		return fmt.Errorf("store_backend %q: expected sqlite|file|memory", c.StoreBackend)
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return fmt.Errorf("storage_key must not be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("log_level %q: expected debug|info|warn|error|fatal", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log_format %q: expected text|json|logfmt", c.LogFormat)
	}
	return nil
}

// Value returns the string form of a field by its TOML key.
func (c *Config) Value(field string) string {
	switch field {
	case "store_backend":
		return c.StoreBackend
	case "store_path":
		return c.StorePath
	case "storage_key":
		return c.StorageKey
	case "log_dir":
		return c.LogDir
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return fmt.Sprint(c.LogTimestamps)
	case "log_caller":
		return fmt.Sprint(c.LogCaller)
	}
	return ""
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return configFields()
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
