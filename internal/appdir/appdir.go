// Package appdir provides constants and helpers for the taskpad state directory.
package appdir

import (
	"os"
	"path/filepath"
)

const (
	// Dir is the name of the taskpad state directory inside the user's home.
	Dir = ".taskpad"

	// DefaultDatabaseFile holds the sqlite key-value store.
	DefaultDatabaseFile = "taskpad.db"

	// DefaultFileStore holds the JSON-file key-value store.
	DefaultFileStore = "taskpad.json"

	// DefaultConfigFile is the user config file name (inside Dir).
	DefaultConfigFile = "taskpad.toml"
)

// Home returns ~/.taskpad, or a relative .taskpad when the home directory is unknown.
func Home() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return Dir
	}
	return filepath.Join(home, Dir)
}

// StorePath returns the default store file for the given backend inside base.
// The memory backend has no path.
func StorePath(base, backend string) string {
	switch backend {
	case "file":
		return filepath.Join(base, DefaultFileStore)
	case "memory":
		return ""
	default:
		return filepath.Join(base, DefaultDatabaseFile)
	}
}

// ConfigPath returns the user config file path inside base.
func ConfigPath(base string) string {
	return filepath.Join(base, DefaultConfigFile)
}
