package kv

import (
	"context"
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key succeeds.
	Remove(ctx context.Context, key string) error
	// Close releases resources held by the store.
	Close() error
}

// Open opens the store for backend at path.
func Open(backend, path string) (Store, error) {
	switch NormalizeBackend(backend) {
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendFile:
		return OpenFile(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (expected sqlite|file|memory)", backend)
	}
}

// NormalizeBackend lowercases a backend name and maps the empty name to sqlite.
func NormalizeBackend(backend string) string {
	b := strings.ToLower(strings.TrimSpace(backend))
	if b == "" {
		return BackendSQLite
	}
	return b
}

// ValidBackend reports whether backend names a known store.
func ValidBackend(backend string) bool {
	switch NormalizeBackend(backend) {
	case BackendSQLite, BackendFile, BackendMemory:
		return true
	}
	return false
}
