// Package kv is the on-device key-value store behind the task list.
//
// A Store maps string keys to string values and supports three operations:
//
//	Get(ctx, key)        -> value, ok, error
//	Set(ctx, key, value) -> error
//	Remove(ctx, key)     -> error
//
// Removing an absent key is not an error. Values are opaque to the store;
// the task list is written as a single JSON blob under one key.
//
// # Backends
//
//   - "sqlite": a single-table database file (default)
//   - "file": a JSON object of key/value pairs, rewritten atomically
//   - "memory": a process-local map
package kv
