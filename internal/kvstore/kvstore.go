// internal/kvstore/kvstore.go
// Package kvstore provides the small persistent key-value store used for filter
// presets and remembered view settings.
package kvstore

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// BackendMemory keeps values for the lifetime of the process only.
	BackendMemory = "memory"
	// BackendSQLite persists values in a single SQLite table.
	BackendSQLite = "sqlite"
	// BackendPebble persists values in a Pebble LSM directory.
	BackendPebble = "pebble"
)

var (
	// ErrNotFound is returned by Get when the key holds no value.
	ErrNotFound = errors.New("kvstore: key not found")
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("kvstore: unknown backend")
)

// Store is a synchronous string-keyed byte store.
type Store interface {
	// Contains reports whether key currently holds a value.
	Contains(key string) (bool, error)
	// Get returns the value for key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
	// Close releases the underlying resources.
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend string
	Path    string
}

// Open creates the store described by opts.
func Open(opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		return OpenSQLite(opts.Path)
	case BackendPebble:
		return OpenPebble(opts.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// Backends lists the supported backend names.
func Backends() []string {
	return []string{BackendMemory, BackendSQLite, BackendPebble}
}

// ValidBackend reports whether name selects a supported backend.
func ValidBackend(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return true
	}
	for _, b := range Backends() {
		if b == name {
			return true
		}
	}
	return false
}
