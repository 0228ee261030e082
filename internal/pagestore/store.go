// Package pagestore persists the report table's current page index.
//
// The table engine only needs get/set semantics on a small integer
// key-value space; backends are interchangeable so tests can substitute the
// in-memory store.
package pagestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PageNumberKey is the key under which the current page index is stored.
const PageNumberKey = "pageNumber"

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown page store backend")

// Store is a key-value store of integers.
type Store interface {
	// Get returns the value stored under key and whether it was present.
	Get(ctx context.Context, key string) (int, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value int) error
}

// StoreCloser is a Store that holds resources until closed.
type StoreCloser interface {
	Store
	Close() error
}

// Open creates the store for backend. An empty path selects the backend's
// default location under ~/.scrapeview.
func Open(ctx context.Context, backend, path string) (StoreCloser, error) {
	switch strings.ToLower(backend) {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		if path == "" {
			p, err := defaultPath("state.json")
			if err != nil {
				return nil, err
			}
			path = p
		}
		return NewFileStore(path), nil
	case BackendSQLite:
		if path == "" {
			p, err := defaultPath("state.db")
			if err != nil {
				return nil, err
			}
			path = p
		}
		return OpenSQLiteStore(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// IsValidBackend reports whether Open accepts backend.
func IsValidBackend(backend string) bool {
	switch strings.ToLower(backend) {
	case BackendMemory, BackendFile, BackendSQLite:
		return true
	default:
		return false
	}
}

func defaultPath(name string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(homeDir, ".scrapeview", name), nil
}
