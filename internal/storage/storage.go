package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Provider is a durable key-value string store. It has no knowledge of what
// the values mean; callers store serialized blobs.
type Provider interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
	// Clear removes every key.
	Clear() error
	Close() error
}

// Backend names a Provider implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

const (
	sqliteFileName = "tally.sqlite"
	jsonFileName   = "tally.json"
)

// ErrClosed is returned by operations on a closed provider.
var ErrClosed = errors.New("storage closed")

// ParseBackend maps a config value to a Backend. Empty selects SQLite.
func ParseBackend(value string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(value))) {
	case "", BackendSQLite:
		return BackendSQLite, nil
	case BackendFile:
		return BackendFile, nil
	case BackendMemory:
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("unknown storage backend %q", value)
	}
}

// Open returns the provider for backend rooted at dir.
func Open(backend Backend, dir string) (Provider, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return OpenFile(filepath.Join(dir, jsonFileName))
	case BackendSQLite, "":
		return OpenSQLite(filepath.Join(dir, sqliteFileName))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// Path returns the on-disk location used by backend under dir, or "" for
// backends that keep nothing on disk.
func Path(backend Backend, dir string) string {
	switch backend {
	case BackendFile:
		return filepath.Join(dir, jsonFileName)
	case BackendSQLite, "":
		return filepath.Join(dir, sqliteFileName)
	default:
		return ""
	}
}
