// Package kvstore provides the durable key-value storage behind history and
// preferences: a string value per named key, rewritten in full on every write.
package kvstore

import (
	"fmt"

	"github.com/dtnitsch/web-content-extractor/models"
)

// Store reads and writes whole string values by key.
type Store interface {
	// Get returns the value and true, or "" and false when the key is absent.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error
	Close() error
}

// Open returns the store for a configured backend.
func Open(cfg models.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case models.BackendSQLite, "":
		return OpenSQLite(cfg.Path)
	case models.BackendFile:
		return NewFileStore(cfg.Path)
	case models.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
