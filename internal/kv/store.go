// Package kv provides the durable key-value layer palettes are persisted to.
package kv

import (
	"path/filepath"

	kanerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
)

// SQLiteFileName is the database file used by the sqlite backend inside the data directory.
const SQLiteFileName = "swatch.db"

// Store is a string-to-string durable store. Each Set overwrites the whole value.
type Store interface {
	// Get returns the value for key. ok is false if the key has never been set.
	Get(key string) (value string, ok bool, err error)

	// Set replaces the value for key.
	Set(key, value string) error

	// Close releases any underlying resources.
	Close() error
}

// Open returns the store for the given backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case model.StorageFile, "":
		return NewFileStore(dir), nil
	case model.StorageSQLite:
		return OpenSQLite(filepath.Join(dir, SQLiteFileName))
	default:
		return nil, kanerr.UnknownStorage(backend)
	}
}
