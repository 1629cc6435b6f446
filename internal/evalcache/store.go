package evalcache

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
)

// ErrNotFound is returned when no entry exists for a key.
var ErrNotFound = errors.New("evalcache: entry not found")

// Store defines the interface for durable cache backends.
// Implementations handle entry naming, compression, and storage
// details internally. Writes must be atomic: a concurrent or failed
// Write never leaves a partial entry visible to Read.
type Store interface {
	// Read returns the serialized report for a key.
	// Returns ErrNotFound if no entry exists.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write durably stores the serialized report for a key,
	// replacing any existing entry.
	Write(ctx context.Context, key string, data []byte) error

	// Close releases any resources held by the store.
	Close() error
}

// EntryName maps an arbitrary game identity to a fan-out directory
// and a filesystem/object-safe entry name. Keys are typically source
// paths and cannot be used verbatim, so entries are named by FNV-1a
// hash; the first byte of the hash fans entries out into 256 groups.
func EntryName(key string) (fan, name string) {
	h := fnv.New64a()
	h.Write([]byte(key))
	sum := h.Sum64()
	return fmt.Sprintf("%02x", byte(sum>>56)), fmt.Sprintf("%016x", sum)
}
