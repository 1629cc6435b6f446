// Package memstore provides an in-memory cache store for testing.
package memstore

import (
	"context"
	"sync"

	"github.com/discochess/retrospect/internal/evalcache"
)

// Compile-time check that Store implements evalcache.Store.
var _ evalcache.Store = (*Store)(nil)

// Store is an in-memory cache store for testing.
type Store struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		entries: make(map[string][]byte),
	}
}

// Read reads an entry from memory.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.entries[key]
	if !ok {
		return nil, evalcache.ErrNotFound
	}
	return data, nil
}

// Write stores an entry in memory. The data is copied to prevent
// caller mutations from affecting the store.
func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]byte, len(data))
	copy(copied, data)
	s.entries[key] = copied
	return nil
}

// Len returns the number of entries (for test assertions).
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close is a no-op for the memory store.
func (s *Store) Close() error {
	return nil
}
