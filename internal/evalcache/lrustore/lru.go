// Package lrustore wraps a cache store with an in-process LRU front,
// so entries re-read within a run skip the backing store.
package lrustore

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/discochess/retrospect/internal/evalcache"
)

// Compile-time check that Store implements evalcache.Store.
var _ evalcache.Store = (*Store)(nil)

// Store wraps another Store with LRU caching.
type Store struct {
	underlying evalcache.Store
	cache      *lru.Cache[string, []byte]
}

// New creates an LRU front of the given capacity over a store.
func New(underlying evalcache.Store, capacity int) (*Store, error) {
	c, err := lru.New[string, []byte](capacity)
	if err != nil {
		return nil, fmt.Errorf("creating lru: %w", err)
	}
	return &Store{
		underlying: underlying,
		cache:      c,
	}, nil
}

// Read reads an entry, checking the LRU first.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	if data, ok := s.cache.Get(key); ok {
		return data, nil
	}

	data, err := s.underlying.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, data)
	return data, nil
}

// Write writes through to the underlying store and refreshes the LRU.
func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	if err := s.underlying.Write(ctx, key, data); err != nil {
		return err
	}
	s.cache.Add(key, data)
	return nil
}

// Len returns the number of entries held in the LRU.
func (s *Store) Len() int {
	return s.cache.Len()
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.underlying.Close()
}
