package lrustore

import (
	"context"
	"errors"
	"testing"

	"github.com/discochess/retrospect/internal/evalcache"
	"github.com/discochess/retrospect/internal/evalcache/memstore"
)

// countingStore counts reads against the backing store.
type countingStore struct {
	*memstore.Store
	reads int
}

func (c *countingStore) Read(ctx context.Context, key string) ([]byte, error) {
	c.reads++
	return c.Store.Read(ctx, key)
}

func TestStore_ReadFillsLRU(t *testing.T) {
	backing := &countingStore{Store: memstore.New()}
	s, err := New(backing, 8)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := backing.Write(ctx, "k", []byte("entry")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		got, err := s.Read(ctx, "k")
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if string(got) != "entry" {
			t.Errorf("Read() = %q, want %q", got, "entry")
		}
	}

	if backing.reads != 1 {
		t.Errorf("backing reads = %d, want 1", backing.reads)
	}
}

func TestStore_WriteThrough(t *testing.T) {
	backing := &countingStore{Store: memstore.New()}
	s, err := New(backing, 8)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Write(ctx, "k", []byte("entry")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	// The write must land in the backing store and prime the LRU.
	if got, err := backing.Store.Read(ctx, "k"); err != nil || string(got) != "entry" {
		t.Errorf("backing Read() = %q, %v, want entry, nil", got, err)
	}
	if _, err := s.Read(ctx, "k"); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if backing.reads != 0 {
		t.Errorf("backing reads = %d, want 0 (served from LRU)", backing.reads)
	}
}

func TestStore_NotFoundPassesThrough(t *testing.T) {
	s, err := New(memstore.New(), 8)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	if _, err := s.Read(context.Background(), "missing"); !errors.Is(err, evalcache.ErrNotFound) {
		t.Errorf("Read() error = %v, want ErrNotFound", err)
	}
}
