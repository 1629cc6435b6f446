// Package diskstore implements a disk-based filesystem cache backend.
//
// Entries live under <root>/entries/<fan>/<hash>.json[.ext], where fan
// is the first byte of the key hash. The fan-out keeps directories
// small for large corpora.
package diskstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/discochess/retrospect/internal/codec"
	"github.com/discochess/retrospect/internal/evalcache"
)

// Compile-time check that Store implements evalcache.Store.
var _ evalcache.Store = (*Store)(nil)

// Store is a disk-based filesystem cache backend.
type Store struct {
	root  string
	codec codec.Codec
}

// New creates a disk store rooted at the given directory, creating it
// if necessary. The codec handles compression/decompression.
func New(root string, c codec.Codec) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache root: %w", err)
	}
	return &Store{
		root:  root,
		codec: c,
	}, nil
}

// Read reads and decompresses the entry for a key.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	// Check for cancellation before starting I/O.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	compressed, err := os.ReadFile(s.entryPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, evalcache.ErrNotFound
		}
		return nil, fmt.Errorf("reading entry: %w", err)
	}

	reader, err := s.codec.Reader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decompressing entry: %w", err)
	}
	return data, nil
}

// Write compresses and durably stores the entry for a key. The entry
// is written to a temp file in the destination directory and renamed
// into place, so readers never observe a partial entry.
func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	path := s.entryPath(key)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating entry directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".entry-*")
	if err != nil {
		return fmt.Errorf("creating temp entry: %w", err)
	}
	defer os.Remove(tmp.Name())

	w, err := s.codec.Writer(tmp)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		tmp.Close()
		return fmt.Errorf("writing entry: %w", err)
	}
	if err := w.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp entry: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("publishing entry: %w", err)
	}
	return nil
}

// Close releases any resources held by the store.
func (s *Store) Close() error {
	return nil
}

// entryPath returns the filesystem path for a key.
func (s *Store) entryPath(key string) string {
	fan, name := evalcache.EntryName(key)
	filename := name + ".json"
	if ext := s.codec.Extension(); ext != "" {
		filename += "." + ext
	}
	return filepath.Join(s.root, "entries", fan, filename)
}
