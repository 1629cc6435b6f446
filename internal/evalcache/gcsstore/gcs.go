// Package gcsstore implements a Google Cloud Storage cache backend.
package gcsstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/discochess/retrospect/internal/codec"
	"github.com/discochess/retrospect/internal/evalcache"
)

// Compile-time check that Store implements evalcache.Store.
var _ evalcache.Store = (*Store)(nil)

// Store is a Google Cloud Storage cache backend.
type Store struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
	codec  codec.Codec
}

// New creates a new GCS store.
// The bucket must already exist.
// The codec handles compression/decompression.
func New(ctx context.Context, bucketName string, c codec.Codec, opts ...Option) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	s := &Store{
		client: client,
		bucket: client.Bucket(bucketName),
		codec:  c,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets a key prefix for all operations.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = strings.TrimSuffix(prefix, "/")
		if s.prefix != "" {
			s.prefix += "/"
		}
	}
}

// Read reads and decompresses the entry for a key.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	obj := s.bucket.Object(s.entryKey(key))

	reader, err := obj.NewReader(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return nil, evalcache.ErrNotFound
		}
		return nil, fmt.Errorf("creating reader: %w", err)
	}
	defer reader.Close()

	decompressor, err := s.codec.Reader(reader)
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer decompressor.Close()

	data, err := io.ReadAll(decompressor)
	if err != nil {
		return nil, fmt.Errorf("decompressing entry: %w", err)
	}
	return data, nil
}

// Write compresses and uploads the entry for a key. GCS object writes
// commit on Close, so readers never observe a partial entry.
func (s *Store) Write(ctx context.Context, key string, data []byte) error {
	obj := s.bucket.Object(s.entryKey(key))
	w := obj.NewWriter(ctx)

	compressor, err := s.codec.Writer(w)
	if err != nil {
		w.Close()
		return fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := compressor.Write(data); err != nil {
		compressor.Close()
		w.Close()
		return fmt.Errorf("compressing entry: %w", err)
	}
	if err := compressor.Close(); err != nil {
		w.Close()
		return fmt.Errorf("flushing entry: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	return s.client.Close()
}

// entryKey returns the full object key for a game identity.
func (s *Store) entryKey(key string) string {
	fan, name := evalcache.EntryName(key)
	filename := name + ".json"
	if ext := s.codec.Extension(); ext != "" {
		filename += "." + ext
	}
	return s.prefix + "entries/" + fan + "/" + filename
}
