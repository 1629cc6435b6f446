// Package codec provides compression and decompression for cache entries.
package codec

import "io"

// Codec provides compression and decompression functionality.
type Codec interface {
	// Reader wraps r to decompress data read from it.
	Reader(r io.Reader) (io.ReadCloser, error)
	// Writer wraps w to compress data written to it.
	Writer(w io.Writer) (io.WriteCloser, error)
	// Extension returns the file extension without dot (e.g., "zst", "gz").
	// Returns empty string for no compression.
	Extension() string
}

// ByName returns the codec registered under the given name.
// Known names: "zstd", "gzip", "none". Returns false for anything else.
func ByName(name string) (Codec, bool) {
	switch name {
	case "zstd":
		return Zstd{}, true
	case "gzip":
		return Gzip{}, true
	case "none", "":
		return Noop{}, true
	}
	return nil, false
}

// Name returns the registry name for a codec, the inverse of ByName.
func Name(c Codec) string {
	switch c.(type) {
	case Zstd:
		return "zstd"
	case Gzip:
		return "gzip"
	default:
		return "none"
	}
}
