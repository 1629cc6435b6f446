package evalcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ManifestVersion is the current cache layout version.
const ManifestVersion = 1

// Manifest describes a disk cache directory. It pins the entry codec
// and the engine that produced the reports, so one cache never mixes
// evaluations from different engines.
type Manifest struct {
	Version   int       `json:"version"`
	Codec     string    `json:"codec"`
	Engine    string    `json:"engine"`
	CreatedAt time.Time `json:"created_at"`
}

const manifestFilename = "manifest.json"

// WriteManifest writes the manifest to the cache directory.
func WriteManifest(dir string, m *Manifest) error {
	path := filepath.Join(dir, manifestFilename)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// ReadManifest reads the manifest from a cache directory.
// Returns os.ErrNotExist (wrapped) when the directory has none.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, manifestFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// EnsureManifest verifies an existing manifest against the expected
// codec and engine, writing a fresh one when the directory has none.
func EnsureManifest(dir, codecName, engine string) error {
	m, err := ReadManifest(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return WriteManifest(dir, &Manifest{
				Version:   ManifestVersion,
				Codec:     codecName,
				Engine:    engine,
				CreatedAt: time.Now().UTC(),
			})
		}
		return err
	}

	if m.Version != ManifestVersion {
		return fmt.Errorf("evalcache: cache version %d, want %d", m.Version, ManifestVersion)
	}
	if m.Codec != codecName {
		return fmt.Errorf("evalcache: cache built with codec %q, not %q", m.Codec, codecName)
	}
	if m.Engine != engine {
		return fmt.Errorf("evalcache: cache built with engine %q, not %q", m.Engine, engine)
	}
	return nil
}
