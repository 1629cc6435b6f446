package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Codec != "zstd" {
		t.Errorf("Codec = %q, want zstd", cfg.Codec)
	}
	if cfg.Bins != 10 {
		t.Errorf("Bins = %d, want 10", cfg.Bins)
	}
	if cfg.Threshold != 0.15 {
		t.Errorf("Threshold = %v, want 0.15", cfg.Threshold)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %q, want text", cfg.Format)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "player: Alice\nengine: /opt/eval\nworkers: 8\nengine_timeout: 30s\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Player != "Alice" || cfg.Engine != "/opt/eval" {
		t.Errorf("Player/Engine = %q/%q, want Alice//opt/eval", cfg.Player, cfg.Engine)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.EngineTimeout != 30*time.Second {
		t.Errorf("EngineTimeout = %v, want 30s", cfg.EngineTimeout)
	}
	// Untouched keys keep their defaults.
	if cfg.Codec != "zstd" {
		t.Errorf("Codec = %q, want zstd", cfg.Codec)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("cache_dir: /from/file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RETROSPECT_CACHE_DIR", "/from/env")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.CacheDir != "/from/env" {
		t.Errorf("CacheDir = %q, want /from/env", cfg.CacheDir)
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad codec", map[string]string{"RETROSPECT_CODEC": "lz4"}},
		{"bad format", map[string]string{"RETROSPECT_FORMAT": "pdf"}},
		{"zero workers", map[string]string{"RETROSPECT_WORKERS": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := loadConfig(""); err == nil {
				t.Error("loadConfig() error = nil, want validation error")
			}
		})
	}
}
