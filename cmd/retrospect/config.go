package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/discochess/retrospect/internal/analysis"
	"github.com/discochess/retrospect/internal/codec"
)

// Config holds the CLI configuration.
type Config struct {
	Player        string        `koanf:"player"`
	Engine        string        `koanf:"engine"`
	EngineArgs    []string      `koanf:"engine_args"`
	EngineTimeout time.Duration `koanf:"engine_timeout"`
	CacheDir      string        `koanf:"cache_dir"`
	Codec         string        `koanf:"codec"`
	LRUSize       int           `koanf:"lru_size"`
	Bins          int           `koanf:"bins"`
	Threshold     float64       `koanf:"threshold"`
	Workers       int           `koanf:"workers"`
	Format        string        `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		EngineTimeout: 2 * time.Minute,
		CacheDir:      "./evalcache",
		Codec:         "zstd",
		LRUSize:       1024,
		Bins:          analysis.DefaultBinCount,
		Threshold:     analysis.DefaultBlunderThreshold,
		Workers:       4,
		Format:        "text",
	}
}

// loadConfig builds a Config by layering defaults, an optional YAML
// file, and environment variables.
// Order of precedence (low -> high):
//  1. defaults
//  2. file (--config flag, or RETROSPECT_CONFIG)
//  3. env (prefix RETROSPECT_, e.g. RETROSPECT_CACHE_DIR)
func loadConfig(path string) (*Config, error) {
	cfg := *defaultConfig()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv("RETROSPECT_CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	// Map env keys like RETROSPECT_CACHE_DIR -> cache_dir, matching
	// the koanf tags on the struct.
	envProvider := env.Provider("RETROSPECT_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "retrospect_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, ok := codec.ByName(c.Codec); !ok {
		return fmt.Errorf("unknown codec %q (want zstd, gzip, or none)", c.Codec)
	}
	switch c.Format {
	case "text", "markdown":
	default:
		return fmt.Errorf("unknown format %q (want text or markdown)", c.Format)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Bins < 1 {
		return fmt.Errorf("bins must be positive, got %d", c.Bins)
	}
	return nil
}
