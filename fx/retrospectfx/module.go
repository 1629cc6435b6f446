// Package retrospectfx provides an fx module for a disk-cached analyzer.
package retrospectfx

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/retrospect"
	"github.com/discochess/retrospect/internal/codec"
	"github.com/discochess/retrospect/internal/evalcache"
	"github.com/discochess/retrospect/internal/evalcache/diskstore"
	"github.com/discochess/retrospect/internal/evalcache/lrustore"
	"github.com/discochess/retrospect/internal/oracle"
	"github.com/discochess/retrospect/internal/stats"
	"github.com/discochess/retrospect/internal/stats/logger"
)

// Config holds configuration for the analyzer.
type Config struct {
	// Player is the tracked player identity. Required.
	Player string

	// EnginePath is the path to the evaluation engine binary. Required.
	EnginePath string

	// EngineArgs are extra arguments passed to the engine.
	EngineArgs []string

	// EngineTimeout bounds a single evaluation. Zero means no limit.
	EngineTimeout time.Duration

	// CacheDir is the directory holding cached evaluations.
	CacheDir string

	// CacheSize is the number of entries held in the in-process LRU
	// front. Default is 1024.
	CacheSize int

	// Workers is the number of games processed concurrently.
	// Default is 1.
	Workers int
}

// Module provides a disk-cached analyzer.
// Requires a *zap.Logger to be provided.
var Module = fx.Module("retrospect",
	fx.Provide(
		newStatsCollector,
		newAnalyzer,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("retrospect.stats"))
}

// Params holds dependencies for creating the analyzer.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided analyzer.
type Result struct {
	fx.Out

	Analyzer *retrospect.Analyzer
}

func newAnalyzer(p Params) (Result, error) {
	cacheSize := p.Config.CacheSize
	if cacheSize <= 0 {
		cacheSize = 1024
	}

	const codecName = "zstd"
	c, _ := codec.ByName(codecName)

	baseStore, err := diskstore.New(p.Config.CacheDir, c)
	if err != nil {
		return Result{}, err
	}
	if err := evalcache.EnsureManifest(p.Config.CacheDir, codecName, filepath.Base(p.Config.EnginePath)); err != nil {
		return Result{}, err
	}
	front, err := lrustore.New(baseStore, cacheSize)
	if err != nil {
		return Result{}, err
	}
	cache := evalcache.New(front,
		evalcache.WithStats(p.Collector),
		evalcache.WithLogger(p.Logger.Named("retrospect.cache")),
	)

	engine := oracle.NewEngine(p.Config.EnginePath,
		oracle.WithArgs(p.Config.EngineArgs...),
		oracle.WithTimeout(p.Config.EngineTimeout),
		oracle.WithLogger(p.Logger.Named("retrospect.engine")),
	)

	analyzer, err := retrospect.New(
		retrospect.WithPlayer(p.Config.Player),
		retrospect.WithEvaluator(engine),
		retrospect.WithCache(cache),
		retrospect.WithWorkers(p.Config.Workers),
		retrospect.WithStats(p.Collector),
		retrospect.WithLogger(p.Logger.Named("retrospect")),
	)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return analyzer.Close()
		},
	})

	return Result{Analyzer: analyzer}, nil
}
