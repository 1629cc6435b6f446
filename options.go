package retrospect

import (
	"go.uber.org/zap"

	"github.com/discochess/retrospect/internal/analysis"
	"github.com/discochess/retrospect/internal/evalcache"
	"github.com/discochess/retrospect/internal/evalcache/memstore"
	"github.com/discochess/retrospect/internal/oracle"
	"github.com/discochess/retrospect/internal/stats"
)

// Option configures an Analyzer.
type Option interface {
	apply(*options)
}

// options holds the analyzer configuration.
type options struct {
	evaluator  oracle.Evaluator
	cache      *evalcache.Cache
	player     string
	binCount   int
	threshold  float64
	boundaries analysis.Boundaries
	workers    int
	stats      stats.Collector
	logger     *zap.Logger
}

// defaultOptions returns the default configuration: 10 progress
// buckets, a 0.15 blunder threshold, 25%/75% phase boundaries,
// sequential processing, and a process-local in-memory cache.
func defaultOptions() options {
	return options{
		cache:      evalcache.New(memstore.New()),
		binCount:   analysis.DefaultBinCount,
		threshold:  analysis.DefaultBlunderThreshold,
		boundaries: analysis.DefaultBoundaries,
		workers:    1,
		stats:      stats.NewNoop(),
		logger:     zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithEvaluator sets the evaluation oracle. Required.
func WithEvaluator(e oracle.Evaluator) Option {
	return optionFunc(func(o *options) {
		o.evaluator = e
	})
}

// WithPlayer sets the tracked player identity. Required. Participant
// matching is exact; no case folding or normalization is applied.
func WithPlayer(name string) Option {
	return optionFunc(func(o *options) {
		o.player = name
	})
}

// WithCache sets the evaluation cache. If not set, a process-local
// in-memory cache is used; pass a disk-backed cache to reuse
// evaluations across runs.
func WithCache(c *evalcache.Cache) Option {
	return optionFunc(func(o *options) {
		o.cache = c
	})
}

// WithBinCount sets the number of game-progress buckets for the
// win-rate trajectory. Default is 10.
func WithBinCount(n int) Option {
	return optionFunc(func(o *options) {
		if n > 0 {
			o.binCount = n
		}
	})
}

// WithBlunderThreshold sets the win-probability drop beyond which a
// move counts as a blunder. Default is 0.15.
func WithBlunderThreshold(t float64) Option {
	return optionFunc(func(o *options) {
		o.threshold = t
	})
}

// WithPhaseBoundaries sets where the opening ends and the endgame
// begins, as progress fractions. Default is 0.25 and 0.75.
func WithPhaseBoundaries(opening, middlegame float64) Option {
	return optionFunc(func(o *options) {
		o.boundaries = analysis.Boundaries{Opening: opening, Middlegame: middlegame}
	})
}

// WithWorkers sets the number of games processed concurrently.
// Default is 1 (sequential).
func WithWorkers(n int) Option {
	return optionFunc(func(o *options) {
		if n > 0 {
			o.workers = n
		}
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}
