// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Analyzer metrics.
	MetricGames        = "retrospect_games_total"
	MetricGamesSkipped = "retrospect_games_skipped_total"
	MetricBlunders     = "retrospect_blunders_total"

	// Oracle metrics.
	MetricEvalCalls    = "retrospect_eval_calls_total"
	MetricEvalFailures = "retrospect_eval_failures_total"

	// Cache metrics.
	MetricCacheHits   = "retrospect_cache_hits_total"
	MetricCacheMisses = "retrospect_cache_misses_total"
	MetricCacheWrites = "retrospect_cache_writes_total"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
