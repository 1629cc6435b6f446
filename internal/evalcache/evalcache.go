// Package evalcache persists per-game evaluation reports keyed by
// game identity, so the oracle runs at most once per game per cache
// lifetime.
package evalcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/discochess/retrospect/internal/oracle"
	"github.com/discochess/retrospect/internal/stats"
)

// ComputeFunc produces a report on a cache miss, typically by calling
// the evaluation oracle.
type ComputeFunc func(ctx context.Context) (*oracle.Report, error)

// Cache is a read-through cache over a durable Store.
// A Cache is safe for concurrent use by multiple goroutines.
type Cache struct {
	store  Store
	group  singleflight.Group
	stats  stats.Collector
	logger *zap.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithStats sets the stats collector. If not set, a no-op collector
// is used.
func WithStats(c stats.Collector) Option {
	return func(cache *Cache) {
		cache.stats = c
	}
}

// WithLogger sets the logger. If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return func(cache *Cache) {
		cache.logger = l
	}
}

// New creates a cache over the given store.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		stats:  stats.NewNoop(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCompute returns the cached report for key, computing and
// persisting it on a miss. Concurrent callers for the same key share
// a single computation.
//
// An existing entry is authoritative: the oracle is never re-invoked
// for a key that has one, and a record modified after its report was
// cached returns the stale report. Compute failures propagate to the
// caller and leave the store untouched.
func (c *Cache) GetOrCompute(ctx context.Context, key string, compute ComputeFunc) (*oracle.Report, error) {
	if report, ok := c.lookup(ctx, key); ok {
		c.stats.IncCounter(stats.MetricCacheHits, 1)
		return report, nil
	}
	c.stats.IncCounter(stats.MetricCacheMisses, 1)

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the flight lock: a concurrent caller may
		// have just written this key.
		if report, ok := c.lookup(ctx, key); ok {
			return report, nil
		}

		report, err := compute(ctx)
		if err != nil {
			return nil, err
		}

		data, err := encodeReport(report)
		if err != nil {
			return nil, fmt.Errorf("encoding report for %s: %w", key, err)
		}
		if err := c.store.Write(ctx, key, data); err != nil {
			// The report is still good; the next run recomputes.
			c.logger.Warn("cache write failed",
				zap.String("key", key),
				zap.Error(err),
			)
			return report, nil
		}
		c.stats.IncCounter(stats.MetricCacheWrites, 1)
		return report, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*oracle.Report), nil
}

// Close closes the underlying store.
func (c *Cache) Close() error {
	return c.store.Close()
}

// lookup reads and decodes an entry, treating a corrupt entry as a
// miss so it gets recomputed and overwritten.
func (c *Cache) lookup(ctx context.Context, key string) (*oracle.Report, bool) {
	data, err := c.store.Read(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("cache read failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return nil, false
	}

	report, err := decodeReport(data)
	if err != nil {
		c.logger.Warn("discarding corrupt cache entry",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false
	}
	return report, true
}

// encodeReport serializes a report. encoding/json renders float64
// probabilities in shortest round-trip form, so decode reproduces
// them bit-exactly.
func encodeReport(r *oracle.Report) ([]byte, error) {
	return json.Marshal(r)
}

func decodeReport(data []byte) (*oracle.Report, error) {
	var r oracle.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
