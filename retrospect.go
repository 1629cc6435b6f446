// Package retrospect aggregates per-move engine evaluations of a
// player's game corpus into player-level statistics: win-probability
// trajectory over game progress, blunder counts by phase, and
// opponent win/loss records.
//
// Example usage:
//
//	analyzer, err := retrospect.New(
//	    retrospect.WithPlayer("DrNykterstein"),
//	    retrospect.WithEvaluator(oracle.NewEngine("/usr/local/bin/evalchess")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer analyzer.Close()
//
//	report, err := analyzer.Run(ctx, retrospect.Files("games/a.pgn", "games/b.pgn"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("analyzed %d games\n", report.GamesAnalyzed)
package retrospect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/discochess/retrospect/internal/analysis"
	"github.com/discochess/retrospect/internal/evalcache"
	"github.com/discochess/retrospect/internal/oracle"
	"github.com/discochess/retrospect/internal/record"
	"github.com/discochess/retrospect/internal/stats"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrNoEvaluator indicates no evaluator was provided.
	ErrNoEvaluator = errors.New("retrospect: no evaluator provided")

	// ErrNoPlayer indicates no tracked player was provided.
	ErrNoPlayer = errors.New("retrospect: no tracked player provided")

	// ErrClosed indicates the analyzer has been closed.
	ErrClosed = errors.New("retrospect: analyzer closed")

	// ErrUnresolvedOutcome indicates a declared result that cannot be
	// attributed to either side. The game is excluded from opponent
	// tallies only.
	ErrUnresolvedOutcome = errors.New("retrospect: unresolved outcome")
)

// Source is one game record in a corpus.
type Source interface {
	// ID returns the stable game identity, also used as the
	// evaluation cache key.
	ID() string

	// Open returns the record's content for reading.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource is a Source backed by a PGN file on disk.
type FileSource string

// Compile-time check that FileSource implements Source.
var _ Source = FileSource("")

// ID returns the file path.
func (f FileSource) ID() string { return string(f) }

// Open opens the file.
func (f FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return os.Open(string(f))
}

// Files builds a corpus from file paths, preserving order.
func Files(paths ...string) []Source {
	corpus := make([]Source, len(paths))
	for i, p := range paths {
		corpus[i] = FileSource(p)
	}
	return corpus
}

// Analyzer drives the aggregation pipeline over a game corpus.
// An Analyzer is safe for concurrent use by multiple goroutines.
type Analyzer struct {
	evaluator  oracle.Evaluator
	cache      *evalcache.Cache
	player     string
	binCount   int
	threshold  float64
	boundaries analysis.Boundaries
	workers    int
	stats      stats.Collector
	logger     *zap.Logger
	closed     atomic.Bool
}

// New creates a new Analyzer with the given options.
// An evaluator and a tracked player are required.
func New(opts ...Option) (*Analyzer, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	a := &Analyzer{
		evaluator:  cfg.evaluator,
		cache:      cfg.cache,
		player:     cfg.player,
		binCount:   cfg.binCount,
		threshold:  cfg.threshold,
		boundaries: cfg.boundaries,
		workers:    cfg.workers,
		stats:      cfg.stats,
		logger:     cfg.logger,
	}

	if a.evaluator == nil {
		return nil, ErrNoEvaluator
	}
	if a.player == "" {
		return nil, ErrNoPlayer
	}

	a.logger.Debug("analyzer initialized",
		zap.String("player", a.player),
		zap.Int("binCount", a.binCount),
		zap.Float64("blunderThreshold", a.threshold),
		zap.Int("workers", a.workers),
	)
	return a, nil
}

// Run processes every game in the corpus and returns the aggregated
// report. Per-game failures (oracle unavailable, unknown participant,
// zero-length game, unresolvable result) exclude only the offending
// game and are tallied in the report's Skipped counts; Run fails only
// when the context is cancelled.
func (a *Analyzer) Run(ctx context.Context, corpus []Source) (*Report, error) {
	if a.closed.Load() {
		return nil, ErrClosed
	}

	partials := make([]*partial, a.workers)
	jobs := make(chan Source)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < a.workers; i++ {
		p := newPartial(a.binCount)
		partials[i] = p
		g.Go(func() error {
			for src := range jobs {
				if err := a.process(ctx, src, p); err != nil {
					return err
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for _, src := range corpus {
			select {
			case jobs <- src:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildReport(a.player, a.binCount, partials), nil
}

// Close releases the analyzer's cache resources.
// After Close, the analyzer should not be used.
func (a *Analyzer) Close() error {
	if !a.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	if err := a.cache.Close(); err != nil {
		return fmt.Errorf("closing cache: %w", err)
	}
	return nil
}

// process runs one game through the pipeline, accumulating into p.
// Only context cancellation is returned as an error; everything else
// is a per-game skip.
func (a *Analyzer) process(ctx context.Context, src Source, p *partial) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.stats.IncCounter(stats.MetricGames, 1)

	game, err := a.readGame(ctx, src)
	if err != nil {
		a.logger.Warn("skipping unreadable record",
			zap.String("game", src.ID()),
			zap.Error(err),
		)
		p.skipped.UnreadableRecord++
		return nil
	}

	side, err := analysis.ResolveSide(game, a.player)
	if err != nil {
		// Without a side there is no opponent either; the game is
		// excluded from every aggregation.
		a.logger.Debug("tracked player not found in game",
			zap.String("game", game.ID),
			zap.String("white", game.White),
			zap.String("black", game.Black),
		)
		p.skipped.AmbiguousParticipant++
		return nil
	}

	a.tallyOpponent(game, side, p)

	if game.TotalMoves == 0 {
		p.skipped.ZeroLength++
		return nil
	}

	report, err := a.cache.GetOrCompute(ctx, game.ID, func(ctx context.Context) (*oracle.Report, error) {
		a.stats.IncCounter(stats.MetricEvalCalls, 1)
		return a.evaluator.Evaluate(ctx, game)
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// The opponent tally above stands: it does not need the
		// oracle.
		a.logger.Warn("evaluation unavailable",
			zap.String("game", game.ID),
			zap.Error(err),
		)
		a.stats.IncCounter(stats.MetricEvalFailures, 1)
		p.skipped.EvaluationUnavailable++
		return nil
	}

	trajectory := analysis.Normalize(report, side)
	for _, pt := range trajectory {
		idx := analysis.BinIndex(pt.Move, game.TotalMoves, a.binCount)
		p.bins[idx] = append(p.bins[idx], pt.WinProb)
	}

	blunders, err := analysis.ClassifyBlunders(game.ID, trajectory, game.TotalMoves, side, a.threshold, a.boundaries)
	if err != nil {
		// Unreachable: zero-length games were skipped above.
		p.skipped.ZeroLength++
		return nil
	}
	p.blunders = append(p.blunders, blunders...)
	a.stats.IncCounter(stats.MetricBlunders, int64(len(blunders)))

	p.analyzed++
	return nil
}

// readGame opens and parses one record.
func (a *Analyzer) readGame(ctx context.Context, src Source) (*record.Game, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer rc.Close()
	return record.Read(rc, src.ID())
}

// tallyOpponent resolves the game outcome and credits it to the
// opponent's record.
func (a *Analyzer) tallyOpponent(game *record.Game, side analysis.Side, p *partial) {
	opponent := game.Black
	if side == analysis.Black {
		opponent = game.White
	}

	win, err := resolveOutcome(game.Result, side)
	if err != nil {
		p.skipped.UnresolvedOutcome++
		return
	}

	rec := p.opponents[opponent]
	if win {
		rec.Wins++
	} else {
		rec.Losses++
	}
	p.opponents[opponent] = rec
}

// resolveOutcome maps a declared result token to a win or loss for
// the tracked side. The token's leading character is compared against
// the side markers ('1' = White win, '0' = Black win); draws and
// anything else fail with ErrUnresolvedOutcome.
func resolveOutcome(result string, side analysis.Side) (bool, error) {
	if result == "" || strings.HasPrefix(result, "1/2") {
		return false, ErrUnresolvedOutcome
	}
	switch result[0] {
	case analysis.White.Marker():
		return side == analysis.White, nil
	case analysis.Black.Marker():
		return side == analysis.Black, nil
	}
	return false, ErrUnresolvedOutcome
}
