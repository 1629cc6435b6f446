package oracle

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/retrospect/internal/record"
)

// Compile-time check that Engine implements Evaluator.
var _ Evaluator = (*Engine)(nil)

// Engine runs an external analysis engine as a subprocess.
//
// The engine receives the raw PGN on stdin and writes one JSON object
// per analyzed move on stdout:
//
//	{"move":1,"winprob":0.53}
//
// Any malformed line fails the whole report; there are no partial
// reports.
type Engine struct {
	path    string
	args    []string
	timeout time.Duration
	logger  *zap.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithArgs sets extra arguments passed to the engine binary.
func WithArgs(args ...string) EngineOption {
	return func(e *Engine) {
		e.args = args
	}
}

// WithTimeout bounds a single evaluation. Zero means no limit.
func WithTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.timeout = d
	}
}

// WithLogger sets the logger. If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates an engine evaluator invoking the binary at path.
func NewEngine(path string, opts ...EngineOption) *Engine {
	e := &Engine{
		path:   path,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs the engine over the game and parses its report.
// Process start failures, non-zero exits, timeouts, and malformed
// output all surface as ErrUnavailable.
func (e *Engine) Evaluate(ctx context.Context, g *record.Game) (*Report, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, e.path, e.args...)
	cmd.Stdin = bytes.NewReader(g.PGN)

	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		e.logger.Warn("engine invocation failed",
			zap.String("game", g.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: running %s: %v", ErrUnavailable, e.path, err)
	}

	report, err := ParseReport(out)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", g.ID, err)
	}

	e.logger.Debug("game evaluated",
		zap.String("game", g.ID),
		zap.Int("moves", len(report.Moves)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// ParseReport decodes line-delimited engine output into a Report.
// Each non-blank line must be an independently decodable JSON object
// with a positive move number and a win probability in [0,1].
func ParseReport(data []byte) (*Report, error) {
	var report Report

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var ev MoveEval
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, fmt.Errorf("%w: parsing line %q: %v", ErrUnavailable, line, err)
		}
		if ev.Move <= 0 {
			return nil, fmt.Errorf("%w: line %q: move number must be positive", ErrUnavailable, line)
		}
		if ev.WinProb < 0 || ev.WinProb > 1 {
			return nil, fmt.Errorf("%w: line %q: winprob outside [0,1]", ErrUnavailable, line)
		}
		report.Moves = append(report.Moves, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading engine output: %v", ErrUnavailable, err)
	}

	return &report, nil
}
