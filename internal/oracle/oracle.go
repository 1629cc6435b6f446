// Package oracle defines the position-evaluation oracle and its engine
// subprocess implementation.
//
// An Evaluator turns a game record into a per-move evaluation report.
// Win probabilities are always expressed from White's perspective; the
// perspective shift for a tracked player happens downstream.
package oracle

import (
	"context"
	"errors"

	"github.com/discochess/retrospect/internal/record"
)

// ErrUnavailable indicates the oracle could not be reached or produced
// output that could not be parsed. The affected game is excluded from
// evaluation-based aggregation; the run continues.
var ErrUnavailable = errors.New("oracle: evaluation unavailable")

// MoveEval is the evaluation of a single move.
type MoveEval struct {
	// Move is the 1-based ply number. Monotonically increasing;
	// gaps are tolerated, so consumers index by Move, never by
	// slice position.
	Move int `json:"move"`

	// WinProb is White's win probability after this move, in [0,1].
	WinProb float64 `json:"winprob"`
}

// Report is an ordered sequence of per-move evaluations for one game.
// Its length need not equal the game's ply count: the oracle may skip
// or add entries.
type Report struct {
	Moves []MoveEval `json:"moves"`
}

// Evaluator produces an evaluation report for a game record.
type Evaluator interface {
	// Evaluate analyzes the game and returns its report, or an error
	// wrapping ErrUnavailable when the oracle cannot serve it.
	Evaluate(ctx context.Context, g *record.Game) (*Report, error)
}
