// Package analysis implements the aggregation core: perspective
// normalization, game-progress binning, and blunder classification.
package analysis

import (
	"errors"

	"github.com/discochess/retrospect/internal/oracle"
	"github.com/discochess/retrospect/internal/record"
)

// Sentinel errors for per-game exclusions.
var (
	// ErrAmbiguousParticipant indicates the tracked player could not
	// be matched to exactly one participant.
	ErrAmbiguousParticipant = errors.New("analysis: ambiguous participant")

	// ErrInsufficientGameLength indicates a zero-length game, which
	// has no progress fraction to classify against.
	ErrInsufficientGameLength = errors.New("analysis: game has no moves")
)

// Side identifies which side the tracked player occupies.
type Side uint8

const (
	// White moves first; odd plies are White's moves.
	White Side = iota
	// Black moves second; even plies are Black's moves.
	Black
)

// String returns "white" or "black".
func (s Side) String() string {
	if s == Black {
		return "black"
	}
	return "white"
}

// Marker returns the conventional result-token marker for the side:
// '1' for a White win, '0' for a Black win.
func (s Side) Marker() byte {
	if s == Black {
		return '0'
	}
	return '1'
}

// mine reports whether the 1-based ply belongs to this side.
func (s Side) mine(move int) bool {
	if s == White {
		return move%2 == 1
	}
	return move%2 == 0
}

// ResolveSide determines which side of the game the player occupies by
// exact name match. Matching neither participant, or both, fails with
// ErrAmbiguousParticipant.
func ResolveSide(g *record.Game, player string) (Side, error) {
	white := player != "" && g.White == player
	black := player != "" && g.Black == player

	switch {
	case white && !black:
		return White, nil
	case black && !white:
		return Black, nil
	}
	return White, ErrAmbiguousParticipant
}

// Point is one sample of a normalized trajectory.
type Point struct {
	// Move is the 1-based ply number carried over from the report.
	Move int

	// WinProb is the tracked player's win probability in [0,1].
	WinProb float64
}

// Trajectory is a game's evaluation re-expressed in the tracked
// player's perspective, ordered by move.
type Trajectory []Point

// Normalize converts an oracle report, expressed from White's
// perspective, into the tracked side's perspective: p stays p for
// White and becomes 1-p for Black. Normalizing the same report for
// the opposite side yields 1-x for every sample.
func Normalize(r *oracle.Report, side Side) Trajectory {
	tr := make(Trajectory, 0, len(r.Moves))
	for _, ev := range r.Moves {
		p := ev.WinProb
		if side == Black {
			p = 1 - p
		}
		tr = append(tr, Point{Move: ev.Move, WinProb: p})
	}
	return tr
}
