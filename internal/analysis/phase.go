package analysis

import "gonum.org/v1/gonum/stat"

// DefaultBinCount is the number of game-progress buckets used for the
// win-rate trajectory.
const DefaultBinCount = 10

// BinIndex maps a 1-based move of a game with total plies into one of
// count equal-width progress buckets. The result is clamped to
// [0, count-1]; in particular move == total lands in the last bucket.
//
// Precondition: total > 0. Callers skip zero-length games before
// binning; no division is attempted for them.
func BinIndex(move, total, count int) int {
	idx := int(float64(move) / float64(total) * float64(count))
	if idx < 0 {
		return 0
	}
	if idx >= count {
		return count - 1
	}
	return idx
}

// MeanByBin returns the arithmetic mean of each bucket's samples.
// Empty buckets report 0.0 so the result always has one value per
// bucket.
func MeanByBin(samples [][]float64) []float64 {
	means := make([]float64, len(samples))
	for i, s := range samples {
		if len(s) == 0 {
			continue
		}
		means[i] = stat.Mean(s, nil)
	}
	return means
}

// Phase is the coarse 3-way partition of game progress used for
// blunder classification, distinct from the finer bucket partition.
type Phase string

const (
	PhaseOpening    Phase = "opening"
	PhaseMiddlegame Phase = "middlegame"
	PhaseEndgame    Phase = "endgame"
)

// Phases lists all phases in game order.
var Phases = []Phase{PhaseOpening, PhaseMiddlegame, PhaseEndgame}

// Boundaries sets where the opening ends and the endgame begins, as
// progress fractions in (0,1).
type Boundaries struct {
	Opening    float64 // progress below this is the opening
	Middlegame float64 // progress below this is the middlegame
}

// DefaultBoundaries is the conventional 25%/75% phase split.
var DefaultBoundaries = Boundaries{Opening: 0.25, Middlegame: 0.75}

// phaseOf classifies a progress fraction.
func phaseOf(frac float64, b Boundaries) Phase {
	switch {
	case frac < b.Opening:
		return PhaseOpening
	case frac < b.Middlegame:
		return PhaseMiddlegame
	}
	return PhaseEndgame
}
