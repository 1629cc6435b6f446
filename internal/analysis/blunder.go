package analysis

// DefaultBlunderThreshold is the win-probability drop beyond which a
// move counts as a blunder: 15 percentage points.
const DefaultBlunderThreshold = 0.15

// Blunder is a single tracked-player move whose win probability
// dropped by more than the threshold since that player's own previous
// decision.
type Blunder struct {
	GameID string
	Move   int
	Phase  Phase
	Drop   float64
}

// ClassifyBlunders scans a normalized trajectory and flags the tracked
// player's blunders.
//
// The comparison baseline is the probability after the tracked
// player's own previous move, starting from a neutral 0.5 prior. The
// opponent's entries never move the baseline.
func ClassifyBlunders(gameID string, tr Trajectory, total int, side Side, threshold float64, b Boundaries) ([]Blunder, error) {
	if total <= 0 {
		return nil, ErrInsufficientGameLength
	}

	var blunders []Blunder
	last := 0.5
	for _, p := range tr {
		if !side.mine(p.Move) {
			continue
		}
		if drop := last - p.WinProb; drop > threshold {
			frac := float64(p.Move) / float64(total)
			blunders = append(blunders, Blunder{
				GameID: gameID,
				Move:   p.Move,
				Phase:  phaseOf(frac, b),
				Drop:   drop,
			})
		}
		last = p.WinProb
	}
	return blunders, nil
}
