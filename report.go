package retrospect

import (
	"github.com/google/uuid"

	"github.com/discochess/retrospect/internal/analysis"
)

// Record is a win/loss tally against one opponent.
type Record struct {
	Wins   int
	Losses int
}

// Games returns the number of resolved games in the record.
func (r Record) Games() int {
	return r.Wins + r.Losses
}

// WinRate returns the win rate as a percentage, 0 for an empty record.
func (r Record) WinRate() float64 {
	if r.Games() == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games()) * 100
}

// Skipped counts games excluded from one or more aggregations, by
// exclusion kind. A game excluded from the evaluation pipeline may
// still appear in opponent tallies.
type Skipped struct {
	// EvaluationUnavailable counts games whose oracle evaluation
	// failed; they are excluded from win-rate and blunder
	// aggregation only.
	EvaluationUnavailable int

	// AmbiguousParticipant counts games where the tracked player
	// matched neither participant; excluded from every aggregation.
	AmbiguousParticipant int

	// ZeroLength counts games with no moves; excluded from binning
	// and blunder classification.
	ZeroLength int

	// UnresolvedOutcome counts games whose declared result could not
	// be attributed to a side; excluded from opponent tallies only.
	UnresolvedOutcome int

	// UnreadableRecord counts sources that could not be opened or
	// parsed at all.
	UnreadableRecord int
}

// Total returns the sum of all exclusion counts.
func (s Skipped) Total() int {
	return s.EvaluationUnavailable + s.AmbiguousParticipant + s.ZeroLength +
		s.UnresolvedOutcome + s.UnreadableRecord
}

// Report is the aggregated outcome of one corpus run.
type Report struct {
	// RunID uniquely identifies the run.
	RunID string

	// Player is the tracked player identity.
	Player string

	// GamesAnalyzed counts games that contributed evaluation samples.
	GamesAnalyzed int

	// WinRateByBin holds the mean tracked-player win probability per
	// progress bucket, in bucket order. Empty buckets report 0.0.
	WinRateByBin []float64

	// BlundersByPhase counts blunders per game phase. Every phase is
	// present, possibly with a zero count.
	BlundersByPhase map[analysis.Phase]int

	// Blunders lists every flagged move across the corpus.
	Blunders []analysis.Blunder

	// Opponents maps opponent identity to the win/loss record
	// against them.
	Opponents map[string]Record

	// Skipped tallies per-game exclusions for diagnostics.
	Skipped Skipped
}

// partial is one worker's accumulator. Workers never share partials;
// Run merges them after all workers finish.
type partial struct {
	analyzed  int
	bins      [][]float64
	blunders  []analysis.Blunder
	opponents map[string]Record
	skipped   Skipped
}

func newPartial(binCount int) *partial {
	return &partial{
		bins:      make([][]float64, binCount),
		opponents: make(map[string]Record),
	}
}

// buildReport merges worker partials into the final report.
func buildReport(player string, binCount int, partials []*partial) *Report {
	merged := newPartial(binCount)
	for _, p := range partials {
		merged.analyzed += p.analyzed
		for i, samples := range p.bins {
			merged.bins[i] = append(merged.bins[i], samples...)
		}
		merged.blunders = append(merged.blunders, p.blunders...)
		for opp, rec := range p.opponents {
			total := merged.opponents[opp]
			total.Wins += rec.Wins
			total.Losses += rec.Losses
			merged.opponents[opp] = total
		}
		merged.skipped.EvaluationUnavailable += p.skipped.EvaluationUnavailable
		merged.skipped.AmbiguousParticipant += p.skipped.AmbiguousParticipant
		merged.skipped.ZeroLength += p.skipped.ZeroLength
		merged.skipped.UnresolvedOutcome += p.skipped.UnresolvedOutcome
		merged.skipped.UnreadableRecord += p.skipped.UnreadableRecord
	}

	byPhase := make(map[analysis.Phase]int, len(analysis.Phases))
	for _, phase := range analysis.Phases {
		byPhase[phase] = 0
	}
	for _, b := range merged.blunders {
		byPhase[b.Phase]++
	}

	return &Report{
		RunID:           uuid.NewString(),
		Player:          player,
		GamesAnalyzed:   merged.analyzed,
		WinRateByBin:    analysis.MeanByBin(merged.bins),
		BlundersByPhase: byPhase,
		Blunders:        merged.blunders,
		Opponents:       merged.opponents,
		Skipped:         merged.skipped,
	}
}
