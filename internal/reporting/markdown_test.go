package reporting

import (
	"strings"
	"testing"

	"github.com/discochess/retrospect"
	"github.com/discochess/retrospect/internal/analysis"
)

func sampleReport() *retrospect.Report {
	return &retrospect.Report{
		RunID:         "run-1",
		Player:        "Alice",
		GamesAnalyzed: 3,
		WinRateByBin:  []float64{0.5, 0.55, 0.45, 0.6},
		BlundersByPhase: map[analysis.Phase]int{
			analysis.PhaseOpening:    0,
			analysis.PhaseMiddlegame: 1,
			analysis.PhaseEndgame:    1,
		},
		Blunders: []analysis.Blunder{
			{GameID: "g1.pgn", Move: 12, Phase: analysis.PhaseMiddlegame, Drop: 0.22},
			{GameID: "g2.pgn", Move: 30, Phase: analysis.PhaseEndgame, Drop: 0.31},
		},
		Opponents: map[string]retrospect.Record{
			"Bob":   {Wins: 2, Losses: 1},
			"Carol": {Wins: 0, Losses: 1},
		},
		Skipped: retrospect.Skipped{EvaluationUnavailable: 1},
	}
}

func TestMarkdownReport_Write(t *testing.T) {
	var sb strings.Builder
	NewMarkdownReport(&sb).Write(sampleReport())
	out := sb.String()

	for _, want := range []string{
		"# Retrospective: Alice",
		"**Games analyzed:** 3",
		"| middlegame | 1 |",
		"| Bob | 2 | 1 | 66.7% |",
		"| Carol | 0 | 1 | 0.0% |",
		"**Evaluation unavailable:** 1",
		"*Run run-1*",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Write() output missing %q\n%s", want, out)
		}
	}

	// Worst moves come largest drop first.
	if strings.Index(out, "g2.pgn | 30") > strings.Index(out, "g1.pgn | 12") {
		t.Errorf("Write() blunders not ordered by drop:\n%s", out)
	}
}

func TestTextReport_Write(t *testing.T) {
	var sb strings.Builder
	NewTextReport(&sb).Write(sampleReport())
	out := sb.String()

	for _, want := range []string{
		"Retrospective: Alice",
		"Games analyzed: 3 (skipped 1)",
		"Bob",
		"2-1 (66.7%)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Write() output missing %q\n%s", want, out)
		}
	}
}

func TestWorstBlunders_Truncates(t *testing.T) {
	var blunders []analysis.Blunder
	for i := 0; i < 15; i++ {
		blunders = append(blunders, analysis.Blunder{Move: i + 1, Drop: float64(i) / 100})
	}

	worst := worstBlunders(blunders, 10)
	if len(worst) != 10 {
		t.Fatalf("len(worstBlunders()) = %d, want 10", len(worst))
	}
	if worst[0].Move != 15 {
		t.Errorf("worstBlunders()[0].Move = %d, want 15", worst[0].Move)
	}
	// Input order untouched.
	if blunders[0].Move != 1 {
		t.Errorf("input mutated: blunders[0].Move = %d, want 1", blunders[0].Move)
	}
}
