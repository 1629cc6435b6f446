package analysis

import (
	"math"
	"testing"
)

func TestBinIndex_AlwaysInRange(t *testing.T) {
	for total := 1; total <= 120; total++ {
		for move := 1; move <= total; move++ {
			idx := BinIndex(move, total, DefaultBinCount)
			if idx < 0 || idx > 9 {
				t.Fatalf("BinIndex(%d, %d, 10) = %d, want [0,9]", move, total, idx)
			}
		}
	}
}

func TestBinIndex_FinalMoveClamps(t *testing.T) {
	// move == total gives fraction 1.0, which must clamp to the last
	// bucket, not index past it.
	if got := BinIndex(40, 40, 10); got != 9 {
		t.Errorf("BinIndex(40, 40, 10) = %d, want 9", got)
	}
	if got := BinIndex(1, 1, 10); got != 9 {
		t.Errorf("BinIndex(1, 1, 10) = %d, want 9", got)
	}
}

func TestBinIndex_Boundaries(t *testing.T) {
	tests := []struct {
		move, total, count int
		want               int
	}{
		{1, 100, 10, 0},
		{10, 100, 10, 1}, // exactly 0.1 rounds into the second bucket
		{9, 100, 10, 0},
		{50, 100, 10, 5},
		{99, 100, 10, 9},
		{3, 4, 4, 3},
	}
	for _, tt := range tests {
		if got := BinIndex(tt.move, tt.total, tt.count); got != tt.want {
			t.Errorf("BinIndex(%d, %d, %d) = %d, want %d",
				tt.move, tt.total, tt.count, got, tt.want)
		}
	}
}

func TestMeanByBin(t *testing.T) {
	samples := [][]float64{
		{0.4, 0.6},
		nil,
		{0.25},
	}
	means := MeanByBin(samples)

	if len(means) != 3 {
		t.Fatalf("len(means) = %d, want 3", len(means))
	}
	if math.Abs(means[0]-0.5) > 1e-12 {
		t.Errorf("means[0] = %v, want 0.5", means[0])
	}
	if means[1] != 0.0 {
		t.Errorf("means[1] = %v, want 0.0 for empty bucket", means[1])
	}
	if means[2] != 0.25 {
		t.Errorf("means[2] = %v, want 0.25", means[2])
	}
}

func TestPhaseOf(t *testing.T) {
	b := DefaultBoundaries
	tests := []struct {
		frac float64
		want Phase
	}{
		{0.0, PhaseOpening},
		{0.24, PhaseOpening},
		{0.25, PhaseMiddlegame},
		{0.74, PhaseMiddlegame},
		{0.75, PhaseEndgame},
		{1.0, PhaseEndgame},
	}
	for _, tt := range tests {
		if got := phaseOf(tt.frac, b); got != tt.want {
			t.Errorf("phaseOf(%v) = %v, want %v", tt.frac, got, tt.want)
		}
	}
}
