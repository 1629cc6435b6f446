package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/discochess/retrospect/internal/oracle"
	"github.com/discochess/retrospect/internal/record"
)

func TestResolveSide(t *testing.T) {
	g := &record.Game{White: "Alice", Black: "Bob"}

	side, err := ResolveSide(g, "Alice")
	if err != nil || side != White {
		t.Errorf("ResolveSide(Alice) = %v, %v, want White, nil", side, err)
	}

	side, err = ResolveSide(g, "Bob")
	if err != nil || side != Black {
		t.Errorf("ResolveSide(Bob) = %v, %v, want Black, nil", side, err)
	}
}

func TestResolveSide_Ambiguous(t *testing.T) {
	g := &record.Game{White: "Alice", Black: "Bob"}

	if _, err := ResolveSide(g, "Carol"); !errors.Is(err, ErrAmbiguousParticipant) {
		t.Errorf("ResolveSide(Carol) error = %v, want ErrAmbiguousParticipant", err)
	}

	// Exact match only; no case folding.
	if _, err := ResolveSide(g, "alice"); !errors.Is(err, ErrAmbiguousParticipant) {
		t.Errorf("ResolveSide(alice) error = %v, want ErrAmbiguousParticipant", err)
	}

	if _, err := ResolveSide(g, ""); !errors.Is(err, ErrAmbiguousParticipant) {
		t.Errorf("ResolveSide(\"\") error = %v, want ErrAmbiguousParticipant", err)
	}

	// Player occupying both sides cannot be attributed.
	self := &record.Game{White: "Alice", Black: "Alice"}
	if _, err := ResolveSide(self, "Alice"); !errors.Is(err, ErrAmbiguousParticipant) {
		t.Errorf("ResolveSide(self-play) error = %v, want ErrAmbiguousParticipant", err)
	}
}

func TestNormalize_White(t *testing.T) {
	r := &oracle.Report{Moves: []oracle.MoveEval{
		{Move: 1, WinProb: 0.53},
		{Move: 2, WinProb: 0.47},
	}}

	tr := Normalize(r, White)
	if len(tr) != 2 {
		t.Fatalf("len(trajectory) = %d, want 2", len(tr))
	}
	if tr[0].WinProb != 0.53 || tr[1].WinProb != 0.47 {
		t.Errorf("trajectory = %+v, want White perspective unchanged", tr)
	}
}

func TestNormalize_InvolutiveUnderSideSwap(t *testing.T) {
	r := &oracle.Report{Moves: []oracle.MoveEval{
		{Move: 1, WinProb: 0.53},
		{Move: 2, WinProb: 0.47},
		{Move: 4, WinProb: 0.90},
	}}

	white := Normalize(r, White)
	black := Normalize(r, Black)

	for i := range white {
		if black[i].Move != white[i].Move {
			t.Errorf("move index diverged: %d vs %d", black[i].Move, white[i].Move)
		}
		if math.Abs(black[i].WinProb-(1-white[i].WinProb)) > 1e-12 {
			t.Errorf("black[%d] = %v, want %v", i, black[i].WinProb, 1-white[i].WinProb)
		}
	}
}
