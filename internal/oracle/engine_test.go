package oracle

import (
	"context"
	"errors"
	"testing"

	"github.com/discochess/retrospect/internal/record"
)

func TestParseReport(t *testing.T) {
	out := []byte(`{"move":1,"winprob":0.53}
{"move":2,"winprob":0.47}

{"move":3,"winprob":0.61}
`)
	report, err := ParseReport(out)
	if err != nil {
		t.Fatalf("ParseReport() error = %v", err)
	}

	if len(report.Moves) != 3 {
		t.Fatalf("len(Moves) = %d, want 3", len(report.Moves))
	}
	if report.Moves[2].Move != 3 || report.Moves[2].WinProb != 0.61 {
		t.Errorf("Moves[2] = %+v, want {3 0.61}", report.Moves[2])
	}
}

func TestParseReport_MalformedLineFailsWholeReport(t *testing.T) {
	out := []byte(`{"move":1,"winprob":0.53}
not json
{"move":3,"winprob":0.61}
`)
	_, err := ParseReport(out)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("ParseReport() error = %v, want ErrUnavailable", err)
	}
}

func TestParseReport_RejectsOutOfRangeProbability(t *testing.T) {
	_, err := ParseReport([]byte(`{"move":1,"winprob":1.5}`))
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("ParseReport() error = %v, want ErrUnavailable", err)
	}
}

func TestParseReport_RejectsNonPositiveMove(t *testing.T) {
	_, err := ParseReport([]byte(`{"move":0,"winprob":0.5}`))
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("ParseReport() error = %v, want ErrUnavailable", err)
	}
}

func TestParseReport_Empty(t *testing.T) {
	report, err := ParseReport(nil)
	if err != nil {
		t.Fatalf("ParseReport() error = %v", err)
	}
	if len(report.Moves) != 0 {
		t.Errorf("len(Moves) = %d, want 0", len(report.Moves))
	}
}

func TestEngine_MissingBinary(t *testing.T) {
	e := NewEngine("/nonexistent/engine-binary")
	g := &record.Game{ID: "x.pgn", PGN: []byte("1. e4 e5 *")}

	_, err := e.Evaluate(context.Background(), g)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Evaluate() error = %v, want ErrUnavailable", err)
	}
}
