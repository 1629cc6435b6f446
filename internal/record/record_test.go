package record

import (
	"strings"
	"testing"
)

const samplePGN = `[Event "Test Match"]
[White "Alice"]
[Black "Bob"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 1-0
`

func TestRead(t *testing.T) {
	g, err := Read(strings.NewReader(samplePGN), "games/0001.pgn")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if g.ID != "games/0001.pgn" {
		t.Errorf("ID = %q, want %q", g.ID, "games/0001.pgn")
	}
	if g.White != "Alice" {
		t.Errorf("White = %q, want Alice", g.White)
	}
	if g.Black != "Bob" {
		t.Errorf("Black = %q, want Bob", g.Black)
	}
	if g.Result != "1-0" {
		t.Errorf("Result = %q, want 1-0", g.Result)
	}
	if g.TotalMoves != 5 {
		t.Errorf("TotalMoves = %d, want 5", g.TotalMoves)
	}
	if len(g.PGN) == 0 {
		t.Error("PGN is empty, want raw record text")
	}
}

func TestRead_MissingTags(t *testing.T) {
	pgn := `[Event "Anonymous"]

1. d4 d5 *
`
	g, err := Read(strings.NewReader(pgn), "anon.pgn")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if g.White != "" || g.Black != "" {
		t.Errorf("participants = %q/%q, want empty", g.White, g.Black)
	}
	if g.Result != "" && g.Result != "*" {
		t.Errorf("Result = %q, want empty or *", g.Result)
	}
	if g.TotalMoves != 2 {
		t.Errorf("TotalMoves = %d, want 2", g.TotalMoves)
	}
}

func TestRead_Empty(t *testing.T) {
	if _, err := Read(strings.NewReader(""), "empty.pgn"); err == nil {
		t.Error("Read() error = nil, want error for empty source")
	}
}
