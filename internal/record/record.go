// Package record reads finished-game records from PGN sources.
//
// A Game carries only what the aggregation pipeline needs: participant
// names, the declared result token, the ply count, and the raw PGN text
// for the evaluation oracle. Missing tags are tolerated and surface as
// empty strings; only an unparseable movetext fails the read.
package record

import (
	"bytes"
	"fmt"
	"io"

	"github.com/notnil/chess"
)

// Game is one finished game record, immutable once loaded.
type Game struct {
	// ID is the stable game identity, typically the source path.
	ID string

	// White and Black are the participant names from the PGN tags.
	// Empty when the tag is absent.
	White string
	Black string

	// Result is the declared result token (e.g. "1-0", "0-1", "1/2-1/2").
	// Empty or "*" when the game has no resolvable result.
	Result string

	// TotalMoves is the number of plies played. Zero-length games are
	// legal records and must be handled by callers.
	TotalMoves int

	// PGN is the raw record text, passed through to the oracle.
	PGN []byte
}

// Read parses the first game from r and returns it tagged with id.
func Read(r io.Reader, id string) (*Game, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading record %s: %w", id, err)
	}

	scanner := chess.NewScanner(bytes.NewReader(raw))
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("parsing record %s: %w", id, err)
		}
		return nil, fmt.Errorf("record %s: no game found", id)
	}
	game := scanner.Next()

	g := &Game{
		ID:         id,
		White:      tagValue(game, "White"),
		Black:      tagValue(game, "Black"),
		Result:     tagValue(game, "Result"),
		TotalMoves: len(game.Moves()),
		PGN:        raw,
	}
	return g, nil
}

// tagValue returns the value of a PGN tag, or "" if absent.
func tagValue(g *chess.Game, key string) string {
	tag := g.GetTagPair(key)
	if tag == nil {
		return ""
	}
	return tag.Value
}
