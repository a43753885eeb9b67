package testutil

import (
	"testing"

	"github.com/simplechess/simplechess-go/internal/chess"
	"github.com/simplechess/simplechess-go/internal/engine"
)

// MustParsePosition parses a FEN string and returns the position.
// It calls t.Fatal when the FEN does not parse; use it in test setup.
func MustParsePosition(t *testing.T, fen string) chess.Position {
	t.Helper()
	pos, err := engine.ParseFEN(fen)
	if err != nil {
		t.Fatalf("failed to parse test FEN %q: %v", fen, err)
	}
	return pos
}

// MustParseSquare parses algebraic square text, aborting the test on failure.
func MustParseSquare(t *testing.T, text string) chess.Square {
	t.Helper()
	sq, err := chess.ParseSquare(text)
	if err != nil {
		t.Fatalf("failed to parse square %q: %v", text, err)
	}
	return sq
}

// FindMove locates the legal move from one square to another, aborting the
// test when no such move exists. Promotions are matched by the promoted
// piece type.
func FindMove(t *testing.T, pos chess.Position, from, to string, promotion ...chess.PieceType) chess.PieceMove {
	t.Helper()
	fromSq := MustParseSquare(t, from)
	toSq := MustParseSquare(t, to)
	for _, move := range engine.LegalMovesFrom(pos, fromSq) {
		if move.To != toSq {
			continue
		}
		if len(promotion) > 0 {
			if !move.IsPromotion || move.Promotion != promotion[0] {
				continue
			}
		} else if move.IsPromotion {
			continue
		}
		return move
	}
	t.Fatalf("no legal move %s%s in %q", from, to, engine.FormatFEN(pos))
	return chess.PieceMove{}
}
