// Package game implements the chess game state machine on top of the rules
// engine: an append-only history of positions, the result states, and the
// draw rules both automatic and claimable. Game values are immutable; every
// operation returns a new game sharing the already played stages.
package game

import (
	"github.com/simplechess/simplechess-go/internal/chess"
	"github.com/simplechess/simplechess-go/internal/engine"
)

// PlayedMove records one executed half-move: the move itself, its algebraic
// notation, what it captured, the check state it produced and whether the
// mover offered a draw with it.
type PlayedMove struct {
	Move       chess.PieceMove
	SAN        string
	Captured   *chess.Piece
	Check      chess.CheckType
	OffersDraw bool
}

// GameStage is one entry of the game history: the position reached and the
// move that led there. The first stage of a game has no move.
type GameStage struct {
	Position chess.Position
	Played   *PlayedMove
}

// FEN renders the stage's position as a FEN record.
func (s GameStage) FEN() string {
	return engine.FormatFEN(s.Position)
}
