// Package dto defines the JSON shapes of the HTTP and websocket surfaces.
package dto

import (
	"github.com/simplechess/simplechess-go/internal/chess"
	"github.com/simplechess/simplechess-go/internal/game"
)

// CreateGameRequest starts a new game, optionally from a FEN position.
type CreateGameRequest struct {
	FEN string `json:"fen,omitempty"`
}

// MoveRequest plays one move by coordinates. Promotion is the lowercase
// piece letter (q, r, b, n) and is required for promoting pawn moves.
type MoveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
	OfferDraw bool   `json:"offer_draw,omitempty"`
}

// Move describes one move in a response.
type Move struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
	SAN       string `json:"san"`
	Captured  string `json:"captured,omitempty"`
	Check     string `json:"check,omitempty"`
}

// GameState is the full client-facing snapshot of a game.
type GameState struct {
	ID            string `json:"id"`
	FEN           string `json:"fen"`
	ActiveColor   string `json:"active_color"`
	State         string `json:"state"`
	DrawReason    string `json:"draw_reason,omitempty"`
	ClaimableDraw string `json:"claimable_draw,omitempty"`
	LastMove      *Move  `json:"last_move,omitempty"`
	StageCount    int    `json:"stage_count"`
}

// HistoryEntry is one stage of the game history.
type HistoryEntry struct {
	Index int    `json:"index"`
	FEN   string `json:"fen"`
	Move  *Move  `json:"move,omitempty"`
}

// LegalMovesResponse lists the legal moves of a position or square.
type LegalMovesResponse struct {
	Moves []Move `json:"moves"`
}

// PerftResponse reports a move-tree node count.
type PerftResponse struct {
	FEN   string `json:"fen"`
	Depth int    `json:"depth"`
	Nodes uint64 `json:"nodes"`
}

// FromPlayedMove converts an executed move.
func FromPlayedMove(p *game.PlayedMove) *Move {
	if p == nil {
		return nil
	}
	m := FromPieceMove(p.Move)
	m.SAN = p.SAN
	if p.Captured != nil {
		m.Captured = p.Captured.String()
	}
	if p.Check != chess.NoCheck {
		m.Check = p.Check.String()
	}
	return &m
}

// FromPieceMove converts a move request or legal move candidate.
func FromPieceMove(move chess.PieceMove) Move {
	m := Move{From: move.From.String(), To: move.To.String()}
	if move.IsPromotion {
		m.Promotion = string([]byte{move.Promotion.Letter() + ('a' - 'A')})
	}
	return m
}

// FromGame builds the full snapshot of a game.
func FromGame(id string, g *game.Game) GameState {
	stage := g.CurrentStage()
	state := GameState{
		ID:          id,
		FEN:         stage.FEN(),
		ActiveColor: g.ActiveColor().String(),
		State:       g.State().String(),
		LastMove:    FromPlayedMove(stage.Played),
		StageCount:  g.StageCount(),
	}
	if reason, err := g.DrawReason(); err == nil {
		state.DrawReason = reason.String()
	}
	if reason, ok := g.ReasonToClaimDraw(); ok {
		state.ClaimableDraw = reason.String()
	}
	return state
}

// FromHistory converts the stage history.
func FromHistory(stages []game.GameStage) []HistoryEntry {
	entries := make([]HistoryEntry, len(stages))
	for i, stage := range stages {
		entries[i] = HistoryEntry{
			Index: i,
			FEN:   stage.FEN(),
			Move:  FromPlayedMove(stage.Played),
		}
	}
	return entries
}
