package game

import (
	"github.com/simplechess/simplechess-go/internal/chess"
	"github.com/simplechess/simplechess-go/internal/engine"
	"github.com/simplechess/simplechess-go/internal/errors"
	"github.com/simplechess/simplechess-go/internal/hashing"
)

// Game is an immutable chess game: the full stage history, the result state
// and the repetition bookkeeping. Operations never mutate a game; they
// return the successor game, so older values stay valid snapshots.
type Game struct {
	stages      []GameStage
	state       State
	drawReason  DrawReason
	repetitions hashing.RepetitionTable
}

// New starts a game from the standard initial position.
func New() *Game {
	return fromPosition(engine.InitialPosition())
}

// FromFEN starts a game from an arbitrary position. The position is
// evaluated on import: a FEN describing a checkmate, stalemate or otherwise
// automatically drawn position yields a game that is already over.
func FromFEN(fen string) (*Game, error) {
	pos, err := engine.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return fromPosition(pos), nil
}

func fromPosition(pos chess.Position) *Game {
	g := &Game{
		stages:      []GameStage{{Position: pos}},
		repetitions: hashing.NewRepetitionTable(pos),
	}
	g.state, g.drawReason = evaluate(pos, g.repetitions)
	return g
}

// CurrentStage returns the latest stage of the history.
func (g *Game) CurrentStage() GameStage {
	return g.stages[len(g.stages)-1]
}

// CurrentPosition returns the latest position.
func (g *Game) CurrentPosition() chess.Position {
	return g.CurrentStage().Position
}

// ActiveColor returns the color to move in the current position.
func (g *Game) ActiveColor() chess.Color {
	return g.CurrentPosition().ActiveColor
}

// State returns the result state of the game.
func (g *Game) State() State {
	return g.state
}

// DrawReason returns why the game is drawn. Calling it on a game that is
// not drawn fails with ErrNotDrawn.
func (g *Game) DrawReason() (DrawReason, error) {
	if g.state != Drawn {
		return 0, errors.Wrapf(errors.ErrNotDrawn, "state is %s", g.state)
	}
	return g.drawReason, nil
}

// History returns the stage history from the first position to the current
// one. The returned slice is a copy.
func (g *Game) History() []GameStage {
	history := make([]GameStage, len(g.stages))
	copy(history, g.stages)
	return history
}

// StageCount returns the number of stages, always at least one.
func (g *Game) StageCount() int {
	return len(g.stages)
}

// StageAt returns the stage at the given index, zero being the position the
// game started from. Out-of-range indexes fail with ErrIndexOutOfRange.
func (g *Game) StageAt(index int) (GameStage, error) {
	if index < 0 || index >= len(g.stages) {
		return GameStage{}, errors.Wrapf(errors.ErrIndexOutOfRange, "index %d of %d stages", index, len(g.stages))
	}
	return g.stages[index], nil
}

// LegalMoves returns the legal moves in the current position, empty when
// the game is over.
func (g *Game) LegalMoves() []chess.PieceMove {
	if g.state != Ongoing {
		return nil
	}
	return engine.LegalMoves(g.CurrentPosition())
}

// LegalMovesFrom returns the legal moves of the piece on the given square.
func (g *Game) LegalMovesFrom(from chess.Square) []chess.PieceMove {
	if g.state != Ongoing {
		return nil
	}
	return engine.LegalMovesFrom(g.CurrentPosition(), from)
}

// MakeMove plays a move and returns the successor game. offersDraw tags the
// move with a draw offer the opponent may accept via ClaimDraw. Moving in a
// finished game fails with ErrGameOver, an illegal move with ErrIllegalMove.
func (g *Game) MakeMove(move chess.PieceMove, offersDraw bool) (*Game, error) {
	if g.state != Ongoing {
		return nil, errors.Wrapf(errors.ErrGameOver, "state is %s", g.state)
	}

	pos := g.CurrentPosition()
	if !moveIsLegal(pos, move) {
		return nil, errors.Wrapf(errors.ErrIllegalMove, "%s", move)
	}

	next, captured := engine.ApplyMove(pos, move)

	check := chess.NoCheck
	if engine.IsInCheck(next.Board, next.ActiveColor) {
		check = chess.Check
		if !engine.HasLegalMoves(next) {
			check = chess.Checkmate
		}
	}

	played := &PlayedMove{
		Move:       move,
		SAN:        engine.SAN(pos, move, check),
		Captured:   captured,
		Check:      check,
		OffersDraw: offersDraw,
	}

	stages := make([]GameStage, len(g.stages), len(g.stages)+1)
	copy(stages, g.stages)
	stages = append(stages, GameStage{Position: next, Played: played})

	successor := &Game{
		stages:      stages,
		repetitions: g.repetitions.Extend(next),
	}
	successor.state, successor.drawReason = evaluate(next, successor.repetitions)
	return successor, nil
}

// ReasonToClaimDraw returns the reason the active player may claim a draw
// right now, or false when no claim is available. An accepted offer takes
// precedence over threefold repetition, which takes precedence over the
// fifty-move rule.
func (g *Game) ReasonToClaimDraw() (DrawReason, bool) {
	if g.state != Ongoing {
		return 0, false
	}
	stage := g.CurrentStage()
	if stage.Played != nil && stage.Played.OffersDraw {
		return OfferedAndAccepted, true
	}
	if g.repetitions.Count(stage.Position) >= 3 {
		return ThreeFoldRepetition, true
	}
	if stage.Position.HalfmoveClock >= 100 {
		return FiftyMoveRule, true
	}
	return 0, false
}

// ClaimDraw ends the game in a draw when a claim is available, failing with
// ErrNoDrawToClaim otherwise.
func (g *Game) ClaimDraw() (*Game, error) {
	reason, ok := g.ReasonToClaimDraw()
	if !ok {
		if g.state != Ongoing {
			return nil, errors.Wrapf(errors.ErrGameOver, "state is %s", g.state)
		}
		return nil, errors.Wrap(errors.ErrNoDrawToClaim, g.CurrentStage().FEN())
	}
	successor := g.withSameHistory()
	successor.state = Drawn
	successor.drawReason = reason
	return successor, nil
}

// Resign ends the game with resigner giving up; the opponent wins. Either
// side may resign, regardless of whose turn it is. Resigning a finished
// game fails with ErrGameOver.
func (g *Game) Resign(resigner chess.Color) (*Game, error) {
	if g.state != Ongoing {
		return nil, errors.Wrapf(errors.ErrGameOver, "state is %s", g.state)
	}
	successor := g.withSameHistory()
	if resigner == chess.White {
		successor.state = BlackWon
	} else {
		successor.state = WhiteWon
	}
	return successor, nil
}

// withSameHistory clones the game envelope without extending the history.
func (g *Game) withSameHistory() *Game {
	return &Game{
		stages:      g.stages,
		state:       g.state,
		drawReason:  g.drawReason,
		repetitions: g.repetitions,
	}
}

// moveIsLegal reports whether move is among the legal moves of its origin
// square.
func moveIsLegal(pos chess.Position, move chess.PieceMove) bool {
	for _, legal := range engine.LegalMovesFrom(pos, move.From) {
		if legal == move {
			return true
		}
	}
	return false
}

// evaluate derives the automatic result of a position: checkmate and
// stalemate first, then the draws that need no claim. Fivefold repetition
// and the seventy-five move rule end the game on their own; their weaker
// three-fold and fifty-move forms only open a claim.
func evaluate(pos chess.Position, repetitions hashing.RepetitionTable) (State, DrawReason) {
	if !engine.HasLegalMoves(pos) {
		if engine.IsInCheck(pos.Board, pos.ActiveColor) {
			if pos.ActiveColor == chess.White {
				return BlackWon, 0
			}
			return WhiteWon, 0
		}
		return Drawn, Stalemate
	}
	if engine.HasInsufficientMaterial(pos.Board) {
		return Drawn, InsufficientMaterial
	}
	if repetitions.Count(pos) >= 5 {
		return Drawn, FiveFoldRepetition
	}
	if pos.HalfmoveClock >= 150 {
		return Drawn, SeventyFiveMoveRule
	}
	return Ongoing, 0
}
