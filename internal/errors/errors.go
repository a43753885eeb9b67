// Package errors provides sentinel errors and error classification for the
// chess engine. Every failure produced by the core maps onto one of two
// kind roots, ErrInvalidArgument or ErrIllegalState, so that callers can
// classify with a single errors.Is() while still matching the more specific
// sentinel when they care about the exact condition.
package errors

import (
	"errors"
	"fmt"
)

// Kind roots. Specific sentinels below wrap one of these two.
var (
	// ErrInvalidArgument indicates input that could never be valid,
	// independent of any game state.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIllegalState indicates an action that is not permitted for the
	// current game value (terminal game, illegal move, unfounded claim).
	ErrIllegalState = errors.New("illegal state")
)

// Specific sentinels. Use errors.Is() against either the sentinel itself or
// its kind root.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = fmt.Errorf("%w: invalid FEN string", ErrInvalidArgument)

	// ErrInvalidSquare indicates rank/file coordinates or algebraic text
	// outside the board.
	ErrInvalidSquare = fmt.Errorf("%w: invalid square", ErrInvalidArgument)

	// ErrInvalidPromotion indicates a promotion to pawn or king, or a
	// promotion move built for a non-pawn piece.
	ErrInvalidPromotion = fmt.Errorf("%w: invalid promotion", ErrInvalidArgument)

	// ErrInvalidBoard indicates a piece placement that violates board
	// invariants (too many pieces, duplicate kings).
	ErrInvalidBoard = fmt.Errorf("%w: invalid board", ErrInvalidArgument)

	// ErrIndexOutOfRange indicates a history index past the end of a game.
	ErrIndexOutOfRange = fmt.Errorf("%w: index out of range", ErrInvalidArgument)

	// ErrGameNotFound indicates a game identifier unknown to the registry.
	ErrGameNotFound = fmt.Errorf("%w: game not found", ErrInvalidArgument)

	// ErrIllegalMove indicates a move that is not legal in the current
	// position.
	ErrIllegalMove = fmt.Errorf("%w: illegal move", ErrIllegalState)

	// ErrGameOver indicates an action attempted on a finished game.
	ErrGameOver = fmt.Errorf("%w: game is over", ErrIllegalState)

	// ErrNoDrawToClaim indicates a draw claim without a qualifying reason.
	ErrNoDrawToClaim = fmt.Errorf("%w: no draw to claim", ErrIllegalState)

	// ErrNotDrawn indicates a draw-reason query on a game that was not
	// drawn.
	ErrNotDrawn = fmt.Errorf("%w: game is not drawn", ErrIllegalState)
)

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
