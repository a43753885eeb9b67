package chess

// Position is one full snapshot of the game state: the placement plus the
// FEN bookkeeping fields. Like Board it is immutable value data; deriving
// the next position always goes through the engine's move application.
type Position struct {
	Board          Board
	ActiveColor    Color
	CastlingRights CastlingRights

	// EnPassant is the capture target square behind a pawn that has just
	// advanced two squares, nil when no en-passant capture is available.
	EnPassant *Square

	// HalfmoveClock counts half-moves since the last capture or pawn
	// advance.
	HalfmoveClock uint16

	// FullmoveNumber starts at 1 and increments after each Black move.
	FullmoveNumber uint16
}
