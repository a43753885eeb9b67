// Package chess provides the core value types of the game: colors, pieces,
// squares, moves, boards and position snapshots. Everything in this package
// is immutable value data; derivation helpers return fresh copies.
package chess

// Color represents the colour of a piece or player.
type Color int

const (
	White Color = iota
	Black
)

// String returns the string representation of a color.
func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite color.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// PieceType represents a chess piece type.
type PieceType int

const (
	Pawn PieceType = iota
	Rook
	Knight
	Bishop
	Queen
	King
)

// String returns the string representation of a piece type.
func (p PieceType) String() string {
	names := []string{"Pawn", "Rook", "Knight", "Bishop", "Queen", "King"}
	if int(p) >= 0 && int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the SAN letter for a piece type (uppercase).
// Pawns have no letter in SAN but are rendered 'P' in FEN placement.
func (p PieceType) Letter() byte {
	letters := []byte{'P', 'R', 'N', 'B', 'Q', 'K'}
	if int(p) >= 0 && int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// Piece is a piece type together with its color.
type Piece struct {
	Type  PieceType
	Color Color
}

// String returns e.g. "White Knight".
func (p Piece) String() string {
	return p.Color.String() + " " + p.Type.String()
}

// FENLetter returns the FEN placement letter: uppercase for White,
// lowercase for Black.
func (p Piece) FENLetter() byte {
	letter := p.Type.Letter()
	if p.Color == Black {
		letter += 'a' - 'A'
	}
	return letter
}

// CheckType indicates whether a move gives check or checkmate.
type CheckType int

const (
	NoCheck CheckType = iota
	Check
	Checkmate
)

// String returns the string representation of a check type.
func (c CheckType) String() string {
	switch c {
	case Check:
		return "Check"
	case Checkmate:
		return "Checkmate"
	default:
		return "NoCheck"
	}
}

// CastlingRights is a bitmask of the four castling options. Rights only
// ever decrease over the course of a game; once lost they never return.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside
)

// AllCastlingRights is the full set held at the standard starting position.
const AllCastlingRights = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside

// Has reports whether all rights in mask are still held.
func (r CastlingRights) Has(mask CastlingRights) bool {
	return r&mask == mask
}

// Without returns the rights with mask removed.
func (r CastlingRights) Without(mask CastlingRights) CastlingRights {
	return r &^ mask
}

// String renders the FEN castling field ("KQkq", subsets, or "-").
func (r CastlingRights) String() string {
	if r == 0 {
		return "-"
	}
	buf := make([]byte, 0, 4)
	if r.Has(WhiteKingside) {
		buf = append(buf, 'K')
	}
	if r.Has(WhiteQueenside) {
		buf = append(buf, 'Q')
	}
	if r.Has(BlackKingside) {
		buf = append(buf, 'k')
	}
	if r.Has(BlackQueenside) {
		buf = append(buf, 'q')
	}
	return string(buf)
}
