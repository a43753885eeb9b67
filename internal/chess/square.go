package chess

import (
	"github.com/simplechess/simplechess-go/internal/errors"
)

// Square is one board coordinate: rank 1-8, file 'a'-'h'. The zero value is
// not a valid square; construct through NewSquare or ParseSquare.
type Square struct {
	Rank uint8
	File byte
}

// IsInsideBoundaries reports whether rank and file denote a square on the
// board. The file is case-insensitive.
func IsInsideBoundaries(rank uint8, file byte) bool {
	f := lowerFile(file)
	return rank >= 1 && rank <= 8 && f >= 'a' && f <= 'h'
}

// NewSquare builds a square from a numeric rank and an alphabetic file
// (case-insensitive). Out-of-range coordinates fail with ErrInvalidSquare.
func NewSquare(rank uint8, file byte) (Square, error) {
	if !IsInsideBoundaries(rank, file) {
		return Square{}, errors.Wrapf(errors.ErrInvalidSquare, "rank %d file %q", rank, string(file))
	}
	return Square{Rank: rank, File: lowerFile(file)}, nil
}

// ParseSquare parses algebraic square text such as "e4" (case-insensitive).
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, errors.Wrapf(errors.ErrInvalidSquare, "text %q", s)
	}
	rank := s[1] - '0'
	return NewSquare(rank, s[0])
}

// String returns the algebraic notation of the square, e.g. "e4".
func (s Square) String() string {
	return string([]byte{s.File, '0' + s.Rank})
}

// Color returns White for light squares and Black for dark squares
// (a1 is dark).
func (s Square) Color() Color {
	if (s.FileIndex()+s.RankIndex())%2 == 1 {
		return White
	}
	return Black
}

// FileIndex returns the 0-based file index (a=0 .. h=7).
func (s Square) FileIndex() int {
	return int(s.File - 'a')
}

// RankIndex returns the 0-based rank index (rank 1 = 0).
func (s Square) RankIndex() int {
	return int(s.Rank - 1)
}

// Offset returns the square displaced by the given file and rank deltas.
// The boolean is false when the result would leave the board.
func (s Square) Offset(df, dr int) (Square, bool) {
	f := s.FileIndex() + df
	r := s.RankIndex() + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return Square{}, false
	}
	return Square{Rank: uint8(r + 1), File: byte('a' + f)}, true
}

func lowerFile(file byte) byte {
	if file >= 'A' && file <= 'Z' {
		return file + ('a' - 'A')
	}
	return file
}
