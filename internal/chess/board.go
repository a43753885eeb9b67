package chess

import (
	"github.com/simplechess/simplechess-go/internal/errors"
)

// MaxPieces is the largest number of pieces a board may hold.
const MaxPieces = 32

// SquareAndPiece pairs an occupied square with the piece standing on it.
type SquareAndPiece struct {
	Square Square
	Piece  Piece
}

// Board is one immutable placement snapshot. The zero value is an empty
// board. Derivation methods (Set, Clear) return fresh copies; a Board value
// is never mutated after construction.
//
// Pieces are stored as one encoded byte per square so that copying a board
// is a plain value assignment.
type Board struct {
	squares [64]byte
}

// encodePiece packs a piece into a non-zero byte (zero means empty).
func encodePiece(p Piece) byte {
	return byte(int(p.Type)+1)<<1 | byte(p.Color)
}

// decodePiece unpacks a byte produced by encodePiece.
func decodePiece(b byte) Piece {
	return Piece{Type: PieceType(b>>1) - 1, Color: Color(b & 1)}
}

func squareIndex(sq Square) int {
	return sq.RankIndex()*8 + sq.FileIndex()
}

// NewBoard builds a board from an explicit placement. It rejects placements
// with more than MaxPieces pieces or more than one king per color.
func NewBoard(placement map[Square]Piece) (Board, error) {
	if len(placement) > MaxPieces {
		return Board{}, errors.Wrapf(errors.ErrInvalidBoard, "%d pieces", len(placement))
	}
	var b Board
	kings := map[Color]int{}
	for sq, piece := range placement {
		if !IsInsideBoundaries(sq.Rank, sq.File) {
			return Board{}, errors.Wrapf(errors.ErrInvalidBoard, "square %v off the board", sq)
		}
		if piece.Type == King {
			kings[piece.Color]++
			if kings[piece.Color] > 1 {
				return Board{}, errors.Wrapf(errors.ErrInvalidBoard, "multiple %s kings", piece.Color)
			}
		}
		b.squares[squareIndex(sq)] = encodePiece(piece)
	}
	return b, nil
}

// PieceAt returns the piece on sq. The boolean is false for empty squares;
// querying an empty square is not an error.
func (b Board) PieceAt(sq Square) (Piece, bool) {
	enc := b.squares[squareIndex(sq)]
	if enc == 0 {
		return Piece{}, false
	}
	return decodePiece(enc), true
}

// OccupiedSquares enumerates every occupied square with its piece. The order
// is fixed: rank 1 to 8, file a to h.
func (b Board) OccupiedSquares() []SquareAndPiece {
	result := make([]SquareAndPiece, 0, MaxPieces)
	for i, enc := range b.squares {
		if enc == 0 {
			continue
		}
		sq := Square{Rank: uint8(i/8) + 1, File: byte('a' + i%8)}
		result = append(result, SquareAndPiece{Square: sq, Piece: decodePiece(enc)})
	}
	return result
}

// PieceCount returns the number of pieces on the board.
func (b Board) PieceCount() int {
	count := 0
	for _, enc := range b.squares {
		if enc != 0 {
			count++
		}
	}
	return count
}

// KingSquare returns the square of the given color's king.
func (b Board) KingSquare(color Color) (Square, bool) {
	want := encodePiece(Piece{Type: King, Color: color})
	for i, enc := range b.squares {
		if enc == want {
			return Square{Rank: uint8(i/8) + 1, File: byte('a' + i%8)}, true
		}
	}
	return Square{}, false
}

// Set returns a copy of the board with piece placed on sq, replacing
// whatever stood there.
func (b Board) Set(sq Square, piece Piece) Board {
	b.squares[squareIndex(sq)] = encodePiece(piece)
	return b
}

// Clear returns a copy of the board with sq emptied.
func (b Board) Clear(sq Square) Board {
	b.squares[squareIndex(sq)] = 0
	return b
}
