package chess

import (
	"github.com/simplechess/simplechess-go/internal/errors"
)

// PieceMove describes a requested move: which piece, from where, to where,
// and (for pawns reaching the last rank) the promotion target. It represents
// intent only; legality is decided by the move generator.
type PieceMove struct {
	Piece       Piece
	From        Square
	To          Square
	Promotion   PieceType
	IsPromotion bool
}

// RegularMove builds a non-promotion move. Castling is expressed as the
// king's two-square move.
func RegularMove(piece Piece, from, to Square) PieceMove {
	return PieceMove{Piece: piece, From: from, To: to}
}

// PawnPromotion builds a promotion move. The piece must be a pawn and the
// promoted type one of Rook, Knight, Bishop or Queen; anything else fails
// with ErrInvalidPromotion.
func PawnPromotion(piece Piece, from, to Square, promoted PieceType) (PieceMove, error) {
	if piece.Type != Pawn {
		return PieceMove{}, errors.Wrapf(errors.ErrInvalidPromotion, "%s cannot promote", piece.Type)
	}
	switch promoted {
	case Rook, Knight, Bishop, Queen:
	default:
		return PieceMove{}, errors.Wrapf(errors.ErrInvalidPromotion, "cannot promote to %s", promoted)
	}
	return PieceMove{Piece: piece, From: from, To: to, Promotion: promoted, IsPromotion: true}, nil
}

// String renders the move in coordinate form, e.g. "e2e4" or "e7e8q".
func (m PieceMove) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion {
		s += string([]byte{m.Promotion.Letter() + ('a' - 'A')})
	}
	return s
}
