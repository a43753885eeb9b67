package engine

import "github.com/simplechess/simplechess-go/internal/chess"

// HasInsufficientMaterial reports whether neither side can possibly deliver
// checkmate. The recognized material sets are king versus king, king and
// one minor piece versus king, and king and bishop versus king and bishop
// with both bishops on squares of the same color.
func HasInsufficientMaterial(board chess.Board) bool {
	var minors []chess.SquareAndPiece
	for _, sp := range board.OccupiedSquares() {
		switch sp.Piece.Type {
		case chess.King:
			continue
		case chess.Bishop, chess.Knight:
			minors = append(minors, sp)
		default:
			// A pawn, rook or queen is always enough to mate with.
			return false
		}
	}

	switch len(minors) {
	case 0, 1:
		return true
	case 2:
		a, b := minors[0], minors[1]
		return a.Piece.Type == chess.Bishop && b.Piece.Type == chess.Bishop &&
			a.Piece.Color != b.Piece.Color &&
			a.Square.Color() == b.Square.Color()
	default:
		return false
	}
}
