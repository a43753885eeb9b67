package engine

import "github.com/simplechess/simplechess-go/internal/chess"

var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// pawnDirection is the rank delta a pawn of the given color advances by.
func pawnDirection(color chess.Color) int {
	if color == chess.White {
		return 1
	}
	return -1
}

// IsSquareAttacked reports whether any piece of the given color attacks the
// target square. Occupancy of the target itself does not matter; this is the
// raw attack relation used for check detection and castling legality.
func IsSquareAttacked(board chess.Board, target chess.Square, by chess.Color) bool {
	// Pawn attacks come from one rank behind the target, relative to the
	// attacker's direction of travel.
	dir := pawnDirection(by)
	for _, df := range []int{-1, 1} {
		if from, ok := target.Offset(df, -dir); ok {
			if piece, occupied := board.PieceAt(from); occupied &&
				piece.Color == by && piece.Type == chess.Pawn {
				return true
			}
		}
	}

	for _, off := range knightOffsets {
		if from, ok := target.Offset(off[0], off[1]); ok {
			if piece, occupied := board.PieceAt(from); occupied &&
				piece.Color == by && piece.Type == chess.Knight {
				return true
			}
		}
	}

	for _, off := range kingOffsets {
		if from, ok := target.Offset(off[0], off[1]); ok {
			if piece, occupied := board.PieceAt(from); occupied &&
				piece.Color == by && piece.Type == chess.King {
				return true
			}
		}
	}

	if slidingAttack(board, target, by, diagonalDirs, chess.Bishop) {
		return true
	}
	return slidingAttack(board, target, by, straightDirs, chess.Rook)
}

// slidingAttack scans outward along each direction until a piece or the board
// edge stops the ray. slider is the non-queen piece type that moves along
// these directions; queens attack along both kinds of ray.
func slidingAttack(board chess.Board, target chess.Square, by chess.Color, dirs [4][2]int, slider chess.PieceType) bool {
	for _, dir := range dirs {
		square := target
		for {
			next, ok := square.Offset(dir[0], dir[1])
			if !ok {
				break
			}
			square = next
			piece, occupied := board.PieceAt(square)
			if !occupied {
				continue
			}
			if piece.Color == by && (piece.Type == slider || piece.Type == chess.Queen) {
				return true
			}
			break
		}
	}
	return false
}

// IsInCheck reports whether the king of the given color is attacked.
// A board without that king is never in check.
func IsInCheck(board chess.Board, color chess.Color) bool {
	king, ok := board.KingSquare(color)
	if !ok {
		return false
	}
	return IsSquareAttacked(board, king, color.Opposite())
}
