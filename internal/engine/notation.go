package engine

import (
	"strings"

	"github.com/simplechess/simplechess-go/internal/chess"
)

// SAN renders move in standard algebraic notation against the position it
// was played from. check is the state the move put the opponent in and
// selects the "+" or "#" suffix.
//
// Disambiguation is minimal: the originating file when it is unique among
// the ambiguous candidates, the rank when the file is not, and both
// otherwise.
func SAN(pos chess.Position, move chess.PieceMove, check chess.CheckType) string {
	var b strings.Builder

	switch {
	case move.Piece.Type == chess.King && fileDistance(move.From, move.To) == 2:
		if move.To.File == 'g' {
			b.WriteString("O-O")
		} else {
			b.WriteString("O-O-O")
		}

	case move.Piece.Type == chess.Pawn:
		capture := isCapture(pos, move)
		if capture {
			b.WriteByte(move.From.File)
			b.WriteByte('x')
		}
		b.WriteString(move.To.String())
		if move.IsPromotion {
			b.WriteByte('=')
			b.WriteByte(move.Promotion.Letter())
		}

	default:
		b.WriteByte(move.Piece.Type.Letter())
		b.WriteString(disambiguation(pos, move))
		if isCapture(pos, move) {
			b.WriteByte('x')
		}
		b.WriteString(move.To.String())
	}

	switch check {
	case chess.Check:
		b.WriteByte('+')
	case chess.Checkmate:
		b.WriteByte('#')
	}
	return b.String()
}

// isCapture reports whether move takes a piece, including en passant.
func isCapture(pos chess.Position, move chess.PieceMove) bool {
	if _, occupied := pos.Board.PieceAt(move.To); occupied {
		return true
	}
	return move.Piece.Type == chess.Pawn && pos.EnPassant != nil && move.To == *pos.EnPassant
}

// disambiguation returns the origin-square fragment needed to tell move
// apart from other legal moves of the same piece type to the same square.
func disambiguation(pos chess.Position, move chess.PieceMove) string {
	var rivals []chess.Square
	for _, other := range LegalMoves(pos) {
		if other.From == move.From {
			continue
		}
		if other.Piece.Type == move.Piece.Type && other.To == move.To {
			rivals = append(rivals, other.From)
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	fileUnique, rankUnique := true, true
	for _, rival := range rivals {
		if rival.File == move.From.File {
			fileUnique = false
		}
		if rival.Rank == move.From.Rank {
			rankUnique = false
		}
	}
	switch {
	case fileUnique:
		return string([]byte{move.From.File})
	case rankUnique:
		return string([]byte{'0' + move.From.Rank})
	default:
		return move.From.String()
	}
}
