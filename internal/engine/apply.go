package engine

import "github.com/simplechess/simplechess-go/internal/chess"

// boardAfterMove derives the placement after move is played. It handles the
// side effects of special moves: the captured pawn of an en passant capture
// is removed, castling relocates the rook, and promotions replace the pawn.
// The move is assumed pseudo-legal for pos.
func boardAfterMove(pos chess.Position, move chess.PieceMove) chess.Board {
	board := pos.Board

	if move.Piece.Type == chess.Pawn && pos.EnPassant != nil && move.To == *pos.EnPassant {
		if _, occupied := board.PieceAt(move.To); !occupied {
			captured := chess.Square{Rank: move.From.Rank, File: move.To.File}
			board = board.Clear(captured)
		}
	}

	if move.Piece.Type == chess.King && fileDistance(move.From, move.To) == 2 {
		rookFrom, rookTo := castlingRookSquares(move)
		rook := chess.Piece{Type: chess.Rook, Color: move.Piece.Color}
		board = board.Clear(rookFrom).Set(rookTo, rook)
	}

	placed := move.Piece
	if move.IsPromotion {
		placed = chess.Piece{Type: move.Promotion, Color: move.Piece.Color}
	}
	return board.Clear(move.From).Set(move.To, placed)
}

// castlingRookSquares returns the rook's origin and destination for a
// castling move, identified by the king's two-square file change.
func castlingRookSquares(move chess.PieceMove) (from, to chess.Square) {
	rank := move.From.Rank
	if move.To.File == 'g' {
		return chess.Square{Rank: rank, File: 'h'}, chess.Square{Rank: rank, File: 'f'}
	}
	return chess.Square{Rank: rank, File: 'a'}, chess.Square{Rank: rank, File: 'd'}
}

// ApplyMove plays move on pos and derives the next position. It returns the
// captured piece, nil for quiet moves; an en passant capture reports the
// captured pawn even though the destination square was empty.
//
// ApplyMove trusts its input: the move must come from LegalMoves for pos.
func ApplyMove(pos chess.Position, move chess.PieceMove) (chess.Position, *chess.Piece) {
	var captured *chess.Piece
	if target, occupied := pos.Board.PieceAt(move.To); occupied {
		captured = &target
	} else if move.Piece.Type == chess.Pawn && pos.EnPassant != nil && move.To == *pos.EnPassant {
		pawn := chess.Piece{Type: chess.Pawn, Color: move.Piece.Color.Opposite()}
		captured = &pawn
	}

	next := chess.Position{
		Board:          boardAfterMove(pos, move),
		ActiveColor:    pos.ActiveColor.Opposite(),
		CastlingRights: castlingRightsAfter(pos, move),
		HalfmoveClock:  pos.HalfmoveClock + 1,
		FullmoveNumber: pos.FullmoveNumber,
	}

	if move.Piece.Type == chess.Pawn || captured != nil {
		next.HalfmoveClock = 0
	}
	if pos.ActiveColor == chess.Black {
		next.FullmoveNumber++
	}

	// A double pawn push exposes the square it skipped to en passant.
	if move.Piece.Type == chess.Pawn && rankDistance(move.From, move.To) == 2 {
		target := chess.Square{Rank: (move.From.Rank + move.To.Rank) / 2, File: move.From.File}
		next.EnPassant = &target
	}

	return next, captured
}

// castlingRightsAfter removes the rights invalidated by move: all rights of
// a color once its king moves, and the matching side once a rook leaves its
// home square or is captured on it.
func castlingRightsAfter(pos chess.Position, move chess.PieceMove) chess.CastlingRights {
	rights := pos.CastlingRights
	if move.Piece.Type == chess.King {
		if move.Piece.Color == chess.White {
			rights = rights.Without(chess.WhiteKingside | chess.WhiteQueenside)
		} else {
			rights = rights.Without(chess.BlackKingside | chess.BlackQueenside)
		}
	}
	for _, sq := range []chess.Square{move.From, move.To} {
		switch sq {
		case chess.Square{Rank: 1, File: 'a'}:
			rights = rights.Without(chess.WhiteQueenside)
		case chess.Square{Rank: 1, File: 'h'}:
			rights = rights.Without(chess.WhiteKingside)
		case chess.Square{Rank: 8, File: 'a'}:
			rights = rights.Without(chess.BlackQueenside)
		case chess.Square{Rank: 8, File: 'h'}:
			rights = rights.Without(chess.BlackKingside)
		}
	}
	return rights
}

func rankDistance(a, b chess.Square) int {
	d := a.RankIndex() - b.RankIndex()
	if d < 0 {
		return -d
	}
	return d
}
