// Package engine implements the rules of chess over the immutable value
// types of the chess package: legal move generation, move application, FEN
// parsing and formatting, algebraic notation and the draw-material rules.
// Every function is pure; positions go in, fresh positions come out.
package engine

import "github.com/simplechess/simplechess-go/internal/chess"

// promotionTypes lists the pieces a pawn may promote to, in enumeration
// order. Promotion candidate moves expand into one move per entry.
var promotionTypes = [4]chess.PieceType{chess.Rook, chess.Knight, chess.Bishop, chess.Queen}

// LegalMoves returns every legal move for the active color. The order is
// deterministic: origin squares rank 1 to 8 and file a to h, destinations in
// a fixed per-piece scan order, promotions expanded in enumeration order.
func LegalMoves(pos chess.Position) []chess.PieceMove {
	var moves []chess.PieceMove
	for _, sp := range pos.Board.OccupiedSquares() {
		if sp.Piece.Color != pos.ActiveColor {
			continue
		}
		moves = append(moves, legalMovesOf(pos, sp.Square, sp.Piece)...)
	}
	return moves
}

// LegalMovesFrom returns the legal moves of the piece on from, or nil when
// the square is empty or holds an opponent piece.
func LegalMovesFrom(pos chess.Position, from chess.Square) []chess.PieceMove {
	piece, ok := pos.Board.PieceAt(from)
	if !ok || piece.Color != pos.ActiveColor {
		return nil
	}
	return legalMovesOf(pos, from, piece)
}

// HasLegalMoves reports whether the active color has at least one legal
// move. It stops at the first one found.
func HasLegalMoves(pos chess.Position) bool {
	for _, sp := range pos.Board.OccupiedSquares() {
		if sp.Piece.Color != pos.ActiveColor {
			continue
		}
		if len(legalMovesOf(pos, sp.Square, sp.Piece)) > 0 {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the active color is checkmated.
func IsCheckmate(pos chess.Position) bool {
	return IsInCheck(pos.Board, pos.ActiveColor) && !HasLegalMoves(pos)
}

// IsStalemate reports whether the active color is stalemated.
func IsStalemate(pos chess.Position) bool {
	return !IsInCheck(pos.Board, pos.ActiveColor) && !HasLegalMoves(pos)
}

// legalMovesOf generates the pseudo-legal moves of one piece and filters out
// those that leave its own king attacked.
func legalMovesOf(pos chess.Position, from chess.Square, piece chess.Piece) []chess.PieceMove {
	var pseudo []chess.PieceMove
	switch piece.Type {
	case chess.Pawn:
		pseudo = pawnMoves(pos, from, piece)
	case chess.Knight:
		pseudo = offsetMoves(pos, from, piece, knightOffsets[:])
	case chess.Bishop:
		pseudo = slidingMoves(pos, from, piece, diagonalDirs[:])
	case chess.Rook:
		pseudo = slidingMoves(pos, from, piece, straightDirs[:])
	case chess.Queen:
		pseudo = slidingMoves(pos, from, piece, diagonalDirs[:])
		pseudo = append(pseudo, slidingMoves(pos, from, piece, straightDirs[:])...)
	case chess.King:
		pseudo = offsetMoves(pos, from, piece, kingOffsets[:])
		pseudo = append(pseudo, castlingMoves(pos, from, piece)...)
	}

	legal := pseudo[:0]
	for _, move := range pseudo {
		// Castling legality is fully verified during generation.
		if piece.Type == chess.King && fileDistance(move.From, move.To) == 2 {
			legal = append(legal, move)
			continue
		}
		after := boardAfterMove(pos, move)
		if !IsInCheck(after, piece.Color) {
			legal = append(legal, move)
		}
	}
	return legal
}

// offsetMoves generates fixed-offset moves (knight, king steps) onto empty
// or opponent-held squares.
func offsetMoves(pos chess.Position, from chess.Square, piece chess.Piece, offsets [][2]int) []chess.PieceMove {
	var moves []chess.PieceMove
	for _, off := range offsets {
		to, ok := from.Offset(off[0], off[1])
		if !ok {
			continue
		}
		if target, occupied := pos.Board.PieceAt(to); occupied && target.Color == piece.Color {
			continue
		}
		moves = append(moves, chess.RegularMove(piece, from, to))
	}
	return moves
}

// slidingMoves generates ray moves, stopping at the first occupied square
// and including a capture when that square holds an opponent piece.
func slidingMoves(pos chess.Position, from chess.Square, piece chess.Piece, dirs [][2]int) []chess.PieceMove {
	var moves []chess.PieceMove
	for _, dir := range dirs {
		square := from
		for {
			to, ok := square.Offset(dir[0], dir[1])
			if !ok {
				break
			}
			square = to
			target, occupied := pos.Board.PieceAt(to)
			if occupied {
				if target.Color != piece.Color {
					moves = append(moves, chess.RegularMove(piece, from, to))
				}
				break
			}
			moves = append(moves, chess.RegularMove(piece, from, to))
		}
	}
	return moves
}

// pawnMoves generates pushes, double pushes, diagonal captures and en
// passant captures, expanding last-rank arrivals into one move per
// promotion type.
func pawnMoves(pos chess.Position, from chess.Square, piece chess.Piece) []chess.PieceMove {
	var moves []chess.PieceMove
	dir := pawnDirection(piece.Color)

	appendMove := func(to chess.Square) {
		if to.Rank == 1 || to.Rank == 8 {
			for _, promoted := range promotionTypes {
				promo, err := chess.PawnPromotion(piece, from, to, promoted)
				if err != nil {
					continue
				}
				moves = append(moves, promo)
			}
			return
		}
		moves = append(moves, chess.RegularMove(piece, from, to))
	}

	if to, ok := from.Offset(0, dir); ok {
		if _, occupied := pos.Board.PieceAt(to); !occupied {
			appendMove(to)
			startRank := uint8(2)
			if piece.Color == chess.Black {
				startRank = 7
			}
			if from.Rank == startRank {
				if to2, ok := from.Offset(0, 2*dir); ok {
					if _, occupied := pos.Board.PieceAt(to2); !occupied {
						appendMove(to2)
					}
				}
			}
		}
	}

	for _, df := range []int{-1, 1} {
		to, ok := from.Offset(df, dir)
		if !ok {
			continue
		}
		if target, occupied := pos.Board.PieceAt(to); occupied && target.Color != piece.Color {
			appendMove(to)
			continue
		}
		if pos.EnPassant != nil && to == *pos.EnPassant {
			appendMove(to)
		}
	}
	return moves
}

// castlingMoves generates the king's two-square castling moves. All
// conditions are verified here: the right is still held, the path is empty,
// the rook stands on its home square, and the king is not in check and does
// not pass through or land on an attacked square.
func castlingMoves(pos chess.Position, from chess.Square, piece chess.Piece) []chess.PieceMove {
	homeRank := uint8(1)
	kingside := chess.WhiteKingside
	queenside := chess.WhiteQueenside
	if piece.Color == chess.Black {
		homeRank = 8
		kingside = chess.BlackKingside
		queenside = chess.BlackQueenside
	}
	if from != (chess.Square{Rank: homeRank, File: 'e'}) {
		return nil
	}

	enemy := piece.Color.Opposite()
	if IsSquareAttacked(pos.Board, from, enemy) {
		return nil
	}

	var moves []chess.PieceMove
	if pos.CastlingRights.Has(kingside) &&
		rookAt(pos.Board, chess.Square{Rank: homeRank, File: 'h'}, piece.Color) &&
		squaresEmpty(pos.Board, homeRank, 'f', 'g') &&
		!IsSquareAttacked(pos.Board, chess.Square{Rank: homeRank, File: 'f'}, enemy) &&
		!IsSquareAttacked(pos.Board, chess.Square{Rank: homeRank, File: 'g'}, enemy) {
		moves = append(moves, chess.RegularMove(piece, from, chess.Square{Rank: homeRank, File: 'g'}))
	}
	if pos.CastlingRights.Has(queenside) &&
		rookAt(pos.Board, chess.Square{Rank: homeRank, File: 'a'}, piece.Color) &&
		squaresEmpty(pos.Board, homeRank, 'b', 'c', 'd') &&
		!IsSquareAttacked(pos.Board, chess.Square{Rank: homeRank, File: 'd'}, enemy) &&
		!IsSquareAttacked(pos.Board, chess.Square{Rank: homeRank, File: 'c'}, enemy) {
		moves = append(moves, chess.RegularMove(piece, from, chess.Square{Rank: homeRank, File: 'c'}))
	}
	return moves
}

func rookAt(board chess.Board, sq chess.Square, color chess.Color) bool {
	piece, ok := board.PieceAt(sq)
	return ok && piece.Type == chess.Rook && piece.Color == color
}

func squaresEmpty(board chess.Board, rank uint8, files ...byte) bool {
	for _, file := range files {
		if _, occupied := board.PieceAt(chess.Square{Rank: rank, File: file}); occupied {
			return false
		}
	}
	return true
}

func fileDistance(a, b chess.Square) int {
	d := a.FileIndex() - b.FileIndex()
	if d < 0 {
		return -d
	}
	return d
}
