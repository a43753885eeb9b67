package engine

import (
	"strconv"
	"strings"

	"github.com/simplechess/simplechess-go/internal/chess"
	"github.com/simplechess/simplechess-go/internal/errors"
)

// InitialFEN is the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// InitialPosition returns the standard starting position.
func InitialPosition() chess.Position {
	pos, err := ParseFEN(InitialFEN)
	if err != nil {
		panic("engine: initial FEN failed to parse: " + err.Error())
	}
	return pos
}

// ParseFEN parses a full six-field FEN record. Parsing is strict: every
// field must be present and well formed, each rank must describe exactly
// eight files, and each side must have exactly one king. Malformed input
// fails with ErrInvalidFEN.
func ParseFEN(fen string) (chess.Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return chess.Position{}, errors.Wrapf(errors.ErrInvalidFEN, "%d fields, want 6", len(fields))
	}

	board, err := parsePlacement(fields[0])
	if err != nil {
		return chess.Position{}, err
	}

	var active chess.Color
	switch fields[1] {
	case "w":
		active = chess.White
	case "b":
		active = chess.Black
	default:
		return chess.Position{}, errors.Wrapf(errors.ErrInvalidFEN, "active color %q", fields[1])
	}

	rights, err := parseCastlingRights(fields[2])
	if err != nil {
		return chess.Position{}, err
	}

	enPassant, err := parseEnPassant(fields[3], active)
	if err != nil {
		return chess.Position{}, err
	}

	halfmove, err := strconv.ParseUint(fields[4], 10, 16)
	if err != nil {
		return chess.Position{}, errors.Wrapf(errors.ErrInvalidFEN, "halfmove clock %q", fields[4])
	}
	fullmove, err := strconv.ParseUint(fields[5], 10, 16)
	if err != nil || fullmove == 0 {
		return chess.Position{}, errors.Wrapf(errors.ErrInvalidFEN, "fullmove number %q", fields[5])
	}

	return chess.Position{
		Board:          board,
		ActiveColor:    active,
		CastlingRights: rights,
		EnPassant:      enPassant,
		HalfmoveClock:  uint16(halfmove),
		FullmoveNumber: uint16(fullmove),
	}, nil
}

// parsePlacement parses the first FEN field into a board.
func parsePlacement(placement string) (chess.Board, error) {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return chess.Board{}, errors.Wrapf(errors.ErrInvalidFEN, "%d ranks, want 8", len(ranks))
	}

	pieces := make(map[chess.Square]chess.Piece)
	kings := map[chess.Color]int{}
	for i, rankText := range ranks {
		rank := uint8(8 - i)
		file := byte('a')
		lastWasDigit := false
		for j := 0; j < len(rankText); j++ {
			c := rankText[j]
			if c >= '1' && c <= '8' {
				if lastWasDigit {
					return chess.Board{}, errors.Wrapf(errors.ErrInvalidFEN, "rank %d has consecutive digits", rank)
				}
				lastWasDigit = true
				file += c - '0'
				continue
			}
			lastWasDigit = false
			piece, ok := pieceFromFENLetter(c)
			if !ok {
				return chess.Board{}, errors.Wrapf(errors.ErrInvalidFEN, "piece letter %q", string(c))
			}
			if file > 'h' {
				return chess.Board{}, errors.Wrapf(errors.ErrInvalidFEN, "rank %d overflows", rank)
			}
			if piece.Type == chess.King {
				kings[piece.Color]++
			}
			pieces[chess.Square{Rank: rank, File: file}] = piece
			file++
		}
		if file != 'h'+1 {
			return chess.Board{}, errors.Wrapf(errors.ErrInvalidFEN, "rank %d has %d files, want 8", rank, file-'a')
		}
	}
	if kings[chess.White] != 1 || kings[chess.Black] != 1 {
		return chess.Board{}, errors.Wrapf(errors.ErrInvalidFEN, "%d white and %d black kings, want one each",
			kings[chess.White], kings[chess.Black])
	}

	board, err := chess.NewBoard(pieces)
	if err != nil {
		return chess.Board{}, errors.Wrap(errors.ErrInvalidFEN, err.Error())
	}
	return board, nil
}

func pieceFromFENLetter(c byte) (chess.Piece, bool) {
	color := chess.White
	if c >= 'a' && c <= 'z' {
		color = chess.Black
		c -= 'a' - 'A'
	}
	types := map[byte]chess.PieceType{
		'P': chess.Pawn, 'R': chess.Rook, 'N': chess.Knight,
		'B': chess.Bishop, 'Q': chess.Queen, 'K': chess.King,
	}
	t, ok := types[c]
	if !ok {
		return chess.Piece{}, false
	}
	return chess.Piece{Type: t, Color: color}, true
}

// parseCastlingRights parses the third FEN field. Letters must appear in
// canonical KQkq order without repeats.
func parseCastlingRights(field string) (chess.CastlingRights, error) {
	if field == "-" {
		return 0, nil
	}
	if field == "" || len(field) > 4 {
		return 0, errors.Wrapf(errors.ErrInvalidFEN, "castling field %q", field)
	}
	order := []struct {
		letter byte
		right  chess.CastlingRights
	}{
		{'K', chess.WhiteKingside},
		{'Q', chess.WhiteQueenside},
		{'k', chess.BlackKingside},
		{'q', chess.BlackQueenside},
	}
	var rights chess.CastlingRights
	i := 0
	for _, entry := range order {
		if i < len(field) && field[i] == entry.letter {
			rights |= entry.right
			i++
		}
	}
	if i != len(field) {
		return 0, errors.Wrapf(errors.ErrInvalidFEN, "castling field %q", field)
	}
	return rights, nil
}

// parseEnPassant parses the fourth FEN field. The target square must sit on
// rank 6 when White is to move and rank 3 when Black is.
func parseEnPassant(field string, active chess.Color) (*chess.Square, error) {
	if field == "-" {
		return nil, nil
	}
	sq, err := chess.ParseSquare(field)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidFEN, "en passant square %q", field)
	}
	wantRank := uint8(6)
	if active == chess.Black {
		wantRank = 3
	}
	if sq.Rank != wantRank {
		return nil, errors.Wrapf(errors.ErrInvalidFEN, "en passant square %s with %s to move", sq, active)
	}
	return &sq, nil
}

// FormatFEN renders pos as a full six-field FEN record.
func FormatFEN(pos chess.Position) string {
	var b strings.Builder

	for rank := uint8(8); rank >= 1; rank-- {
		empty := 0
		for file := byte('a'); file <= 'h'; file++ {
			piece, occupied := pos.Board.PieceAt(chess.Square{Rank: rank, File: file})
			if !occupied {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte('0' + byte(empty))
				empty = 0
			}
			b.WriteByte(piece.FENLetter())
		}
		if empty > 0 {
			b.WriteByte('0' + byte(empty))
		}
		if rank > 1 {
			b.WriteByte('/')
		}
	}

	b.WriteByte(' ')
	if pos.ActiveColor == chess.White {
		b.WriteByte('w')
	} else {
		b.WriteByte('b')
	}

	b.WriteByte(' ')
	b.WriteString(pos.CastlingRights.String())

	b.WriteByte(' ')
	if pos.EnPassant != nil {
		b.WriteString(pos.EnPassant.String())
	} else {
		b.WriteByte('-')
	}

	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(int(pos.HalfmoveClock)))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(int(pos.FullmoveNumber)))

	return b.String()
}
