// Package hashing provides repetition detection for chess positions.
package hashing

import (
	"hash/fnv"
	"strings"

	"github.com/simplechess/simplechess-go/internal/chess"
)

// PositionKey is a 64-bit FNV-1a hash over the fields that matter for
// repetition: the placement, the active color, the castling rights and the
// en passant target. The clocks are deliberately excluded, two positions
// that differ only in move counters still repeat each other.
func PositionKey(pos chess.Position) uint64 {
	h := fnv.New64a()

	var b strings.Builder
	for _, sp := range pos.Board.OccupiedSquares() {
		b.WriteString(sp.Square.String())
		b.WriteByte(sp.Piece.FENLetter())
	}
	b.WriteByte('|')
	if pos.ActiveColor == chess.White {
		b.WriteByte('w')
	} else {
		b.WriteByte('b')
	}
	b.WriteByte('|')
	b.WriteString(pos.CastlingRights.String())
	b.WriteByte('|')
	if pos.EnPassant != nil {
		b.WriteString(pos.EnPassant.String())
	} else {
		b.WriteByte('-')
	}

	h.Write([]byte(b.String()))
	return h.Sum64()
}

// RepetitionTable counts how many times each position has occurred in a
// game. It is an immutable value: Extend returns a new table sharing
// nothing with its parent, so earlier snapshots of a game keep their own
// counts.
type RepetitionTable struct {
	counts map[uint64]int
}

// NewRepetitionTable returns a table with pos counted once.
func NewRepetitionTable(pos chess.Position) RepetitionTable {
	return RepetitionTable{counts: map[uint64]int{PositionKey(pos): 1}}
}

// Extend returns a copy of the table with pos counted one more time.
func (t RepetitionTable) Extend(pos chess.Position) RepetitionTable {
	counts := make(map[uint64]int, len(t.counts)+1)
	for key, n := range t.counts {
		counts[key] = n
	}
	counts[PositionKey(pos)]++
	return RepetitionTable{counts: counts}
}

// Count returns how many times pos has occurred.
func (t RepetitionTable) Count(pos chess.Position) int {
	return t.counts[PositionKey(pos)]
}
