package engine

import (
	"github.com/simplechess/simplechess-go/internal/chess"
	"github.com/simplechess/simplechess-go/internal/worker"
)

// Perft counts the leaf nodes of the legal move tree to the given depth.
// It exists to validate move generation against published node counts.
func Perft(pos chess.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := LegalMoves(pos)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, move := range moves {
		next, _ := ApplyMove(pos, move)
		nodes += Perft(next, depth-1)
	}
	return nodes
}

// ParallelPerft runs Perft with the top-level moves fanned out across a
// worker pool. Depths below two fall back to the sequential count.
func ParallelPerft(pos chess.Position, depth, workers int) uint64 {
	if depth < 2 {
		return Perft(pos, depth)
	}

	moves := LegalMoves(pos)
	pool := worker.NewPool(workers, len(moves)+1, func(item worker.WorkItem) worker.Result {
		return worker.Result{Index: item.Index, Nodes: Perft(item.Position, item.Depth)}
	})
	pool.Start()

	go func() {
		for i, move := range moves {
			next, _ := ApplyMove(pos, move)
			pool.Submit(worker.WorkItem{Position: next, Depth: depth - 1, Index: i})
		}
		pool.Close()
	}()

	var nodes uint64
	for result := range pool.Results() {
		nodes += result.Nodes
	}
	return nodes
}
