package movegen

import "github.com/kophouse/corvid/internal/board"

// Perft counts the leaf nodes of the legal game tree to depth, used as
// a move-generator correctness check (spec.md §8). It mutates b via
// Make/Unmake and restores it fully before returning.
func Perft(b *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, mv := range GenerateLegal(b) {
		b.Make(mv)
		nodes += Perft(b, depth-1)
		b.Unmake()
	}
	return nodes
}

// Divide runs Perft one ply at a time, returning the per-root-move
// leaf counts; useful for isolating a move-generator bug against a
// known-good reference count.
func Divide(b *board.Board, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth == 0 {
		return result
	}
	for _, mv := range GenerateLegal(b) {
		b.Make(mv)
		result[mv.String()] = Perft(b, depth-1)
		b.Unmake()
	}
	return result
}
