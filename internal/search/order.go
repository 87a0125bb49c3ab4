package search

import (
	"sort"

	"github.com/kophouse/corvid/internal/config"
	"github.com/kophouse/corvid/internal/types"
)

// order sorts moves in place by the sort key described in spec.md
// §4.6.1: TT move first, then captures (crude MVV proxy), then
// queen promotions, then killers, then history.
func order(moves []types.Move, ttMove types.Move, killers [2]types.Move, history [64][64]int) {
	type scored struct {
		mv  types.Move
		key int
	}
	ranked := make([]scored, len(moves))
	for i, mv := range moves {
		ranked[i] = scored{mv: mv, key: moveKey(mv, ttMove, killers, history)}
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].key > ranked[j].key
	})
	for i, r := range ranked {
		moves[i] = r.mv
	}
}

func moveKey(mv, ttMove types.Move, killers [2]types.Move, history [64][64]int) int {
	if mv == ttMove && !ttMove.IsNone() {
		return 2_000_000
	}
	if mv.Captured != types.NoPieceKind {
		return 1_000_000 + 10*pieceWeight(mv.Captured) - 100
	}
	if mv.Promotion == types.Queen {
		return 900_000
	}
	if mv == killers[0] {
		return 800_000
	}
	if mv == killers[1] {
		return 700_000
	}
	h := history[mv.From][mv.To]
	if h > 600_000 {
		h = 600_000
	}
	return h
}

func pieceWeight(kind types.PieceKind) int {
	e := config.Settings.Eval
	switch kind {
	case types.Pawn:
		return e.PawnValue
	case types.Knight:
		return e.KnightValue
	case types.Bishop:
		return e.BishopValue
	case types.Rook:
		return e.RookValue
	case types.Queen:
		return e.QueenValue
	default:
		return 0
	}
}
