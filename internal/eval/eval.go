// Package eval implements the static position evaluator: tapered
// piece-square tables, material, and structural terms (spec.md §4.3).
package eval

import (
	"github.com/kophouse/corvid/internal/board"
	"github.com/kophouse/corvid/internal/config"
	"github.com/kophouse/corvid/internal/types"
)

func pstFor(kind types.PieceKind) (*[64]int, *[64]int) {
	switch kind {
	case types.Pawn:
		return &pawnPstOp, &pawnPstEg
	case types.Knight:
		return &knightPst, &knightPst
	case types.Bishop:
		return &bishopPst, &bishopPst
	case types.Rook:
		return &rookPst, &rookPst
	case types.Queen:
		return &queenPst, &queenPst
	case types.King:
		return &kingPstOp, &kingPstEg
	default:
		return nil, nil
	}
}

func materialValue(kind types.PieceKind) int {
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

func phaseWeight(kind types.PieceKind) int {
	e := config.Settings.Eval
	switch kind {
	case types.Knight:
		return e.KnightPhaseWeight
	case types.Bishop:
		return e.BishopPhaseWeight
	case types.Rook:
		return e.RookPhaseWeight
	case types.Queen:
		return e.QueenPhaseWeight
	default:
		return 0
	}
}

// Phase returns the game-phase indicator, 0 (pure endgame) to 256
// (pure opening/middlegame), computed from non-pawn, non-king material
// normalized against a fixed opening total (spec.md §4.3).
func Phase(b *board.Board) int {
	material := 0
	for sq := types.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p.IsValid() {
			material += phaseWeight(p.Kind)
		}
	}
	max := config.Settings.Eval.PhaseMaterialMax
	if max <= 0 {
		return 0
	}
	phase := material * 256 / max
	if phase > 256 {
		phase = 256
	}
	return phase
}

// taperedPst blends the opening and endgame piece-square values for
// sq from White's perspective, mirroring for Black.
func taperedPst(kind types.PieceKind, sq types.Square, color types.Color, phase int) int {
	op, eg := pstFor(kind)
	if op == nil {
		return 0
	}
	idx := sq.Mirror(color)
	return (op[idx]*phase + eg[idx]*(256-phase)) / 256
}

// Evaluate returns a centipawn score from the side-to-move's
// perspective: positive means the side to move is better (spec.md
// §4.3). All intermediate terms accumulate as White-minus-Black, and
// the final sum's sign flips for Black to move.
func Evaluate(b *board.Board) int {
	phase := Phase(b)
	score := 0

	for sq := types.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if !p.IsValid() {
			continue
		}
		contribution := materialValue(p.Kind) + taperedPst(p.Kind, sq, p.Color, phase)
		if p.Color == types.White {
			score += contribution
		} else {
			score -= contribution
		}
	}

	score += pawnStructure(b)
	score += kingSafety(b, phase)
	score += bishopPair(b)
	score += rookBonuses(b)
	score += mobility(b)

	if b.Side == types.Black {
		score = -score
	}
	return score
}

func countPawnsByFile(b *board.Board, color types.Color) [8]int {
	var files [8]int
	for sq := types.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p.Kind == types.Pawn && p.Color == color {
			files[sq.File()]++
		}
	}
	return files
}

func pawnStructure(b *board.Board) int {
	e := config.Settings.Eval
	score := 0
	white := countPawnsByFile(b, types.White)
	black := countPawnsByFile(b, types.Black)

	for file := 0; file < 8; file++ {
		if white[file] > 1 {
			score -= e.DoubledPawnPenalty * (white[file] - 1)
		}
		if black[file] > 1 {
			score += e.DoubledPawnPenalty * (black[file] - 1)
		}
		if white[file] > 0 && !hasNeighborPawns(white, file) {
			score -= e.IsolatedPawnPenalty
		}
		if black[file] > 0 && !hasNeighborPawns(black, file) {
			score += e.IsolatedPawnPenalty
		}
	}
	return score
}

func hasNeighborPawns(files [8]int, file int) bool {
	if file > 0 && files[file-1] > 0 {
		return true
	}
	if file < 7 && files[file+1] > 0 {
		return true
	}
	return false
}

func kingSafety(b *board.Board, phase int) int {
	e := config.Settings.Eval
	if phase < e.KingSafetyPhaseFloor {
		return 0
	}
	score := 0
	white := countPawnsByFile(b, types.White)
	black := countPawnsByFile(b, types.Black)

	apply := func(king types.Square, pawns [8]int, sign int) {
		if king == types.SquareNone {
			return
		}
		kfile := king.File()
		for _, f := range [3]int{kfile - 1, kfile, kfile + 1} {
			if f < 0 || f > 7 {
				continue
			}
			if pawns[f] == 0 {
				score += sign * -(e.KingOpenFilePenalty * phase / 256)
			}
		}
		if kfile >= 2 && kfile <= 5 {
			score += sign * -(e.KingCentralizedPenalty * phase / 256)
		}
	}
	apply(b.FindKing(types.White), white, 1)
	apply(b.FindKing(types.Black), black, -1)
	return score
}

func bishopPair(b *board.Board) int {
	e := config.Settings.Eval
	whiteBishops, blackBishops := 0, 0
	for sq := types.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p.Kind != types.Bishop {
			continue
		}
		if p.Color == types.White {
			whiteBishops++
		} else {
			blackBishops++
		}
	}
	score := 0
	if whiteBishops >= 2 {
		score += e.BishopPairBonus
	}
	if blackBishops >= 2 {
		score -= e.BishopPairBonus
	}
	return score
}

func rookBonuses(b *board.Board) int {
	e := config.Settings.Eval
	white := countPawnsByFile(b, types.White)
	black := countPawnsByFile(b, types.Black)
	score := 0
	for sq := types.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p.Kind != types.Rook {
			continue
		}
		file := sq.File()
		open := white[file] == 0 && black[file] == 0
		ownPawns := white
		seventh := 6
		sign := 1
		if p.Color == types.Black {
			ownPawns = black
			seventh = 1
			sign = -1
		}
		if open {
			score += sign * e.RookOpenFileBonus
		} else if ownPawns[file] == 0 {
			score += sign * e.RookHalfOpenBonus
		}
		if sq.Rank() == seventh {
			score += sign * e.RookSeventhRankBonus
		}
	}
	return score
}

func mobility(b *board.Board) int {
	e := config.Settings.Eval
	score := 0
	for sq := types.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		switch p.Kind {
		case types.Knight, types.Bishop, types.Rook, types.Queen:
		default:
			continue
		}
		m := b.PseudoMobility(sq)
		if p.Color == types.White {
			score += m * e.MobilityWeight
		} else {
			score -= m * e.MobilityWeight
		}
	}
	return score
}
