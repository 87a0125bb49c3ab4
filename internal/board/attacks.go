package board

import "github.com/kophouse/corvid/internal/types"

// step returns the square file+df, rank+dr from sq, and whether it is
// on the board (guards against file wraparound for sliders/leapers).
func step(sq types.Square, df, dr int) (types.Square, bool) {
	f := sq.File() + df
	r := sq.Rank() + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return types.SquareNone, false
	}
	return types.NewSquare(f, r), true
}

var knightDeltas = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
var kingDeltas = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// IsAttacked reports whether any piece of byColor pseudo-attacks sq.
// This is the O(64·geometry) reverse-scan from sq described in
// spec.md §4.1: simple, intentionally unoptimized, used only by
// legality filtering and castling-through-check checks.
func (b *Board) IsAttacked(sq types.Square, byColor types.Color) bool {
	// Pawns: a byColor pawn attacks diagonally toward the opponent's
	// side, so its attacker square is one rank "behind" sq from the
	// pawn's own perspective.
	pawnRankDelta := -1
	if byColor == types.Black {
		pawnRankDelta = 1
	}
	for _, df := range [2]int{-1, 1} {
		if from, ok := step(sq, df, pawnRankDelta); ok {
			p := b.Squares[from]
			if p.Kind == types.Pawn && p.Color == byColor {
				return true
			}
		}
	}

	for _, d := range knightDeltas {
		if from, ok := step(sq, d[0], d[1]); ok {
			p := b.Squares[from]
			if p.Kind == types.Knight && p.Color == byColor {
				return true
			}
		}
	}

	for _, d := range kingDeltas {
		if from, ok := step(sq, d[0], d[1]); ok {
			p := b.Squares[from]
			if p.Kind == types.King && p.Color == byColor {
				return true
			}
		}
	}

	for _, d := range bishopDirs {
		if b.slidingAttack(sq, d[0], d[1], byColor, types.Bishop, types.Queen) {
			return true
		}
	}
	for _, d := range rookDirs {
		if b.slidingAttack(sq, d[0], d[1], byColor, types.Rook, types.Queen) {
			return true
		}
	}

	return false
}

// slidingAttack scans from sq along (df,dr) until it hits the edge of
// the board or a piece. It reports an attack if that first piece
// belongs to byColor and is kind or alt (Queen slides both ways).
func (b *Board) slidingAttack(sq types.Square, df, dr int, byColor types.Color, kind, alt types.PieceKind) bool {
	cur := sq
	for {
		next, ok := step(cur, df, dr)
		if !ok {
			return false
		}
		p := b.Squares[next]
		if p.IsValid() {
			return p.Color == byColor && (p.Kind == kind || p.Kind == alt)
		}
		cur = next
	}
}

// PseudoMobility counts squares a piece on sq could move to, ignoring
// whether the resulting position leaves its own king in check —
// friendly-blocked squares are excluded, capture squares included,
// sliders stop at the first piece encountered. Used by the evaluator's
// mobility term (spec.md §4.3), not by legality checking.
func (b *Board) PseudoMobility(sq types.Square) int {
	p := b.Squares[sq]
	count := 0
	switch p.Kind {
	case types.Knight:
		for _, d := range knightDeltas {
			if to, ok := step(sq, d[0], d[1]); ok {
				if t := b.Squares[to]; !t.IsValid() || t.Color != p.Color {
					count++
				}
			}
		}
	case types.Bishop:
		count += b.slidingMobility(sq, bishopDirs[:], p.Color)
	case types.Rook:
		count += b.slidingMobility(sq, rookDirs[:], p.Color)
	case types.Queen:
		count += b.slidingMobility(sq, bishopDirs[:], p.Color)
		count += b.slidingMobility(sq, rookDirs[:], p.Color)
	}
	return count
}

func (b *Board) slidingMobility(sq types.Square, dirs [][2]int, color types.Color) int {
	count := 0
	for _, d := range dirs {
		cur := sq
		for {
			next, ok := step(cur, d[0], d[1])
			if !ok {
				break
			}
			t := b.Squares[next]
			if !t.IsValid() {
				count++
				cur = next
				continue
			}
			if t.Color != color {
				count++
			}
			break
		}
	}
	return count
}
