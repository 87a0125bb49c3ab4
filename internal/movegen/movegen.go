// Package movegen produces pseudo-legal and legal moves for a
// board.Board: per-piece generation plus legality filtering via
// make→check→unmake, the array-model alternative to clone-and-check
// (spec.md §4.2, §9).
package movegen

import (
	"github.com/kophouse/corvid/internal/board"
	"github.com/kophouse/corvid/internal/types"
)

var knightDeltas = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
var kingDeltas = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func step(sq types.Square, df, dr int) (types.Square, bool) {
	f := sq.File() + df
	r := sq.Rank() + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return types.SquareNone, false
	}
	return types.NewSquare(f, r), true
}

// GeneratePseudoLegal returns every pseudo-legal move (own-king safety
// not yet checked) for the side to move.
func GeneratePseudoLegal(b *board.Board) []types.Move {
	moves := make([]types.Move, 0, 48)
	for sq := types.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p.Kind == types.NoPieceKind || p.Color != b.Side {
			continue
		}
		switch p.Kind {
		case types.Pawn:
			genPawnMoves(b, sq, &moves)
		case types.Knight:
			genLeaperMoves(b, sq, knightDeltas[:], &moves)
		case types.King:
			genLeaperMoves(b, sq, kingDeltas[:], &moves)
			genCastleMoves(b, sq, &moves)
		case types.Bishop:
			genSliderMoves(b, sq, bishopDirs[:], &moves)
		case types.Rook:
			genSliderMoves(b, sq, rookDirs[:], &moves)
		case types.Queen:
			genSliderMoves(b, sq, bishopDirs[:], &moves)
			genSliderMoves(b, sq, rookDirs[:], &moves)
		}
	}
	return moves
}

// GenerateLegal filters GeneratePseudoLegal down to moves that do not
// leave the mover's own king in check, by applying each move with
// Board.Make, testing Board.IsAttacked on the mover's king square by
// the opponent's color, and undoing with Board.Unmake.
func GenerateLegal(b *board.Board) []types.Move {
	pseudo := GeneratePseudoLegal(b)
	legal := make([]types.Move, 0, len(pseudo))
	mover := b.Side
	for _, mv := range pseudo {
		b.Make(mv)
		if !b.IsAttacked(b.FindKing(mover), mover.Flip()) {
			legal = append(legal, mv)
		}
		b.Unmake()
	}
	return legal
}

// GenerateCaptures returns the legal capturing (and en-passant) moves
// only, used by quiescence search (spec.md §4.6.2). Like GenerateLegal,
// it filters by making each candidate, checking that the mover's own
// king is not left in check, and unmaking, so the result is a subset
// of GenerateLegal's own output, never merely of the pseudo-legal one
// (spec.md §4.2, §8 invariant 6).
func GenerateCaptures(b *board.Board) []types.Move {
	all := GeneratePseudoLegal(b)
	mover := b.Side
	legal := all[:0]
	for _, mv := range all {
		if mv.Captured == types.NoPieceKind && !mv.IsEnPassant {
			continue
		}
		b.Make(mv)
		attacked := b.IsAttacked(b.FindKing(mover), mover.Flip())
		b.Unmake()
		if !attacked {
			legal = append(legal, mv)
		}
	}
	return legal
}

func genLeaperMoves(b *board.Board, from types.Square, deltas [][2]int, moves *[]types.Move) {
	mover := b.PieceAt(from)
	for _, d := range deltas {
		to, ok := step(from, d[0], d[1])
		if !ok {
			continue
		}
		target := b.PieceAt(to)
		if target.IsValid() && target.Color == mover.Color {
			continue
		}
		*moves = append(*moves, types.Move{From: from, To: to, Captured: target.Kind})
	}
}

func genSliderMoves(b *board.Board, from types.Square, dirs [][2]int, moves *[]types.Move) {
	mover := b.PieceAt(from)
	for _, d := range dirs {
		cur := from
		for {
			to, ok := step(cur, d[0], d[1])
			if !ok {
				break
			}
			target := b.PieceAt(to)
			if target.IsValid() {
				if target.Color != mover.Color {
					*moves = append(*moves, types.Move{From: from, To: to, Captured: target.Kind})
				}
				break
			}
			*moves = append(*moves, types.Move{From: from, To: to})
			cur = to
		}
	}
}

func genPawnMoves(b *board.Board, from types.Square, moves *[]types.Move) {
	mover := b.PieceAt(from)
	dir := 1
	startRank := 1
	promoRank := 7
	if mover.Color == types.Black {
		dir = -1
		startRank = 6
		promoRank = 0
	}

	addPawnMove := func(to types.Square, captured types.PieceKind, isEp bool) {
		if to.Rank() == promoRank {
			for _, promo := range [4]types.PieceKind{types.Queen, types.Rook, types.Bishop, types.Knight} {
				*moves = append(*moves, types.Move{From: from, To: to, Captured: captured, Promotion: promo, IsEnPassant: isEp})
			}
			return
		}
		*moves = append(*moves, types.Move{From: from, To: to, Captured: captured, IsEnPassant: isEp})
	}

	if one, ok := step(from, 0, dir); ok && !b.PieceAt(one).IsValid() {
		addPawnMove(one, types.NoPieceKind, false)
		if from.Rank() == startRank {
			if two, ok := step(from, 0, 2*dir); ok && !b.PieceAt(two).IsValid() {
				*moves = append(*moves, types.Move{From: from, To: two})
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		to, ok := step(from, df, dir)
		if !ok {
			continue
		}
		target := b.PieceAt(to)
		if target.IsValid() && target.Color != mover.Color {
			addPawnMove(to, target.Kind, false)
		} else if to == b.EpSquare {
			addPawnMove(to, types.Pawn, true)
		}
	}
}

func genCastleMoves(b *board.Board, from types.Square, moves *[]types.Move) {
	if b.InCheck() {
		return
	}
	if b.Side == types.White {
		if b.Castling.Has(types.WhiteKingside) && emptyAndSafe(b, from, []types.Square{from + 1, from + 2}, types.White) {
			*moves = append(*moves, types.Move{From: from, To: from + 2, IsCastle: true})
		}
		if b.Castling.Has(types.WhiteQueenside) && emptyBetween(b, []types.Square{from - 1, from - 2, from - 3}) && emptyAndSafe(b, from, []types.Square{from - 1, from - 2}, types.White) {
			*moves = append(*moves, types.Move{From: from, To: from - 2, IsCastle: true})
		}
	} else {
		if b.Castling.Has(types.BlackKingside) && emptyAndSafe(b, from, []types.Square{from + 1, from + 2}, types.Black) {
			*moves = append(*moves, types.Move{From: from, To: from + 2, IsCastle: true})
		}
		if b.Castling.Has(types.BlackQueenside) && emptyBetween(b, []types.Square{from - 1, from - 2, from - 3}) && emptyAndSafe(b, from, []types.Square{from - 1, from - 2}, types.Black) {
			*moves = append(*moves, types.Move{From: from, To: from - 2, IsCastle: true})
		}
	}
}

func emptyBetween(b *board.Board, squares []types.Square) bool {
	for _, sq := range squares {
		if b.PieceAt(sq).IsValid() {
			return false
		}
	}
	return true
}

// emptyAndSafe checks that every square the king passes through
// (including its destination) is empty and not attacked by the
// opponent; it does not re-check the origin square, which genCastleMoves
// has already verified is not in check.
func emptyAndSafe(b *board.Board, from types.Square, path []types.Square, mover types.Color) bool {
	for _, sq := range path {
		if b.PieceAt(sq).IsValid() {
			return false
		}
		if b.IsAttacked(sq, mover.Flip()) {
			return false
		}
	}
	return true
}
