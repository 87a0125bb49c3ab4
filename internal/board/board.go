// Package board implements the position representation: the 64-square
// array, make/unmake with full undo, castling/en-passant/promotion
// handling, attack queries, and repetition/fifty-move bookkeeping
// (spec.md §3, §4.1).
package board

import (
	"fmt"

	gologging "github.com/op/go-logging"

	myLogging "github.com/kophouse/corvid/internal/logging"
	"github.com/kophouse/corvid/internal/types"
	"github.com/kophouse/corvid/internal/zobrist"
)

var log *gologging.Logger

func getLog() *gologging.Logger {
	if log == nil {
		log = myLogging.GetLog()
	}
	return log
}

// undoInfo is the per-make undo record: the move plus the pre-move
// values of every field make() can change (spec.md §3).
type undoInfo struct {
	move     types.Move
	castling types.CastlingRights
	epSquare types.Square
	halfmove int
	hash     uint64
}

// Board is a chess position, mutated only through Make/Unmake. A Board
// is owned by its caller (the search engine mutates it in place rather
// than cloning per node, per spec.md §9).
type Board struct {
	Squares  [64]types.Piece
	Side     types.Color
	Castling types.CastlingRights
	EpSquare types.Square
	Halfmove int
	Fullmove int
	Hash     uint64

	history        []undoInfo
	positionHashes []uint64
}

// StartFen is the initial position in Forsyth-Edwards Notation.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewStartPosition returns the canonical initial position.
func NewStartPosition() *Board {
	b, err := FromFEN(StartFen)
	if err != nil {
		// StartFen is a compile-time constant; a parse failure here
		// means the constant itself is broken.
		panic(fmt.Sprintf("corvid: invalid built-in start FEN: %v", err))
	}
	return b
}

// PieceAt returns the piece on sq, or NoPiece if empty.
func (b *Board) PieceAt(sq types.Square) types.Piece {
	return b.Squares[sq]
}

// ZobristKey returns the position's current fingerprint, recomputed
// from scratch (spec.md §4.4 — not maintained incrementally).
func (b *Board) ZobristKey() uint64 {
	return zobrist.Hash(&b.Squares, b.Side, b.Castling, b.EpSquare)
}

var (
	sqA1 = types.SquareFromString("a1")
	sqH1 = types.SquareFromString("h1")
	sqA8 = types.SquareFromString("a8")
	sqH8 = types.SquareFromString("h8")
)

// castlingBitForCorner maps a corner square to the castling right it
// affects; ok is false for any other square.
func castlingBitForCorner(sq types.Square) (types.CastlingRights, bool) {
	switch sq {
	case sqA1:
		return types.WhiteQueenside, true
	case sqH1:
		return types.WhiteKingside, true
	case sqA8:
		return types.BlackQueenside, true
	case sqH8:
		return types.BlackKingside, true
	default:
		return types.CastlingNone, false
	}
}

// Make applies mv to the board, pushing an undo record and the
// resulting position's hash onto the combined game/search repetition
// stack. Every successful Make must be matched by exactly one Unmake
// to restore the board, including that stack (spec.md §3 invariant 2,
// §4.7, §9): the host's real-game moves and the search's recursive
// moves share this same mechanism, so a hash pushed by a host move
// played before search started is still visible to IsRepetition deep
// in the search tree.
func (b *Board) Make(mv types.Move) {
	b.history = append(b.history, undoInfo{
		move:     mv,
		castling: b.Castling,
		epSquare: b.EpSquare,
		halfmove: b.Halfmove,
		hash:     b.Hash,
	})

	mover := b.Squares[mv.From]
	if !mover.IsValid() {
		// Pathological: only reachable through illegal external input
		// (spec.md §4.1 step 1). Keep unmake well-defined by merely
		// flipping the side to move.
		b.Side = b.Side.Flip()
		return
	}

	capturedEp := false
	isPawnMove := mover.Kind == types.Pawn
	isCapture := mv.Captured != types.NoPieceKind

	switch {
	case mv.IsCastle:
		b.Squares[mv.From] = types.NoPiece
		b.Squares[mv.To] = mover
		if mv.To > mv.From { // kingside
			rookFrom := mv.From + 3
			rookTo := mv.From + 1
			b.Squares[rookTo] = b.Squares[rookFrom]
			b.Squares[rookFrom] = types.NoPiece
		} else { // queenside
			rookFrom := mv.From - 4
			rookTo := mv.From - 1
			b.Squares[rookTo] = b.Squares[rookFrom]
			b.Squares[rookFrom] = types.NoPiece
		}
	case mv.IsEnPassant:
		b.Squares[mv.From] = types.NoPiece
		b.Squares[mv.To] = mover
		capSq := mv.To - 8
		if mover.Color == types.Black {
			capSq = mv.To + 8
		}
		b.Squares[capSq] = types.NoPiece
		capturedEp = true
	case mv.Promotion != types.NoPieceKind:
		b.Squares[mv.From] = types.NoPiece
		b.Squares[mv.To] = types.Piece{Kind: mv.Promotion, Color: mover.Color}
	default:
		b.Squares[mv.From] = types.NoPiece
		b.Squares[mv.To] = mover
	}

	// Castling rights: clear on king move, and on either endpoint
	// being a corner square (so a rook move away from, or a capture
	// on, a corner clears the matching right).
	if mover.Kind == types.King {
		if mover.Color == types.White {
			b.Castling = b.Castling.Clear(types.WhiteKingside | types.WhiteQueenside)
		} else {
			b.Castling = b.Castling.Clear(types.BlackKingside | types.BlackQueenside)
		}
	}
	if right, ok := castlingBitForCorner(mv.From); ok {
		b.Castling = b.Castling.Clear(right)
	}
	if right, ok := castlingBitForCorner(mv.To); ok {
		b.Castling = b.Castling.Clear(right)
	}

	// En-passant target: set iff a pawn moved exactly two ranks.
	if isPawnMove && absInt(mv.To.Rank()-mv.From.Rank()) == 2 {
		b.EpSquare = types.Square((int(mv.From) + int(mv.To)) / 2)
	} else {
		b.EpSquare = types.SquareNone
	}

	// Fifty-move counter.
	if isPawnMove || isCapture || capturedEp {
		b.Halfmove = 0
	} else {
		b.Halfmove++
	}

	if b.Side == types.Black {
		b.Fullmove++
	}
	b.Side = b.Side.Flip()
	b.Hash = b.ZobristKey()
	b.positionHashes = append(b.positionHashes, b.Hash)
}

// Unmake reverses the most recent Make. A no-op if history is empty.
func (b *Board) Unmake() {
	if len(b.history) == 0 {
		return
	}
	u := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.positionHashes = b.positionHashes[:len(b.positionHashes)-1]

	mv := u.move
	b.Castling = u.castling
	b.EpSquare = u.epSquare
	b.Halfmove = u.halfmove
	b.Hash = u.hash
	b.Side = b.Side.Flip()
	if b.Side == types.Black {
		b.Fullmove--
	}

	mover := b.Squares[mv.To]
	if !mover.IsValid() {
		return
	}

	switch {
	case mv.IsCastle:
		b.Squares[mv.From] = mover
		b.Squares[mv.To] = types.NoPiece
		if mv.To > mv.From {
			rookFrom := mv.From + 3
			rookTo := mv.From + 1
			b.Squares[rookFrom] = b.Squares[rookTo]
			b.Squares[rookTo] = types.NoPiece
		} else {
			rookFrom := mv.From - 4
			rookTo := mv.From - 1
			b.Squares[rookFrom] = b.Squares[rookTo]
			b.Squares[rookTo] = types.NoPiece
		}
	case mv.IsEnPassant:
		b.Squares[mv.From] = mover
		b.Squares[mv.To] = types.NoPiece
		capSq := mv.To - 8
		if mover.Color == types.Black {
			capSq = mv.To + 8
		}
		b.Squares[capSq] = types.Piece{Kind: types.Pawn, Color: mover.Color.Flip()}
	case mv.Promotion != types.NoPieceKind:
		b.Squares[mv.From] = types.Piece{Kind: types.Pawn, Color: mover.Color}
		if mv.Captured != types.NoPieceKind {
			b.Squares[mv.To] = types.Piece{Kind: mv.Captured, Color: mover.Color.Flip()}
		} else {
			b.Squares[mv.To] = types.NoPiece
		}
	default:
		b.Squares[mv.From] = mover
		if mv.Captured != types.NoPieceKind {
			b.Squares[mv.To] = types.Piece{Kind: mv.Captured, Color: mover.Color.Flip()}
		} else {
			b.Squares[mv.To] = types.NoPiece
		}
	}
}

// FindKing returns the square of color's king, or SquareNone if there
// is none (unreachable in a legally-constructed position, but FEN
// input is trusted leniently per spec.md §4.1).
func (b *Board) FindKing(color types.Color) types.Square {
	for sq := types.Square(0); sq < 64; sq++ {
		p := b.Squares[sq]
		if p.Kind == types.King && p.Color == color {
			return sq
		}
	}
	return types.SquareNone
}

// InCheck reports whether the side to move's king is attacked.
func (b *Board) InCheck() bool {
	king := b.FindKing(b.Side)
	if king == types.SquareNone {
		return false
	}
	return b.IsAttacked(king, b.Side.Flip())
}

// IsRepetition reports whether the current hash has already occurred
// at least twice in the combined game/search history — the third
// occurrence is the current position itself (spec.md §4.1, §4.7).
func (b *Board) IsRepetition() bool {
	if len(b.positionHashes) == 0 {
		return false
	}
	current := b.positionHashes[len(b.positionHashes)-1]
	count := 0
	for _, h := range b.positionHashes {
		if h == current {
			count++
		}
	}
	// The stack's last entry is the current position itself, so two
	// earlier occurrences make a count of three.
	return count >= 3
}

// IsFiftyMoveRule reports whether the fifty-move rule has been
// reached (spec.md §4.1).
func (b *Board) IsFiftyMoveRule() bool {
	return b.Halfmove >= 100
}

// HasNonPawnMaterial reports whether side has any piece other than
// king or pawn.
func (b *Board) HasNonPawnMaterial(side types.Color) bool {
	for sq := types.Square(0); sq < 64; sq++ {
		p := b.Squares[sq]
		if p.Color == side && p.Kind != types.Pawn && p.Kind != types.King {
			return true
		}
	}
	return false
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
