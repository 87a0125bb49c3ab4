package zobrist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kophouse/corvid/internal/types"
)

func startSquares() *[64]types.Piece {
	var sq [64]types.Piece
	back := []types.PieceKind{types.Rook, types.Knight, types.Bishop, types.Queen, types.King, types.Bishop, types.Knight, types.Rook}
	for f := 0; f < 8; f++ {
		sq[types.NewSquare(f, 0)] = types.Piece{Kind: back[f], Color: types.White}
		sq[types.NewSquare(f, 1)] = types.Piece{Kind: types.Pawn, Color: types.White}
		sq[types.NewSquare(f, 6)] = types.Piece{Kind: types.Pawn, Color: types.Black}
		sq[types.NewSquare(f, 7)] = types.Piece{Kind: back[f], Color: types.Black}
	}
	return &sq
}

func TestHashDeterministic(t *testing.T) {
	sq := startSquares()
	h1 := Hash(sq, types.White, types.CastlingAll, types.SquareNone)
	h2 := Hash(sq, types.White, types.CastlingAll, types.SquareNone)
	assert.Equal(t, h1, h2)
}

func TestHashDiffersBySide(t *testing.T) {
	sq := startSquares()
	h1 := Hash(sq, types.White, types.CastlingAll, types.SquareNone)
	h2 := Hash(sq, types.Black, types.CastlingAll, types.SquareNone)
	assert.NotEqual(t, h1, h2)
}

func TestHashDiffersByCastling(t *testing.T) {
	sq := startSquares()
	h1 := Hash(sq, types.White, types.CastlingAll, types.SquareNone)
	h2 := Hash(sq, types.White, types.CastlingAll.Clear(types.WhiteKingside), types.SquareNone)
	assert.NotEqual(t, h1, h2)
}

func TestHashDiffersByEnPassant(t *testing.T) {
	sq := startSquares()
	h1 := Hash(sq, types.White, types.CastlingAll, types.SquareNone)
	h2 := Hash(sq, types.White, types.CastlingAll, types.SquareFromString("e3"))
	assert.NotEqual(t, h1, h2)
}

func TestHashDiffersByPiecePlacement(t *testing.T) {
	sq := startSquares()
	h1 := Hash(sq, types.White, types.CastlingAll, types.SquareNone)
	sq[types.SquareFromString("e2")] = types.NoPiece
	sq[types.SquareFromString("e4")] = types.Piece{Kind: types.Pawn, Color: types.White}
	h2 := Hash(sq, types.White, types.CastlingAll, types.SquareNone)
	assert.NotEqual(t, h1, h2)
}
