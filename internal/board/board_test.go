package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kophouse/corvid/internal/types"
)

func sq(s string) types.Square {
	return types.SquareFromString(s)
}

func TestNewStartPositionMatchesStartFen(t *testing.T) {
	b := NewStartPosition()
	assert.Equal(t, types.White, b.Side)
	assert.Equal(t, types.CastlingAll, b.Castling)
	assert.Equal(t, types.SquareNone, b.EpSquare)
	assert.Equal(t, StartFen, b.FEN())
}

func TestFenRoundTrip(t *testing.T) {
	fens := []string{
		StartFen,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"8/8/8/4k3/8/8/4K3/8 w - - 0 1",
		"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2",
	}
	for _, fen := range fens {
		b, err := FromFEN(fen)
		require.NoError(t, err)
		assert.Equal(t, fen, b.FEN())
	}
}

func TestFromFenRejectsMalformedPlacement(t *testing.T) {
	_, err := FromFEN("not-a-fen w - - 0 1")
	assert.Error(t, err)
}

func TestFromFenLenientOnMissingFields(t *testing.T) {
	b, err := FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w")
	require.NoError(t, err)
	assert.Equal(t, types.CastlingNone, b.Castling)
	assert.Equal(t, types.SquareNone, b.EpSquare)
	assert.Equal(t, 0, b.Halfmove)
	assert.Equal(t, 1, b.Fullmove)
}

func TestMakeUnmakeRoundTripQuietMove(t *testing.T) {
	b := NewStartPosition()
	before := *b
	mv := types.Move{From: sq("e2"), To: sq("e4")}
	b.Make(mv)
	assert.Equal(t, types.Black, b.Side)
	assert.Equal(t, sq("e3"), b.EpSquare)
	b.Unmake()
	assert.Equal(t, before.Squares, b.Squares)
	assert.Equal(t, before.Side, b.Side)
	assert.Equal(t, before.Castling, b.Castling)
	assert.Equal(t, before.EpSquare, b.EpSquare)
	assert.Equal(t, before.Hash, b.Hash)
}

func TestMakeUnmakeRoundTripCapture(t *testing.T) {
	b, err := FromFEN("r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	require.NoError(t, err)
	before := *b
	mv := types.Move{From: sq("f3"), To: sq("e5"), Captured: types.Pawn}
	b.Make(mv)
	assert.Equal(t, types.NoPiece, b.Squares[sq("f3")])
	b.Unmake()
	assert.Equal(t, before.Squares, b.Squares)
	assert.Equal(t, before.Hash, b.Hash)
}

func TestMakeUnmakeRoundTripEnPassant(t *testing.T) {
	b, err := FromFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)
	before := *b
	mv := types.Move{From: sq("e5"), To: sq("d6"), IsEnPassant: true, Captured: types.Pawn}
	b.Make(mv)
	assert.Equal(t, types.NoPiece, b.Squares[sq("d5")])
	assert.Equal(t, types.Pawn, b.Squares[sq("d6")].Kind)
	b.Unmake()
	assert.Equal(t, before.Squares, b.Squares)
	assert.Equal(t, before.Hash, b.Hash)
}

func TestMakeUnmakeRoundTripCastle(t *testing.T) {
	b, err := FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	before := *b
	mv := types.Move{From: sq("e1"), To: sq("g1"), IsCastle: true}
	b.Make(mv)
	assert.Equal(t, types.King, b.Squares[sq("g1")].Kind)
	assert.Equal(t, types.Rook, b.Squares[sq("f1")].Kind)
	assert.False(t, b.Castling.Has(types.WhiteKingside))
	assert.False(t, b.Castling.Has(types.WhiteQueenside))
	b.Unmake()
	assert.Equal(t, before.Squares, b.Squares)
	assert.Equal(t, before.Castling, b.Castling)
	assert.Equal(t, before.Hash, b.Hash)
}

func TestMakeUnmakeRoundTripPromotion(t *testing.T) {
	b, err := FromFEN("8/4P3/8/8/8/8/4k3/4K3 w - - 0 1")
	require.NoError(t, err)
	before := *b
	mv := types.Move{From: sq("e7"), To: sq("e8"), Promotion: types.Queen}
	b.Make(mv)
	assert.Equal(t, types.Queen, b.Squares[sq("e8")].Kind)
	b.Unmake()
	assert.Equal(t, before.Squares, b.Squares)
	assert.Equal(t, before.Hash, b.Hash)
}

func TestRookMoveClearsCastlingRight(t *testing.T) {
	b, err := FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	b.Make(types.Move{From: sq("h1"), To: sq("h2")})
	assert.False(t, b.Castling.Has(types.WhiteKingside))
	assert.True(t, b.Castling.Has(types.WhiteQueenside))
}

func TestRookCaptureClearsCastlingRight(t *testing.T) {
	b, err := FromFEN("r3k3/8/8/8/8/8/8/R3K2R w Qq - 0 1")
	require.NoError(t, err)
	b.Make(types.Move{From: sq("a1"), To: sq("a8"), Captured: types.Rook})
	assert.False(t, b.Castling.Has(types.WhiteQueenside))
	assert.False(t, b.Castling.Has(types.BlackQueenside))
}

func TestHalfmoveResetsOnPawnMoveOrCapture(t *testing.T) {
	b := NewStartPosition()
	b.Make(types.Move{From: sq("b1"), To: sq("c3")})
	assert.Equal(t, 1, b.Halfmove)
	b.Make(types.Move{From: sq("b8"), To: sq("c6")})
	assert.Equal(t, 2, b.Halfmove)
	b.Make(types.Move{From: sq("e2"), To: sq("e4")})
	assert.Equal(t, 0, b.Halfmove)
}

func TestIsFiftyMoveRule(t *testing.T) {
	b := NewStartPosition()
	b.Halfmove = 99
	assert.False(t, b.IsFiftyMoveRule())
	b.Halfmove = 100
	assert.True(t, b.IsFiftyMoveRule())
}

func TestIsRepetition(t *testing.T) {
	b := NewStartPosition()
	assert.False(t, b.IsRepetition())

	b.Make(types.Move{From: sq("g1"), To: sq("f3")})
	b.Make(types.Move{From: sq("g8"), To: sq("f6")})
	b.Make(types.Move{From: sq("f3"), To: sq("g1")})
	b.Make(types.Move{From: sq("f6"), To: sq("g8")})
	assert.False(t, b.IsRepetition())

	b.Make(types.Move{From: sq("g1"), To: sq("f3")})
	b.Make(types.Move{From: sq("g8"), To: sq("f6")})
	b.Make(types.Move{From: sq("f3"), To: sq("g1")})
	b.Make(types.Move{From: sq("f6"), To: sq("g8")})
	assert.True(t, b.IsRepetition())
}

func TestInCheck(t *testing.T) {
	b, err := FromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	assert.True(t, b.InCheck())
}

func TestIsAttackedSliders(t *testing.T) {
	b, err := FromFEN("8/8/8/3r4/8/8/8/3K4 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, b.IsAttacked(sq("d1"), types.Black))
	assert.False(t, b.IsAttacked(sq("e1"), types.Black))
}

func TestHasNonPawnMaterial(t *testing.T) {
	b := NewStartPosition()
	assert.True(t, b.HasNonPawnMaterial(types.White))
	king, err := FromFEN("8/8/8/4k3/8/8/4K3/8 w - - 0 1")
	require.NoError(t, err)
	assert.False(t, king.HasNonPawnMaterial(types.White))
}
