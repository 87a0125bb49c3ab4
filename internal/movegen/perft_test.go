package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kophouse/corvid/internal/board"
)

// TestPerftStartPosition matches spec.md §8's perft table for the
// standard starting position, depths 1-5.
func TestPerftStartPosition(t *testing.T) {
	want := []uint64{20, 400, 8902, 197281, 4865609}
	b := board.NewStartPosition()
	for depth, expected := range want {
		got := Perft(b, depth+1)
		assert.Equal(t, expected, got, "perft(%d)", depth+1)
	}
}

// TestPerftKiwipete exercises castling, en-passant, and promotion move
// generation together (spec.md §8).
func TestPerftKiwipete(t *testing.T) {
	b, err := board.FromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	assert.Equal(t, uint64(48), Perft(b, 1))
	assert.Equal(t, uint64(2039), Perft(b, 2))
	assert.Equal(t, uint64(97862), Perft(b, 3))
}

func TestGenerateLegalExcludesSelfCheck(t *testing.T) {
	b, err := board.FromFEN("4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	require.NoError(t, err)
	for _, mv := range GenerateLegal(b) {
		assert.NotEqual(t, "e1f2", mv.String())
		assert.NotEqual(t, "e1d2", mv.String())
	}
}

func TestGenerateCapturesOnlyReturnsCaptures(t *testing.T) {
	b, err := board.FromFEN("r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	require.NoError(t, err)
	for _, mv := range GenerateCaptures(b) {
		if mv.Captured == 0 && !mv.IsEnPassant {
			t.Fatalf("non-capture move %s returned by GenerateCaptures", mv)
		}
	}
}
