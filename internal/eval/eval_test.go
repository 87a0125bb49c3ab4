package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kophouse/corvid/internal/board"
)

// The start position's phase material is 24, normalized against 28:
// 24*256/28 = 219.
func TestPhaseStartPosition(t *testing.T) {
	b := board.NewStartPosition()
	assert.Equal(t, 219, Phase(b))
}

func TestPhaseBareKingsIsZero(t *testing.T) {
	b, err := board.FromFEN("8/8/8/4k3/8/8/4K3/8 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, 0, Phase(b))
}

// TestEvaluateSymmetric checks spec.md §8 invariant 5: evaluating a
// position and its color-flipped mirror (with side to move flipped)
// yields the same score, since both terms and the final sign flip
// cancel out.
func TestEvaluateSymmetric(t *testing.T) {
	white, err := board.FromFEN("4k3/8/8/8/8/4P3/8/4K3 w - - 0 1")
	require.NoError(t, err)
	black, err := board.FromFEN("4k3/8/4p3/8/8/8/8/4K3 b - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, Evaluate(white), Evaluate(black))
}

func TestEvaluateStartPositionIsNearZero(t *testing.T) {
	b := board.NewStartPosition()
	// Material and PSTs are symmetric in the start position; mobility
	// differs only by move-generation edge effects, if at all.
	assert.InDelta(t, 0, Evaluate(b), 5)
}

func TestEvaluateFavorsMaterialAdvantage(t *testing.T) {
	b, err := board.FromFEN("4k3/8/8/8/8/8/4Q3/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.Greater(t, Evaluate(b), 500)
}

func TestEvaluateDoubledPawnsArePenalized(t *testing.T) {
	doubled, err := board.FromFEN("4k3/8/8/8/4P3/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)
	spread, err := board.FromFEN("4k3/8/8/8/3P4/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.Less(t, Evaluate(doubled), Evaluate(spread))
}
