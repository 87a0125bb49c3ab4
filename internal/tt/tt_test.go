package tt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kophouse/corvid/internal/types"
)

func TestProbeMissOnEmptyTable(t *testing.T) {
	table := New(1)
	_, ok := table.Probe(12345)
	assert.False(t, ok)
}

func TestStoreThenProbe(t *testing.T) {
	table := New(1)
	mv := types.Move{From: types.SquareFromString("e2"), To: types.SquareFromString("e4")}
	table.Store(42, 5, 100, Exact, mv)
	entry, ok := table.Probe(42)
	assert.True(t, ok)
	assert.Equal(t, uint8(5), entry.Depth)
	assert.Equal(t, int32(100), entry.Score)
	assert.Equal(t, Exact, entry.Flag)
	assert.Equal(t, mv, entry.Move)
}

func TestStoreIsDepthPreferredOnCollision(t *testing.T) {
	table := New(1)
	idx := uint64(7)
	hashA := idx
	hashB := idx | (1 << 40) // collides on the same low bits, different hash
	table.Store(hashA, 10, 1, Exact, types.MoveNone)
	table.Store(hashB, 3, 2, Exact, types.MoveNone)
	entry, ok := table.Probe(hashA)
	assert.True(t, ok, "shallower collision must not replace a deeper entry")
	assert.Equal(t, int32(1), entry.Score)

	table.Store(hashB, 20, 3, Exact, types.MoveNone)
	entry, ok = table.Probe(hashB)
	assert.True(t, ok)
	assert.Equal(t, int32(3), entry.Score)
}

func TestClearLogicallyErasesEntries(t *testing.T) {
	table := New(1)
	table.Store(1, 5, 100, Exact, types.MoveNone)
	table.Clear()
	_, ok := table.Probe(1)
	assert.False(t, ok)
}

func TestResizeIsPowerOfTwo(t *testing.T) {
	table := New(16)
	n := table.Len()
	assert.NotZero(t, n&(n-1) == 0, "table length must be a power of two")
}
