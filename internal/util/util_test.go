package util

import (
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// make tests run in the project's root directory.
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "../..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}

func TestAbs(t *testing.T) {
	assert.Equal(t, 5, Abs(-5))
	assert.Equal(t, 5, Abs(5))
	assert.Equal(t, int64(5), Abs64(int64(-5)))
	assert.Equal(t, int64(5), Abs64(int64(5)))
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, -5, Min(-5, -3))
	assert.Equal(t, -3, Max(-5, -3))
}

func TestNps(t *testing.T) {
	// 1000 nodes over 1s+1ns truncates to 999.
	assert.Equal(t, uint64(999), Nps(1000, 1_000_000_000))
}

func TestResolveFile(t *testing.T) {
	_, err := ResolveFile("go.mod")
	assert.NoError(t, err)

	_, err = ResolveFile("does-not-exist.toml")
	assert.Error(t, err)
}

func TestIsDigit(t *testing.T) {
	assert.True(t, IsDigit('5'))
	assert.False(t, IsDigit('a'))
}
