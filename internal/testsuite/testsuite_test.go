package testsuite

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEPD(t *testing.T, lines ...string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "*.epd")
	require.NoError(t, err)
	for _, l := range lines {
		_, err := f.WriteString(l + "\n")
		require.NoError(t, err)
	}
	require.NoError(t, f.Close())
	return f.Name()
}

func TestParseEPDLine(t *testing.T) {
	c, ok := parseEPDLine(`6k1/5ppp/8/8/8/8/8/R6K w - - 0 1 bm a1a8; id "mate in one";`)
	require.True(t, ok)
	assert.Equal(t, "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1", c.Fen)
	assert.Equal(t, "a1a8", c.BestMove)
	assert.Equal(t, "mate in one", c.ID)
}

func TestParseEPDLineWithoutID(t *testing.T) {
	c, ok := parseEPDLine(`4k3/8/8/8/8/8/4P3/4K3 w - - 0 1 bm e2e4;`)
	require.True(t, ok)
	assert.Equal(t, "e2e4", c.BestMove)
	assert.Equal(t, c.Fen, c.ID)
}

func TestParseEPDRejectsMalformedLine(t *testing.T) {
	_, ok := parseEPDLine("not an epd line at all")
	assert.False(t, ok)
}

func TestParseEPDSkipsBlankAndCommentLines(t *testing.T) {
	path := writeEPD(t,
		"# a comment",
		"",
		`6k1/5ppp/8/8/8/8/8/R6K w - - 0 1 bm a1a8; id "mate1";`,
	)
	cases, err := ParseEPD(path)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "mate1", cases[0].ID)
}

func TestRunSolvesMateInOne(t *testing.T) {
	cases := []Case{{
		ID:       "mate1",
		Fen:      "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1",
		BestMove: "a1a8",
	}}
	results := Run(cases, 2000, 2)
	require.Len(t, results, 1)
	assert.True(t, results[0].Passed)
	assert.Equal(t, "a1a8", results[0].Got)
}

func TestRunReportsFenErrorAsFailure(t *testing.T) {
	cases := []Case{{ID: "bad", Fen: "not a fen", BestMove: "a1a8"}}
	results := Run(cases, 100, 1)
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
}
