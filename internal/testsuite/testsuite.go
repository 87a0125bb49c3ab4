// Package testsuite runs EPD-style regression tests: each line names a
// position and an expected best move, and the suite reports how many
// positions the search solves. Positions run concurrently across a
// worker pool, since each is an independent, side-effect-free search
// (supplemental to spec.md — the original distillation's testable
// properties are perft and invariants; this is the engine-play-level
// check a complete repo in the teacher's style would also carry).
package testsuite

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kophouse/corvid/internal/board"
	"github.com/kophouse/corvid/internal/search"
)

// Case is one EPD-derived test: a position plus the move id expects to
// see played.
type Case struct {
	ID       string
	Fen      string
	BestMove string
}

// Result is the outcome of running one Case.
type Result struct {
	Case    Case
	Got     string
	Passed  bool
	Elapsed time.Duration
}

// ParseEPD reads EPD lines of the form
// "<fen fields> bm <move>; id \"<name>\";" and returns one Case per
// line. Lines that fail to parse are skipped.
func ParseEPD(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cases []Case
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if c, ok := parseEPDLine(line); ok {
			cases = append(cases, c)
		}
	}
	return cases, scanner.Err()
}

func parseEPDLine(line string) (Case, bool) {
	bmIdx := strings.Index(line, " bm ")
	if bmIdx < 0 {
		return Case{}, false
	}
	fen := strings.TrimSpace(line[:bmIdx])
	rest := line[bmIdx+4:]

	semi := strings.Index(rest, ";")
	if semi < 0 {
		return Case{}, false
	}
	bestMove := strings.TrimSpace(rest[:semi])

	id := fen
	if idIdx := strings.Index(rest, `id "`); idIdx >= 0 {
		start := idIdx + len(`id "`)
		if end := strings.Index(rest[start:], `"`); end >= 0 {
			id = rest[start : start+end]
		}
	}
	return Case{ID: id, Fen: fen, BestMove: bestMove}, true
}

// Run executes every case with the given per-position time budget,
// fanning positions out across maxWorkers concurrent searches. Each
// search gets its own Board and Engine, so there is no shared mutable
// state across workers (spec.md §5's single-threaded-per-search model
// still holds; only the harness around many independent searches is
// concurrent). maxWorkers bounds concurrency via errgroup.Group's
// SetLimit, the same way the teacher's own go.mod already pulls in
// golang.org/x/sync as a direct (non-indirect) dependency.
func Run(cases []Case, movetimeMs int, maxWorkers int) []Result {
	results := make([]Result, len(cases))

	var g errgroup.Group
	if maxWorkers > 0 {
		g.SetLimit(maxWorkers)
	}
	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			results[i] = runOne(c, movetimeMs)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func runOne(c Case, movetimeMs int) Result {
	b, err := board.FromFEN(c.Fen)
	if err != nil {
		return Result{Case: c, Got: "invalid fen", Passed: false}
	}
	e := search.NewEngine()
	start := time.Now()
	res := e.Search(b, 64, movetimeMs)
	elapsed := time.Since(start)
	got := res.Move.String()
	return Result{Case: c, Got: got, Passed: got == c.BestMove, Elapsed: elapsed}
}

// Summarize prints a pass/fail line per case and a final score.
func Summarize(results []Result) {
	passed := 0
	for _, r := range results {
		status := "FAIL"
		if r.Passed {
			status = "PASS"
			passed++
		}
		fmt.Printf("%-4s %-30s want=%-8s got=%-8s (%v)\n", status, r.Case.ID, r.Case.BestMove, r.Got, r.Elapsed)
	}
	fmt.Printf("%d/%d passed\n", passed, len(results))
}
