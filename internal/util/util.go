// Package util provides small helpers shared across the engine that are
// not otherwise available in the standard library.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var out = message.NewPrinter(language.English)

// Abs returns the absolute value of n using a non-branching bit trick.
func Abs(n int) int {
	y := n >> 63
	return (n ^ y) - y
}

// Abs64 is Abs for int64.
func Abs64(n int64) int64 {
	y := n >> 63
	return (n ^ y) - y
}

// Min returns the smaller of the given integers.
func Min(x, y int) int {
	if x < y {
		return x
	}
	return y
}

// Max returns the bigger of the given integers.
func Max(x, y int) int {
	if x > y {
		return x
	}
	return y
}

// TimeTrack is a convenient way to measure the timing of a function.
// Usage: defer util.TimeTrack(time.Now(), "some text").
func TimeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	_, _ = out.Printf("%s took %d ns\n", name, elapsed.Nanoseconds())
}

// Nps calculates nodes per second from a node count and a duration,
// adding one nanosecond to the duration so a zero duration never
// divides by zero.
func Nps(nodes uint64, duration time.Duration) uint64 {
	return uint64(int64(nodes) * time.Second.Nanoseconds() / (duration.Nanoseconds() + 1))
}

// IsDigit reports whether l is an ASCII decimal digit.
func IsDigit(l byte) bool {
	return l >= '0' && l <= '9'
}

// ResolveFile resolves a (possibly relative) file path against the
// current working directory and reports whether the result exists.
// Callers that tolerate a missing file (config.Setup) ignore the error.
func ResolveFile(file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return file, err
	}
	abs = filepath.Clean(abs)
	if _, statErr := os.Stat(abs); statErr != nil {
		return abs, fmt.Errorf("file not found: %s: %w", abs, statErr)
	}
	return abs, nil
}
