// Corvid is a UCI chess engine: a 64-square array board, make/unmake
// legality checking, a tapered evaluation, and iterative-deepening
// principal-variation search, driven over the UCI text protocol.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kophouse/corvid/internal/board"
	"github.com/kophouse/corvid/internal/config"
	myLogging "github.com/kophouse/corvid/internal/logging"
	"github.com/kophouse/corvid/internal/movegen"
	"github.com/kophouse/corvid/internal/testsuite"
	"github.com/kophouse/corvid/internal/uci"
	"github.com/kophouse/corvid/internal/version"
)

var out = message.NewPrinter(language.English)

func main() {
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "info", "standard log level\n(critical|error|warning|notice|info|debug)")
	testSuite := flag.String("testsuite", "", "path to an EPD file containing test positions")
	testMovetime := flag.Int("testtime", 2000, "search time for each test position in milliseconds")
	perft := flag.Int("perft", 0, "runs perft on the start position (or -fen) for each depth up to the given one and prints the node counts")
	fenFlag := flag.String("fen", board.StartFen, "fen for -perft")
	cpuProfile := flag.Bool("cpuprofile", false, "write a CPU profile to ./cpu.pprof while running")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if *versionInfo {
		printVersionInfo()
		return
	}

	config.ConfFile = *configFile
	config.Setup()

	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}
	myLogging.GetLog()

	if *perft != 0 {
		runPerft(*fenFlag, *perft)
		return
	}

	if *testSuite != "" {
		runTestSuite(*testSuite, *testMovetime)
		return
	}

	u := uci.NewUciHandler()
	u.Loop()
}

func runPerft(fen string, depth int) {
	b, err := board.FromFEN(fen)
	if err != nil {
		fmt.Println("invalid fen:", err)
		return
	}
	for d := 1; d <= depth; d++ {
		start := time.Now()
		nodes := movegen.Perft(b, d)
		elapsed := time.Since(start)
		out.Printf("perft %d: %d nodes (%v)\n", d, nodes, elapsed)
	}
}

func runTestSuite(path string, movetimeMs int) {
	cases, err := testsuite.ParseEPD(path)
	if err != nil {
		fmt.Println(err)
		return
	}
	results := testsuite.Run(cases, movetimeMs, runtime.NumCPU())
	testsuite.Summarize(results)
}

func printVersionInfo() {
	out.Printf("%s\n", version.Full())
	out.Println("Environment:")
	out.Printf("  Using GO version %s\n", runtime.Version())
	out.Printf("  Running %s using %s as a compiler\n", runtime.GOARCH, runtime.Compiler)
	out.Printf("  Number of CPU: %d\n", runtime.NumCPU())
	cwd, _ := os.Getwd()
	out.Printf("  Working directory: %s\n", cwd)
}
