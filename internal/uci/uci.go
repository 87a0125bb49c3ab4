// Package uci implements the UCI protocol adapter: it owns the
// current Board and search Engine, parses commands from stdin, and
// writes "info"/"bestmove" responses to stdout (spec.md §6).
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	gologging "github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kophouse/corvid/internal/board"
	myLogging "github.com/kophouse/corvid/internal/logging"
	"github.com/kophouse/corvid/internal/movegen"
	"github.com/kophouse/corvid/internal/search"
	"github.com/kophouse/corvid/internal/types"
	"github.com/kophouse/corvid/internal/util"
	"github.com/kophouse/corvid/internal/version"
)

var out = message.NewPrinter(language.English)
var log *gologging.Logger

// UciHandler owns the engine-side state of one UCI session: the
// current position and the search engine. Create one with
// NewUciHandler and call Loop to read commands from stdin.
type UciHandler struct {
	InIo  *bufio.Scanner
	OutIo *bufio.Writer

	pos    *board.Board
	engine *search.Engine
}

// NewUciHandler wires stdin/stdout and a fresh engine and position.
func NewUciHandler() *UciHandler {
	if log == nil {
		log = myLogging.GetLog()
	}
	u := &UciHandler{
		InIo:   bufio.NewScanner(os.Stdin),
		OutIo:  bufio.NewWriter(os.Stdout),
		pos:    board.NewStartPosition(),
		engine: search.NewEngine(),
	}
	u.engine.Info = u.sendIterationInfo
	return u
}

// Loop reads and handles commands until "quit".
func (u *UciHandler) Loop() {
	for u.InIo.Scan() {
		if u.handleReceivedCommand(u.InIo.Text()) {
			return
		}
	}
}

// Command handles a single line and returns everything written to
// stdout during it; useful for tests.
func (u *UciHandler) Command(cmd string) string {
	tmp := u.OutIo
	buffer := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buffer)
	u.handleReceivedCommand(cmd)
	_ = u.OutIo.Flush()
	u.OutIo = tmp
	return buffer.String()
}

// SendInfoString sends a diagnostic as an "info string" line, per
// spec.md §7's policy of routing stderr-worthy diagnostics through a
// channel a UCI GUI won't choke on.
func (u *UciHandler) SendInfoString(info string) {
	u.send(out.Sprintf("info string %s", info))
}

func (u *UciHandler) sendIterationInfo(depth, score int, nodes uint64, elapsed time.Duration, pv []types.Move) {
	nps := util.Nps(nodes, elapsed)
	pvStr := pvString(pv)
	u.send(fmt.Sprintf("info depth %d score cp %d nodes %d nps %d time %d pv %s",
		depth, score, nodes, nps, elapsed.Milliseconds(), pvStr))
}

func pvString(pv []types.Move) string {
	if len(pv) == 0 {
		return ""
	}
	parts := make([]string, len(pv))
	for i, mv := range pv {
		parts[i] = mv.String()
	}
	return strings.Join(parts, " ")
}

var regexWhiteSpace = regexp.MustCompile(`\s+`)

func (u *UciHandler) handleReceivedCommand(cmd string) bool {
	if len(strings.TrimSpace(cmd)) == 0 {
		return false
	}
	log.Debugf("received: %s", cmd)
	tokens := regexWhiteSpace.Split(strings.TrimSpace(cmd), -1)
	switch tokens[0] {
	case "quit":
		return true
	case "uci":
		u.uciCommand()
	case "setoption":
		u.setOptionCommand(tokens)
	case "isready":
		u.send("readyok")
	case "ucinewgame":
		u.pos = board.NewStartPosition()
		u.engine.NewGame()
	case "position":
		u.positionCommand(tokens)
	case "go":
		u.goCommand(tokens)
	case "stop":
		u.engine.Stop()
	default:
		log.Warningf("unknown command: %s", cmd)
	}
	return false
}

func (u *UciHandler) uciCommand() {
	u.send("id name " + version.Full())
	u.send("id author " + version.Author)
	for _, line := range uciOptions.GetOptions() {
		u.send(line)
	}
	u.send("uciok")
}

func (u *UciHandler) setOptionCommand(tokens []string) {
	if len(tokens) < 3 || tokens[1] != "name" {
		u.SendInfoString("setoption malformed")
		return
	}
	i := 2
	var name strings.Builder
	for i < len(tokens) && tokens[i] != "value" {
		if name.Len() > 0 {
			name.WriteByte(' ')
		}
		name.WriteString(tokens[i])
		i++
	}
	value := ""
	if i < len(tokens)-1 && tokens[i] == "value" {
		value = strings.Join(tokens[i+1:], " ")
	}
	opt, ok := uciOptions[name.String()]
	if !ok {
		u.SendInfoString("setoption: no such option '" + name.String() + "'")
		return
	}
	opt.CurrentValue = value
	opt.HandlerFunc(u, opt)
}

// positionCommand sets the current position from "startpos" or
// "fen ...", then replays any trailing "moves" (spec.md §6). Unknown
// move strings are logged and skip the remainder, per spec.md §7.
func (u *UciHandler) positionCommand(tokens []string) {
	if len(tokens) < 2 {
		u.SendInfoString("position malformed")
		return
	}
	i := 1
	switch tokens[i] {
	case "startpos":
		u.pos = board.NewStartPosition()
		i++
	case "fen":
		i++
		var fenb strings.Builder
		for i < len(tokens) && tokens[i] != "moves" {
			if fenb.Len() > 0 {
				fenb.WriteByte(' ')
			}
			fenb.WriteString(tokens[i])
			i++
		}
		p, err := board.FromFEN(fenb.String())
		if err != nil {
			u.SendInfoString("position: invalid fen: " + err.Error())
			return
		}
		u.pos = p
	default:
		u.SendInfoString("position malformed: " + tokens[i])
		return
	}

	if i < len(tokens) && tokens[i] == "moves" {
		i++
		for ; i < len(tokens); i++ {
			mv, ok := findLegalMove(u.pos, tokens[i])
			if !ok {
				log.Warningf("illegal UCI move attempted: %s", tokens[i])
				u.SendInfoString("illegal UCI move attempted: " + tokens[i])
				return
			}
			u.pos.Make(mv)
		}
	}
}

// findLegalMove maps a UCI move string to the matching legal move in
// the current position (spec.md §6's move-string policy).
func findLegalMove(b *board.Board, uciMove string) (types.Move, bool) {
	for _, mv := range movegen.GenerateLegal(b) {
		if mv.String() == uciMove {
			return mv, true
		}
	}
	return types.MoveNone, false
}

// goCommand derives (depth, time_ms) per spec.md §6's time-budget
// policy and invokes the search.
func (u *UciHandler) goCommand(tokens []string) {
	depth, timeMs := u.readSearchLimits(tokens)
	result := u.engine.Search(u.pos, depth, timeMs)
	u.send("bestmove " + result.Move.String())
}

const (
	defaultMaxDepth  = 12
	defaultTimeMs    = 300_000
	defaultClockMs   = 10_000
	defaultMovesToGo = 25
)

func (u *UciHandler) readSearchLimits(tokens []string) (int, int) {
	var depth int
	var movetime int
	var wtime, btime, winc, binc, movestogo int
	haveTimeControl := false

	i := 1
	for i < len(tokens) {
		switch tokens[i] {
		case "infinite":
			return defaultMaxDepth, defaultTimeMs
		case "depth":
			i++
			if i < len(tokens) {
				depth, _ = strconv.Atoi(tokens[i])
			}
		case "movetime":
			i++
			if i < len(tokens) {
				movetime, _ = strconv.Atoi(tokens[i])
			}
		case "wtime":
			i++
			if i < len(tokens) {
				wtime, _ = strconv.Atoi(tokens[i])
				haveTimeControl = true
			}
		case "btime":
			i++
			if i < len(tokens) {
				btime, _ = strconv.Atoi(tokens[i])
				haveTimeControl = true
			}
		case "winc":
			i++
			if i < len(tokens) {
				winc, _ = strconv.Atoi(tokens[i])
			}
		case "binc":
			i++
			if i < len(tokens) {
				binc, _ = strconv.Atoi(tokens[i])
			}
		case "movestogo":
			i++
			if i < len(tokens) {
				movestogo, _ = strconv.Atoi(tokens[i])
			}
		}
		i++
	}

	if depth > 0 {
		if depth > defaultMaxDepth {
			depth = defaultMaxDepth
		}
		return depth, defaultTimeMs
	}
	if movetime > 0 {
		alloc := movetime - 50
		if alloc < 50 {
			alloc = 50
		}
		return defaultMaxDepth, alloc
	}
	if haveTimeControl {
		clock := wtime
		inc := winc
		if u.pos.Side == types.Black {
			clock = btime
			inc = binc
		}
		if clock <= 0 {
			clock = defaultClockMs
		}
		mtg := movestogo
		if mtg <= 0 {
			mtg = defaultMovesToGo
		}
		byThirds := clock / 3
		byMovesToGo := clock/mtg + 3*inc/4
		alloc := byThirds
		if byMovesToGo < alloc {
			alloc = byMovesToGo
		}
		alloc -= 50
		if alloc < 50 {
			alloc = 50
		}
		return defaultMaxDepth, alloc
	}
	return defaultMaxDepth, defaultTimeMs
}

func (u *UciHandler) send(s string) {
	_, _ = u.OutIo.WriteString(s + "\n")
	_ = u.OutIo.Flush()
}
