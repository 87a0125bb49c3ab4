// Package search implements principal-variation search over the
// board/movegen/eval stack: iterative deepening, quiescence, move
// ordering, killers, history, and cooperative time cancellation
// (spec.md §4.6, §5).
package search

import (
	"sync/atomic"
	"time"

	"github.com/kophouse/corvid/internal/board"
	"github.com/kophouse/corvid/internal/config"
	"github.com/kophouse/corvid/internal/eval"
	"github.com/kophouse/corvid/internal/movegen"
	"github.com/kophouse/corvid/internal/tt"
	"github.com/kophouse/corvid/internal/types"
)

const (
	mateValue  = 32000
	infinity   = mateValue + 1
	maxPlySize = 128
)

// InfoFunc receives one completed-iteration UCI "info" line worth of
// data; the uci package supplies the actual formatter/writer.
type InfoFunc func(depth int, score int, nodes uint64, elapsed time.Duration, pv []types.Move)

// Engine owns everything the search mutates across "go" invocations:
// the transposition table, killer/history tables, and the cooperative
// stop flag. It persists between searches unless NewGame is called
// (spec.md §5's "Shared resources").
type Engine struct {
	TT      *tt.Table
	killers [maxPlySize][2]types.Move
	history [64][64]int

	stopped atomic.Bool
	nodes   uint64
	start   time.Time
	budget  time.Duration

	Info InfoFunc
}

// NewEngine builds an Engine with a transposition table sized per
// internal/config's Search.TTSizeMB.
func NewEngine() *Engine {
	return &Engine{TT: tt.New(config.Settings.Search.TTSizeMB)}
}

// NewGame resets every piece of engine-owned state: TT, killers, and
// history (spec.md §5).
func (e *Engine) NewGame() {
	e.TT.Clear()
	e.killers = [maxPlySize][2]types.Move{}
	e.history = [64][64]int{}
}

// Stop requests cooperative cancellation of the in-progress search;
// it is safe to call from the UCI reader goroutine while Search runs.
func (e *Engine) Stop() {
	e.stopped.Store(true)
}

// Result is what Search returns to the UCI adapter.
type Result struct {
	Move  types.Move
	Score int
	Depth int
	Nodes uint64
}

// Search is the (board, max_depth, time_limit_ms) -> (best_move, score)
// entry point (spec.md §4.6). b is mutated in place via Make/Unmake and
// is restored to its original state before Search returns.
func (e *Engine) Search(b *board.Board, maxDepth int, timeLimitMs int) Result {
	e.stopped.Store(false)
	e.nodes = 0
	e.start = time.Now()
	e.budget = time.Duration(timeLimitMs) * time.Millisecond

	legalAtRoot := movegen.GenerateLegal(b)
	if len(legalAtRoot) == 0 {
		return Result{Move: types.MoveNone}
	}

	best := Result{Move: legalAtRoot[0]}
	divisor := config.Settings.Search.IterationStopDivisor
	if divisor <= 0 {
		divisor = 2
	}

	for depth := 1; depth <= maxDepth; depth++ {
		score := e.pvs(b, depth, -infinity, infinity, 0)
		if e.stopped.Load() {
			break
		}

		if entry, ok := e.TT.Probe(b.Hash); ok && !entry.Move.IsNone() {
			best = Result{Move: entry.Move, Score: int(score), Depth: depth, Nodes: e.nodes}
		} else {
			best.Score = int(score)
			best.Depth = depth
			best.Nodes = e.nodes
		}

		if e.Info != nil {
			e.Info(depth, int(score), e.nodes, time.Since(e.start), e.principalVariation(b, depth))
		}

		if isMateScore(int(score)) {
			break
		}
		if time.Since(e.start) >= e.budget/time.Duration(divisor) {
			break
		}
	}
	return best
}

// principalVariation walks the TT's best-move chain from the current
// position, up to maxLen plies, to build the "pv" field of a UCI info
// line. It makes and unmakes every move it follows, leaving b
// untouched on return.
func (e *Engine) principalVariation(b *board.Board, maxLen int) []types.Move {
	var pv []types.Move
	seen := make(map[uint64]bool)
	for len(pv) < maxLen {
		entry, ok := e.TT.Probe(b.Hash)
		if !ok || entry.Move.IsNone() || seen[b.Hash] {
			break
		}
		seen[b.Hash] = true
		pv = append(pv, entry.Move)
		b.Make(entry.Move)
	}
	for range pv {
		b.Unmake()
	}
	return pv
}

func isMateScore(score int) bool {
	threshold := config.Settings.Search.MateThreshold
	abs := score
	if abs < 0 {
		abs = -abs
	}
	return abs > mateValue-threshold
}

func (e *Engine) timeUp() bool {
	interval := config.Settings.Search.TimeCheckInterval
	if interval == 0 {
		interval = 2048
	}
	if e.nodes%interval != 0 {
		return e.stopped.Load()
	}
	if time.Since(e.start) >= e.budget {
		e.stopped.Store(true)
	}
	return e.stopped.Load()
}

// pvs is the recursive principal-variation search described in
// spec.md §4.6, steps 1-8.
func (e *Engine) pvs(b *board.Board, depth, alpha, beta, ply int) int32 {
	e.nodes++
	if e.timeUp() {
		return 0
	}

	if ply > 0 && (b.IsFiftyMoveRule() || b.IsRepetition()) {
		return 0
	}

	if entry, ok := e.TT.Probe(b.Hash); ok && int(entry.Depth) >= depth {
		switch entry.Flag {
		case tt.Exact:
			return entry.Score
		case tt.Lower:
			if int(entry.Score) >= beta {
				return entry.Score
			}
		case tt.Upper:
			if int(entry.Score) <= alpha {
				return entry.Score
			}
		}
	}

	if depth == 0 {
		return e.qsearch(b, int32(alpha), int32(beta))
	}

	legal := movegen.GenerateLegal(b)
	if len(legal) == 0 {
		if b.InCheck() {
			return int32(-mateValue + ply)
		}
		return 0
	}

	var ttMove types.Move
	if entry, ok := e.TT.Probe(b.Hash); ok {
		ttMove = entry.Move
	}
	order(legal, ttMove, e.killerAt(ply), e.history)

	raisedAlpha := false
	bestMove := legal[0]
	origAlpha := alpha

	for i, mv := range legal {
		b.Make(mv)

		reduction := 0
		if i >= config.Settings.Search.LmrMoveIndex && depth >= config.Settings.Search.LmrDepth &&
			mv.Captured == types.NoPieceKind && mv.Promotion == types.NoPieceKind && !b.InCheck() {
			reduction = config.Settings.Search.LmrReduction
		}

		var score int32
		if i == 0 {
			score = -e.pvs(b, depth-1, -beta, -alpha, ply+1)
		} else {
			score = -e.pvs(b, depth-1-reduction, -alpha-1, -alpha, ply+1)
			if int(score) > alpha && (reduction > 0 || int(score) < beta) {
				score = -e.pvs(b, depth-1, -beta, -alpha, ply+1)
			}
		}

		b.Unmake()

		if e.stopped.Load() {
			return 0
		}

		if int(score) > alpha {
			alpha = int(score)
			bestMove = mv
			raisedAlpha = true

			if alpha >= beta {
				e.TT.Store(b.Hash, uint8(depth), int32(beta), tt.Lower, mv)
				if mv.Captured == types.NoPieceKind && mv.Promotion == types.NoPieceKind {
					e.recordKiller(ply, mv)
					e.recordHistory(mv, depth)
				}
				return int32(beta)
			}
		}
	}

	if raisedAlpha {
		e.TT.Store(b.Hash, uint8(depth), int32(alpha), tt.Exact, bestMove)
	} else {
		e.TT.Store(b.Hash, uint8(depth), int32(origAlpha), tt.Upper, bestMove)
	}
	return int32(alpha)
}

// qsearch is the capture-only quiescence search (spec.md §4.6.2).
func (e *Engine) qsearch(b *board.Board, alpha, beta int32) int32 {
	e.nodes++
	if e.timeUp() {
		return 0
	}

	standPat := int32(eval.Evaluate(b))
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	margin := int32(config.Settings.Search.QsDeltaMargin)
	for _, mv := range movegen.GenerateCaptures(b) {
		capturedValue := pieceValue(mv.Captured)
		if standPat+capturedValue+margin < alpha {
			continue
		}

		b.Make(mv)
		score := -e.qsearch(b, -beta, -alpha)
		b.Unmake()

		if e.stopped.Load() {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func pieceValue(kind types.PieceKind) int32 {
	e := config.Settings.Eval
	switch kind {
	case types.Pawn:
		return int32(e.PawnValue)
	case types.Knight:
		return int32(e.KnightValue)
	case types.Bishop:
		return int32(e.BishopValue)
	case types.Rook:
		return int32(e.RookValue)
	case types.Queen:
		return int32(e.QueenValue)
	default:
		return 0
	}
}

func (e *Engine) killerAt(ply int) [2]types.Move {
	if ply < 0 || ply >= maxPlySize {
		return [2]types.Move{}
	}
	return e.killers[ply]
}

func (e *Engine) recordKiller(ply int, mv types.Move) {
	if ply < 0 || ply >= maxPlySize {
		return
	}
	if e.killers[ply][0] == mv {
		return
	}
	e.killers[ply][1] = e.killers[ply][0]
	e.killers[ply][0] = mv
}

func (e *Engine) recordHistory(mv types.Move, depth int) {
	max := config.Settings.Search.HistoryMax
	h := &e.history[mv.From][mv.To]
	*h += depth * depth
	if *h > max {
		*h = max
	}
}
