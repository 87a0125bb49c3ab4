package config

// searchConfiguration holds the tunables for internal/search. These are
// the knobs spec.md fixes as constants (§4.6); exposing them through
// config follows the teacher's convention of never hard-coding a search
// constant that could plausibly want tuning, even when this spec pins
// its value.
type searchConfiguration struct {
	// Transposition table size in megabytes. Resizable at runtime via
	// UCI "setoption name Hash value <MB>".
	TTSizeMB int

	// Late-move reduction: a quiet move at index >= LmrMoveIndex, with
	// depth >= LmrDepth, not a check after the move, is searched one
	// ply shallower first.
	LmrMoveIndex int
	LmrDepth     int
	LmrReduction int

	// Quiescence delta-pruning margin added to captured value before
	// comparing against alpha.
	QsDeltaMargin int

	// Node count between cooperative time-budget polls.
	TimeCheckInterval uint64

	// Iterative deepening stops starting a new iteration once elapsed
	// time exceeds time_limit / IterationStopDivisor.
	IterationStopDivisor int

	// Mate scores within MateThreshold of the mate value stop
	// iterative deepening early (a shorter mate cannot be improved on
	// by search deeper).
	MateThreshold int

	// Bound on killer-move slots and history-heuristic plies; search is
	// never expected to reach this depth.
	MaxPly int

	// Cap applied to the history heuristic accumulator.
	HistoryMax int
}

func init() {
	Settings.Search.TTSizeMB = 64
	Settings.Search.LmrMoveIndex = 3
	Settings.Search.LmrDepth = 3
	Settings.Search.LmrReduction = 1
	Settings.Search.QsDeltaMargin = 200
	Settings.Search.TimeCheckInterval = 2048
	Settings.Search.IterationStopDivisor = 2
	Settings.Search.MateThreshold = 1000
	Settings.Search.MaxPly = 128
	Settings.Search.HistoryMax = 50000
}

// set defaults for configurations here in case a configuration
// is not available from the config file.
func setupSearch() {
	if Settings.Search.TTSizeMB <= 0 {
		Settings.Search.TTSizeMB = 64
	}
	if Settings.Search.MaxPly <= 0 {
		Settings.Search.MaxPly = 128
	}
}
