package uci

import (
	"strconv"
	"strings"
)

// uciOptionType is an enum of the UCI option kinds.
type uciOptionType int

const (
	Check uciOptionType = iota
	Spin
	Button
)

// optionHandler is called when "setoption" changes an option's value.
type optionHandler func(*UciHandler, *uciOption)

// uciOption declares one UCI option, as sent during the "uci" command
// and applied on "setoption".
type uciOption struct {
	NameID       string
	HandlerFunc  optionHandler
	OptionType   uciOptionType
	DefaultValue string
	MinValue     string
	MaxValue     string
	CurrentValue string
}

type optionMap map[string]*uciOption

// uciOptions holds every option this engine declares. Corvid exposes
// the two the spec calls out: TT resizing and a forced clear (spec.md
// §6's "setoption name Hash value <MB>", supplemented with "Clear
// Hash" following the teacher's own option set).
var uciOptions optionMap
var sortOrderUciOptions []string

func init() {
	uciOptions = optionMap{
		"Hash":       {NameID: "Hash", HandlerFunc: setHashSize, OptionType: Spin, DefaultValue: "64", CurrentValue: "64", MinValue: "1", MaxValue: "4096"},
		"Clear Hash": {NameID: "Clear Hash", HandlerFunc: clearHash, OptionType: Button},
	}
	sortOrderUciOptions = []string{"Hash", "Clear Hash"}
}

// GetOptions renders every declared option as a UCI "option name ..."
// line, in declaration order.
func (o optionMap) GetOptions() []string {
	lines := make([]string, 0, len(sortOrderUciOptions))
	for _, name := range sortOrderUciOptions {
		lines = append(lines, o[name].String())
	}
	return lines
}

func (o *uciOption) String() string {
	var sb strings.Builder
	sb.WriteString("option name ")
	sb.WriteString(o.NameID)
	sb.WriteString(" type ")
	switch o.OptionType {
	case Check:
		sb.WriteString("check default ")
		sb.WriteString(o.DefaultValue)
	case Spin:
		sb.WriteString("spin default ")
		sb.WriteString(o.DefaultValue)
		sb.WriteString(" min ")
		sb.WriteString(o.MinValue)
		sb.WriteString(" max ")
		sb.WriteString(o.MaxValue)
	case Button:
		sb.WriteString("button")
	}
	return sb.String()
}

func setHashSize(u *UciHandler, o *uciOption) {
	mb, err := strconv.Atoi(o.CurrentValue)
	if err != nil || mb <= 0 {
		u.SendInfoString("setoption Hash: invalid value " + o.CurrentValue)
		return
	}
	u.engine.TT.Resize(mb)
	u.engine.TT.Clear()
}

func clearHash(u *UciHandler, o *uciOption) {
	u.engine.TT.Clear()
}
