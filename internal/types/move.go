package types

import "strings"

// Move is a value type describing one chess move. Equality is
// structural (spec.md §3): two moves with the same fields compare
// equal with ==.
type Move struct {
	From      Square
	To        Square
	Promotion PieceKind // NoPieceKind unless this move promotes
	Captured  PieceKind // NoPieceKind unless this move captures
	IsEnPassant bool
	IsCastle    bool
}

// MoveNone is the null move: from == to == 0, no flags. Its UCI
// rendering is "0000".
var MoveNone = Move{}

// IsNone reports whether m is the null move.
func (m Move) IsNone() bool {
	return m == MoveNone
}

// String renders the move in UCI long algebraic notation:
// <from><to>[promotion]. The null move renders as "0000".
func (m Move) String() string {
	if m.IsNone() {
		return "0000"
	}
	var b strings.Builder
	b.WriteString(m.From.String())
	b.WriteString(m.To.String())
	if m.Promotion != NoPieceKind {
		b.WriteString(strings.ToLower(m.Promotion.String()))
	}
	return b.String()
}
