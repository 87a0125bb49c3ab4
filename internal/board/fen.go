package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kophouse/corvid/internal/types"
)

// FromFEN parses Forsyth-Edwards Notation into a Board. The piece
// placement and side-to-move fields must be well-formed; the
// remaining four fields (castling, en-passant, halfmove, fullmove)
// are optional and fall back to sane defaults if missing or malformed,
// per spec.md §4.1's "lenient on malformed input" requirement. A
// warning is logged for a malformed field and for a missing castling
// field; missing en-passant, halfmove and fullmove fields default
// without one.
func FromFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, fmt.Errorf("corvid: fen %q: need at least piece placement and side to move", fen)
	}

	b := &Board{
		Castling: types.CastlingAll,
		EpSquare: types.SquareNone,
		Fullmove: 1,
	}

	if err := parsePlacement(b, fields[0]); err != nil {
		return nil, fmt.Errorf("corvid: fen %q: %w", fen, err)
	}

	switch fields[1] {
	case "w":
		b.Side = types.White
	case "b":
		b.Side = types.Black
	default:
		return nil, fmt.Errorf("corvid: fen %q: invalid side to move %q", fen, fields[1])
	}

	if len(fields) >= 3 {
		b.Castling = parseCastling(fields[2])
	} else {
		getLog().Warningf("fen %q: missing castling field, assuming none", fen)
		b.Castling = types.CastlingNone
	}

	if len(fields) >= 4 {
		if fields[3] == "-" {
			b.EpSquare = types.SquareNone
		} else {
			sq := types.SquareFromString(fields[3])
			if sq == types.SquareNone {
				getLog().Warningf("fen %q: invalid en-passant field %q, ignoring", fen, fields[3])
			}
			b.EpSquare = sq
		}
	}

	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			getLog().Warningf("fen %q: invalid halfmove field %q, defaulting to 0", fen, fields[4])
			n = 0
		}
		b.Halfmove = n
	}

	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			getLog().Warningf("fen %q: invalid fullmove field %q, defaulting to 1", fen, fields[5])
			n = 1
		}
		b.Fullmove = n
	}

	b.Hash = b.ZobristKey()
	b.positionHashes = append(b.positionHashes, b.Hash)
	return b, nil
}

func parsePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("piece placement %q must have 8 ranks, got %d", placement, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i // FEN lists rank 8 first
		file := 0
		for _, c := range rankStr {
			if file > 8 {
				return fmt.Errorf("rank %q overflows the board", rankStr)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece, ok := types.PieceFromFenChar(byte(c))
			if !ok {
				return fmt.Errorf("rank %q: invalid piece character %q", rankStr, c)
			}
			if file > 7 {
				return fmt.Errorf("rank %q overflows the board", rankStr)
			}
			b.Squares[types.NewSquare(file, rank)] = piece
			file++
		}
		if file != 8 {
			return fmt.Errorf("rank %q does not sum to 8 files, got %d", rankStr, file)
		}
	}
	return nil
}

func parseCastling(field string) types.CastlingRights {
	if field == "-" {
		return types.CastlingNone
	}
	var rights types.CastlingRights
	for _, c := range field {
		switch c {
		case 'K':
			rights |= types.WhiteKingside
		case 'Q':
			rights |= types.WhiteQueenside
		case 'k':
			rights |= types.BlackKingside
		case 'q':
			rights |= types.BlackQueenside
		default:
			getLog().Warningf("castling field %q: ignoring unknown character %q", field, c)
		}
	}
	return rights
}

// FEN renders the board back to Forsyth-Edwards Notation.
func (b *Board) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.Squares[types.NewSquare(file, rank)]
			if !p.IsValid() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(b.Side.String())

	sb.WriteByte(' ')
	sb.WriteString(b.Castling.String())

	sb.WriteByte(' ')
	if b.EpSquare.IsValid() {
		sb.WriteString(b.EpSquare.String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.Halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.Fullmove))
	return sb.String()
}
