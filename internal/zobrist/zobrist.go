// Package zobrist computes deterministic 64-bit position fingerprints
// (spec.md §4.4). Tables are generated once at process start from a
// fixed seed via a xorshift64 generator, so fingerprints are stable
// across runs of the same binary but make no promise across rebuilds
// with a different table layout.
package zobrist

import "github.com/kophouse/corvid/internal/types"

const seed uint64 = 0x9E3779B97F4A7C15

// pieceKeys is indexed [color][kind][square]; kind 0 (NoPieceKind) is
// unused but kept so PieceKind can index directly.
var pieceKeys [2][7][64]uint64
var sideKey uint64
var castlingKeys [16]uint64
var epKeys [64]uint64

func init() {
	s := seed
	next := func() uint64 {
		s ^= s << 13
		s ^= s >> 7
		s ^= s << 17
		return s
	}
	for c := 0; c < 2; c++ {
		for k := 1; k < 7; k++ {
			for sq := 0; sq < 64; sq++ {
				pieceKeys[c][k][sq] = next()
			}
		}
	}
	sideKey = next()
	for i := range castlingKeys {
		castlingKeys[i] = next()
	}
	for i := range epKeys {
		epKeys[i] = next()
	}
}

// Hash computes the fingerprint of a position from scratch: the XOR of
// every occupied square's piece key, the side key if Black is to move,
// the castling-rights key for the current mask, and the en-passant key
// if a target square is set. It depends only on (squares, side,
// castling, ep_square), matching spec.md §8 invariant 4. Corvid always
// calls this from scratch at every search node (spec.md §9's "open
// question" about incremental maintenance is resolved in favor of the
// reference's simpler, always-correct recomputation).
func Hash(squares *[64]types.Piece, side types.Color, castling types.CastlingRights, ep types.Square) uint64 {
	var h uint64
	for sq := 0; sq < 64; sq++ {
		p := squares[sq]
		if p.IsValid() {
			h ^= pieceKeys[p.Color][p.Kind][sq]
		}
	}
	if side == types.Black {
		h ^= sideKey
	}
	h ^= castlingKeys[castling&0xF]
	if ep.IsValid() {
		h ^= epKeys[ep]
	}
	return h
}
