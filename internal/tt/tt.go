// Package tt implements the transposition table: a fixed,
// open-addressed, direct-mapped table sized as a power of two,
// depth-preferred on collision (spec.md §4.5).
package tt

import (
	"github.com/kophouse/corvid/internal/types"
)

// Flag classifies how Score should be interpreted relative to the
// search window that produced it.
type Flag uint8

const (
	Empty Flag = iota
	Exact
	Lower
	Upper
)

// Entry is one transposition-table slot.
type Entry struct {
	Hash  uint64
	Depth uint8
	Score int32
	Flag  Flag
	Move  types.Move
}

// Table is the engine-owned transposition table. It is not safe for
// concurrent use; the engine is single-threaded throughout (spec.md
// §5), so no locking is needed.
type Table struct {
	entries []Entry
	mask    uint64
}

// defaultEntries mirrors the reference's 2^20-entry table (24 MiB at
// 24 bytes/entry); Resize uses it when sizeMB is not positive.
const defaultEntries = 1 << 20

// New builds a table sized for sizeMB megabytes, per Resize.
func New(sizeMB int) *Table {
	t := &Table{}
	t.Resize(sizeMB)
	return t
}

// Resize reallocates the table to the largest power-of-two entry
// count fitting in sizeMB megabytes. The caller is responsible for
// the fact that resizing discards all prior entries (spec.md §4.5).
func (t *Table) Resize(sizeMB int) {
	entrySize := uint64(24) // hash(8) + depth(1, padded) + score(4) + flag(1) + move(~8), rounded
	count := uint64(defaultEntries)
	if sizeMB > 0 {
		budget := uint64(sizeMB) * 1024 * 1024
		count = 1
		for count*2*entrySize <= budget {
			count *= 2
		}
		if count < 1 {
			count = 1
		}
	}
	t.entries = make([]Entry, count)
	t.mask = count - 1
}

func (t *Table) index(hash uint64) uint64 {
	return hash & t.mask
}

// Probe returns the entry for hash and true iff it is present (depth
// > 0) and its hash matches exactly; depth-0 entries are logically
// cleared (spec.md §4.5).
func (t *Table) Probe(hash uint64) (Entry, bool) {
	e := t.entries[t.index(hash)]
	if e.Depth == 0 || e.Hash != hash {
		return Entry{}, false
	}
	return e, true
}

// Store replaces the slot for hash iff it is empty, holds the same
// hash, or the new depth is at least the stored depth (always-replace
// on the same key, depth-preferred on collision; spec.md §4.5).
func (t *Table) Store(hash uint64, depth uint8, score int32, flag Flag, mv types.Move) {
	idx := t.index(hash)
	existing := &t.entries[idx]
	if existing.Depth == 0 || existing.Hash == hash || depth >= existing.Depth {
		*existing = Entry{Hash: hash, Depth: depth, Score: score, Flag: flag, Move: mv}
	}
}

// Clear logically erases every entry by zeroing its depth; the
// backing memory is retained (spec.md §4.5).
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i].Depth = 0
	}
}

// Len returns the number of slots in the table.
func (t *Table) Len() int {
	return len(t.entries)
}
