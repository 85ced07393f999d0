package lru

import (
	"errors"
	"fmt"
)

// ErrRankOverflow means the per-set ranks stopped being a permutation of [0, ways).
var ErrRankOverflow = errors.New("lru rank overflow")

// Tracker keeps a recency rank for every (set, way).
// Rank 0 is the most recently used way, rank ways-1 is the victim.
// Not safe for concurrent use.
type Tracker struct {
	ways  uint32
	ranks []uint32 // sets*ways, row-major by set
}

func New(sets, ways uint32) *Tracker {
	t := &Tracker{
		ways:  ways,
		ranks: make([]uint32, uint64(sets)*uint64(ways)),
	}
	t.Init()
	return t
}

// Init resets every set to rank == way index.
func (t *Tracker) Init() {
	for i := range t.ranks {
		t.ranks[i] = uint32(i) % t.ways
	}
}

func (t *Tracker) Victim(set uint32) uint32 {
	row := t.row(set)
	for way, rank := range row {
		if rank == t.ways-1 {
			return uint32(way)
		}
	}
	panic(fmt.Errorf("%w: set %d has no rank %d", ErrRankOverflow, set, t.ways-1))
}

// Touch promotes way to MRU and shifts every more recent way one step down.
func (t *Tracker) Touch(set, way uint32) {
	row := t.row(set)
	old := row[way]
	for i := range row {
		if row[i] < old {
			row[i]++
			if row[i] >= t.ways {
				panic(fmt.Errorf("%w: set %d way %d reached rank %d", ErrRankOverflow, set, i, row[i]))
			}
		}
	}
	row[way] = 0
}

func (t *Tracker) Rank(set, way uint32) uint32 {
	return t.row(set)[way]
}

// Ranks returns a copy of the set's ranks indexed by way.
func (t *Tracker) Ranks(set uint32) []uint32 {
	return append([]uint32(nil), t.row(set)...)
}

func (t *Tracker) Ways() uint32 { return t.ways }

func (t *Tracker) row(set uint32) []uint32 {
	off := uint64(set) * uint64(t.ways)
	return t.ranks[off : off+uint64(t.ways)]
}
