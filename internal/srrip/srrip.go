package srrip

import (
	"errors"
	"fmt"
)

// ErrAgingExhausted means no way reached maxRRPV within maxRRPV aging rounds.
var ErrAgingExhausted = errors.New("srrip aging exhausted")

// Tracker keeps a re-reference prediction value for every (set, way).
// Not safe for concurrent use.
type Tracker struct {
	ways    uint32
	maxRRPV uint32
	rrpv    []uint32 // sets*ways, row-major by set
}

func New(sets, ways, maxRRPV uint32) *Tracker {
	t := &Tracker{
		ways:    ways,
		maxRRPV: maxRRPV,
		rrpv:    make([]uint32, uint64(sets)*uint64(ways)),
	}
	t.Init()
	return t
}

// Init marks every way as a distant re-reference.
func (t *Tracker) Init() {
	for i := range t.rrpv {
		t.rrpv[i] = t.maxRRPV
	}
}

// Victim returns the first way at maxRRPV, aging the whole set until one appears.
func (t *Tracker) Victim(set uint32) uint32 {
	row := t.row(set)
	for round := uint32(0); ; round++ {
		for way, v := range row {
			if v == t.maxRRPV {
				return uint32(way)
			}
		}
		if round == t.maxRRPV {
			panic(fmt.Errorf("%w: set %d after %d rounds", ErrAgingExhausted, set, round))
		}
		// no way is at maxRRPV here, so aging cannot overshoot it
		for i := range row {
			row[i]++
		}
	}
}

// Touch predicts a near re-reference on hit and an intermediate one on fill.
func (t *Tracker) Touch(set, way uint32, hit bool) {
	if hit {
		t.row(set)[way] = 0
		return
	}
	t.row(set)[way] = t.maxRRPV - 1
}

func (t *Tracker) RRPV(set, way uint32) uint32 {
	return t.row(set)[way]
}

// Counters returns a copy of the set's RRPVs indexed by way.
func (t *Tracker) Counters(set uint32) []uint32 {
	return append([]uint32(nil), t.row(set)...)
}

func (t *Tracker) MaxRRPV() uint32 { return t.maxRRPV }

func (t *Tracker) row(set uint32) []uint32 {
	off := uint64(set) * uint64(t.ways)
	return t.rrpv[off : off+uint64(t.ways)]
}
