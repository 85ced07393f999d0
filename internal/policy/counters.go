package policy

import (
	"math"
	"sync/atomic"
)

// Snapshot holds cumulative counters (monotonic) and the current learning state.
type Snapshot struct {
	LRUEvictions   uint64
	SRRIPEvictions uint64
	Accesses       uint64
	Misses         uint64
	HistoryHits    uint64
	HistoryRemoved uint64
	LedgerLen      uint64

	WeightLRU   float64
	WeightSRRIP float64
	Prob        float64
}

// counters are written by the host thread and read by the telemetry loop.
type counters struct {
	lruEvictions   atomic.Uint64
	srripEvictions atomic.Uint64
	accesses       atomic.Uint64
	misses         atomic.Uint64
	historyHits    atomic.Uint64
	historyRemoved atomic.Uint64
	ledgerLen      atomic.Uint64

	wLRU   atomic.Uint64 // float64 bits
	wSRRIP atomic.Uint64 // float64 bits
	prob   atomic.Uint64 // float64 bits
}

func newCounters() *counters {
	return &counters{}
}

func (c *counters) storeWeights(lru, srrip, prob float64) {
	c.wLRU.Store(math.Float64bits(lru))
	c.wSRRIP.Store(math.Float64bits(srrip))
	c.prob.Store(math.Float64bits(prob))
}

func (c *counters) snapshot() Snapshot {
	return Snapshot{
		LRUEvictions:   c.lruEvictions.Load(),
		SRRIPEvictions: c.srripEvictions.Load(),
		Accesses:       c.accesses.Load(),
		Misses:         c.misses.Load(),
		HistoryHits:    c.historyHits.Load(),
		HistoryRemoved: c.historyRemoved.Load(),
		LedgerLen:      c.ledgerLen.Load(),
		WeightLRU:      math.Float64frombits(c.wLRU.Load()),
		WeightSRRIP:    math.Float64frombits(c.wSRRIP.Load()),
		Prob:           math.Float64frombits(c.prob.Load()),
	}
}
