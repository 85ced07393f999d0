package telemetry

import "github.com/Borislavv/go-lecar/internal/policy"

// MetricsSource is anything that can report policy counters.
type MetricsSource interface {
	Metrics() policy.Snapshot
}

// deltaSnapshot converts cumulative snapshots to per-interval deltas.
// Learning state (weights, prob, ledger length) is a gauge and is taken from cur.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSnapshot(prev, cur policy.Snapshot) policy.Snapshot {
	return policy.Snapshot{
		LRUEvictions:   delta(prev.LRUEvictions, cur.LRUEvictions),
		SRRIPEvictions: delta(prev.SRRIPEvictions, cur.SRRIPEvictions),
		Accesses:       delta(prev.Accesses, cur.Accesses),
		Misses:         delta(prev.Misses, cur.Misses),
		HistoryHits:    delta(prev.HistoryHits, cur.HistoryHits),
		HistoryRemoved: delta(prev.HistoryRemoved, cur.HistoryRemoved),

		LedgerLen:   cur.LedgerLen,
		WeightLRU:   cur.WeightLRU,
		WeightSRRIP: cur.WeightSRRIP,
		Prob:        cur.Prob,
	}
}

func delta(prev, cur uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}

func attrs(s policy.Snapshot) []any {
	return []any{
		"accesses", s.Accesses,
		"misses", s.Misses,
		"lru_evictions", s.LRUEvictions,
		"srrip_evictions", s.SRRIPEvictions,
		"history_hits", s.HistoryHits,
		"history_removed", s.HistoryRemoved,
		"history_len", s.LedgerLen,
		"w_lru", s.WeightLRU,
		"w_srrip", s.WeightSRRIP,
		"prob", s.Prob,
	}
}
