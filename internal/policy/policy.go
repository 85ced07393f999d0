package policy

import (
	"log/slog"

	"github.com/Borislavv/go-lecar/config"
	"github.com/Borislavv/go-lecar/internal/history"
	"github.com/Borislavv/go-lecar/internal/lru"
	"github.com/Borislavv/go-lecar/internal/random"
	"github.com/Borislavv/go-lecar/internal/srrip"
	"github.com/Borislavv/go-lecar/internal/weight"
	"github.com/Borislavv/go-lecar/model"
)

// Clock is the host's cycle counter. It must be monotonically non-decreasing.
type Clock interface {
	CycleCount() uint64
}

// Replacer is the host-facing side of Policy.
type Replacer interface {
	Init()
	Victim(set uint32, addr uint64, ways []model.Block) uint32
	Access(set, way uint32, addr uint64, hit bool)
	Metrics() Snapshot
	Prob() float64
}

// Policy picks a victim with LRU or SRRIP by a weighted coin and learns the
// weights from re-requests of recently evicted addresses. Both trackers are
// updated on every access, whichever of them chose the last victim.
// One instance per cache; not safe for concurrent use.
type Policy struct {
	cfg      *config.Policy
	logger   *slog.Logger
	clock    Clock
	rnd      random.Source
	lru      *lru.Tracker
	srrip    *srrip.Tracker
	ledger   *history.Ledger
	weights  *weight.Engine
	counters *counters
}

func New(cfg *config.Policy, logger *slog.Logger, clock Clock, rnd random.Source) *Policy {
	geo := cfg.Geometry
	p := &Policy{
		cfg:      cfg,
		logger:   logger,
		clock:    clock,
		rnd:      rnd,
		lru:      lru.New(geo.Sets, geo.Ways),
		srrip:    srrip.New(geo.Sets, geo.Ways, cfg.SRRIP.MaxRRPV),
		ledger:   history.New(int(cfg.History.Len)),
		weights:  weight.New(cfg.Learning.Rate, cfg.Learning.Discount, cfg.Learning.InitialLRUWeight),
		counters: newCounters(),
	}
	p.publishWeights()
	return p
}

// Init resets both trackers. Weights and history survive, they belong to the run.
func (p *Policy) Init() {
	p.lru.Init()
	p.srrip.Init()
	p.logger.Info("lecar replacement state initialized",
		"sets", p.cfg.Geometry.Sets,
		"ways", p.lru.Ways(),
		"max_rrpv", p.srrip.MaxRRPV(),
		"history_len", p.ledger.Cap(),
		"learning_rate", p.cfg.Learning.Rate,
		"discount", p.weights.Discount(),
		"prob", p.weights.Prob(),
	)
}

// Victim flips the weighted coin, lets the winning tracker choose a way and
// remembers who chose it.
func (p *Policy) Victim(set uint32, addr uint64, ways []model.Block) uint32 {
	now := p.clock.CycleCount()

	acting := history.SRRIP
	if p.rnd.Float64() < p.weights.Prob() {
		acting = history.LRU
	}

	var way uint32
	if acting == history.LRU {
		way = p.lru.Victim(set)
		p.counters.lruEvictions.Add(1)
	} else {
		way = p.srrip.Victim(set)
		p.counters.srripEvictions.Add(1)
	}

	key := addr
	if p.cfg.History.IsVictimKeyed && int(way) < len(ways) && ways[way].Valid {
		key = ways[way].Address
	}
	p.ledger.Record(key, acting, now)
	p.counters.ledgerLen.Store(uint64(p.ledger.Len()))

	return way
}

// Access reports a hit or a fill of way. A fill of an address found in the
// history is a regret for whoever evicted it.
func (p *Policy) Access(set, way uint32, addr uint64, hit bool) {
	p.counters.accesses.Add(1)
	if !hit {
		p.counters.misses.Add(1)
		p.learn(addr)
	}
	p.lru.Touch(set, way)
	p.srrip.Touch(set, way, hit)
}

func (p *Policy) Metrics() Snapshot {
	return p.counters.snapshot()
}

// Prob is the current probability of LRU choosing the next victim.
func (p *Policy) Prob() float64 { return p.weights.Prob() }

func (p *Policy) Weights() (lru, srrip float64) { return p.weights.Weights() }

// History returns the remembered evictions from oldest to newest.
func (p *Policy) History() []history.Entry { return p.ledger.Entries() }

func (p *Policy) LRURanks(set uint32) []uint32 { return p.lru.Ranks(set) }

func (p *Policy) RRPVs(set uint32) []uint32 { return p.srrip.Counters(set) }

func (p *Policy) learn(addr uint64) {
	entry, pos, found := p.ledger.Find(addr)
	if !found {
		return
	}
	p.counters.historyHits.Add(1)

	var elapsed uint64
	if now := p.clock.CycleCount(); now > entry.Cycle {
		elapsed = now - entry.Cycle
	}
	p.weights.Update(entry.Policy, elapsed)
	p.publishWeights()

	// a consumed entry is dropped only while the ledger is saturated
	if p.ledger.Full() {
		p.ledger.RemoveAt(pos)
		p.counters.historyRemoved.Add(1)
		p.counters.ledgerLen.Store(uint64(p.ledger.Len()))
	}
}

func (p *Policy) publishWeights() {
	lruW, srripW := p.weights.Weights()
	p.counters.storeWeights(lruW, srripW, p.weights.Prob())
}
