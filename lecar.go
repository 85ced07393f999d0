package lecar

import (
	"context"
	"io"
	"log/slog"

	"github.com/Borislavv/go-lecar/config"
	"github.com/Borislavv/go-lecar/internal/policy"
	"github.com/Borislavv/go-lecar/internal/random"
	"github.com/Borislavv/go-lecar/internal/telemetry"
	"github.com/Borislavv/go-lecar/model"
)

type (
	Block      = model.Block
	AccessType = model.AccessType
	Snapshot   = policy.Snapshot
	Source     = random.Source
)

// Clock supplies the host's cycle count, used as the eviction timestamp.
type Clock = policy.Clock

// Replacement is the callback contract of a cycle-level cache simulator.
type Replacement interface {
	Init()
	SelectVictim(cpu, set uint32, ways []Block, pc, addr uint64, typ AccessType) uint32
	OnAccess(cpu, set, way uint32, addr, pc, victimAddr uint64, typ AccessType, hit bool)
	telemetry.Reporter
	io.Closer
}

// LeCaR chooses victims with a learned mix of LRU and SRRIP.
// Each cache (or core) must own its own instance.
type LeCaR struct {
	telemetry.Reporter
	policy policy.Replacer
	cls    context.CancelFunc
}

// New builds a policy seeded from cfg.Random.
func New(ctx context.Context, cfg *config.Policy, logger *slog.Logger, clock Clock) *LeCaR {
	return NewWithSource(ctx, cfg, logger, clock, random.New(cfg.Random.Seed))
}

// NewWithSource builds a policy drawing its victim coin from rnd.
func NewWithSource(ctx context.Context, cfg *config.Policy, logger *slog.Logger, clock Clock, rnd Source) *LeCaR {
	ctx, cancel := context.WithCancel(ctx)
	p := policy.New(cfg, logger, clock, rnd)
	return &LeCaR{
		Reporter: telemetry.New(ctx, cfg.Telemetry, logger, p),
		policy:   p,
		cls:      cancel,
	}
}

func (l *LeCaR) Init() {
	l.policy.Init()
}

// SelectVictim returns a way in [0, ways). Bypass(ways) is never returned by this policy.
// cpu, pc and typ are accepted for interface compatibility only.
func (l *LeCaR) SelectVictim(cpu, set uint32, ways []Block, pc, addr uint64, typ AccessType) uint32 {
	return l.policy.Victim(set, addr, ways)
}

// OnAccess is called on every hit and every fill.
func (l *LeCaR) OnAccess(cpu, set, way uint32, addr, pc, victimAddr uint64, typ AccessType, hit bool) {
	l.policy.Access(set, way, addr, hit)
}

func (l *LeCaR) Metrics() Snapshot {
	return l.policy.Metrics()
}

// Prob is the current probability of LRU choosing the next victim.
func (l *LeCaR) Prob() float64 {
	return l.policy.Prob()
}

func (l *LeCaR) Close() error {
	l.cls()
	return l.Reporter.Close()
}

// Bypass is the victim index meaning "do not allocate".
func Bypass(ways uint32) uint32 {
	return ways
}
