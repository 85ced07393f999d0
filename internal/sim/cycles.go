package sim

import "sync/atomic"

// Cycles is the simulated cycle counter. The model ticks it once per access;
// readers on other goroutines (telemetry) may load it at any time.
type Cycles struct {
	n atomic.Uint64
}

func (c *Cycles) CycleCount() uint64 { return c.n.Load() }

func (c *Cycles) Tick() uint64 { return c.n.Add(1) }
