package help

// Clock is a manually advanced cycle counter.
type Clock struct {
	Cycle uint64
}

func (c *Clock) CycleCount() uint64 { return c.Cycle }

func (c *Clock) Advance(n uint64) { c.Cycle += n }
