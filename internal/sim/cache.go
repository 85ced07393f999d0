package sim

import (
	"encoding/binary"
	"math/bits"

	"github.com/Borislavv/go-lecar/config"
	"github.com/Borislavv/go-lecar/model"
	"github.com/zeebo/xxh3"
)

// Replacement is the policy side of the simulator: victim selection on a
// miss in a full set, and a notification on every hit and fill.
type Replacement interface {
	SelectVictim(cpu, set uint32, ways []model.Block, pc, addr uint64, typ model.AccessType) uint32
	OnAccess(cpu, set, way uint32, addr, pc, victimAddr uint64, typ model.AccessType, hit bool)
}

// Cache is a set-associative tag store. It owns the lines, the policy owns
// replacement state. Not safe for concurrent use.
type Cache struct {
	sets      uint32
	ways      uint32
	blockBits uint
	hashed    bool
	cpu       uint32
	blocks    []model.Block // sets*ways, row-major by set
	policy    Replacement
	clock     *Cycles
	stats     Stats
}

func New(cfg config.GeometryCfg, policy Replacement, clock *Cycles) *Cache {
	return &Cache{
		sets:      cfg.Sets,
		ways:      cfg.Ways,
		blockBits: uint(bits.TrailingZeros32(cfg.BlockSize)),
		hashed:    cfg.HashedIndex,
		blocks:    make([]model.Block, uint64(cfg.Sets)*uint64(cfg.Ways)),
		policy:    policy,
		clock:     clock,
	}
}

// SetIndex maps an address to its set.
func (c *Cache) SetIndex(addr uint64) uint32 {
	blockNum := addr >> c.blockBits
	if c.hashed {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], blockNum)
		return uint32(xxh3.Hash(buf[:]) % uint64(c.sets))
	}
	return uint32(blockNum % uint64(c.sets))
}

// Access looks addr up, fills it on a miss and reports whether it hit.
// Invalid ways are filled before the policy is asked for a victim.
func (c *Cache) Access(pc, addr uint64, typ model.AccessType) bool {
	c.clock.Tick()

	block := addr >> c.blockBits << c.blockBits
	tag := addr >> c.blockBits
	set := c.SetIndex(addr)
	row := c.row(set)

	for way := range row {
		if row[way].Valid && row[way].Tag == tag {
			c.policy.OnAccess(c.cpu, set, uint32(way), block, pc, 0, typ, true)
			c.stats.record(typ, true)
			return true
		}
	}
	c.stats.record(typ, false)

	way := c.ways
	for i := range row {
		if !row[i].Valid {
			way = uint32(i)
			break
		}
	}
	if way == c.ways {
		way = c.policy.SelectVictim(c.cpu, set, row, pc, block, typ)
		if way >= c.ways {
			c.stats.Bypasses++
			return false
		}
	}

	var victimAddr uint64
	if row[way].Valid {
		victimAddr = row[way].Address
	}
	row[way] = model.Block{Valid: true, Tag: tag, Address: block}
	c.policy.OnAccess(c.cpu, set, way, block, pc, victimAddr, typ, false)
	return false
}

// Contains reports whether addr is resident, without touching any state.
func (c *Cache) Contains(addr uint64) bool {
	tag := addr >> c.blockBits
	for _, b := range c.row(c.SetIndex(addr)) {
		if b.Valid && b.Tag == tag {
			return true
		}
	}
	return false
}

func (c *Cache) Stats() Stats { return c.stats }

func (c *Cache) ResetStats() { c.stats = Stats{} }

func (c *Cache) row(set uint32) []model.Block {
	off := uint64(set) * uint64(c.ways)
	return c.blocks[off : off+uint64(c.ways)]
}
