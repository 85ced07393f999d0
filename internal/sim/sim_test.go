package sim

import (
	"bytes"
	"context"
	"github.com/Borislavv/go-lecar"
	"github.com/Borislavv/go-lecar/config"
	"github.com/Borislavv/go-lecar/internal/random"
	"github.com/Borislavv/go-lecar/internal/trace"
	"github.com/Borislavv/go-lecar/model"
	"github.com/Borislavv/go-lecar/tests/help"
	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/stretchr/testify/require"
	"testing"
)

type call struct {
	set, way   uint32
	addr       uint64
	victimAddr uint64
	hit        bool
}

type fakePolicy struct {
	victim   uint32
	selects  int
	lastWays []model.Block
	calls    []call
}

func (f *fakePolicy) SelectVictim(cpu, set uint32, ways []model.Block, pc, addr uint64, typ model.AccessType) uint32 {
	f.selects++
	f.lastWays = append([]model.Block(nil), ways...)
	return f.victim
}

func (f *fakePolicy) OnAccess(cpu, set, way uint32, addr, pc, victimAddr uint64, typ model.AccessType, hit bool) {
	f.calls = append(f.calls, call{set: set, way: way, addr: addr, victimAddr: victimAddr, hit: hit})
}

func geometry(sets, ways uint32) config.GeometryCfg {
	return config.GeometryCfg{Sets: sets, Ways: ways, BlockSize: 64}
}

// TestCache_FillsInvalidWaysFirst never asks the policy while a way is free.
func TestCache_FillsInvalidWaysFirst(t *testing.T) {
	p := &fakePolicy{}
	c := New(geometry(1, 2), p, &Cycles{})

	require.False(t, c.Access(0, 0x1000, model.Load))
	require.False(t, c.Access(0, 0x2000, model.Load))

	require.Zero(t, p.selects)
	require.Equal(t, []call{
		{way: 0, addr: 0x1000},
		{way: 1, addr: 0x2000},
	}, p.calls)
}

// TestCache_HitIsBlockAligned treats addresses inside one line as the same block.
func TestCache_HitIsBlockAligned(t *testing.T) {
	p := &fakePolicy{}
	c := New(geometry(1, 2), p, &Cycles{})

	c.Access(0, 0x1000, model.Load)
	require.True(t, c.Access(0, 0x103f, model.RFO))
	require.Equal(t, call{way: 0, addr: 0x1000, hit: true}, p.calls[1])
	require.True(t, c.Contains(0x1020))
	require.False(t, c.Contains(0x1040))

	access, hit, miss := c.Stats().Total()
	require.Equal(t, [3]uint64{2, 1, 1}, [3]uint64{access, hit, miss})
	require.Equal(t, uint64(1), c.Stats().Hit[model.RFO])
}

// TestCache_FullSetAsksPolicy passes set contents and reports the evicted address.
func TestCache_FullSetAsksPolicy(t *testing.T) {
	p := &fakePolicy{victim: 1}
	c := New(geometry(1, 2), p, &Cycles{})
	c.Access(0, 0x1000, model.Load)
	c.Access(0, 0x2000, model.Load)

	require.False(t, c.Access(0, 0x3000, model.Load))

	require.Equal(t, 1, p.selects)
	require.Equal(t, uint64(0x2000), p.lastWays[1].Address)
	require.Equal(t, call{way: 1, addr: 0x3000, victimAddr: 0x2000}, p.calls[2])
	require.True(t, c.Contains(0x3000))
	require.False(t, c.Contains(0x2000))
}

// TestCache_Bypass leaves the set untouched.
func TestCache_Bypass(t *testing.T) {
	p := &fakePolicy{victim: lecar.Bypass(2)}
	c := New(geometry(1, 2), p, &Cycles{})
	c.Access(0, 0x1000, model.Load)
	c.Access(0, 0x2000, model.Load)

	require.False(t, c.Access(0, 0x3000, model.Prefetch))
	require.False(t, c.Contains(0x3000))
	require.Equal(t, uint64(1), c.Stats().Bypasses)
	require.Len(t, p.calls, 2)
}

// TestCache_SetIndex covers modulo and hashed indexing.
func TestCache_SetIndex(t *testing.T) {
	c := New(geometry(16, 4), &fakePolicy{}, &Cycles{})
	require.Equal(t, uint32(0), c.SetIndex(0))
	require.Equal(t, uint32(1), c.SetIndex(64))
	require.Equal(t, uint32(1), c.SetIndex(64+17*64-64))

	cfg := geometry(16, 4)
	cfg.HashedIndex = true
	h := New(cfg, &fakePolicy{}, &Cycles{})
	used := map[uint32]bool{}
	for addr := uint64(0); addr < 64*1024; addr += 64 {
		set := h.SetIndex(addr)
		require.Less(t, set, uint32(16))
		require.Equal(t, set, h.SetIndex(addr+7), "same block, same set")
		used[set] = true
	}
	require.Len(t, used, 16)
}

// TestCache_TicksClock advances one cycle per access.
func TestCache_TicksClock(t *testing.T) {
	clock := &Cycles{}
	c := New(geometry(1, 1), &fakePolicy{}, clock)
	for i := 0; i < 5; i++ {
		c.Access(0, uint64(i)*64, model.Load)
	}
	require.Equal(t, uint64(5), clock.CycleCount())
}

// TestStats_MissRate handles an idle cache.
func TestStats_MissRate(t *testing.T) {
	var s Stats
	require.Zero(t, s.MissRate())
	s.record(model.Load, true)
	s.record(model.Writeback, false)
	s.record(model.AccessType(200), false)
	require.InDelta(t, 2.0/3.0, s.MissRate(), 1e-12)
	require.Equal(t, uint64(2), s.Access[model.Load])
}

// TestCache_PureLRUMatchesReference pins prob at 1 and compares misses with hashicorp's LRU.
func TestCache_PureLRUMatchesReference(t *testing.T) {
	const ways = 8
	cfg := help.Geometry(1, ways)
	cfg.Learning.InitialLRUWeight = 1
	clock := &Cycles{}
	pol := lecar.NewWithSource(context.Background(), cfg, help.Discard(), clock, random.New(5))
	pol.Init()
	c := New(cfg.Geometry, pol, clock)

	ref, err := simplelru.NewLRU[uint64, struct{}](ways, nil)
	require.NoError(t, err)

	rnd := random.New(11)
	var refMisses uint64
	for i := 0; i < 20_000; i++ {
		addr := (rnd.Uint64() % 24) << 6
		if _, ok := ref.Get(addr); !ok {
			refMisses++
			ref.Add(addr, struct{}{})
		}
		c.Access(0, addr, model.Load)
	}

	_, _, miss := c.Stats().Total()
	require.Equal(t, refMisses, miss)
	require.Equal(t, 1.0, pol.Prob())
	require.Zero(t, pol.Metrics().SRRIPEvictions)
}

// TestRun_WarmupAndSimulate splits the trace into warmup and measured windows.
func TestRun_WarmupAndSimulate(t *testing.T) {
	var buf bytes.Buffer
	w, err := trace.NewWriter(&buf, true)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		require.NoError(t, w.Write(trace.Record{Addr: uint64(i%10) << 6, Type: model.Load}))
	}
	require.NoError(t, w.Close())
	data := buf.Bytes()

	replay := func(warmup, simulate int64) Stats {
		r, err := trace.NewReader(bytes.NewReader(data), true)
		require.NoError(t, err)
		defer r.Close()
		c := New(geometry(4, 4), &fakePolicy{}, &Cycles{})
		st, err := Run(context.Background(), c, r, warmup, simulate)
		require.NoError(t, err)
		return st
	}

	access, hit, miss := replay(0, 0).Total()
	require.Equal(t, [3]uint64{100, 90, 10}, [3]uint64{access, hit, miss})

	access, hit, miss = replay(10, 30).Total()
	require.Equal(t, [3]uint64{30, 30, 0}, [3]uint64{access, hit, miss})

	access, _, _ = replay(500, 0).Total()
	require.Zero(t, access, "trace shorter than warmup")
}

// TestRun_Canceled stops on a done context.
func TestRun_Canceled(t *testing.T) {
	var buf bytes.Buffer
	w, err := trace.NewWriter(&buf, false)
	require.NoError(t, err)
	require.NoError(t, w.Write(trace.Record{Addr: 64}))
	require.NoError(t, w.Close())

	r, err := trace.NewReader(&buf, false)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Run(ctx, New(geometry(1, 1), &fakePolicy{}, &Cycles{}), r, 0, 0)
	require.ErrorIs(t, err, context.Canceled)
}
