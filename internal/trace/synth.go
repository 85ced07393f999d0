package trace

import (
	"github.com/Borislavv/go-lecar/internal/random"
	"github.com/Borislavv/go-lecar/model"
)

// SynthCfg describes a synthetic workload: a hot working set revisited at
// random, interrupted by sequential scans over cold memory.
type SynthCfg struct {
	Records   int64
	HotBlocks uint64 // size of the reused working set
	ScanLen   uint64 // blocks per scan burst, zero disables scans
	ScanEvery int64  // records between scan bursts
	BlockSize uint64
	Seed      int64
}

// Synthesize writes cfg.Records accesses into w.
func Synthesize(w *Writer, cfg SynthCfg) error {
	rnd := random.New(cfg.Seed)
	blockSize := max(cfg.BlockSize, 1)
	hot := max(cfg.HotBlocks, 1)
	const (
		hotBase  = uint64(0x1000_0000)
		coldBase = uint64(0x8000_0000)
		pc       = uint64(0x400000)
	)

	var cold uint64
	for n := int64(0); n < cfg.Records; {
		if cfg.ScanLen > 0 && cfg.ScanEvery > 0 && n > 0 && n%cfg.ScanEvery == 0 {
			for i := uint64(0); i < cfg.ScanLen && n < cfg.Records; i++ {
				rec := Record{PC: pc + 0x40, Addr: coldBase + cold*blockSize, Type: model.Load}
				if err := w.Write(rec); err != nil {
					return err
				}
				cold++
				n++
			}
			continue
		}

		typ := model.Load
		if rnd.Uint64()%8 == 0 {
			typ = model.RFO
		}
		rec := Record{PC: pc, Addr: hotBase + (rnd.Uint64()%hot)*blockSize, Type: typ}
		if err := w.Write(rec); err != nil {
			return err
		}
		n++
	}
	return nil
}
