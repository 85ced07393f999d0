package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Borislavv/go-lecar/internal/trace"
	"github.com/rs/zerolog/log"
)

const ctxCheckEach = 1 << 16

// Run replays warmup records without statistics, then up to simulate records
// (zero means until the trace ends) and returns the statistics of the latter.
func Run(ctx context.Context, c *Cache, r *trace.Reader, warmup, simulate int64) (Stats, error) {
	start := time.Now()
	warmup = max(warmup, 0)
	c.ResetStats()

	var n int64
	for simulate <= 0 || n < warmup+simulate {
		if n%ctxCheckEach == 0 {
			select {
			case <-ctx.Done():
				return c.Stats(), ctx.Err()
			default:
			}
		}

		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return c.Stats(), fmt.Errorf("replay record %d: %w", n, err)
		}
		c.Access(rec.PC, rec.Addr, rec.Type)
		n++

		if n == warmup {
			c.ResetStats()
			log.Info().
				Int64("records", n).
				Str("elapsed", time.Since(start).String()).
				Msg("warmup finished")
		}
	}
	if n < warmup {
		// the trace ended inside the warmup window
		c.ResetStats()
	}

	st := c.Stats()
	access, hit, miss := st.Total()
	log.Info().
		Int64("records", n).
		Uint64("access", access).
		Uint64("hit", hit).
		Uint64("miss", miss).
		Uint64("bypass", st.Bypasses).
		Str("elapsed", time.Since(start).String()).
		Msg("replay finished")

	return st, nil
}
