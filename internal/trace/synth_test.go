package trace

import (
	"bytes"
	"github.com/stretchr/testify/require"
	"testing"
)

// TestSynthesize_WritesExactCount honors the record budget across scan bursts.
func TestSynthesize_WritesExactCount(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, false)
	require.NoError(t, err)

	cfg := SynthCfg{Records: 1000, HotBlocks: 16, ScanLen: 64, ScanEvery: 100, BlockSize: 64, Seed: 3}
	require.NoError(t, Synthesize(w, cfg))
	require.NoError(t, w.Close())
	require.Equal(t, int64(1000), w.Count())

	r, err := NewReader(&buf, false)
	require.NoError(t, err)
	hot := map[uint64]bool{}
	var cold int
	for rec, err := range r.Records() {
		require.NoError(t, err)
		require.Zero(t, rec.Addr%64, "block aligned")
		if rec.Addr >= 0x8000_0000 {
			cold++
		} else {
			hot[rec.Addr] = true
		}
	}
	require.LessOrEqual(t, len(hot), 16)
	require.Greater(t, cold, 0)
	require.Equal(t, int64(1000), r.Count())
}
