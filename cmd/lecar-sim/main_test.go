package main

import (
	"context"
	"github.com/Borislavv/go-lecar/config"
	"github.com/Borislavv/go-lecar/internal/trace"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

// TestRun_GenerateThenReplay builds a synthetic trace and replays it end to end.
func TestRun_GenerateThenReplay(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "lecar.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
geometry:
  sets: 16
  ways: 4
learning:
  rate: 0.45
  initial_lru_weight: 0.5
  discount_floor: 0.005
srrip:
  max_rrpv: 3
random:
  seed: 7
`), 0o644))
	tracePath := filepath.Join(dir, "synthetic.trace.gz")

	gen := options{
		configPath: cfgPath,
		generate:   tracePath,
		synth:      trace.SynthCfg{Records: 5_000, HotBlocks: 32, ScanLen: 128, ScanEvery: 1_000, Seed: 1},
	}
	require.NoError(t, run(context.Background(), gen, nil))
	_, err := os.Stat(tracePath)
	require.NoError(t, err)

	st, err := replay(context.Background(), mustLoad(t, cfgPath), tracePath, 1_000, 0)
	require.NoError(t, err)
	access, hit, miss := st.Total()
	require.Equal(t, uint64(4_000), access)
	require.Equal(t, access, hit+miss)
	require.Greater(t, hit, uint64(0))

	replayOpts := options{configPath: cfgPath, warmup: 1_000}
	require.NoError(t, run(context.Background(), replayOpts, []string{tracePath}))
}

// TestRun_NoTraces is an error.
func TestRun_NoTraces(t *testing.T) {
	require.Error(t, run(context.Background(), options{}, nil))
}

// TestRun_BadConfig surfaces the load error.
func TestRun_BadConfig(t *testing.T) {
	err := run(context.Background(), options{configPath: filepath.Join(t.TempDir(), "missing.yaml")}, []string{"x"})
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestRun_UnreadableTrace skips it and fails when nothing was measured.
func TestRun_UnreadableTrace(t *testing.T) {
	err := run(context.Background(), options{}, []string{filepath.Join(t.TempDir(), "none.trace")})
	require.Error(t, err)
}

func mustLoad(t *testing.T, path string) *config.Policy {
	t.Helper()
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	return cfg
}
