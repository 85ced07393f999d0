package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Borislavv/go-lecar"
	"github.com/Borislavv/go-lecar/config"
	"github.com/Borislavv/go-lecar/internal/sim"
	"github.com/Borislavv/go-lecar/internal/trace"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	configPath string
	warmup     int64
	simulate   int64
	generate   string
	synth      trace.SynthCfg
	verbose    bool
}

func main() {
	opts := parseFlags()
	initLogger(opts.verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, flag.Args()); err != nil {
		log.Error().Err(err).Msg("lecar-sim failed")
		os.Exit(1)
	}
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "policy yaml config (default: 2048x16 LLC)")
	flag.Int64Var(&o.warmup, "warmup_instructions", 1_000_000, "records replayed before statistics are collected")
	flag.Int64Var(&o.simulate, "simulation_instructions", 10_000_000, "records measured after warmup, 0 means whole trace")
	flag.StringVar(&o.generate, "generate", "", "write a synthetic trace to this path and exit")
	flag.Int64Var(&o.synth.Records, "records", 1_000_000, "synthetic trace length")
	flag.Uint64Var(&o.synth.HotBlocks, "hot_blocks", 16*1024, "synthetic working set in blocks")
	flag.Uint64Var(&o.synth.ScanLen, "scan_len", 64*1024, "synthetic scan burst in blocks")
	flag.Int64Var(&o.synth.ScanEvery, "scan_every", 200_000, "records between synthetic scan bursts")
	flag.Int64Var(&o.synth.Seed, "seed", 1, "synthetic trace seed")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] trace [trace...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	return o
}

func initLogger(verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Str("service", "lecar-sim").Logger()
}

func run(ctx context.Context, opts options, traces []string) error {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if opts.generate != "" {
		opts.synth.BlockSize = uint64(cfg.Geometry.BlockSize)
		return generate(opts.generate, opts.synth)
	}
	if len(traces) == 0 {
		flag.Usage()
		return errors.New("no traces given")
	}

	var sum float64
	var measured int
	for _, path := range traces {
		st, err := replay(ctx, cfg, path, opts.warmup, opts.simulate)
		if err != nil {
			log.Error().Err(err).Str("trace", path).Msg("replay failed")
			continue
		}
		access, hit, miss := st.Total()
		fmt.Printf("LLC TOTAL  ACCESS: %10d  HIT: %10d  MISS: %10d\n", access, hit, miss)
		log.Info().Str("trace", path).Str("miss_rate", fmt.Sprintf("%.4f", st.MissRate())).Msg("trace done")
		if access > 0 {
			sum += st.MissRate()
			measured++
		}
	}
	if measured == 0 {
		return errors.New("no trace produced statistics")
	}
	fmt.Printf("Average miss rate: %.4f\n", sum/float64(measured))
	return nil
}

func replay(ctx context.Context, cfg *config.Policy, path string, warmup, simulate int64) (sim.Stats, error) {
	r, err := trace.Open(path)
	if err != nil {
		return sim.Stats{}, err
	}
	defer r.Close()

	clock := &sim.Cycles{}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With(slog.String("trace", path))
	policy := lecar.New(ctx, cfg, logger, clock)
	defer policy.Close()
	policy.Init()

	cache := sim.New(cfg.Geometry, policy, clock)
	st, err := sim.Run(ctx, cache, r, warmup, simulate)
	policy.FinalReport()
	return st, err
}

func generate(path string, cfg trace.SynthCfg) error {
	w, err := trace.Create(path)
	if err != nil {
		return err
	}
	if err = trace.Synthesize(w, cfg); err != nil {
		_ = w.Close()
		return fmt.Errorf("synthesize %s: %w", path, err)
	}
	if err = w.Close(); err != nil {
		return err
	}
	log.Info().Str("path", path).Int64("records", w.Count()).Msg("synthetic trace written")
	return nil
}
