package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Borislavv/go-lecar/config"
	"github.com/Borislavv/go-lecar/internal/policy"
)

type Reporter interface {
	HeartbeatReport()
	FinalReport()
	Close() error
}

type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.TelemetryCfg
	logger   *slog.Logger
	source   MetricsSource
	mu       sync.Mutex
	lastBeat policy.Snapshot
}

func New(ctx context.Context, cfg *config.TelemetryCfg, logger *slog.Logger, source MetricsSource) Reporter {
	if !cfg.Enabled() {
		return NoOpReporter{}
	}

	ctx, cancel := context.WithCancel(ctx)
	return (&Logs{
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
		logger: logger,
		source: source,
	}).run()
}

// HeartbeatReport logs what happened since the previous heartbeat.
func (l *Logs) HeartbeatReport() {
	cur := l.source.Metrics()

	l.mu.Lock()
	d := deltaSnapshot(l.lastBeat, cur)
	l.lastBeat = cur
	l.mu.Unlock()

	l.logger.Info("lecar_heartbeat", attrs(d)...)
}

// FinalReport logs cumulative totals of the run.
func (l *Logs) FinalReport() {
	l.logger.Info("lecar_final", attrs(l.source.Metrics())...)
}

func (l *Logs) Close() error {
	l.cancel()
	return nil
}

func (l *Logs) run() *Logs {
	if l.cfg.Interval > 0 {
		go l.loop()
	}
	return l
}

func (l *Logs) loop() {
	ticker := time.NewTicker(l.cfg.Interval)
	defer ticker.Stop()

	prev := l.source.Metrics()
	for {
		select {
		case <-l.ctx.Done():
			return
		case <-ticker.C:
			cur := l.source.Metrics()
			d := deltaSnapshot(prev, cur)
			prev = cur
			l.logger.Info("lecar", append([]any{"interval", l.cfg.Interval.String()}, attrs(d)...)...)
		}
	}
}
