package help

import (
	"bytes"
	"io"
	"log/slog"
	"os"
)

func Logger() *slog.Logger {
	return NewLogger(os.Stdout)
}

// NewLogger writes JSON records to w, tests read them back.
func NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	h := slog.NewJSONHandler(w, opts)

	return slog.New(h).With(
		slog.String("service", "lecar"),
		slog.String("env", "test"),
	)
}

// Discard drops everything, for benchmarks and noisy loops.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Buffer collects log output in memory.
func Buffer() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewLogger(buf), buf
}
