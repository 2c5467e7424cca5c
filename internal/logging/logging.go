package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/thoreinstein/s4m/internal/errors"
)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// LevelTrace is below Debug and enables per-member archive logging.
const LevelTrace = slog.Level(-8)

// LevelFromVerbosity maps the count of -v flags to a log level:
// none logs warnings, -v info, -vv debug and -vvv or more trace.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// VerbosityFromEnv maps a debug environment value to a -v count:
// "1" or "true" is debug, "2" is trace, anything else is 0.
func VerbosityFromEnv(val string) int {
	switch val {
	case "1", "true":
		return 2
	case "2":
		return 3
	}
	return 0
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}

// Options configures a logger built by New.
type Options struct {
	Level  slog.Level
	Format Format

	// Output receives the primary stream. Defaults to os.Stderr.
	Output io.Writer

	// File, if set, receives every record at Level as JSON.
	File io.Writer
}

// New builds a logger from opts. An empty format means text; any other
// unknown format is an error.
func New(opts Options) (*slog.Logger, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: opts.Level}

	var primary slog.Handler
	switch opts.Format {
	case FormatText, "":
		primary = NewHandler(out, hopts)
	case FormatJSON:
		primary = slog.NewJSONHandler(out, hopts)
	default:
		return nil, errors.Newf("unknown log format %q", opts.Format)
	}

	if opts.File == nil {
		return slog.New(primary), nil
	}
	return slog.New(newTee(primary, slog.NewJSONHandler(opts.File, hopts))), nil
}

// testWriter adapts testing.TB to io.Writer for use with slog handlers.
type testWriter struct {
	t testing.TB
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	msg := string(p)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	w.t.Log(msg)
	return len(p), nil
}

// ForTest creates a logger that writes to the test's log output at trace
// level. Lines appear only when the test fails or with go test -v.
func ForTest(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(NewHandler(&testWriter{t: t}, &slog.HandlerOptions{Level: LevelTrace}))
}
