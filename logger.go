package pixelart

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with frame processing.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for pixelart and its sub-packages.
// By default, pixelart produces no log output. Pass nil to restore the
// silent default.
//
// Log levels used by pixelart:
//   - [slog.LevelDebug]: frame dimensions, band counts, timings
//   - [slog.LevelInfo]: GPU device selection
//   - [slog.LevelWarn]: CPU fallback, configuration values that were clamped
//
// Per-pixel functions never log.
//
// Example:
//
//	pixelart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by pixelart.
// Sub-packages (gpu/, frameio/) call this to share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
