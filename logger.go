package sway

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely, making
// disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// loggerPtr stores the active logger. Accessed atomically so SetLogger can be
// called concurrently with logging from a scheduler goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := slog.New(nopHandler{})
	loggerPtr.Store(l)
}

// SetLogger configures the logger for sway and its subpackages. By default
// the library produces no log output. Pass nil to restore the silent default.
//
// Levels used by sway:
//   - [slog.LevelDebug]: per-frame detail (skipped renders, backend choice)
//   - [slog.LevelWarn]: recoverable document problems (unresolved references,
//     malformed keyframes, rejected runtime arguments, detached targets)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Subpackages (mqttadapter, ebitendriver)
// call this to share the configuration without extra plumbing.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
