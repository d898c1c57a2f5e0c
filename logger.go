package ggplot

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled is false, so Loop and Plotter skip
// building their per-pass attributes while logging is off.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// silent is installed whenever no logger is configured.
var silent = slog.New(nopHandler{})

// current is read by every NewLoop and PlotOn call, possibly while other
// loops are running.
var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger sets the package logger; nil turns logging off again, which is
// also the initial state.
//
// The logger is captured when a plot starts. NewLoop uses it unless
// WithLogger is given, and Plotter.PlotOn copies it into
// canvas.Options.Logger when the options carry none, so the backend it
// opens logs to the same place. Loops already running keep their logger.
//
// Records are emitted at three levels:
//   - Debug: one record per render pass and per input event
//   - Info: a loop starting or closing, a backend being opened
//   - Warn: a scroll that was ignored, a canvas that failed to close
//
// A command-line tool typically does:
//
//	ggplot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the package logger. It never returns nil.
func Logger() *slog.Logger {
	return current.Load()
}
