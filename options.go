package ggplot

import (
	"log/slog"
	"time"
)

// Loop defaults.
const (
	// DefaultMargin is the fraction of each axis added around the data.
	DefaultMargin = 0.05

	// DefaultPollInterval is the idle wait between two input polls.
	DefaultPollInterval = 16 * time.Millisecond

	// DefaultBorderWidth is the fraction of each axis between the frame
	// outline and the data background.
	DefaultBorderWidth = 0.005

	// ScrollStep divides wheel notches into the zoom multiplier.
	ScrollStep = 10
)

// LoopOption configures a Loop during creation.
// Use functional options to customize loop behavior.
//
// Example:
//
//	// Default 5% margin and 16ms polling
//	l, _ := ggplot.NewLoop(req, c)
//
//	// Tighter margin, dark frame
//	l, _ := ggplot.NewLoop(req, c,
//	    ggplot.WithMargin(0.02),
//	    ggplot.WithFrameColor(ggplot.Hex("#333")))
type LoopOption func(*loopOptions)

// loopOptions holds optional configuration for Loop creation.
type loopOptions struct {
	margin       float64
	pollInterval time.Duration
	borderWidth  float64
	border       RGBA
	frame        RGBA
	background   RGBA
	logger       *slog.Logger
}

// defaultOptions returns the default loop options.
func defaultOptions() loopOptions {
	return loopOptions{
		margin:       DefaultMargin,
		pollInterval: DefaultPollInterval,
		borderWidth:  DefaultBorderWidth,
		border:       DefaultBorderColor,
		frame:        DefaultFrameColor,
		background:   DefaultBackgroundColor,
		logger:       nil, // Logger() at loop creation
	}
}

// WithMargin sets the fraction of each axis shown around the data.
// Negative values are treated as zero.
func WithMargin(frac float64) LoopOption {
	return func(o *loopOptions) {
		o.margin = max(frac, 0)
	}
}

// WithPollInterval sets the idle wait between input polls.
func WithPollInterval(d time.Duration) LoopOption {
	return func(o *loopOptions) {
		o.pollInterval = max(d, 0)
	}
}

// WithBorderWidth sets the gap between the frame outline and the data
// background as a fraction of each axis.
func WithBorderWidth(frac float64) LoopOption {
	return func(o *loopOptions) {
		o.borderWidth = max(frac, 0)
	}
}

// WithBorderColor sets the color the canvas is cleared to outside the data
// area.
func WithBorderColor(c RGBA) LoopOption {
	return func(o *loopOptions) {
		o.border = c
	}
}

// WithFrameColor sets the outline color of the data area.
func WithFrameColor(c RGBA) LoopOption {
	return func(o *loopOptions) {
		o.frame = c
	}
}

// WithBackgroundColor sets the fill color of the data area.
func WithBackgroundColor(c RGBA) LoopOption {
	return func(o *loopOptions) {
		o.background = c
	}
}

// WithLogger sets the loop's logger. Nil uses the package logger.
func WithLogger(l *slog.Logger) LoopOption {
	return func(o *loopOptions) {
		o.logger = l
	}
}
