// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
	"image/color"
	"log/slog"

	"github.com/gogpu/ggplot/geom"
)

// Drawer is the drawing half of a render target. All coordinates are in
// world space; the implementation maps them onto its pixels using the
// current view.
//
// Drawing calls do not return errors. An implementation that fails while
// drawing latches the failure and reports it from Canvas.Present.
type Drawer interface {
	// SetView sets the visible range of world space.
	SetView(v geom.Viewport)

	// View returns the visible range of world space.
	View() geom.Viewport

	// SetColor sets the color for subsequent drawing calls.
	SetColor(c color.RGBA)

	// Clear fills the whole output surface with the current color.
	Clear()

	// Line draws a one pixel wide line from a to b.
	Line(a, b geom.Point)

	// ThickLine draws a line from a to b, thickness pixels wide.
	ThickLine(a, b geom.Point, thickness float64)

	// Rectangle fills the rectangle bounded by two corners.
	Rectangle(a, b geom.Point)

	// UnfilledRectangle outlines the rectangle bounded by two corners.
	UnfilledRectangle(a, b geom.Point)
}

// Canvas is the render target contract consumed by the plot loop.
//
// A Canvas is NOT thread-safe. It is owned by exactly one plot loop.
type Canvas interface {
	Drawer

	// Size returns the output surface size in pixels.
	Size() (width, height int)

	// Present shows the previously drawn frame. It returns the first error
	// the backend hit since the last Present, if any.
	Present() error

	// PollEvents returns the pending input events without blocking.
	// It returns an empty slice when nothing is pending.
	PollEvents() []Event

	// Close asks the canvas to stop any tasks and release its resources.
	// Close is idempotent.
	Close() error
}

// Runner is implemented by canvases whose event loop must own the calling
// goroutine, such as a desktop window that has to run on the main thread.
// Run blocks until the canvas closes; the plot loop drives the canvas from
// another goroutine meanwhile.
type Runner interface {
	Run() error
}

// Options configures canvas creation.
type Options struct {
	// Width is the output width in pixels.
	Width int

	// Height is the output height in pixels.
	Height int

	// Title is the window title for windowed backends.
	Title string

	// Antialias enables anti-aliased rendering where supported.
	Antialias bool

	// Output is the file presented frames are written to, for backends that
	// write files. Empty means frames stay in memory.
	Output string

	// Logger receives backend diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Default canvas dimensions and title.
const (
	DefaultWidth  = 720
	DefaultHeight = 720
	DefaultTitle  = "2D plot"
)

// DefaultOptions returns Options with default values.
func DefaultOptions() Options {
	return Options{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Title:     DefaultTitle,
		Antialias: true,
	}
}

// WithDefaults returns a copy of o with zero fields replaced by defaults.
func (o Options) WithDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// ErrClosed is returned by operations on a canvas after Close.
var ErrClosed = errors.New("canvas: closed")

// StickyErr latches the first error it is given. Backends use it to carry a
// drawing failure forward to the next Present.
type StickyErr struct {
	err error
}

// Set records err unless an earlier error is already held.
func (s *StickyErr) Set(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Err returns the held error without clearing it.
func (s *StickyErr) Err() error {
	return s.err
}

// Take returns the held error and clears it.
func (s *StickyErr) Take() error {
	err := s.err
	s.err = nil
	return err
}
