// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package windowcanvas shows plots in a desktop window using ebiten.
//
// ebiten owns the main goroutine: after opening the canvas, the program
// hands it to the plot loop and then calls Run from main.
//
//	c, err := windowcanvas.New(canvas.DefaultOptions())
//	if err != nil { ... }
//	p := ggplot.NewPlotter()
//	_ = p.Plot(req, c)
//	if err := c.Run(); err != nil { ... } // blocks until the window closes
//	_ = p.Join()
//
// Drawing calls are recorded on the plot goroutine. Present publishes the
// recorded frame and the ebiten Draw callback replays it onto the window,
// so the window can repaint without the plot loop's help.
package windowcanvas

import (
	"errors"
	"image/color"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/ggplot/canvas"
	"github.com/gogpu/ggplot/canvas/internal/handoff"
	"github.com/gogpu/ggplot/geom"
	"github.com/gogpu/ggplot/recording"
)

// Name is the registry name of this backend.
const Name = "window"

// Priority is the registry priority of this backend.
const Priority = 100

// maxEvents bounds the input events held between two polls.
const maxEvents = 256

func init() {
	canvas.Register(Name, Priority, func(opts canvas.Options) (canvas.Canvas, error) {
		return New(opts)
	}, Available)
}

// ErrWindowOpen is returned by New while another window canvas is open.
// ebiten supports one window per process.
var ErrWindowOpen = errors.New("windowcanvas: a window is already open")

// ErrNoDisplay is returned by New when no display server is reachable.
var ErrNoDisplay = errors.New("windowcanvas: no display available")

// windowInUse is set while a Canvas exists.
var windowInUse atomic.Bool

// Available reports whether a display is present and no other window
// canvas is open.
func Available() bool {
	return hasDisplay() && !windowInUse.Load()
}

func hasDisplay() bool {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
	}
	return true
}

// Canvas is a window canvas. Drawing methods, Present and PollEvents are
// called from the plot goroutine; Run is called from main.
type Canvas struct {
	rec  *recording.Recorder
	box  *handoff.Mailbox
	game *game
	opts canvas.Options

	closeOnce sync.Once
	quit      chan struct{}
	closed    atomic.Bool
	log       *slog.Logger
}

// New claims the process window. The window appears when Run is called.
func New(opts canvas.Options) (*Canvas, error) {
	opts = opts.WithDefaults()
	if !hasDisplay() {
		return nil, ErrNoDisplay
	}
	if !windowInUse.CompareAndSwap(false, true) {
		return nil, ErrWindowOpen
	}

	c := &Canvas{
		rec:  recording.NewRecorder(opts.Width, opts.Height),
		box:  handoff.New(opts.Width, opts.Height, maxEvents),
		opts: opts,
		quit: make(chan struct{}),
		log:  opts.Logger,
	}
	c.game = newGame(c.box, c.quit, opts)
	return c, nil
}

// Run opens the window and processes window events until the window is
// closed by the user or by Close. It must be called from the main
// goroutine.
func (c *Canvas) Run() error {
	ebiten.SetWindowTitle(c.opts.Title)
	ebiten.SetWindowSize(c.opts.Width, c.opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetScreenClearedEveryFrame(false)

	c.log.Info("windowcanvas: window opened",
		"title", c.opts.Title, "width", c.opts.Width, "height", c.opts.Height)

	err := ebiten.RunGame(c.game)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	// The loop may still be polling; make sure it sees the window go away.
	c.box.Push(canvas.Quit{})
	c.log.Info("windowcanvas: window closed")
	return err
}

// --------------------------------------------------------------------------
// canvas.Drawer
// --------------------------------------------------------------------------

// SetView sets the visible world range.
func (c *Canvas) SetView(v geom.Viewport) { c.rec.SetView(v) }

// View returns the visible world range.
func (c *Canvas) View() geom.Viewport { return c.rec.View() }

// SetColor sets the drawing color.
func (c *Canvas) SetColor(col color.RGBA) { c.rec.SetColor(col) }

// Clear fills the window with the current color.
func (c *Canvas) Clear() { c.rec.Clear() }

// Line draws a one pixel line.
func (c *Canvas) Line(a, b geom.Point) { c.rec.Line(a, b) }

// ThickLine draws a line thickness pixels wide.
func (c *Canvas) ThickLine(a, b geom.Point, thickness float64) {
	c.rec.ThickLine(a, b, thickness)
}

// Rectangle fills the rectangle spanned by two world corners.
func (c *Canvas) Rectangle(a, b geom.Point) { c.rec.Rectangle(a, b) }

// UnfilledRectangle outlines the rectangle spanned by two world corners.
func (c *Canvas) UnfilledRectangle(a, b geom.Point) { c.rec.UnfilledRectangle(a, b) }

// --------------------------------------------------------------------------
// canvas.Canvas
// --------------------------------------------------------------------------

// Size returns the window's drawable size in pixels.
func (c *Canvas) Size() (width, height int) {
	return c.box.Size()
}

// Present publishes the recorded frame to the window and starts a new one
// carrying over the current view and color.
func (c *Canvas) Present() error {
	if c.closed.Load() {
		return canvas.ErrClosed
	}
	w, h := c.box.Size()
	c.rec.SetSize(w, h)
	c.box.PutFrame(c.rec.Finish())

	c.rec.Reset()
	c.rec.SetView(c.rec.View())
	c.rec.SetColor(c.rec.Color())
	return nil
}

// PollEvents returns the input collected by the window since the last poll.
func (c *Canvas) PollEvents() []canvas.Event {
	if c.closed.Load() {
		return nil
	}
	return c.box.Drain()
}

// Close stops the window and releases the process window slot.
func (c *Canvas) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.quit)
		windowInUse.Store(false)
		if n := c.box.Dropped(); n > 0 {
			c.log.Warn("windowcanvas: input events dropped", "count", n)
		}
	})
	return nil
}

// Compile-time interface checks.
var (
	_ canvas.Canvas = (*Canvas)(nil)
	_ canvas.Runner = (*Canvas)(nil)
)
