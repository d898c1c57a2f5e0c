// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package termcanvas renders plots in a terminal using braille characters.
//
// Every terminal cell is a 2x4 grid of dots, so an 80x24 terminal gives a
// 160x96 dot surface. Size reports dots, not cells. Each cell carries one
// foreground color (the last series drawn through it) and one background.
//
// Input comes from tcell: the mouse wheel scrolls by one notch per event,
// Escape is reported as a key press, and q or Ctrl-C close the plot.
package termcanvas

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"

	"github.com/gogpu/ggplot/canvas"
	"github.com/gogpu/ggplot/geom"
)

// Name is the registry name of this backend.
const Name = "terminal"

// Priority is the registry priority of this backend.
const Priority = 50

// eventBuffer bounds the events held between two polls.
const eventBuffer = 64

func init() {
	canvas.Register(Name, Priority, func(opts canvas.Options) (canvas.Canvas, error) {
		return New(opts)
	}, Available)
}

// Available reports whether standard input and output are terminals.
func Available() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())
}

// Canvas draws into a tcell screen.
type Canvas struct {
	screen tcell.Screen
	buf    *dotBuf
	view   geom.Viewport
	color  color.RGBA
	err    canvas.StickyErr

	events  chan canvas.Event
	done    chan struct{}
	wg      sync.WaitGroup
	buttons tcell.ButtonMask

	closeOnce sync.Once
	closed    bool
	log       *slog.Logger
}

// New opens the controlling terminal. Width, Height and Title of opts are
// ignored; the terminal decides the size.
func New(opts canvas.Options) (*Canvas, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("termcanvas: %w", err)
	}
	return NewWithScreen(screen, opts)
}

// NewWithScreen uses an existing screen, such as tcell.NewSimulationScreen.
// The screen is initialised here and finalised by Close.
func NewWithScreen(screen tcell.Screen, opts canvas.Options) (*Canvas, error) {
	opts = opts.WithDefaults()

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("termcanvas: init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	w, h := screen.Size()
	c := &Canvas{
		screen: screen,
		buf:    newDotBuf(w, h),
		view:   geom.NewViewport(0, 1, 0, 1),
		color:  color.RGBA{A: 255},
		events: make(chan canvas.Event, eventBuffer),
		done:   make(chan struct{}),
		log:    opts.Logger,
	}

	c.wg.Add(1)
	go c.readEvents()

	c.log.Debug("termcanvas: opened", "cells_w", w, "cells_h", h)
	return c, nil
}

// readEvents forwards tcell events until the screen is finalised.
func (c *Canvas) readEvents() {
	defer c.wg.Done()
	for {
		ev := c.screen.PollEvent()
		if ev == nil {
			return
		}
		for _, e := range c.translate(ev) {
			select {
			case c.events <- e:
			case <-c.done:
				return
			}
		}
	}
}

// translate maps one tcell event to zero or more canvas events.
// It runs on the reader goroutine and only touches c.buttons.
func (c *Canvas) translate(ev tcell.Event) []canvas.Event {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return []canvas.Event{canvas.Resize{Width: w * dotsX, Height: h * dotsY}}

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return []canvas.Event{canvas.Quit{}}
		case tcell.KeyEscape:
			return []canvas.Event{canvas.KeyDown{Code: canvas.KeyEscape}}
		case tcell.KeyEnter:
			return []canvas.Event{canvas.KeyDown{Code: canvas.KeyEnter}}
		case tcell.KeyUp:
			return []canvas.Event{canvas.KeyDown{Code: canvas.KeyArrowUp}}
		case tcell.KeyDown:
			return []canvas.Event{canvas.KeyDown{Code: canvas.KeyArrowDown}}
		case tcell.KeyLeft:
			return []canvas.Event{canvas.KeyDown{Code: canvas.KeyArrowLeft}}
		case tcell.KeyRight:
			return []canvas.Event{canvas.KeyDown{Code: canvas.KeyArrowRight}}
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return []canvas.Event{canvas.Quit{}}
			}
			return []canvas.Event{canvas.KeyDown{Code: canvas.KeyRune(ev.Rune())}}
		}

	case *tcell.EventMouse:
		return c.translateMouse(ev)
	}
	return nil
}

func (c *Canvas) translateMouse(ev *tcell.EventMouse) []canvas.Event {
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		return []canvas.Event{canvas.MouseScroll{DY: 1}}
	case buttons&tcell.WheelDown != 0:
		return []canvas.Event{canvas.MouseScroll{DY: -1}}
	case buttons&tcell.WheelLeft != 0:
		return []canvas.Event{canvas.MouseScroll{DX: -1}}
	case buttons&tcell.WheelRight != 0:
		return []canvas.Event{canvas.MouseScroll{DX: 1}}
	}

	cx, cy := ev.Position()
	x := float64(cx*dotsX) + dotsX/2
	y := float64(cy*dotsY) + dotsY/2

	var out []canvas.Event
	for _, b := range []struct {
		mask   tcell.ButtonMask
		button canvas.MouseButton
	}{
		{tcell.Button1, canvas.ButtonLeft},
		{tcell.Button3, canvas.ButtonMiddle},
		{tcell.Button2, canvas.ButtonRight},
	} {
		was, is := c.buttons&b.mask != 0, buttons&b.mask != 0
		switch {
		case is && !was:
			out = append(out, canvas.MouseDown{Button: b.button, X: x, Y: y})
		case was && !is:
			out = append(out, canvas.MouseUp{Button: b.button, X: x, Y: y})
		}
	}
	if len(out) == 0 {
		out = append(out, canvas.MouseMove{Button: heldButton(buttons), X: x, Y: y})
	}
	c.buttons = buttons
	return out
}

func heldButton(b tcell.ButtonMask) canvas.MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return canvas.ButtonLeft
	case b&tcell.Button3 != 0:
		return canvas.ButtonMiddle
	case b&tcell.Button2 != 0:
		return canvas.ButtonRight
	}
	return canvas.ButtonNone
}

// --------------------------------------------------------------------------
// canvas.Drawer
// --------------------------------------------------------------------------

// SetView sets the visible world range.
func (c *Canvas) SetView(v geom.Viewport) {
	c.view = v
}

// View returns the visible world range.
func (c *Canvas) View() geom.Viewport {
	return c.view
}

// SetColor sets the drawing color.
func (c *Canvas) SetColor(col color.RGBA) {
	c.color = col
}

// Clear empties every cell and sets its background to the current color.
func (c *Canvas) Clear() {
	c.buf.fill(c.color)
}

// Line draws a line of dots.
func (c *Canvas) Line(a, b geom.Point) {
	pr := c.projector()
	ax, ay, err := pr.Project(a)
	if err != nil {
		c.err.Set(fmt.Errorf("termcanvas: line: %w", err))
		return
	}
	bx, by, err := pr.Project(b)
	if err != nil {
		c.err.Set(fmt.Errorf("termcanvas: line: %w", err))
		return
	}
	w, h := c.buf.size()
	p, q, ok := geom.ClipSegment(geom.Pt(ax, ay), geom.Pt(bx, by),
		geom.NewViewport(0, float64(w-1), 0, float64(h-1)))
	if !ok {
		return
	}
	c.buf.line(round(p.X), round(p.Y), round(q.X), round(q.Y), c.color)
}

// ThickLine draws a line. Dots cannot be thicker than one, so thickness
// is ignored.
func (c *Canvas) ThickLine(a, b geom.Point, _ float64) {
	c.Line(a, b)
}

// Rectangle fills the rectangle spanned by two world corners.
func (c *Canvas) Rectangle(a, b geom.Point) {
	x0, y0, x1, y1, ok := c.projectRect(a, b)
	if !ok {
		return
	}
	c.buf.rect(x0, y0, x1, y1, c.color)
}

// UnfilledRectangle outlines the rectangle spanned by two world corners.
func (c *Canvas) UnfilledRectangle(a, b geom.Point) {
	x0, y0, x1, y1, ok := c.projectRect(a, b)
	if !ok {
		return
	}
	x1, y1 = x1-1, y1-1
	c.buf.line(x0, y0, x1, y0, c.color)
	c.buf.line(x1, y0, x1, y1, c.color)
	c.buf.line(x1, y1, x0, y1, c.color)
	c.buf.line(x0, y1, x0, y0, c.color)
}

// --------------------------------------------------------------------------
// canvas.Canvas
// --------------------------------------------------------------------------

// Size returns the surface size in dots.
func (c *Canvas) Size() (width, height int) {
	return c.buf.size()
}

// Present copies the dot buffer to the screen. It returns the first
// drawing error of the frame instead of showing it.
func (c *Canvas) Present() error {
	if c.closed {
		return canvas.ErrClosed
	}
	if err := c.err.Take(); err != nil {
		return err
	}
	for cy := 0; cy < c.buf.h; cy++ {
		for cx := 0; cx < c.buf.w; cx++ {
			cl := c.buf.at(cx, cy)
			style := tcell.StyleDefault.
				Foreground(toTcell(cl.fg)).
				Background(toTcell(cl.bg))
			c.screen.SetContent(cx, cy, cl.rune(), nil, style)
		}
	}
	c.screen.Show()
	return nil
}

// PollEvents drains the events read since the last poll. A Resize event
// also resizes the dot buffer, so the next frame matches the terminal.
func (c *Canvas) PollEvents() []canvas.Event {
	if c.closed {
		return nil
	}
	var out []canvas.Event
	for {
		select {
		case e := <-c.events:
			if _, ok := e.(canvas.Resize); ok {
				c.resize()
			}
			out = append(out, e)
		default:
			return out
		}
	}
}

// Close restores the terminal. It is safe to call more than once.
func (c *Canvas) Close() error {
	c.closeOnce.Do(func() {
		c.closed = true
		close(c.done)
		c.screen.Fini()
		c.wg.Wait()
		c.log.Debug("termcanvas: closed")
	})
	return nil
}

// Compile-time interface check.
var _ canvas.Canvas = (*Canvas)(nil)

// --------------------------------------------------------------------------
// internals
// --------------------------------------------------------------------------

func (c *Canvas) resize() {
	w, h := c.screen.Size()
	if w == c.buf.w && h == c.buf.h {
		return
	}
	c.buf = newDotBuf(w, h)
	c.screen.Clear()
}

func (c *Canvas) projector() geom.Projector {
	w, h := c.buf.size()
	return geom.Projector{View: c.view, Width: w, Height: h}
}

func (c *Canvas) projectRect(a, b geom.Point) (x0, y0, x1, y1 int, ok bool) {
	fx0, fy0, fx1, fy1, err := c.projector().ProjectRect(a, b)
	if err != nil {
		c.err.Set(fmt.Errorf("termcanvas: rectangle: %w", err))
		return 0, 0, 0, 0, false
	}
	w, h := c.buf.size()
	x0, x1 = round(clamp(fx0, float64(w))), round(clamp(fx1, float64(w)))
	y0, y1 = round(clamp(fy0, float64(h))), round(clamp(fy1, float64(h)))
	return x0, y0, x1, y1, x1 > x0 && y1 > y0
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func round(v float64) int {
	return int(math.Round(v))
}

func clamp(v, hi float64) float64 {
	return math.Max(0, math.Min(hi, v))
}
