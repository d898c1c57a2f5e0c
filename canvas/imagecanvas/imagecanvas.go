// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package imagecanvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/ggplot/canvas"
	"github.com/gogpu/ggplot/geom"
)

// Name is the registry name of this backend.
const Name = "image"

// Priority is the registry priority of this backend.
const Priority = 10

func init() {
	canvas.Register(Name, Priority, func(opts canvas.Options) (canvas.Canvas, error) {
		return New(opts)
	}, nil)
}

// Option configures a Canvas beyond canvas.Options.
type Option func(*Canvas)

// WithOutput makes Present write every frame to path. The format is chosen
// from the extension (.png, .bmp, .tif, .tiff).
func WithOutput(path string) Option {
	return func(c *Canvas) {
		c.output = path
	}
}

// WithScale scales written frames by f. Values <= 0 are ignored.
func WithScale(f float64) Option {
	return func(c *Canvas) {
		if f > 0 {
			c.scale = f
		}
	}
}

// Canvas is a CPU-based canvas that renders to an *image.RGBA.
//
// Anti-aliased shapes are rasterised with golang.org/x/image/vector.
// With Options.Antialias off, lines use Bresenham and rectangles snap to
// whole pixels.
//
// A Canvas has no user to produce input. Events queued with QueueEvents or
// Resize are returned by the next PollEvents; with nothing queued
// PollEvents reports Quit, so a plot loop renders exactly one pass.
//
// Example:
//
//	c, _ := imagecanvas.New(canvas.DefaultOptions(), imagecanvas.WithOutput("plot.png"))
//	defer c.Close()
//
//	c.SetView(geom.NewViewport(0, 1, 0, 1))
//	c.SetColor(color.RGBA{R: 255, A: 255})
//	c.Line(geom.Pt(0, 0), geom.Pt(1, 1))
//	_ = c.Present()
type Canvas struct {
	img       *image.RGBA
	raster    *vector.Rasterizer
	view      geom.Viewport
	color     color.RGBA
	antialias bool

	output string
	format Format
	scale  float64

	events []canvas.Event
	frames int
	err    canvas.StickyErr
	closed bool
	log    *slog.Logger
}

// New creates a Canvas of opts.Width x opts.Height pixels.
func New(opts canvas.Options, options ...Option) (*Canvas, error) {
	opts = opts.WithDefaults()

	c := &Canvas{
		img:       image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height)),
		raster:    vector.NewRasterizer(opts.Width, opts.Height),
		view:      geom.NewViewport(0, 1, 0, 1),
		color:     color.RGBA{A: 255},
		antialias: opts.Antialias,
		output:    opts.Output,
		scale:     1,
		log:       opts.Logger,
	}
	for _, o := range options {
		o(c)
	}

	if c.output != "" {
		f, err := FormatFromPath(c.output)
		if err != nil {
			return nil, err
		}
		c.format = f
	}

	c.log.Debug("imagecanvas: created",
		"width", opts.Width, "height", opts.Height, "output", c.output)
	return c, nil
}

// Snapshot returns a copy of the current pixels.
func (c *Canvas) Snapshot() *image.RGBA {
	dst := image.NewRGBA(c.img.Bounds())
	copy(dst.Pix, c.img.Pix)
	return dst
}

// Frames returns the number of successful Present calls.
func (c *Canvas) Frames() int {
	return c.frames
}

// QueueEvents appends events for the next PollEvents.
func (c *Canvas) QueueEvents(events ...canvas.Event) {
	c.events = append(c.events, events...)
}

// Resize changes the surface size and queues a Resize event. The current
// frame is scaled into the new surface so it stays visible until redrawn.
func (c *Canvas) Resize(width, height int) {
	if c.closed || width <= 0 || height <= 0 {
		return
	}
	old := c.img
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(c.img, c.img.Bounds(), old, old.Bounds(), xdraw.Src, nil)
	c.raster.Reset(width, height)
	c.events = append(c.events, canvas.Resize{Width: width, Height: height})
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

// Clear fills the entire surface with the current color.
func (c *Canvas) Clear() {
	if c.closed {
		return
	}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.color), image.Point{}, draw.Src)
}

// Line draws a one pixel wide line.
func (c *Canvas) Line(a, b geom.Point) {
	if !c.antialias {
		ax, ay, bx, by, ok := c.projectSegment(a, b, 0)
		if ok {
			c.bresenham(ax, ay, bx, by)
		}
		return
	}
	c.ThickLine(a, b, 1)
}

// ThickLine draws a line thickness pixels wide as a filled quad.
func (c *Canvas) ThickLine(a, b geom.Point, thickness float64) {
	if thickness <= 0 {
		return
	}
	ax, ay, bx, by, ok := c.projectSegment(a, b, thickness)
	if !ok {
		return
	}

	dx, dy := bx-ax, by-ay
	length := math.Hypot(dx, dy)
	half := thickness / 2
	if length == 0 {
		c.fillPolygon(ax-half, ay-half, ax+half, ay-half, ax+half, ay+half, ax-half, ay+half)
		return
	}
	nx, ny := -dy/length*half, dx/length*half

	c.fillPolygon(
		ax+nx, ay+ny,
		bx+nx, by+ny,
		bx-nx, by-ny,
		ax-nx, ay-ny,
	)
}

// Rectangle fills the rectangle spanned by two world corners.
func (c *Canvas) Rectangle(a, b geom.Point) {
	x0, y0, x1, y1, ok := c.projectRect(a, b)
	if !ok {
		return
	}
	c.fillRect(x0, y0, x1, y1)
}

// UnfilledRectangle outlines the rectangle spanned by two world corners
// with one pixel bands just inside its edges.
func (c *Canvas) UnfilledRectangle(a, b geom.Point) {
	x0, y0, x1, y1, ok := c.projectRect(a, b)
	if !ok {
		return
	}
	c.fillRect(x0, y0, x1, math.Min(y0+1, y1))
	c.fillRect(x0, math.Max(y1-1, y0), x1, y1)
	c.fillRect(x0, y0, math.Min(x0+1, x1), y1)
	c.fillRect(math.Max(x1-1, x0), y0, x1, y1)
}

// --------------------------------------------------------------------------
// canvas.Canvas
// --------------------------------------------------------------------------

// Size returns the surface size in pixels.
func (c *Canvas) Size() (width, height int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Present finishes the frame. With an output path it encodes the frame to
// that file. It returns the first drawing or encoding error of the frame.
func (c *Canvas) Present() error {
	if c.closed {
		return canvas.ErrClosed
	}
	if err := c.err.Take(); err != nil {
		return err
	}
	if c.output != "" {
		if err := c.writeFrame(); err != nil {
			return err
		}
	}
	c.frames++
	return nil
}

// PollEvents returns the queued events, or [Quit] when none are queued.
func (c *Canvas) PollEvents() []canvas.Event {
	if c.closed {
		return nil
	}
	if len(c.events) == 0 {
		return []canvas.Event{canvas.Quit{}}
	}
	events := c.events
	c.events = nil
	return events
}

// Close releases the canvas. The last frame stays readable via Snapshot.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.events = nil
	c.log.Debug("imagecanvas: closed", "frames", c.frames)
	return nil
}

// Compile-time interface check.
var _ canvas.Canvas = (*Canvas)(nil)

// --------------------------------------------------------------------------
// internals
// --------------------------------------------------------------------------

func (c *Canvas) projector() geom.Projector {
	w, h := c.Size()
	return geom.Projector{View: c.view, Width: w, Height: h}
}

// projectSegment maps a world segment to pixels and clips it to the surface
// grown by pad pixels on every side.
func (c *Canvas) projectSegment(a, b geom.Point, pad float64) (ax, ay, bx, by float64, ok bool) {
	if c.closed {
		return 0, 0, 0, 0, false
	}
	pr := c.projector()
	ax, ay, err := pr.Project(a)
	if err != nil {
		c.err.Set(fmt.Errorf("imagecanvas: line: %w", err))
		return 0, 0, 0, 0, false
	}
	bx, by, err = pr.Project(b)
	if err != nil {
		c.err.Set(fmt.Errorf("imagecanvas: line: %w", err))
		return 0, 0, 0, 0, false
	}

	w, h := c.Size()
	bounds := geom.NewViewport(-pad, float64(w)+pad, -pad, float64(h)+pad)
	p, q, ok := geom.ClipSegment(geom.Pt(ax, ay), geom.Pt(bx, by), bounds)
	if !ok {
		return 0, 0, 0, 0, false
	}
	return p.X, p.Y, q.X, q.Y, true
}

func (c *Canvas) projectRect(a, b geom.Point) (x0, y0, x1, y1 float64, ok bool) {
	if c.closed {
		return 0, 0, 0, 0, false
	}
	x0, y0, x1, y1, err := c.projector().ProjectRect(a, b)
	if err != nil {
		c.err.Set(fmt.Errorf("imagecanvas: rectangle: %w", err))
		return 0, 0, 0, 0, false
	}
	w, h := c.Size()
	x0, x1 = clamp(x0, float64(w)), clamp(x1, float64(w))
	y0, y1 = clamp(y0, float64(h)), clamp(y1, float64(h))
	return x0, y0, x1, y1, x1 > x0 && y1 > y0
}

// fillRect fills a pixel-space rectangle, snapped to whole pixels when
// anti-aliasing is off.
func (c *Canvas) fillRect(x0, y0, x1, y1 float64) {
	if !c.antialias {
		r := image.Rect(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
		draw.Draw(c.img, r, image.NewUniform(c.color), image.Point{}, draw.Over)
		return
	}
	c.fillPolygon(x0, y0, x1, y0, x1, y1, x0, y1)
}

// fillPolygon rasterises a closed polygon given as x, y pairs. Vertices are
// clamped to the surface.
func (c *Canvas) fillPolygon(xy ...float64) {
	w, h := c.Size()
	fw, fh := float64(w), float64(h)

	c.raster.Reset(w, h)
	c.raster.MoveTo(float32(clamp(xy[0], fw)), float32(clamp(xy[1], fh)))
	for i := 2; i+1 < len(xy); i += 2 {
		c.raster.LineTo(float32(clamp(xy[i], fw)), float32(clamp(xy[i+1], fh)))
	}
	c.raster.ClosePath()
	c.raster.DrawOp = draw.Over
	c.raster.Draw(c.img, c.img.Bounds(), image.NewUniform(c.color), image.Point{})
}

// bresenham plots an aliased one pixel line between pixel centres.
func (c *Canvas) bresenham(fx0, fy0, fx1, fy1 float64) {
	x0, y0 := int(math.Floor(fx0)), int(math.Floor(fy0))
	x1, y1 := int(math.Floor(fx1)), int(math.Floor(fy1))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	e := dx + dy
	for {
		c.plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// plot blends the current color over one pixel.
func (c *Canvas) plot(x, y int) {
	if !(image.Point{X: x, Y: y}).In(c.img.Rect) {
		return
	}
	src := c.color
	if src.A == 0xff {
		c.img.SetRGBA(x, y, src)
		return
	}
	dst := c.img.RGBAAt(x, y)
	inv := uint32(0xff - src.A)
	over := func(s, d uint8) uint8 {
		return uint8(min(0xff, uint32(s)+uint32(d)*inv/0xff))
	}
	c.img.SetRGBA(x, y, color.RGBA{
		R: over(src.R, dst.R),
		G: over(src.G, dst.G),
		B: over(src.B, dst.B),
		A: over(src.A, dst.A),
	})
}

func clamp(v, hi float64) float64 {
	return math.Max(0, math.Min(hi, v))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
