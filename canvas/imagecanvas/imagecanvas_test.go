// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package imagecanvas

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/ggplot/canvas"
	"github.com/gogpu/ggplot/geom"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

func newTestCanvas(t *testing.T, antialias bool, options ...Option) *Canvas {
	t.Helper()
	c, err := New(canvas.Options{Width: 100, Height: 100, Antialias: antialias}, options...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.SetView(geom.NewViewport(0, 10, 0, 10))
	c.SetColor(white)
	c.Clear()
	return c
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(canvas.Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer c.Close()

	if w, h := c.Size(); w != canvas.DefaultWidth || h != canvas.DefaultHeight {
		t.Errorf("Size() = %dx%d, want %dx%d", w, h, canvas.DefaultWidth, canvas.DefaultHeight)
	}
}

func TestClear(t *testing.T) {
	c := newTestCanvas(t, true)
	c.SetColor(blue)
	c.Clear()

	img := c.Snapshot()
	for _, p := range []image.Point{{0, 0}, {50, 50}, {99, 99}} {
		if got := img.RGBAAt(p.X, p.Y); got != blue {
			t.Errorf("pixel %v = %v, want %v", p, got, blue)
		}
	}
}

func TestRectangle(t *testing.T) {
	for _, aa := range []bool{true, false} {
		c := newTestCanvas(t, aa)
		c.SetColor(red)
		c.Rectangle(geom.Pt(2, 2), geom.Pt(8, 8))

		img := c.Snapshot()
		if got := img.RGBAAt(50, 50); got != red {
			t.Errorf("antialias=%v: inside pixel = %v, want red", aa, got)
		}
		if got := img.RGBAAt(10, 10); got != white {
			t.Errorf("antialias=%v: outside pixel = %v, want white", aa, got)
		}
		if got := img.RGBAAt(21, 78); got != red {
			t.Errorf("antialias=%v: corner pixel = %v, want red", aa, got)
		}
	}
}

func TestUnfilledRectangle(t *testing.T) {
	c := newTestCanvas(t, false)
	c.SetColor(red)
	c.UnfilledRectangle(geom.Pt(2, 2), geom.Pt(8, 8))

	img := c.Snapshot()
	if got := img.RGBAAt(20, 50); got != red {
		t.Errorf("left edge = %v, want red", got)
	}
	if got := img.RGBAAt(50, 20); got != red {
		t.Errorf("top edge = %v, want red", got)
	}
	if got := img.RGBAAt(50, 50); got != white {
		t.Errorf("interior = %v, want white", got)
	}
}

func TestLine_Aliased(t *testing.T) {
	c := newTestCanvas(t, false)
	c.SetColor(red)
	c.Line(geom.Pt(0, 5), geom.Pt(10, 5))

	img := c.Snapshot()
	for x := 0; x < 100; x += 10 {
		if got := img.RGBAAt(x, 50); got != red {
			t.Errorf("pixel (%d, 50) = %v, want red", x, got)
		}
	}
	if got := img.RGBAAt(50, 40); got != white {
		t.Errorf("pixel off the line = %v, want white", got)
	}
}

func TestLine_Antialiased(t *testing.T) {
	c := newTestCanvas(t, true)
	c.SetColor(red)
	c.Line(geom.Pt(0, 5), geom.Pt(10, 5))

	img := c.Snapshot()
	if got := img.RGBAAt(50, 50); got.G == 255 {
		t.Errorf("pixel on the line = %v, expected red coverage", got)
	}
	if got := img.RGBAAt(50, 40); got != white {
		t.Errorf("pixel off the line = %v, want white", got)
	}
}

func TestThickLine(t *testing.T) {
	c := newTestCanvas(t, true)
	c.SetColor(red)
	c.ThickLine(geom.Pt(5, 0), geom.Pt(5, 10), 6)

	img := c.Snapshot()
	if got := img.RGBAAt(49, 50); got != red {
		t.Errorf("pixel inside thick line = %v, want red", got)
	}
	if got := img.RGBAAt(60, 50); got != white {
		t.Errorf("pixel outside thick line = %v, want white", got)
	}
}

func TestLine_FarOutsideDoesNotPanic(t *testing.T) {
	c := newTestCanvas(t, true)
	c.SetColor(red)
	c.Line(geom.Pt(-1e9, -1e9), geom.Pt(1e9, 1e9))
	c.ThickLine(geom.Pt(-50, 5), geom.Pt(-40, 5), 3)
	c.Rectangle(geom.Pt(-100, -100), geom.Pt(100, 100))

	if err := c.Present(); err != nil {
		t.Fatalf("Present() error: %v", err)
	}
	if got := c.Snapshot().RGBAAt(0, 0); got != red {
		t.Errorf("covering rectangle left %v, want red", got)
	}
}

func TestPresent_DegenerateViewError(t *testing.T) {
	c := newTestCanvas(t, true)
	c.SetView(geom.NewViewport(1, 1, 0, 10))
	c.Line(geom.Pt(1, 0), geom.Pt(1, 10))

	err := c.Present()
	if !errors.Is(err, geom.ErrDegenerateRange) {
		t.Fatalf("Present() = %v, want ErrDegenerateRange", err)
	}
	if err := c.Present(); err != nil {
		t.Errorf("second Present() = %v, want nil", err)
	}
	if c.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", c.Frames())
	}
}

func TestPollEvents(t *testing.T) {
	c := newTestCanvas(t, true)

	got := c.PollEvents()
	if len(got) != 1 || got[0] != (canvas.Quit{}) {
		t.Fatalf("PollEvents() with nothing queued = %v, want [Quit]", got)
	}

	c.QueueEvents(canvas.MouseScroll{DY: 1}, canvas.KeyDown{Code: canvas.KeyEscape})
	got = c.PollEvents()
	if len(got) != 2 {
		t.Fatalf("PollEvents() = %v, want 2 events", got)
	}
	if got[0] != (canvas.MouseScroll{DY: 1}) {
		t.Errorf("first event = %v, want MouseScroll(0, 1)", got[0])
	}
}

func TestResize(t *testing.T) {
	c := newTestCanvas(t, true)
	c.SetColor(red)
	c.Clear()
	c.Resize(40, 20)

	if w, h := c.Size(); w != 40 || h != 20 {
		t.Errorf("Size() = %dx%d, want 40x20", w, h)
	}
	if got := c.Snapshot().RGBAAt(10, 10); got != red {
		t.Errorf("scaled frame pixel = %v, want red", got)
	}
	events := c.PollEvents()
	if len(events) != 1 || events[0] != (canvas.Resize{Width: 40, Height: 20}) {
		t.Errorf("PollEvents() = %v, want [Resize(40, 20)]", events)
	}
}

func TestClose(t *testing.T) {
	c := newTestCanvas(t, true)

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
	if err := c.Present(); !errors.Is(err, canvas.ErrClosed) {
		t.Errorf("Present() after Close = %v, want ErrClosed", err)
	}
	if got := c.PollEvents(); len(got) != 0 {
		t.Errorf("PollEvents() after Close = %v, want none", got)
	}
}

func TestOutputFormats(t *testing.T) {
	tests := []struct {
		file   string
		decode func(f *os.File) (image.Image, error)
	}{
		{"plot.png", func(f *os.File) (image.Image, error) { return png.Decode(f) }},
		{"plot.bmp", func(f *os.File) (image.Image, error) { return bmp.Decode(f) }},
		{"plot.tiff", func(f *os.File) (image.Image, error) { return tiff.Decode(f) }},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			c := newTestCanvas(t, true, WithOutput(path))
			c.SetColor(red)
			c.Rectangle(geom.Pt(0, 0), geom.Pt(5, 5))
			if err := c.Present(); err != nil {
				t.Fatalf("Present() error: %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("open output: %v", err)
			}
			defer f.Close()

			img, err := tt.decode(f)
			if err != nil {
				t.Fatalf("decode output: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
				t.Errorf("output size = %v, want 100x100", b)
			}
			r, g, _, _ := img.At(10, 90).RGBA()
			if r>>8 != 255 || g>>8 != 0 {
				t.Errorf("output pixel (10, 90) = %v, want red", img.At(10, 90))
			}
		})
	}
}

func TestOutputScale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "half.png")
	c := newTestCanvas(t, true, WithOutput(path), WithScale(0.5))
	if err := c.Present(); err != nil {
		t.Fatalf("Present() error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 50 || cfg.Height != 50 {
		t.Errorf("scaled output = %dx%d, want 50x50", cfg.Width, cfg.Height)
	}
}

func TestUnsupportedOutput(t *testing.T) {
	_, err := New(canvas.Options{Output: "plot.gif"})
	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("New with .gif output = %v, want UnsupportedFormatError", err)
	}
	if unsupported.Path != "plot.gif" {
		t.Errorf("Path = %s, want plot.gif", unsupported.Path)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"a.png", FormatPNG},
		{"A.PNG", FormatPNG},
		{"dir/b.bmp", FormatBMP},
		{"c.tif", FormatTIFF},
		{"c.tiff", FormatTIFF},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if err != nil {
			t.Errorf("FormatFromPath(%q) error: %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestRegistered(t *testing.T) {
	entry, ok := canvas.Get(Name)
	if !ok {
		t.Fatal("image backend not registered")
	}
	if entry.Priority != Priority {
		t.Errorf("Priority = %d, want %d", entry.Priority, Priority)
	}

	c, err := canvas.OpenByName(Name, canvas.Options{Width: 32, Height: 16})
	if err != nil {
		t.Fatalf("OpenByName failed: %v", err)
	}
	defer c.Close()
	if w, h := c.Size(); w != 32 || h != 16 {
		t.Errorf("Size() = %dx%d, want 32x16", w, h)
	}
}
