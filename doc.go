// Package ggplot draws 2D line plots onto pluggable render targets.
//
// # Overview
//
// Callers describe a plot with a Builder: series of (x, y) points, each in
// its own color, plus optional bound overrides. Build turns the Builder into
// a Request, which one Loop consumes. The Loop computes the world rectangle
// enclosing all data, draws the series clipped to it, and then redraws
// whenever input changes the view: the scroll wheel zooms, a resize redraws,
// Escape or closing the window ends the loop.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/ggplot"
//	    "github.com/gogpu/ggplot/canvas"
//	    _ "github.com/gogpu/ggplot/canvas/imagecanvas"
//	)
//
//	xs := ggplot.Linspace(0, 10, 100)
//	b := ggplot.NewBuilder()
//	b.AddSeries(ggplot.XY(xs, ggplot.Map(xs, math.Sin)), ggplot.Red)
//	req, err := b.Build()
//	if err != nil { ... }
//
//	p := ggplot.NewPlotter()
//	opts := canvas.DefaultOptions()
//	opts.Output = "sin.png"
//	if _, err := p.PlotOn(req, "image", opts); err != nil { ... }
//	if err := p.Join(); err != nil { ... }
//
// # Render Targets
//
// A render target implements canvas.Canvas. Backends register themselves
// with the canvas registry when their package is imported:
//   - canvas/windowcanvas: a desktop window (priority 100)
//   - canvas/termcanvas: braille graphics in a terminal (priority 50)
//   - canvas/imagecanvas: an in-memory image, optionally written to a file (priority 10)
//
// # Coordinate System
//
// World space is y-up. Every canvas maps its current view onto its pixels,
// so the loop works purely in world coordinates.
//
// # Concurrency
//
// Each Loop runs on one goroutine and owns its canvas. A Plotter starts one
// goroutine per plot and waits for them in Join.
package ggplot
