// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package canvas defines the render target contract used by the plot loop
// and a registry of interchangeable backends.
//
// # Overview
//
// A Canvas draws in world space: the loop hands it a viewport with SetView
// and then issues lines and rectangles in the same coordinates as the data.
// Each backend maps the view onto its own pixels, so the loop never tracks
// the output size itself.
//
// Backends shipped with this module:
//
//	imagecanvas  "image"     software RGBA surface, PNG/BMP/TIFF output
//	termcanvas   "terminal"  braille rendering in a terminal via tcell
//	windowcanvas "window"    hardware-accelerated window via ebiten
//
// # Registry
//
// Backends register a factory under a name and a priority, following the
// database/sql driver pattern:
//
//	import _ "github.com/gogpu/ggplot/canvas/imagecanvas"
//
//	c, err := canvas.OpenByName("image", canvas.DefaultOptions())
//	// or let the registry pick the best available backend:
//	c, err := canvas.Open(canvas.DefaultOptions())
//
// Standard priorities:
//   - 100: windowed, hardware-accelerated backends
//   - 50: interactive terminal backends
//   - 10: headless software backends
//
// # Events
//
// PollEvents never blocks. The plot loop polls at a fixed interval and
// reacts to Quit, Escape, MouseScroll and Resize.
package canvas
