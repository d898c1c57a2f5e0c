// Package geom provides the world-space geometry used by the plot renderer:
// points, ranges, viewports, the world-to-window coordinate mapping and the
// line clipper that keeps segments inside the visible region.
//
// World space is y-up. Window space is y-down with the origin at the top-left
// corner, so every vertical mapping from world to window inverts the axis.
package geom

import (
	"errors"
	"math"
)

// Errors.
var (
	// ErrDegenerateRange is returned when a range has zero size and would
	// cause a division by zero when mapped.
	ErrDegenerateRange = errors.New("geom: degenerate range")

	// ErrInvalidRange is returned when a range is inverted (Max < Min) or has
	// a non-finite bound.
	ErrInvalidRange = errors.New("geom: invalid range")
)

// Point represents a 2D point with float64 coordinates.
type Point struct {
	X, Y float64
}

// Pt creates a Point from x, y coordinates.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Lerp performs linear interpolation between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Range is a closed interval [Min, Max] along one axis.
type Range struct {
	Min, Max float64
}

// Size returns Max - Min.
func (r Range) Size() float64 {
	return r.Max - r.Min
}

// Center returns the midpoint of the range.
func (r Range) Center() float64 {
	return r.Min + r.Size()/2
}

// Contains returns true if v lies inside the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// IsDegenerate returns true if the range has zero size.
func (r Range) IsDegenerate() bool {
	return r.Max == r.Min
}

// Validate returns nil if the range is finite and has a positive size.
func (r Range) Validate() error {
	if !r.Valid() {
		return ErrInvalidRange
	}
	if r.IsDegenerate() {
		return ErrDegenerateRange
	}
	return nil
}

// Expand grows the range by frac*Size() on both ends.
// A negative frac shrinks it. Expand(0.05) adds a 5% margin on each side.
func (r Range) Expand(frac float64) Range {
	d := r.Size() * frac
	return Range{Min: r.Min - d, Max: r.Max + d}
}

// Zoom grows the range by Size()*mult on both ends. It is the scroll-wheel
// operation: Zoom(1) on [0, 10] gives [-10, 20]. Negative mult zooms in.
func (r Range) Zoom(mult float64) Range {
	return r.Expand(mult)
}

// Valid reports whether both bounds are finite and Max >= Min.
func (r Range) Valid() bool {
	return isFinite(r.Min) && isFinite(r.Max) && r.Max >= r.Min
}

// Clamp restricts v to the range.
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Viewport is an axis-aligned rectangle in world space.
type Viewport struct {
	X, Y Range
}

// NewViewport creates a Viewport from its four bounds.
func NewViewport(minX, maxX, minY, maxY float64) Viewport {
	return Viewport{
		X: Range{Min: minX, Max: maxX},
		Y: Range{Min: minY, Max: maxY},
	}
}

// Min returns the bottom-left corner.
func (v Viewport) Min() Point {
	return Point{X: v.X.Min, Y: v.Y.Min}
}

// Max returns the top-right corner.
func (v Viewport) Max() Point {
	return Point{X: v.X.Max, Y: v.Y.Max}
}

// Contains returns true if p lies inside the viewport, edges included.
func (v Viewport) Contains(p Point) bool {
	return v.X.Contains(p.X) && v.Y.Contains(p.Y)
}

// Expand grows both axes by frac of their size on both ends.
func (v Viewport) Expand(frac float64) Viewport {
	return Viewport{X: v.X.Expand(frac), Y: v.Y.Expand(frac)}
}

// Zoom applies Range.Zoom to both axes.
func (v Viewport) Zoom(mult float64) Viewport {
	return Viewport{X: v.X.Zoom(mult), Y: v.Y.Zoom(mult)}
}

// Inset shrinks both axes by frac of their size on both ends.
func (v Viewport) Inset(frac float64) Viewport {
	return v.Expand(-frac)
}

// Clamp moves p onto the nearest point inside the viewport.
func (v Viewport) Clamp(p Point) Point {
	return Point{X: v.X.Clamp(p.X), Y: v.Y.Clamp(p.Y)}
}

// Validate returns nil if both axes are valid, non-degenerate ranges.
func (v Viewport) Validate() error {
	if err := v.X.Validate(); err != nil {
		return err
	}
	return v.Y.Validate()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
