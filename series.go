package ggplot

import (
	"math"

	"github.com/gogpu/ggplot/geom"
)

// Series is an ordered run of points drawn as connected line segments in
// one color.
type Series struct {
	Points []geom.Point
	Color  RGBA
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.Points)
}

// Validate reports ErrEmptySeries for a series without points and
// ErrNonFinite when any coordinate is NaN or infinite.
func (s Series) Validate() error {
	if len(s.Points) == 0 {
		return ErrEmptySeries
	}
	for _, p := range s.Points {
		if !p.IsFinite() {
			return ErrNonFinite
		}
	}
	return nil
}

// clone returns a copy whose points do not alias s.
func (s Series) clone() Series {
	pts := make([]geom.Point, len(s.Points))
	copy(pts, s.Points)
	return Series{Points: pts, Color: s.Color}
}

// XY pairs xs with ys into points. The result is as long as the shorter
// input.
func XY(xs, ys []float64) []geom.Point {
	n := min(len(xs), len(ys))
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Pt(xs[i], ys[i])
	}
	return pts
}

// Pair is a two-element tuple.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip2 pairs the elements of a and b. The result is as long as the shorter
// input.
func Zip2[A, B any](a []A, b []B) []Pair[A, B] {
	n := min(len(a), len(b))
	out := make([]Pair[A, B], n)
	for i := range out {
		out[i] = Pair[A, B]{a[i], b[i]}
	}
	return out
}

// Linspace returns n evenly spaced values starting at start. The end value
// is excluded: element i is start + i*(end-start)/n.
func Linspace(start, end float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*(end-start)/float64(n)
	}
	return out
}

// Map applies f to every element of xs.
func Map(xs []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = f(x)
	}
	return out
}

// isFinite reports whether v is neither NaN nor infinite.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
