package ggplot

import (
	"fmt"

	"github.com/gogpu/ggplot/geom"
)

// Bound is an optional axis limit. The zero value is unset.
type Bound struct {
	Value float64
	Set   bool
}

// Fixed returns a Bound set to v.
func Fixed(v float64) Bound {
	return Bound{Value: v, Set: true}
}

// Or returns the bound's value if set, otherwise v.
func (b Bound) Or(v float64) float64 {
	if b.Set {
		return b.Value
	}
	return v
}

// String implements fmt.Stringer.
func (b Bound) String() string {
	if !b.Set {
		return "auto"
	}
	return fmt.Sprint(b.Value)
}

// Overrides holds user limits that replace the computed data bounds.
type Overrides struct {
	MinX, MaxX, MinY, MaxY Bound
}

// validate reports ErrNonFinite for a set bound that is NaN or infinite.
func (o Overrides) validate() error {
	for _, b := range []Bound{o.MinX, o.MaxX, o.MinY, o.MaxY} {
		if b.Set && !isFinite(b.Value) {
			return fmt.Errorf("%w: bound override %v", ErrNonFinite, b.Value)
		}
	}
	return nil
}

// Bounds is the world rectangle enclosing a plot.
type Bounds struct {
	MaxX, MaxY, MinX, MinY float64
}

// Viewport converts b to a geom.Viewport.
func (b Bounds) Viewport() geom.Viewport {
	return geom.NewViewport(b.MinX, b.MaxX, b.MinY, b.MaxY)
}

// ComputeBounds returns the smallest rectangle enclosing every point of every
// series. A set override replaces the corresponding computed bound.
//
// It fails with ErrNoSeries when series is empty, and with a *SeriesError
// wrapping ErrEmptySeries or ErrNonFinite for an invalid series. The result
// may still be degenerate (a single point, a flat line); callers validate
// it with Viewport().Validate().
func ComputeBounds(series []Series, o Overrides) (Bounds, error) {
	if len(series) == 0 {
		return Bounds{}, ErrNoSeries
	}
	if err := o.validate(); err != nil {
		return Bounds{}, err
	}

	first := series[0].Points
	if len(first) == 0 {
		return Bounds{}, &SeriesError{Index: 0, Err: ErrEmptySeries}
	}
	p0 := first[0]
	b := Bounds{MaxX: p0.X, MaxY: p0.Y, MinX: p0.X, MinY: p0.Y}

	for i, s := range series {
		if err := s.Validate(); err != nil {
			return Bounds{}, &SeriesError{Index: i, Err: err}
		}
		for _, p := range s.Points {
			b.MaxX = max(b.MaxX, p.X)
			b.MaxY = max(b.MaxY, p.Y)
			b.MinX = min(b.MinX, p.X)
			b.MinY = min(b.MinY, p.Y)
		}
	}

	b.MaxX = o.MaxX.Or(b.MaxX)
	b.MaxY = o.MaxY.Or(b.MaxY)
	b.MinX = o.MinX.Or(b.MinX)
	b.MinY = o.MinY.Or(b.MinY)
	return b, nil
}
