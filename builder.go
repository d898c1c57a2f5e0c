package ggplot

import (
	"github.com/gogpu/ggplot/geom"
)

// DefaultFontPath is the font recorded for text decorations.
const DefaultFontPath = "/usr/share/fonts/truetype/freefont/FreeSans.ttf"

// Func is a function plot. Function plots are carried in a Request but not
// drawn.
type Func struct {
	F     func(x float64) float64
	Color RGBA
}

// Decorations holds the text and axis settings of a plot. They are carried
// in a Request but not drawn.
type Decorations struct {
	Title, XLabel, YLabel string

	XAxis, YAxis           bool
	XGridlines, YGridlines bool

	FontPath string
}

// defaultDecorations returns axes and gridlines enabled with the default font.
func defaultDecorations() Decorations {
	return Decorations{
		XAxis:      true,
		YAxis:      true,
		XGridlines: true,
		YGridlines: true,
		FontPath:   DefaultFontPath,
	}
}

// Builder collects series and settings for one plot.
//
// Example:
//
//	xs := ggplot.Linspace(0, 10, 100)
//	b := ggplot.NewBuilder()
//	b.AddSeries(ggplot.XY(xs, ggplot.Map(xs, math.Sin)), ggplot.Red)
//	b.SetMaxY(2)
//	req, err := b.Build()
//
// A Builder is not safe for concurrent use.
type Builder struct {
	series      []Series
	funcs       []Func
	overrides   Overrides
	decorations Decorations
}

// NewBuilder creates an empty Builder with default decorations.
func NewBuilder() *Builder {
	return &Builder{decorations: defaultDecorations()}
}

// AddSeries adds a line through points in color c. The points are copied.
func (b *Builder) AddSeries(points []geom.Point, c RGBA) *Builder {
	b.series = append(b.series, Series{Points: points, Color: c}.clone())
	return b
}

// AddSimple adds a line through points in DefaultSeriesColor.
func (b *Builder) AddSimple(points []geom.Point) *Builder {
	return b.AddSeries(points, DefaultSeriesColor)
}

// AddFunc records a function plot in DefaultSeriesColor.
func (b *Builder) AddFunc(f func(x float64) float64) *Builder {
	b.funcs = append(b.funcs, Func{F: f, Color: DefaultSeriesColor})
	return b
}

// SetMinX fixes the lower x bound.
func (b *Builder) SetMinX(v float64) *Builder { b.overrides.MinX = Fixed(v); return b }

// SetMaxX fixes the upper x bound.
func (b *Builder) SetMaxX(v float64) *Builder { b.overrides.MaxX = Fixed(v); return b }

// SetMinY fixes the lower y bound.
func (b *Builder) SetMinY(v float64) *Builder { b.overrides.MinY = Fixed(v); return b }

// SetMaxY fixes the upper y bound.
func (b *Builder) SetMaxY(v float64) *Builder { b.overrides.MaxY = Fixed(v); return b }

// SetOverrides replaces all four bound overrides.
func (b *Builder) SetOverrides(o Overrides) *Builder { b.overrides = o; return b }

// SetTitle sets the plot title.
func (b *Builder) SetTitle(s string) *Builder { b.decorations.Title = s; return b }

// SetXLabel sets the x axis label.
func (b *Builder) SetXLabel(s string) *Builder { b.decorations.XLabel = s; return b }

// SetYLabel sets the y axis label.
func (b *Builder) SetYLabel(s string) *Builder { b.decorations.YLabel = s; return b }

// SetAxes enables or disables the x and y axes.
func (b *Builder) SetAxes(x, y bool) *Builder {
	b.decorations.XAxis, b.decorations.YAxis = x, y
	return b
}

// SetGridlines enables or disables the x and y gridlines.
func (b *Builder) SetGridlines(x, y bool) *Builder {
	b.decorations.XGridlines, b.decorations.YGridlines = x, y
	return b
}

// SetFontPath sets the font file for text decorations.
func (b *Builder) SetFontPath(path string) *Builder { b.decorations.FontPath = path; return b }

// Len returns the number of series added so far.
func (b *Builder) Len() int {
	return len(b.series)
}

// Build validates the collected series and moves them into a new Request.
// On success the Builder is reset to its initial state; on failure it is
// left unchanged.
//
// Build fails with ErrNoSeries when no series was added, and with a
// *SeriesError when a series is empty or holds a non-finite point.
func (b *Builder) Build() (*Request, error) {
	if len(b.series) == 0 {
		return nil, ErrNoSeries
	}
	for i, s := range b.series {
		if err := s.Validate(); err != nil {
			return nil, &SeriesError{Index: i, Err: err}
		}
	}
	if err := b.overrides.validate(); err != nil {
		return nil, err
	}

	req := &Request{
		series:      b.series,
		funcs:       b.funcs,
		overrides:   b.overrides,
		decorations: b.decorations,
	}
	*b = Builder{decorations: defaultDecorations()}
	return req, nil
}
