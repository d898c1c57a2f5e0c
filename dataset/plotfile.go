package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/ggplot"
	"github.com/gogpu/ggplot/geom"
)

// PlotFile is a YAML plot description.
//
//	title: waves
//	bounds:
//	  min_y: -1.5
//	  max_y: 1.5
//	series:
//	  - name: sin
//	    color: red
//	    file: sin.csv
//	  - name: diagonal
//	    color: "#0000ff"
//	    points: [[0, 0], [10, 1]]
//	  - x: [0, 1, 2]
//	    y: [1, 0, 1]
type PlotFile struct {
	Title  string      `yaml:"title"`
	XLabel string      `yaml:"x_label"`
	YLabel string      `yaml:"y_label"`
	Bounds BoundsSpec  `yaml:"bounds"`
	Series []SeriesDef `yaml:"series"`
}

// BoundsSpec holds optional bound overrides.
type BoundsSpec struct {
	MinX *float64 `yaml:"min_x"`
	MaxX *float64 `yaml:"max_x"`
	MinY *float64 `yaml:"min_y"`
	MaxY *float64 `yaml:"max_y"`
}

// Overrides converts s to ggplot.Overrides.
func (s BoundsSpec) Overrides() ggplot.Overrides {
	bound := func(v *float64) ggplot.Bound {
		if v == nil {
			return ggplot.Bound{}
		}
		return ggplot.Fixed(*v)
	}
	return ggplot.Overrides{
		MinX: bound(s.MinX),
		MaxX: bound(s.MaxX),
		MinY: bound(s.MinY),
		MaxY: bound(s.MaxY),
	}
}

// SeriesDef describes one entry of a plot file. Exactly one of File, Points
// or X and Y supplies the data. A CSV file may hold several y columns; they
// all take Color when it is set.
type SeriesDef struct {
	Name   string       `yaml:"name"`
	Color  *Color       `yaml:"color"`
	File   string       `yaml:"file"`
	Points [][2]float64 `yaml:"points"`
	X      []float64    `yaml:"x"`
	Y      []float64    `yaml:"y"`
}

// Color is a ggplot.RGBA read from a color name or hex string.
type Color ggplot.RGBA

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := ggplot.ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*c = Color(v)
	return nil
}

// ErrNoSeriesData is returned for a series entry without data.
var ErrNoSeriesData = errors.New("dataset: series has no file, points or x/y")

// DecodePlotFile parses a YAML plot description.
func DecodePlotFile(r io.Reader) (*PlotFile, error) {
	var pf PlotFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dataset: empty plot file")
		}
		return nil, fmt.Errorf("dataset: %w", err)
	}
	return &pf, nil
}

// Builder loads the data of every series and returns a Builder holding
// them. Relative file names are resolved against dir.
func (pf *PlotFile) Builder(dir string) (*ggplot.Builder, error) {
	b := ggplot.NewBuilder().
		SetOverrides(pf.Bounds.Overrides()).
		SetTitle(pf.Title).
		SetXLabel(pf.XLabel).
		SetYLabel(pf.YLabel)

	next := 0
	color := func(def SeriesDef) ggplot.RGBA {
		if def.Color != nil {
			return ggplot.RGBA(*def.Color)
		}
		c := PaletteColor(next)
		next++
		return c
	}

	for i, def := range pf.Series {
		switch {
		case def.File != "":
			path := def.File
			if !filepath.IsAbs(path) {
				path = filepath.Join(dir, path)
			}
			t, err := LoadCSVFile(path)
			if err != nil {
				return nil, fmt.Errorf("series %d: %w", i, err)
			}
			for _, s := range t.Series {
				b.AddSeries(s.Points, color(def))
			}
		case len(def.Points) > 0:
			pts := make([]geom.Point, len(def.Points))
			for j, p := range def.Points {
				pts[j] = geom.Pt(p[0], p[1])
			}
			b.AddSeries(pts, color(def))
		case len(def.X) > 0 || len(def.Y) > 0:
			if len(def.X) != len(def.Y) {
				return nil, fmt.Errorf("dataset: series %d: x has %d values, y has %d",
					i, len(def.X), len(def.Y))
			}
			b.AddSeries(ggplot.XY(def.X, def.Y), color(def))
		default:
			return nil, fmt.Errorf("series %d: %w", i, ErrNoSeriesData)
		}
	}
	return b, nil
}

// LoadPlotFile reads the plot description at path and loads its data.
func LoadPlotFile(path string) (*ggplot.Builder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	pf, err := DecodePlotFile(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pf.Builder(filepath.Dir(path))
}
