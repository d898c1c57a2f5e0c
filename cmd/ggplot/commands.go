package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/gogpu/ggplot"
	"github.com/gogpu/ggplot/canvas"
	"github.com/gogpu/ggplot/canvas/imagecanvas"
	"github.com/gogpu/ggplot/dataset"
)

// DataFlags selects the data to plot.
type DataFlags struct {
	Files []string `arg:"" type:"existingfile" help:"CSV data or YAML plot files."`
	Jobs  int      `short:"j" default:"4" help:"CSV files loaded at once."`
	Title string   `short:"t" help:"Plot title, used as the window title."`

	MinX *float64 `help:"Lower x bound."`
	MaxX *float64 `help:"Upper x bound."`
	MinY *float64 `help:"Lower y bound."`
	MaxY *float64 `help:"Upper y bound."`
}

// request loads every file into one request. CSV series without a color
// take palette colors in file order.
func (d *DataFlags) request(ctx context.Context) (*ggplot.Request, error) {
	b := ggplot.NewBuilder()

	var csvs []string
	for _, f := range d.Files {
		switch strings.ToLower(filepath.Ext(f)) {
		case ".yaml", ".yml":
			if err := mergePlotFile(b, f); err != nil {
				return nil, err
			}
		default:
			csvs = append(csvs, f)
		}
	}

	tables, err := dataset.LoadAll(ctx, csvs, d.Jobs)
	if err != nil {
		return nil, err
	}
	n := 0
	for _, t := range tables {
		for _, s := range t.Series {
			b.AddSeries(s.Points, dataset.PaletteColor(n))
			n++
		}
	}

	for _, o := range []struct {
		v   *float64
		set func(float64) *ggplot.Builder
	}{
		{d.MinX, b.SetMinX},
		{d.MaxX, b.SetMaxX},
		{d.MinY, b.SetMinY},
		{d.MaxY, b.SetMaxY},
	} {
		if o.v != nil {
			o.set(*o.v)
		}
	}
	if d.Title != "" {
		b.SetTitle(d.Title)
	}
	return b.Build()
}

// mergePlotFile adds the series, bounds and title of a plot file to b.
func mergePlotFile(b *ggplot.Builder, path string) error {
	pb, err := dataset.LoadPlotFile(path)
	if err != nil {
		return err
	}
	req, err := pb.Build()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for _, s := range req.Series() {
		b.AddSeries(s.Points, s.Color)
	}
	o := req.Overrides()
	for _, x := range []struct {
		bound ggplot.Bound
		set   func(float64) *ggplot.Builder
	}{
		{o.MinX, b.SetMinX},
		{o.MaxX, b.SetMaxX},
		{o.MinY, b.SetMinY},
		{o.MaxY, b.SetMaxY},
	} {
		if x.bound.Set {
			x.set(x.bound.Value)
		}
	}
	d := req.Decorations()
	if d.Title != "" {
		b.SetTitle(d.Title)
	}
	return nil
}

// RenderCmd writes one frame to an image file.
type RenderCmd struct {
	DataFlags

	Output string  `short:"o" default:"plot.png" help:"Output file (.png, .bmp, .tif, .tiff)."`
	Scale  float64 `default:"1" help:"Scale factor applied to the written image."`
}

// Run renders the plot.
func (c *RenderCmd) Run(g *Globals) error {
	req, err := c.request(context.Background())
	if err != nil {
		return err
	}
	return renderImage(g, req, c.Output, c.Scale)
}

// ShowCmd plots interactively.
type ShowCmd struct {
	DataFlags

	Backend string `short:"b" help:"Backend name (see 'ggplot backends'); the best available when empty."`
}

// Run shows the plot until it is closed.
func (c *ShowCmd) Run(g *Globals) error {
	req, err := c.request(context.Background())
	if err != nil {
		return err
	}
	return show(g, req, c.Backend)
}

// DemoCmd plots the built-in example data.
type DemoCmd struct {
	Backend string `short:"b" help:"Backend name; the best available when empty."`
	Output  string `short:"o" help:"Write an image file instead of showing the plot."`
	Points  int    `short:"n" default:"100" help:"Samples per curve."`
	Simple  bool   `help:"Plot a red sine and line only."`
}

// Run shows or renders the demo.
func (c *DemoCmd) Run(g *Globals) error {
	req, err := demoRequest(c.Points, c.Simple)
	if err != nil {
		return err
	}
	if c.Output != "" {
		return renderImage(g, req, c.Output, 1)
	}
	return show(g, req, c.Backend)
}

// demoRequest samples sin, cos and a line over [0, 10).
func demoRequest(n int, simple bool) (*ggplot.Request, error) {
	xs := ggplot.Linspace(0, 10, n)
	sin := ggplot.XY(xs, ggplot.Map(xs, math.Sin))
	line := ggplot.XY(xs, ggplot.Map(xs, func(x float64) float64 { return x / 10 }))

	b := ggplot.NewBuilder()
	if simple {
		b.AddSimple(sin).AddSimple(line)
	} else {
		b.AddSeries(sin, ggplot.Red).
			AddSeries(ggplot.XY(xs, ggplot.Map(xs, math.Cos)), ggplot.Green).
			AddSeries(line, ggplot.Blue)
	}
	return b.SetTitle("demo").Build()
}

// BackendsCmd lists the registered backends.
type BackendsCmd struct{}

// Run prints the backend table.
func (BackendsCmd) Run(g *Globals) error {
	var rows []backendRow
	for _, name := range canvas.List() {
		e, ok := canvas.Get(name)
		if !ok {
			continue
		}
		rows = append(rows, backendRow{
			name:      e.Name,
			priority:  e.Priority,
			available: e.Available == nil || e.Available(),
		})
	}
	printBackends(g.stdout, rows)
	return nil
}

// renderImage draws req once into an image file.
func renderImage(g *Globals, req *ggplot.Request, output string, scale float64) error {
	opts := g.canvasOptions()
	opts.Output = output

	c, err := imagecanvas.New(opts, imagecanvas.WithScale(scale))
	if err != nil {
		return err
	}

	p := ggplot.NewPlotter(g.loopOptions()...)
	if err := p.Plot(req, c); err != nil {
		return errors.Join(err, c.Close())
	}
	if err := p.Join(); err != nil {
		return err
	}

	w, h := c.Size()
	printRendered(g.stdout, req, output, int(float64(w)*scale), int(float64(h)*scale))
	return nil
}

// show plots req on the named backend and waits for the plot to close. A
// window runs on the calling goroutine, which is main.
func show(g *Globals, req *ggplot.Request, backend string) error {
	opts := g.canvasOptions()
	if t := req.Decorations().Title; t != "" {
		opts.Title = t
	}

	p := ggplot.NewPlotter(g.loopOptions()...)
	c, err := p.PlotOn(req, backend, opts)
	if err != nil {
		return err
	}
	g.log.Info("ggplot: showing plot", "backend", fmt.Sprintf("%T", c))

	var runErr error
	if r, ok := c.(canvas.Runner); ok {
		runErr = r.Run()
	}
	return errors.Join(runErr, p.Join())
}
