// Package dataset loads plot data from files: CSV tables of numbers and
// YAML plot descriptions that combine several series with colors and
// bound overrides.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/ggplot"
	"github.com/gogpu/ggplot/geom"
)

// Palette colors series loaded without an explicit color, in order.
var Palette = []ggplot.RGBA{
	ggplot.Red,
	ggplot.Green,
	ggplot.Blue,
	ggplot.Hex("#ff8c00"),
	ggplot.Hex("#800080"),
	ggplot.Hex("#008080"),
}

// PaletteColor returns the palette color for the i-th series.
func PaletteColor(i int) ggplot.RGBA {
	return Palette[i%len(Palette)]
}

// ErrNoData is returned when a CSV holds no data rows.
var ErrNoData = errors.New("dataset: no data")

// ParseError reports a cell that is not a number.
type ParseError struct {
	Line   int
	Column string
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("dataset: line %d: column %s: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Table is a parsed CSV: one series per y column.
type Table struct {
	// Names holds the y column names, "y1", "y2"... when there is no header.
	Names  []string
	Series []ggplot.Series

	yOnly bool
}

// LoadCSV reads a table of numbers.
//
// The first column holds x and every further column holds the y values of
// one series, colored from Palette. A single-column table is y only, with x
// running 0, 1, 2... A first row that is not numeric is taken as a header.
// Blank lines are skipped and so are empty cells, so columns may differ in
// length. A non-numeric cell fails with a *ParseError naming its line.
func LoadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.Comment = '#'

	var (
		t      *Table
		header []string
		row    int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if t == nil {
			if isHeader(rec) {
				header = rec
				t = newTable(header, len(rec))
				continue
			}
			t = newTable(nil, len(rec))
		}
		if err := t.addRow(rec, row, line, header); err != nil {
			return nil, err
		}
		row++
	}

	if t == nil || row == 0 {
		return nil, ErrNoData
	}
	t.compact()
	if len(t.Series) == 0 {
		return nil, ErrNoData
	}
	return t, nil
}

// LoadCSVFile opens path and reads it with LoadCSV.
func LoadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	t, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// AddTo adds every series of t to b.
func (t *Table) AddTo(b *ggplot.Builder) {
	for _, s := range t.Series {
		b.AddSeries(s.Points, s.Color)
	}
}

// Points returns the total number of points.
func (t *Table) Points() int {
	n := 0
	for _, s := range t.Series {
		n += len(s.Points)
	}
	return n
}

func newTable(header []string, width int) *Table {
	ys := max(width-1, 1)
	t := &Table{
		Names:  make([]string, ys),
		Series: make([]ggplot.Series, ys),
		yOnly:  width == 1,
	}
	for i := range t.Names {
		col := i + 1
		if t.yOnly {
			col = 0
		}
		if col < len(header) && strings.TrimSpace(header[col]) != "" {
			t.Names[i] = strings.TrimSpace(header[col])
		} else {
			t.Names[i] = fmt.Sprintf("y%d", i+1)
		}
		t.Series[i].Color = PaletteColor(i)
	}
	return t
}

// addRow appends the points of one record. Rows wider than the first one
// are cut to its width.
func (t *Table) addRow(rec []string, row, line int, header []string) error {
	cell := func(col int) (float64, bool, error) {
		if col >= len(rec) || strings.TrimSpace(rec[col]) == "" {
			return 0, false, nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[col]), 64)
		if err != nil {
			name := strconv.Itoa(col + 1)
			if col < len(header) {
				name = strconv.Quote(header[col])
			}
			return 0, false, &ParseError{Line: line, Column: name, Err: err}
		}
		return v, true, nil
	}

	if t.yOnly {
		y, ok, err := cell(0)
		if err != nil || !ok {
			return err
		}
		t.Series[0].Points = append(t.Series[0].Points, geom.Pt(float64(row), y))
		return nil
	}

	x, ok, err := cell(0)
	if err != nil || !ok {
		return err
	}
	for i := range t.Series {
		y, ok, err := cell(i + 1)
		if err != nil {
			return err
		}
		if ok {
			t.Series[i].Points = append(t.Series[i].Points, geom.Pt(x, y))
		}
	}
	return nil
}

// compact drops series without points.
func (t *Table) compact() {
	names := t.Names[:0]
	series := t.Series[:0]
	for i, s := range t.Series {
		if len(s.Points) > 0 {
			names = append(names, t.Names[i])
			series = append(series, s)
		}
	}
	t.Names, t.Series = names, series
}

// isHeader reports whether a first record is a header: any non-empty cell
// that is not a number makes it one.
func isHeader(rec []string) bool {
	for _, f := range rec {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, err := strconv.ParseFloat(f, 64); err != nil {
			return true
		}
	}
	return false
}
