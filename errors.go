package ggplot

import (
	"errors"
	"fmt"

	"github.com/gogpu/ggplot/geom"
)

// Input errors. They are reported before a loop draws anything.
var (
	// ErrEmptySeries is returned when a series holds no points.
	ErrEmptySeries = errors.New("ggplot: empty series")

	// ErrNoSeries is returned when a request holds no series.
	ErrNoSeries = errors.New("ggplot: no series")

	// ErrNonFinite is returned when a point or bound is NaN or infinite.
	ErrNonFinite = errors.New("ggplot: non-finite value")

	// ErrDegenerateRange is returned when the plot bounds have zero size on
	// an axis.
	ErrDegenerateRange = geom.ErrDegenerateRange

	// ErrInvalidRange is returned when bound overrides invert an axis.
	ErrInvalidRange = geom.ErrInvalidRange
)

// ErrRequestConsumed is returned when a Request is handed to a second loop.
var ErrRequestConsumed = errors.New("ggplot: request already consumed")

// ErrPlotterClosed is returned by Plot after the Plotter was joined, disowned
// or closed.
var ErrPlotterClosed = errors.New("ggplot: plotter closed")

// SeriesError reports which series of a request is invalid.
type SeriesError struct {
	Index int
	Err   error
}

// Error implements the error interface.
func (e *SeriesError) Error() string {
	return fmt.Sprintf("ggplot: series %d: %v", e.Index, unprefix(e.Err))
}

// Unwrap returns the underlying error.
func (e *SeriesError) Unwrap() error {
	return e.Err
}

// BackendError reports a failed canvas operation. The loop that hit it is
// closed; other loops keep running.
type BackendError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	return fmt.Sprintf("ggplot: backend %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *BackendError) Unwrap() error {
	return e.Err
}

// unprefix drops the package prefix of our own sentinels so wrapped
// messages read "ggplot: series 1: empty series".
func unprefix(err error) string {
	const prefix = "ggplot: "
	s := err.Error()
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):]
	}
	return s
}
