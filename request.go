package ggplot

import (
	"sync/atomic"
)

// Request is an immutable plot description produced by Builder.Build.
// It is consumed by exactly one Loop.
type Request struct {
	series      []Series
	funcs       []Func
	overrides   Overrides
	decorations Decorations

	consumed atomic.Bool
}

// NewRequest creates a Request directly from series and overrides, copying
// the points.
func NewRequest(series []Series, o Overrides) *Request {
	cp := make([]Series, len(series))
	for i, s := range series {
		cp[i] = s.clone()
	}
	return &Request{series: cp, overrides: o, decorations: defaultDecorations()}
}

// Series returns a copy of the request's series.
func (r *Request) Series() []Series {
	out := make([]Series, len(r.series))
	for i, s := range r.series {
		out[i] = s.clone()
	}
	return out
}

// Funcs returns the recorded function plots.
func (r *Request) Funcs() []Func {
	return append([]Func(nil), r.funcs...)
}

// Overrides returns the bound overrides.
func (r *Request) Overrides() Overrides {
	return r.overrides
}

// Decorations returns the text and axis settings.
func (r *Request) Decorations() Decorations {
	return r.decorations
}

// Points returns the total number of points across all series.
func (r *Request) Points() int {
	n := 0
	for _, s := range r.series {
		n += len(s.Points)
	}
	return n
}

// Consumed reports whether a loop has taken the request.
func (r *Request) Consumed() bool {
	return r.consumed.Load()
}

// consume marks the request as taken. It fails for every call but the first.
func (r *Request) consume() error {
	if !r.consumed.CompareAndSwap(false, true) {
		return ErrRequestConsumed
	}
	return nil
}
