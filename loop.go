package ggplot

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/ggplot/canvas"
	"github.com/gogpu/ggplot/geom"
)

// State is the lifecycle state of a Loop.
type State int32

// Loop states. A loop moves from Initializing to Rendering, then alternates
// between WaitingForInput and Rendering until it is Closed.
const (
	StateInitializing State = iota
	StateRendering
	StateWaitingForInput
	StateClosed
)

// stateNames maps states to their names.
var stateNames = [...]string{
	StateInitializing:    "Initializing",
	StateRendering:       "Rendering",
	StateWaitingForInput: "WaitingForInput",
	StateClosed:          "Closed",
}

// String returns the state name.
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// errLoopStarted is returned by a second call to Run.
var errLoopStarted = errors.New("ggplot: loop already started")

// Loop renders one Request onto one canvas and redraws it as input changes
// the view. A Loop owns its canvas and closes it when Run returns.
//
// Run blocks; State and Viewport may be called from other goroutines.
type Loop struct {
	canvas canvas.Canvas
	series []Series
	opts   loopOptions
	log    *slog.Logger

	world  geom.Viewport
	mu     sync.Mutex
	view   geom.Viewport
	state  atomic.Int32
	passes atomic.Int64
	ran    atomic.Bool
}

// NewLoop consumes req and prepares a loop drawing it onto c.
//
// It computes the plot bounds and fails with ErrRequestConsumed,
// ErrNoSeries, a *SeriesError, ErrNonFinite, ErrInvalidRange or
// ErrDegenerateRange before anything is drawn. On failure the caller keeps
// ownership of c.
func NewLoop(req *Request, c canvas.Canvas, opts ...LoopOption) (*Loop, error) {
	if req == nil {
		return nil, ErrNoSeries
	}
	if c == nil {
		return nil, &BackendError{Op: "open", Err: canvas.ErrNoBackendAvailable}
	}
	if err := req.consume(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}

	b, err := ComputeBounds(req.series, req.overrides)
	if err != nil {
		return nil, err
	}
	world := b.Viewport()
	if err := world.Validate(); err != nil {
		return nil, err
	}

	l := &Loop{
		canvas: c,
		series: req.series,
		opts:   o,
		log:    log,
		world:  world,
		view:   world,
	}
	l.state.Store(int32(StateInitializing))
	return l, nil
}

// State returns the current state.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Viewport returns the visible world rectangle.
func (l *Loop) Viewport() geom.Viewport {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.view
}

// Bounds returns the world rectangle computed from the request.
func (l *Loop) Bounds() geom.Viewport {
	return l.world
}

// Passes returns the number of completed draw passes.
func (l *Loop) Passes() int {
	return int(l.passes.Load())
}

func (l *Loop) setState(s State) {
	l.state.Store(int32(s))
}

// Run draws the plot and processes input until the canvas reports Quit or
// Escape is pressed, or a canvas call fails. It closes the canvas before
// returning. A failed Present is returned as a *BackendError.
//
// Run may be called once.
func (l *Loop) Run() error {
	if !l.ran.CompareAndSwap(false, true) {
		return errLoopStarted
	}
	defer l.close()

	w, h := l.canvas.Size()
	l.log.Info("ggplot: loop started",
		"series", len(l.series), "width", w, "height", h, "view", l.world)

	l.canvas.SetView(l.view)
	dirty := true

	for {
		if dirty {
			l.setState(StateRendering)
			if err := l.render(); err != nil {
				l.log.Warn("ggplot: loop closed by backend error", "err", err)
				return err
			}
			dirty = false
		}

		l.setState(StateWaitingForInput)
		events := l.canvas.PollEvents()
		if len(events) == 0 {
			time.Sleep(l.opts.pollInterval)
			continue
		}

		for _, e := range events {
			l.log.Debug("ggplot: event", "event", e)
			switch e := e.(type) {
			case canvas.Quit:
				return nil
			case canvas.KeyDown:
				if e.Code == canvas.KeyEscape {
					return nil
				}
			case canvas.MouseScroll:
				if l.scroll(e.DY) {
					l.canvas.SetView(l.Viewport())
					dirty = true
				}
			case canvas.Resize:
				dirty = true
			}
		}
	}
}

// scroll zooms the view by dy/ScrollStep of each axis on both ends. It
// reports whether the view changed. A zoom that would collapse or invert an
// axis is ignored.
func (l *Loop) scroll(dy int) bool {
	if dy == 0 {
		return false
	}
	mult := float64(dy) / ScrollStep

	l.mu.Lock()
	defer l.mu.Unlock()
	next := l.view.Zoom(mult)
	if err := next.Validate(); err != nil {
		l.log.Warn("ggplot: scroll ignored", "dy", dy, "err", err)
		return false
	}
	l.view = next
	return true
}

// render performs one draw pass: frame and background inside a margin, then
// every series clipped to the view, then Present. The canvas holds the real
// view when the pass starts and again from the series on.
func (l *Loop) render() error {
	c := l.canvas
	view := l.Viewport()

	c.SetView(view.Expand(l.opts.margin))
	c.SetColor(l.opts.border.Color())
	c.Clear()
	c.SetColor(l.opts.frame.Color())
	c.Rectangle(view.Min(), view.Max())
	inner := view.Inset(l.opts.borderWidth)
	c.SetColor(l.opts.background.Color())
	c.Rectangle(inner.Min(), inner.Max())
	c.SetView(view)

	drawn, clipped := 0, 0
	for _, s := range l.series {
		c.SetColor(s.Color.Color())
		for i := 0; i+1 < len(s.Points); i++ {
			a, b, ok := geom.ClipSegment(s.Points[i], s.Points[i+1], view)
			if !ok {
				clipped++
				continue
			}
			c.Line(a, b)
			drawn++
		}
	}

	if err := c.Present(); err != nil {
		return &BackendError{Op: "present", Err: err}
	}
	n := l.passes.Add(1)
	l.log.Debug("ggplot: pass rendered",
		"pass", n, "segments", drawn, "clipped", clipped, "view", view)
	return nil
}

// close moves the loop to Closed and releases the canvas.
func (l *Loop) close() {
	l.setState(StateClosed)
	if err := l.canvas.Close(); err != nil {
		l.log.Warn("ggplot: canvas close failed", "err", err)
	}
	l.log.Info("ggplot: loop closed", "passes", l.Passes())
}
