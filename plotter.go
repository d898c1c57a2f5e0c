package ggplot

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/ggplot/canvas"
)

// Plotter runs plot loops, one goroutine each, and collects their errors.
//
// Example:
//
//	p := ggplot.NewPlotter()
//	defer p.Close() // waits for every window to close
//	if _, err := p.PlotOn(req, "", canvas.DefaultOptions()); err != nil {
//	    log.Fatal(err)
//	}
//
// A Plotter is safe for concurrent use.
type Plotter struct {
	opts []LoopOption

	mu       sync.Mutex
	wg       sync.WaitGroup
	errs     []error
	started  int
	running  int
	done     bool
	disowned bool
}

// NewPlotter creates a Plotter whose loops use opts.
func NewPlotter(opts ...LoopOption) *Plotter {
	return &Plotter{opts: opts}
}

// Plot starts a loop drawing req onto c. The loop owns c from then on and
// closes it when it ends.
//
// Input errors are returned immediately and leave c with the caller.
// Errors the loop hits later are reported by Join.
func (p *Plotter) Plot(req *Request, c canvas.Canvas) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done {
		return ErrPlotterClosed
	}

	l, err := NewLoop(req, c, p.opts...)
	if err != nil {
		return err
	}

	id := p.started
	p.started++
	p.running++
	p.wg.Add(1)
	go p.run(id, l)
	return nil
}

// PlotOn opens a canvas and starts a loop drawing req onto it. An empty
// backend name picks the highest priority available backend.
//
// The canvas is returned so that a canvas.Runner, such as a window, can be
// run on the main goroutine. On failure no canvas is left open.
func (p *Plotter) PlotOn(req *Request, backend string, opts canvas.Options) (canvas.Canvas, error) {
	if opts.Logger == nil {
		opts.Logger = Logger()
	}

	var (
		c   canvas.Canvas
		err error
	)
	if backend == "" {
		c, err = canvas.Open(opts)
	} else {
		c, err = canvas.OpenByName(backend, opts)
	}
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("ggplot: backend opened", "backend", backend, "type", fmt.Sprintf("%T", c))

	if err := p.Plot(req, c); err != nil {
		if cerr := c.Close(); cerr != nil {
			Logger().Warn("ggplot: canvas close failed", "err", cerr)
		}
		return nil, err
	}
	return c, nil
}

func (p *Plotter) run(id int, l *Loop) {
	defer p.wg.Done()

	err := p.runLoop(l)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.running--
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("plot %d: %w", id, err))
	}
}

// runLoop runs l, turning a panic in the backend into a *BackendError so
// that other loops keep running.
func (p *Plotter) runLoop(l *Loop) (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("ggplot: loop panicked", slog.Any("panic", r))
			err = &BackendError{Op: "panic", Err: fmt.Errorf("%v", r)}
		}
	}()
	return l.Run()
}

// Len returns the number of loops still running.
func (p *Plotter) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Join waits until every loop has closed and returns their errors joined.
// Join may be called any number of times; later calls return the same
// result. After Join, Plot fails with ErrPlotterClosed.
//
// After Disown, Join returns nil without waiting.
func (p *Plotter) Join() error {
	p.mu.Lock()
	p.done = true
	disowned := p.disowned
	p.mu.Unlock()
	if disowned {
		return nil
	}

	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Join(p.errs...)
}

// Disown detaches the running loops. They keep running until their
// canvases close, but nobody waits for them or sees their errors.
// After Disown, Plot fails with ErrPlotterClosed.
func (p *Plotter) Disown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done = true
	p.disowned = true
}

// Close joins the loops unless they were disowned.
func (p *Plotter) Close() error {
	return p.Join()
}
