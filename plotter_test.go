package ggplot_test

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ggplot"
	"github.com/gogpu/ggplot/canvas"
	"github.com/gogpu/ggplot/canvas/imagecanvas"
	"github.com/gogpu/ggplot/recording"
)

// gatedCanvas reports nothing pending until release is called, then Quit.
type gatedCanvas struct {
	*recording.Recorder

	gate   chan struct{}
	closed chan struct{}
	once   sync.Once
}

func newGatedCanvas() *gatedCanvas {
	return &gatedCanvas{
		Recorder: recording.NewRecorder(10, 10),
		gate:     make(chan struct{}),
		closed:   make(chan struct{}),
	}
}

func (g *gatedCanvas) release() { close(g.gate) }

func (g *gatedCanvas) PollEvents() []canvas.Event {
	select {
	case <-g.gate:
		return []canvas.Event{canvas.Quit{}}
	default:
		return nil
	}
}

func (g *gatedCanvas) Close() error {
	g.once.Do(func() { close(g.closed) })
	return g.Recorder.Close()
}

// panicCanvas panics on Present.
type panicCanvas struct {
	*recording.Recorder
}

func (panicCanvas) Present() error { panic("driver crashed") }

func TestPlotter_JoinWaitsForAll(t *testing.T) {
	p := ggplot.NewPlotter(fastPoll())

	recs := make([]*recording.Recorder, 3)
	for i := range recs {
		recs[i] = recording.NewRecorder(50, 50)
		recs[i].Script(nil, nil, nil)
		require.NoError(t, p.Plot(square(t), recs[i]))
	}

	require.NoError(t, p.Join())
	assert.Equal(t, 0, p.Len())
	for i, rec := range recs {
		assert.True(t, rec.Closed(), "canvas %d closed", i)
		assert.Equal(t, 1, rec.Presents(), "canvas %d presents", i)
	}

	// Idempotent, and closed for new plots.
	assert.NoError(t, p.Join())
	assert.NoError(t, p.Close())
	assert.ErrorIs(t, p.Plot(square(t), recording.NewRecorder(1, 1)), ggplot.ErrPlotterClosed)
}

func TestPlotter_JoinCollectsLoopErrors(t *testing.T) {
	p := ggplot.NewPlotter(fastPoll())
	boom := errors.New("surface lost")

	good := recording.NewRecorder(10, 10)
	bad := recording.NewRecorder(10, 10)
	bad.FailPresent(boom)

	require.NoError(t, p.Plot(square(t), good))
	require.NoError(t, p.Plot(square(t), bad))

	err := p.Join()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var be *ggplot.BackendError
	assert.ErrorAs(t, err, &be)
	assert.Contains(t, err.Error(), "plot 1")

	assert.True(t, good.Closed(), "the healthy loop still ran to completion")
	assert.Equal(t, err, p.Join(), "Join returns the same result again")
}

func TestPlotter_PanicIsContained(t *testing.T) {
	p := ggplot.NewPlotter(fastPoll())
	pc := panicCanvas{recording.NewRecorder(10, 10)}
	ok := recording.NewRecorder(10, 10)

	require.NoError(t, p.Plot(square(t), pc))
	require.NoError(t, p.Plot(square(t), ok))

	err := p.Join()
	var be *ggplot.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "panic", be.Op)
	assert.Contains(t, err.Error(), "driver crashed")
	assert.True(t, pc.Closed(), "canvas is closed even when the loop panics")
	assert.True(t, ok.Closed())
}

func TestPlotter_InputErrorsReturnedImmediately(t *testing.T) {
	p := ggplot.NewPlotter()
	t.Cleanup(func() { _ = p.Close() })

	rec := recording.NewRecorder(10, 10)
	req := square(t)
	require.NoError(t, p.Plot(req, rec))

	other := recording.NewRecorder(10, 10)
	assert.ErrorIs(t, p.Plot(req, other), ggplot.ErrRequestConsumed)
	assert.False(t, other.Closed(), "caller keeps the canvas on failure")
	assert.ErrorIs(t, p.Plot(nil, other), ggplot.ErrNoSeries)
}

func TestPlotter_Disown(t *testing.T) {
	p := ggplot.NewPlotter(fastPoll())
	g := newGatedCanvas()
	require.NoError(t, p.Plot(square(t), g))

	p.Disown()
	assert.Equal(t, 1, p.Len(), "disowned loop keeps running")
	assert.NoError(t, p.Join(), "Join does not wait after Disown")
	assert.NoError(t, p.Close())
	assert.ErrorIs(t, p.Plot(square(t), recording.NewRecorder(1, 1)), ggplot.ErrPlotterClosed)

	g.release()
	select {
	case <-g.closed:
	case <-time.After(5 * time.Second):
		t.Fatal("disowned loop did not finish")
	}
	assert.Eventually(t, func() bool { return p.Len() == 0 }, 5*time.Second, time.Millisecond)
}

func TestPlotter_PlotOnImage(t *testing.T) {
	out := filepath.Join(t.TempDir(), "plot.png")
	opts := canvas.DefaultOptions()
	opts.Width, opts.Height = 64, 48
	opts.Output = out

	p := ggplot.NewPlotter(fastPoll())
	c, err := p.PlotOn(square(t), imagecanvas.Name, opts)
	require.NoError(t, err)
	require.NoError(t, p.Join())

	ic, ok := c.(*imagecanvas.Canvas)
	require.True(t, ok, "PlotOn returned %T", c)
	assert.Equal(t, 1, ic.Frames())
	assert.FileExists(t, out)
}

func TestPlotter_PlotOnUsesPackageLogger(t *testing.T) {
	orig := ggplot.Logger()
	t.Cleanup(func() { ggplot.SetLogger(orig) })

	var buf bytes.Buffer
	ggplot.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	opts := canvas.DefaultOptions()
	opts.Width, opts.Height = 16, 16
	p := ggplot.NewPlotter(fastPoll())
	_, err := p.PlotOn(square(t), imagecanvas.Name, opts)
	require.NoError(t, err)
	require.NoError(t, p.Join())

	out := buf.String()
	assert.Contains(t, out, "ggplot: backend opened")
	assert.Contains(t, out, "imagecanvas: created", "the canvas logs through the package logger")
	assert.Contains(t, out, "ggplot: loop closed")
}

func TestPlotter_PlotOnErrors(t *testing.T) {
	p := ggplot.NewPlotter()
	t.Cleanup(func() { _ = p.Close() })

	_, err := p.PlotOn(square(t), "imgae", canvas.DefaultOptions())
	var nf *canvas.BackendNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "image", nf.Suggestion)

	req := square(t)
	_, err = p.PlotOn(req, imagecanvas.Name, canvas.DefaultOptions())
	require.NoError(t, err)
	_, err = p.PlotOn(req, imagecanvas.Name, canvas.DefaultOptions())
	assert.ErrorIs(t, err, ggplot.ErrRequestConsumed)
}
