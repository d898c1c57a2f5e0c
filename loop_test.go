package ggplot_test

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ggplot"
	"github.com/gogpu/ggplot/canvas"
	"github.com/gogpu/ggplot/geom"
	"github.com/gogpu/ggplot/recording"
)

func fastPoll() ggplot.LoopOption {
	return ggplot.WithPollInterval(time.Millisecond)
}

// square returns a request whose data spans [0, 10] on both axes.
func square(t *testing.T) *ggplot.Request {
	t.Helper()
	req, err := ggplot.NewBuilder().
		AddSeries([]geom.Point{geom.Pt(0, 0), geom.Pt(5, 10), geom.Pt(10, 0)}, ggplot.Blue).
		Build()
	require.NoError(t, err)
	return req
}

func runLoop(t *testing.T, req *ggplot.Request, rec *recording.Recorder, opts ...ggplot.LoopOption) (*ggplot.Loop, error) {
	t.Helper()
	l, err := ggplot.NewLoop(req, rec, append([]ggplot.LoopOption{fastPoll()}, opts...)...)
	require.NoError(t, err)
	return l, l.Run()
}

func TestLoop_QuitOnFirstPollRendersOnce(t *testing.T) {
	rec := recording.NewRecorder(100, 100)
	l, err := runLoop(t, square(t), rec)
	require.NoError(t, err)

	r := rec.Finish()
	assert.Equal(t, 1, rec.Presents())
	assert.Equal(t, 1, r.Count(recording.CmdPollEvents))
	assert.Equal(t, []recording.Command{recording.CloseCommand{}}, r.After(recording.CmdPollEvents),
		"no drawing calls after the poll that returned Quit")
	assert.True(t, rec.Closed())
	assert.Equal(t, ggplot.StateClosed, l.State())
	assert.Equal(t, 1, l.Passes())
}

func TestLoop_DrawPass(t *testing.T) {
	rec := recording.NewRecorder(100, 100)
	_, err := runLoop(t, square(t), rec)
	require.NoError(t, err)

	world := geom.NewViewport(0, 10, 0, 10)
	inner := world.Inset(ggplot.DefaultBorderWidth)
	blue := color.RGBA{B: 255, A: 255}

	want := []recording.Command{
		recording.SetViewCommand{View: world},
		recording.SetViewCommand{View: world.Expand(ggplot.DefaultMargin)},
		recording.SetColorCommand{Color: ggplot.DefaultBorderColor.Color()},
		recording.ClearCommand{},
		recording.SetColorCommand{Color: ggplot.DefaultFrameColor.Color()},
		recording.RectangleCommand{A: world.Min(), B: world.Max()},
		recording.SetColorCommand{Color: ggplot.DefaultBackgroundColor.Color()},
		recording.RectangleCommand{A: inner.Min(), B: inner.Max()},
		recording.SetViewCommand{View: world},
		recording.SetColorCommand{Color: blue},
		recording.LineCommand{A: geom.Pt(0, 0), B: geom.Pt(5, 10)},
		recording.LineCommand{A: geom.Pt(5, 10), B: geom.Pt(10, 0)},
		recording.PresentCommand{},
		recording.PollEventsCommand{Events: 1},
		recording.CloseCommand{},
	}
	assert.Equal(t, want, rec.Finish().Commands())
	assert.Equal(t, world, rec.View(), "canvas is left on the real view")
}

func TestLoop_ClipsToView(t *testing.T) {
	req, err := ggplot.NewBuilder().
		AddSimple([]geom.Point{geom.Pt(-5, 0), geom.Pt(5, 0), geom.Pt(20, 20), geom.Pt(30, 30)}).
		SetMinX(0).SetMaxX(10).SetMinY(-1).SetMaxY(1).
		Build()
	require.NoError(t, err)

	rec := recording.NewRecorder(100, 100)
	_, err = runLoop(t, req, rec)
	require.NoError(t, err)

	var lines []recording.Command
	for _, cmd := range rec.Finish().Commands() {
		if cmd.Type() == recording.CmdLine {
			lines = append(lines, cmd)
		}
	}
	require.Len(t, lines, 2, "the segment entirely outside is dropped")
	assert.Equal(t, recording.LineCommand{A: geom.Pt(0, 0), B: geom.Pt(5, 0)}, lines[0])
	second := lines[1].(recording.LineCommand)
	assert.Equal(t, geom.Pt(5, 0), second.A)
	assert.InDelta(t, 1, second.B.Y, 1e-9, "crossing lands on the top edge")
}

func TestLoop_ScrollZooms(t *testing.T) {
	rec := recording.NewRecorder(100, 100)
	rec.Script([]canvas.Event{canvas.MouseScroll{DY: 10}})

	l, err := runLoop(t, square(t), rec)
	require.NoError(t, err)

	assert.Equal(t, geom.Range{Min: -10, Max: 20}, l.Viewport().X)
	assert.Equal(t, geom.Range{Min: -10, Max: 20}, l.Viewport().Y)
	assert.Equal(t, 2, rec.Presents())
	assert.Equal(t, geom.NewViewport(0, 10, 0, 10), l.Bounds(), "bounds are not changed by scrolling")
}

// passViews replays the recorded commands and returns the canvas view in
// effect when each pass starts, at each line, and at each Present.
func passViews(cmds []recording.Command) (starts, lines, presents []geom.Viewport) {
	var cur geom.Viewport
	for i, cmd := range cmds {
		switch cmd := cmd.(type) {
		case recording.SetViewCommand:
			if i+2 < len(cmds) && cmds[i+2].Type() == recording.CmdClear {
				starts = append(starts, cur)
			}
			cur = cmd.View
		case recording.LineCommand:
			lines = append(lines, cur)
		case recording.PresentCommand:
			presents = append(presents, cur)
		}
	}
	return starts, lines, presents
}

func TestLoop_CanvasViewFollowsScroll(t *testing.T) {
	rec := recording.NewRecorder(100, 100)
	rec.Script([]canvas.Event{canvas.MouseScroll{DY: 10}})

	l, err := runLoop(t, square(t), rec)
	require.NoError(t, err)

	world := geom.NewViewport(0, 10, 0, 10)
	zoomed := geom.NewViewport(-10, 20, -10, 20)

	starts, lines, presents := passViews(rec.Finish().Commands())
	assert.Equal(t, []geom.Viewport{world, zoomed}, starts, "canvas holds the clip view when a pass starts")
	assert.Equal(t, []geom.Viewport{world, zoomed}, presents)
	require.Len(t, lines, 4)
	assert.Equal(t, []geom.Viewport{world, world, zoomed, zoomed}, lines, "series are drawn under the real view")
	assert.Equal(t, l.Viewport(), rec.View())
}

func TestLoop_ScrollIn(t *testing.T) {
	rec := recording.NewRecorder(100, 100)
	rec.Script([]canvas.Event{canvas.MouseScroll{DY: -1}})

	l, err := runLoop(t, square(t), rec)
	require.NoError(t, err)

	assert.InDelta(t, 1, l.Viewport().X.Min, 1e-9)
	assert.InDelta(t, 9, l.Viewport().X.Max, 1e-9)
}

func TestLoop_ScrollThatCollapsesIsIgnored(t *testing.T) {
	rec := recording.NewRecorder(100, 100)
	rec.Script(
		[]canvas.Event{canvas.MouseScroll{DY: -5}},
		[]canvas.Event{canvas.MouseScroll{DY: -7}},
		[]canvas.Event{canvas.MouseScroll{DX: 3}},
	)

	l, err := runLoop(t, square(t), rec)
	require.NoError(t, err)

	assert.Equal(t, geom.NewViewport(0, 10, 0, 10), l.Viewport())
	assert.Equal(t, 1, rec.Presents())
}

func TestLoop_EventDispatch(t *testing.T) {
	tests := []struct {
		name     string
		batches  [][]canvas.Event
		presents int
	}{
		{"resize redraws", [][]canvas.Event{{canvas.Resize{Width: 50, Height: 80}}}, 2},
		{"resize batch redraws once", [][]canvas.Event{{canvas.Resize{Width: 1, Height: 1}, canvas.Resize{Width: 2, Height: 2}}}, 2},
		{"escape closes", [][]canvas.Event{{canvas.KeyDown{Code: canvas.KeyEscape}}, {canvas.Resize{}}}, 1},
		{"events after quit are dropped", [][]canvas.Event{{canvas.Quit{}, canvas.Resize{}}}, 1},
		{"other input ignored", [][]canvas.Event{{
			canvas.KeyUp{Code: canvas.KeyEscape},
			canvas.KeyDown{Code: canvas.KeyRune('a')},
			canvas.MouseDown{Button: canvas.ButtonLeft},
			canvas.MouseMove{X: 3, Y: 4},
		}}, 1},
		{"empty batch keeps waiting", [][]canvas.Event{{}, {}, {canvas.Resize{}}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := recording.NewRecorder(100, 100)
			rec.Script(tt.batches...)

			_, err := runLoop(t, square(t), rec)
			require.NoError(t, err)
			assert.Equal(t, tt.presents, rec.Presents())
			assert.True(t, rec.Closed())
		})
	}
}

func TestLoop_PresentErrorClosesLoop(t *testing.T) {
	boom := errors.New("device lost")
	rec := recording.NewRecorder(100, 100)
	rec.FailPresent(boom)

	l, err := runLoop(t, square(t), rec)

	var be *ggplot.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "present", be.Op)
	assert.ErrorIs(t, err, boom)
	assert.True(t, rec.Closed())
	assert.Equal(t, ggplot.StateClosed, l.State())
	assert.Zero(t, rec.Finish().Count(recording.CmdPollEvents))
}

func TestLoop_Options(t *testing.T) {
	rec := recording.NewRecorder(100, 100)
	_, err := runLoop(t, square(t), rec,
		ggplot.WithMargin(0),
		ggplot.WithBorderWidth(0.1),
		ggplot.WithBorderColor(ggplot.Black),
		ggplot.WithFrameColor(ggplot.Red),
		ggplot.WithBackgroundColor(ggplot.Gray(0.5)),
	)
	require.NoError(t, err)

	cmds := rec.Finish().Commands()
	world := geom.NewViewport(0, 10, 0, 10)
	assert.Equal(t, recording.SetViewCommand{View: world}, cmds[1], "zero margin")
	assert.Equal(t, recording.SetColorCommand{Color: color.RGBA{A: 255}}, cmds[2])
	assert.Equal(t, recording.SetColorCommand{Color: color.RGBA{R: 255, A: 255}}, cmds[4])
	assert.Equal(t, recording.SetColorCommand{Color: color.RGBA{R: 127, G: 127, B: 127, A: 255}}, cmds[6])
	inner := world.Inset(0.1)
	assert.Equal(t, recording.RectangleCommand{A: inner.Min(), B: inner.Max()}, cmds[7])
}

func TestNewLoop_Errors(t *testing.T) {
	rec := recording.NewRecorder(10, 10)

	req := square(t)
	_, err := ggplot.NewLoop(req, rec)
	require.NoError(t, err)
	_, err = ggplot.NewLoop(req, rec)
	assert.ErrorIs(t, err, ggplot.ErrRequestConsumed)

	point := ggplot.NewRequest([]ggplot.Series{{Points: []geom.Point{geom.Pt(1, 1)}}}, ggplot.Overrides{})
	_, err = ggplot.NewLoop(point, rec)
	assert.ErrorIs(t, err, ggplot.ErrDegenerateRange)

	inverted := ggplot.NewRequest([]ggplot.Series{{Points: []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1)}}},
		ggplot.Overrides{MinX: ggplot.Fixed(5)})
	_, err = ggplot.NewLoop(inverted, rec)
	assert.ErrorIs(t, err, ggplot.ErrInvalidRange)

	empty := ggplot.NewRequest(nil, ggplot.Overrides{})
	_, err = ggplot.NewLoop(empty, rec)
	assert.ErrorIs(t, err, ggplot.ErrNoSeries)

	assert.Zero(t, rec.Len(), "failed initialization draws nothing")
	assert.False(t, rec.Closed(), "failed initialization leaves the canvas open")
}

func TestLoop_RunTwice(t *testing.T) {
	rec := recording.NewRecorder(10, 10)
	l, err := runLoop(t, square(t), rec)
	require.NoError(t, err)
	assert.Error(t, l.Run())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Initializing", ggplot.StateInitializing.String())
	assert.Equal(t, "Rendering", ggplot.StateRendering.String())
	assert.Equal(t, "WaitingForInput", ggplot.StateWaitingForInput.String())
	assert.Equal(t, "Closed", ggplot.StateClosed.String())
	assert.Equal(t, "Unknown", ggplot.State(42).String())
}
