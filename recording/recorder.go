package recording

import (
	"image/color"

	"github.com/gogpu/ggplot/canvas"
	"github.com/gogpu/ggplot/geom"
)

// Recorder captures canvas calls as commands.
// It implements canvas.Canvas but produces no pixels. Use Finish to obtain
// an immutable Recording that can be inspected or replayed.
//
// Example:
//
//	rec := recording.NewRecorder(800, 600)
//	rec.SetView(geom.NewViewport(0, 1, 0, 1))
//	rec.SetColor(color.RGBA{R: 255, A: 255})
//	rec.Line(geom.Pt(0, 0), geom.Pt(1, 1))
//	r := rec.Finish()
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	view          geom.Viewport
	color         color.RGBA
	commands      []Command

	script     [][]canvas.Event
	presentErr error
	presents   int
	closed     bool
}

// NewRecorder creates a new Recorder reporting the given size.
// The Recorder starts with an opaque black color and a unit view.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:    width,
		height:   height,
		view:     geom.NewViewport(0, 1, 0, 1),
		color:    color.RGBA{A: 255},
		commands: make([]Command, 0, 256),
	}
}

// Script queues batches of events for PollEvents. Each poll returns the
// next batch. An empty batch means nothing pending. Once every batch has
// been returned, PollEvents reports Quit so a driven loop always ends.
func (r *Recorder) Script(batches ...[]canvas.Event) {
	r.script = append(r.script, batches...)
}

// FailPresent makes every following Present return err. A nil err restores
// normal behaviour.
func (r *Recorder) FailPresent(err error) {
	r.presentErr = err
}

// SetSize changes the size reported by Size. It does not queue a Resize
// event; script one if the consumer should notice.
func (r *Recorder) SetSize(width, height int) {
	r.width, r.height = width, height
}

// Presents returns how many times Present was called.
func (r *Recorder) Presents() int {
	return r.presents
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	return r.closed
}

// Finish returns an immutable Recording of all commands so far.
// The Recorder can keep recording; later commands are not visible in the
// returned Recording.
func (r *Recorder) Finish() *Recording {
	cmds := make([]Command, len(r.commands))
	copy(cmds, r.commands)
	return &Recording{
		width:    r.width,
		height:   r.height,
		commands: cmds,
	}
}

// Reset drops every recorded command. Size, view, color and the remaining
// script are kept.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	return len(r.commands)
}

// --------------------------------------------------------------------------
// canvas.Drawer
// --------------------------------------------------------------------------

// SetView sets the visible world range.
func (r *Recorder) SetView(v geom.Viewport) {
	r.view = v
	r.commands = append(r.commands, SetViewCommand{View: v})
}

// View returns the visible world range.
func (r *Recorder) View() geom.Viewport {
	return r.view
}

// SetColor sets the color of subsequent drawing calls.
func (r *Recorder) SetColor(c color.RGBA) {
	r.color = c
	r.commands = append(r.commands, SetColorCommand{Color: c})
}

// Color returns the current drawing color.
func (r *Recorder) Color() color.RGBA {
	return r.color
}

// Clear records a clear with the current color.
func (r *Recorder) Clear() {
	r.commands = append(r.commands, ClearCommand{})
}

// Line records a one pixel line.
func (r *Recorder) Line(a, b geom.Point) {
	r.commands = append(r.commands, LineCommand{A: a, B: b})
}

// ThickLine records a thick line.
func (r *Recorder) ThickLine(a, b geom.Point, thickness float64) {
	r.commands = append(r.commands, ThickLineCommand{A: a, B: b, Thickness: thickness})
}

// Rectangle records a filled rectangle.
func (r *Recorder) Rectangle(a, b geom.Point) {
	r.commands = append(r.commands, RectangleCommand{A: a, B: b})
}

// UnfilledRectangle records a rectangle outline.
func (r *Recorder) UnfilledRectangle(a, b geom.Point) {
	r.commands = append(r.commands, UnfilledRectangleCommand{A: a, B: b})
}

// --------------------------------------------------------------------------
// canvas.Canvas
// --------------------------------------------------------------------------

// Size returns the size given to NewRecorder or SetSize.
func (r *Recorder) Size() (width, height int) {
	return r.width, r.height
}

// Present records the end of a frame. It returns the error set with
// FailPresent, or canvas.ErrClosed after Close.
func (r *Recorder) Present() error {
	if r.closed {
		return canvas.ErrClosed
	}
	r.presents++
	r.commands = append(r.commands, PresentCommand{})
	return r.presentErr
}

// PollEvents returns the next scripted batch.
func (r *Recorder) PollEvents() []canvas.Event {
	var events []canvas.Event
	switch {
	case r.closed:
	case len(r.script) == 0:
		events = []canvas.Event{canvas.Quit{}}
	default:
		events = r.script[0]
		r.script = r.script[1:]
	}
	r.commands = append(r.commands, PollEventsCommand{Events: len(events)})
	return events
}

// Close records the close. Calling it again is a no-op.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.commands = append(r.commands, CloseCommand{})
	return nil
}

// Compile-time interface check.
var _ canvas.Canvas = (*Recorder)(nil)

// --------------------------------------------------------------------------
// Recording
// --------------------------------------------------------------------------

// Recording is an immutable list of recorded commands.
type Recording struct {
	width, height int
	commands      []Command
}

// Size returns the canvas size at the time the recording was finished.
func (r *Recording) Size() (width, height int) {
	return r.width, r.height
}

// Commands returns the recorded commands. The slice must not be modified.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Count returns how many commands of type t were recorded.
func (r *Recording) Count(t CommandType) int {
	n := 0
	for _, cmd := range r.commands {
		if cmd.Type() == t {
			n++
		}
	}
	return n
}

// After returns the commands recorded after the first command of type t,
// or nil if there is none.
func (r *Recording) After(t CommandType) []Command {
	for i, cmd := range r.commands {
		if cmd.Type() == t {
			return r.commands[i+1:]
		}
	}
	return nil
}

// Playback replays the drawing commands onto d. Lifecycle commands
// (Present, PollEvents, Close) are skipped.
func (r *Recording) Playback(d canvas.Drawer) {
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case SetViewCommand:
			d.SetView(c.View)
		case SetColorCommand:
			d.SetColor(c.Color)
		case ClearCommand:
			d.Clear()
		case LineCommand:
			d.Line(c.A, c.B)
		case ThickLineCommand:
			d.ThickLine(c.A, c.B, c.Thickness)
		case RectangleCommand:
			d.Rectangle(c.A, c.B)
		case UnfilledRectangleCommand:
			d.UnfilledRectangle(c.A, c.B)
		}
	}
}
