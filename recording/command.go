package recording

import (
	"image/color"

	"github.com/gogpu/ggplot/geom"
)

// CommandType identifies the type of a command.
// Each command type corresponds to one canvas call.
type CommandType uint8

const (
	// State commands
	CmdSetView  CommandType = iota // Set the visible world range
	CmdSetColor                    // Set the drawing color

	// Drawing commands
	CmdClear             // Fill the surface with the current color
	CmdLine              // One pixel line
	CmdThickLine         // Line with a thickness
	CmdRectangle         // Filled rectangle
	CmdUnfilledRectangle // Rectangle outline

	// Lifecycle commands
	CmdPresent    // Show the frame
	CmdPollEvents // Poll for input
	CmdClose      // Release the canvas
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSetView:           "SetView",
	CmdSetColor:          "SetColor",
	CmdClear:             "Clear",
	CmdLine:              "Line",
	CmdThickLine:         "ThickLine",
	CmdRectangle:         "Rectangle",
	CmdUnfilledRectangle: "UnfilledRectangle",
	CmdPresent:           "Present",
	CmdPollEvents:        "PollEvents",
	CmdClose:             "Close",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// IsDrawing reports whether the command changes pixels or drawing state,
// as opposed to presenting, polling or closing.
func (c CommandType) IsDrawing() bool {
	return c <= CmdUnfilledRectangle
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// --------------------------------------------------------------------------
// State Commands
// --------------------------------------------------------------------------

// SetViewCommand sets the visible world range.
type SetViewCommand struct {
	View geom.Viewport
}

// Type implements Command.
func (SetViewCommand) Type() CommandType { return CmdSetView }

// SetColorCommand sets the color of subsequent drawing commands.
type SetColorCommand struct {
	Color color.RGBA
}

// Type implements Command.
func (SetColorCommand) Type() CommandType { return CmdSetColor }

// --------------------------------------------------------------------------
// Drawing Commands
// --------------------------------------------------------------------------

// ClearCommand fills the whole surface with the current color.
type ClearCommand struct{}

// Type implements Command.
func (ClearCommand) Type() CommandType { return CmdClear }

// LineCommand draws a one pixel line between two world points.
type LineCommand struct {
	A, B geom.Point
}

// Type implements Command.
func (LineCommand) Type() CommandType { return CmdLine }

// ThickLineCommand draws a line Thickness pixels wide.
type ThickLineCommand struct {
	A, B      geom.Point
	Thickness float64
}

// Type implements Command.
func (ThickLineCommand) Type() CommandType { return CmdThickLine }

// RectangleCommand fills the rectangle spanned by two world corners.
type RectangleCommand struct {
	A, B geom.Point
}

// Type implements Command.
func (RectangleCommand) Type() CommandType { return CmdRectangle }

// UnfilledRectangleCommand outlines the rectangle spanned by two corners.
type UnfilledRectangleCommand struct {
	A, B geom.Point
}

// Type implements Command.
func (UnfilledRectangleCommand) Type() CommandType { return CmdUnfilledRectangle }

// --------------------------------------------------------------------------
// Lifecycle Commands
// --------------------------------------------------------------------------

// PresentCommand marks the end of a frame.
type PresentCommand struct{}

// Type implements Command.
func (PresentCommand) Type() CommandType { return CmdPresent }

// PollEventsCommand records a poll and the number of events it returned.
type PollEventsCommand struct {
	Events int
}

// Type implements Command.
func (PollEventsCommand) Type() CommandType { return CmdPollEvents }

// CloseCommand records that the canvas was closed.
type CloseCommand struct{}

// Type implements Command.
func (CloseCommand) Type() CommandType { return CmdClose }
