package canvas

import (
	"fmt"
	"strconv"
)

// Event is an input event produced by a Canvas.
//
// The set of events is closed: Quit, Resize, KeyDown, KeyUp, MouseDown,
// MouseUp, MouseMove and MouseScroll.
type Event interface {
	fmt.Stringer
	isEvent()
}

// Quit reports that the user closed the output surface.
type Quit struct{}

// Resize reports a new output size in pixels.
type Resize struct {
	Width, Height int
}

// KeyDown reports a key press.
type KeyDown struct {
	Code KeyCode
}

// KeyUp reports a key release.
type KeyUp struct {
	Code KeyCode
}

// MouseDown reports a mouse button press at a pixel position.
type MouseDown struct {
	Button MouseButton
	X, Y   float64
}

// MouseUp reports a mouse button release at a pixel position.
type MouseUp struct {
	Button MouseButton
	X, Y   float64
}

// MouseMove reports pointer motion. Button is the button held, if any.
type MouseMove struct {
	Button MouseButton
	X, Y   float64
}

// MouseScroll reports wheel motion. Positive DY scrolls up.
type MouseScroll struct {
	DX, DY int
}

func (Quit) isEvent()        {}
func (Resize) isEvent()      {}
func (KeyDown) isEvent()     {}
func (KeyUp) isEvent()       {}
func (MouseDown) isEvent()   {}
func (MouseUp) isEvent()     {}
func (MouseMove) isEvent()   {}
func (MouseScroll) isEvent() {}

func (Quit) String() string { return "Quit" }

func (e Resize) String() string {
	return fmt.Sprintf("Resize(%d, %d)", e.Width, e.Height)
}

func (e KeyDown) String() string { return "KeyDown(" + e.Code.String() + ")" }

func (e KeyUp) String() string { return "KeyUp(" + e.Code.String() + ")" }

func (e MouseDown) String() string {
	return fmt.Sprintf("MouseDown(%s, %g, %g)", e.Button, e.X, e.Y)
}

func (e MouseUp) String() string {
	return fmt.Sprintf("MouseUp(%s, %g, %g)", e.Button, e.X, e.Y)
}

func (e MouseMove) String() string {
	return fmt.Sprintf("MouseMove(%s, %g, %g)", e.Button, e.X, e.Y)
}

func (e MouseScroll) String() string {
	return fmt.Sprintf("MouseScroll(%d, %d)", e.DX, e.DY)
}

// KeyCode identifies a key. Printable keys use their rune value; special
// keys use negative codes so the two never collide.
type KeyCode int32

// Special key codes.
const (
	KeyUnknown KeyCode = -(iota + 1)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
)

// KeySpace is the space bar.
const KeySpace = KeyCode(' ')

// KeyRune returns the KeyCode of a printable key.
func KeyRune(r rune) KeyCode {
	return KeyCode(r)
}

var keyNames = map[KeyCode]string{
	KeyUnknown:    "Unknown",
	KeyEscape:     "Escape",
	KeyEnter:      "Enter",
	KeyTab:        "Tab",
	KeyBackspace:  "Backspace",
	KeyArrowUp:    "Up",
	KeyArrowDown:  "Down",
	KeyArrowLeft:  "Left",
	KeyArrowRight: "Right",
	KeySpace:      "Space",
}

// String returns the key name, or the quoted rune for printable keys.
func (k KeyCode) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k > 0 {
		return strconv.QuoteRune(rune(k))
	}
	return "KeyCode(" + strconv.Itoa(int(k)) + ")"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	// ButtonNone means no button is involved (plain motion).
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// String returns the button name.
func (b MouseButton) String() string {
	switch b {
	case ButtonNone:
		return "None"
	case ButtonLeft:
		return "Left"
	case ButtonMiddle:
		return "Middle"
	case ButtonRight:
		return "Right"
	}
	return "MouseButton(" + strconv.Itoa(int(b)) + ")"
}
