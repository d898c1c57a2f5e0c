package windowcanvas

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gogpu/ggplot/canvas"
	"github.com/gogpu/ggplot/canvas/internal/handoff"
	"github.com/gogpu/ggplot/geom"
)

// keyMap lists the special keys forwarded as KeyDown and KeyUp.
var keyMap = []struct {
	key  ebiten.Key
	code canvas.KeyCode
}{
	{ebiten.KeyEscape, canvas.KeyEscape},
	{ebiten.KeyEnter, canvas.KeyEnter},
	{ebiten.KeyTab, canvas.KeyTab},
	{ebiten.KeyBackspace, canvas.KeyBackspace},
	{ebiten.KeySpace, canvas.KeySpace},
	{ebiten.KeyArrowUp, canvas.KeyArrowUp},
	{ebiten.KeyArrowDown, canvas.KeyArrowDown},
	{ebiten.KeyArrowLeft, canvas.KeyArrowLeft},
	{ebiten.KeyArrowRight, canvas.KeyArrowRight},
}

var buttonMap = []struct {
	button ebiten.MouseButton
	code   canvas.MouseButton
}{
	{ebiten.MouseButtonLeft, canvas.ButtonLeft},
	{ebiten.MouseButtonMiddle, canvas.ButtonMiddle},
	{ebiten.MouseButtonRight, canvas.ButtonRight},
}

// game implements ebiten.Game. It runs on the main goroutine.
type game struct {
	box  *handoff.Mailbox
	quit <-chan struct{}

	wheel      handoff.Wheel
	cursorX    int
	cursorY    int
	closeSent  bool
	antialias  bool
	drawn      uint64
	drawnW     int
	drawnH     int
	chars      []rune
	background color.RGBA
}

func newGame(box *handoff.Mailbox, quit <-chan struct{}, opts canvas.Options) *game {
	return &game{
		box:        box,
		quit:       quit,
		antialias:  opts.Antialias,
		background: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Update collects input. It ends the game once the canvas is closed.
func (g *game) Update() error {
	select {
	case <-g.quit:
		return ebiten.Termination
	default:
	}

	if ebiten.IsWindowBeingClosed() && !g.closeSent {
		g.closeSent = true
		g.box.Push(canvas.Quit{})
	}

	for _, k := range keyMap {
		if inpututil.IsKeyJustPressed(k.key) {
			g.box.Push(canvas.KeyDown{Code: k.code})
		}
		if inpututil.IsKeyJustReleased(k.key) {
			g.box.Push(canvas.KeyUp{Code: k.code})
		}
	}
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		if r != ' ' {
			g.box.Push(canvas.KeyDown{Code: canvas.KeyRune(r)})
		}
	}

	if dx, dy := g.wheel.Add(ebiten.Wheel()); dx != 0 || dy != 0 {
		g.box.Push(canvas.MouseScroll{DX: dx, DY: dy})
	}

	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)
	held := canvas.ButtonNone
	for _, b := range buttonMap {
		if inpututil.IsMouseButtonJustPressed(b.button) {
			g.box.Push(canvas.MouseDown{Button: b.code, X: fx, Y: fy})
		}
		if inpututil.IsMouseButtonJustReleased(b.button) {
			g.box.Push(canvas.MouseUp{Button: b.code, X: fx, Y: fy})
		}
		if held == canvas.ButtonNone && ebiten.IsMouseButtonPressed(b.button) {
			held = b.code
		}
	}
	if x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		g.box.Push(canvas.MouseMove{Button: held, X: fx, Y: fy})
	}
	return nil
}

// Draw replays the newest frame when it or the window size changed.
// The screen is not cleared between frames, so an unchanged frame costs
// nothing.
func (g *game) Draw(screen *ebiten.Image) {
	frame, version := g.box.Frame()
	b := screen.Bounds()
	if version == g.drawn && b.Dx() == g.drawnW && b.Dy() == g.drawnH {
		return
	}
	g.drawn, g.drawnW, g.drawnH = version, b.Dx(), b.Dy()

	if frame == nil {
		screen.Fill(g.background)
		return
	}
	frame.Playback(&screenDrawer{img: screen, antialias: g.antialias})
}

// Layout keeps one screen pixel per window pixel and reports size changes.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.box.SetSize(outsideWidth, outsideHeight) {
		g.box.Push(canvas.Resize{Width: outsideWidth, Height: outsideHeight})
	}
	return outsideWidth, outsideHeight
}

// screenDrawer draws recorded commands onto an ebiten image.
type screenDrawer struct {
	img       *ebiten.Image
	view      geom.Viewport
	color     color.RGBA
	antialias bool
}

func (d *screenDrawer) projector() geom.Projector {
	b := d.img.Bounds()
	return geom.Projector{View: d.view, Width: b.Dx(), Height: b.Dy()}
}

func (d *screenDrawer) SetView(v geom.Viewport) { d.view = v }

func (d *screenDrawer) View() geom.Viewport { return d.view }

func (d *screenDrawer) SetColor(c color.RGBA) { d.color = c }

func (d *screenDrawer) Clear() { d.img.Fill(d.color) }

func (d *screenDrawer) Line(a, b geom.Point) { d.ThickLine(a, b, 1) }

func (d *screenDrawer) ThickLine(a, b geom.Point, thickness float64) {
	pr := d.projector()
	ax, ay, err := pr.Project(a)
	if err != nil {
		return
	}
	bx, by, err := pr.Project(b)
	if err != nil {
		return
	}
	vector.StrokeLine(d.img, float32(ax), float32(ay), float32(bx), float32(by),
		float32(thickness), d.color, d.antialias)
}

func (d *screenDrawer) Rectangle(a, b geom.Point) {
	x0, y0, x1, y1, err := d.projector().ProjectRect(a, b)
	if err != nil {
		return
	}
	vector.DrawFilledRect(d.img, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0),
		d.color, d.antialias)
}

func (d *screenDrawer) UnfilledRectangle(a, b geom.Point) {
	x0, y0, x1, y1, err := d.projector().ProjectRect(a, b)
	if err != nil {
		return
	}
	vector.StrokeRect(d.img, float32(x0)+0.5, float32(y0)+0.5, float32(x1-x0)-1, float32(y1-y0)-1,
		1, d.color, d.antialias)
}
