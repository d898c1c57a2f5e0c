package termcanvas

import (
	"image/color"
)

// Each terminal cell holds a 2x4 grid of braille dots.
const (
	dotsX = 2
	dotsY = 4

	brailleBase = 0x2800
)

// dotBits maps a dot position [column][row] inside a cell to its bit in
// the braille code point.
var dotBits = [dotsX][dotsY]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// cell is one terminal cell: the dots set in it, the color of the last dot
// drawn and the background.
type cell struct {
	mask uint8
	fg   color.RGBA
	bg   color.RGBA
}

// rune returns the braille character for the cell, or a space when empty.
func (c cell) rune() rune {
	if c.mask == 0 {
		return ' '
	}
	return rune(brailleBase + int(c.mask))
}

// dotBuf is a grid of cells addressed in dot coordinates.
type dotBuf struct {
	w, h  int // in cells
	cells []cell
}

func newDotBuf(w, h int) *dotBuf {
	return &dotBuf{w: w, h: h, cells: make([]cell, w*h)}
}

// size returns the buffer size in dots.
func (b *dotBuf) size() (int, int) {
	return b.w * dotsX, b.h * dotsY
}

func (b *dotBuf) at(cx, cy int) *cell {
	return &b.cells[cy*b.w+cx]
}

// fill clears every cell to an empty cell with background c.
func (b *dotBuf) fill(c color.RGBA) {
	for i := range b.cells {
		b.cells[i] = cell{bg: c, fg: c}
	}
}

// setDot sets the dot at (mx, my) in color c.
func (b *dotBuf) setDot(mx, my int, c color.RGBA) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/dotsX, my/dotsY
	if cx >= b.w || cy >= b.h {
		return
	}
	cl := b.at(cx, cy)
	cl.mask |= dotBits[mx%dotsX][my%dotsY]
	cl.fg = c
}

// line draws a Bresenham line between two dots.
func (b *dotBuf) line(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	e := dx + dy
	for {
		b.setDot(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// rect fills the dot rectangle [x0, x1) x [y0, y1). Cells covered
// completely become solid background; partly covered cells get dots.
func (b *dotBuf) rect(x0, y0, x1, y1 int, c color.RGBA) {
	x0, y0 = max(x0, 0), max(y0, 0)
	mw, mh := b.size()
	x1, y1 = min(x1, mw), min(y1, mh)

	for cy := y0 / dotsY; cy*dotsY < y1; cy++ {
		for cx := x0 / dotsX; cx*dotsX < x1; cx++ {
			full := cx*dotsX >= x0 && (cx+1)*dotsX <= x1 &&
				cy*dotsY >= y0 && (cy+1)*dotsY <= y1
			if full {
				*b.at(cx, cy) = cell{bg: c, fg: c}
				continue
			}
			for my := max(y0, cy*dotsY); my < min(y1, (cy+1)*dotsY); my++ {
				for mx := max(x0, cx*dotsX); mx < min(x1, (cx+1)*dotsX); mx++ {
					b.setDot(mx, my, c)
				}
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
