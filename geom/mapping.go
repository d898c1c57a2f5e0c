package geom

// MapCoord maps v from the src range onto the dst range.
//
// Without inversion src.Min lands on dst.Min and src.Max on dst.Max. With
// invert set the direction flips, which is how world y (up) becomes window y
// (down). A degenerate src returns ErrDegenerateRange rather than Inf or NaN.
func MapCoord(v float64, src, dst Range, invert bool) (float64, error) {
	size := src.Size()
	if size == 0 {
		return 0, ErrDegenerateRange
	}

	var moved float64
	if invert {
		moved = src.Max - v
	} else {
		moved = v - src.Min
	}
	return moved/size*dst.Size() + dst.Min, nil
}

// Projector maps world-space points onto a Width x Height pixel surface
// showing View.
type Projector struct {
	View   Viewport
	Width  int
	Height int
}

// Project returns the pixel position of p. The y axis is inverted.
func (pr Projector) Project(p Point) (x, y float64, err error) {
	x, err = MapCoord(p.X, pr.View.X, Range{Max: float64(pr.Width)}, false)
	if err != nil {
		return 0, 0, err
	}
	y, err = MapCoord(p.Y, pr.View.Y, Range{Max: float64(pr.Height)}, true)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// ProjectRect returns the pixel rectangle spanned by two world corners,
// normalised so that x0 <= x1 and y0 <= y1.
func (pr Projector) ProjectRect(a, b Point) (x0, y0, x1, y1 float64, err error) {
	ax, ay, err := pr.Project(a)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	bx, by, err := pr.Project(b)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if ax > bx {
		ax, bx = bx, ax
	}
	if ay > by {
		ay, by = by, ay
	}
	return ax, ay, bx, by, nil
}

// Unproject maps a pixel position back into world space.
func (pr Projector) Unproject(px, py float64) (Point, error) {
	if pr.Width <= 0 || pr.Height <= 0 {
		return Point{}, ErrDegenerateRange
	}
	x, err := MapCoord(px, Range{Max: float64(pr.Width)}, pr.View.X, false)
	if err != nil {
		return Point{}, err
	}
	y, err := MapCoord(py, Range{Max: float64(pr.Height)}, pr.View.Y, true)
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}
