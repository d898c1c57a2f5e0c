package geom

// Outcode constants for the Cohen-Sutherland algorithm. Top and bottom refer
// to world space, so top is Y > Max.
const (
	OutcodeInside = 0
	OutcodeLeft   = 1
	OutcodeRight  = 2
	OutcodeBottom = 4
	OutcodeTop    = 8
)

// maxClipSteps bounds the number of edge projections. Every projection
// resolves one edge of the rectangle, so exact arithmetic never needs more.
const maxClipSteps = 4

// Outcode computes the Cohen-Sutherland outcode of p against the viewport.
func (v Viewport) Outcode(p Point) int {
	code := OutcodeInside

	if p.X < v.X.Min {
		code |= OutcodeLeft
	} else if p.X > v.X.Max {
		code |= OutcodeRight
	}

	if p.Y < v.Y.Min {
		code |= OutcodeBottom
	} else if p.Y > v.Y.Max {
		code |= OutcodeTop
	}

	return code
}

// ClipSegment clips the segment a-b to the viewport.
// It returns the visible sub-segment and true, or false when nothing of the
// segment is visible. A segment already inside is returned unchanged.
func ClipSegment(a, b Point, v Viewport) (Point, Point, bool) {
	code0 := v.Outcode(a)
	code1 := v.Outcode(b)

	for step := 0; ; step++ {
		if (code0 | code1) == 0 {
			// Both inside - trivially accept
			return a, b, true
		}
		if (code0 & code1) != 0 {
			// Both outside same region - trivially reject
			return Point{}, Point{}, false
		}
		if step == maxClipSteps {
			// Rounding left an endpoint a hair outside an edge it was
			// already projected onto.
			return v.Clamp(a), v.Clamp(b), true
		}

		codeOut := code0
		if codeOut == 0 {
			codeOut = code1
		}

		p := project(a, b, codeOut, v)

		if codeOut == code0 {
			a = p
			code0 = v.Outcode(a)
		} else {
			b = p
			code1 = v.Outcode(b)
		}
	}
}

// project moves the endpoint flagged by code onto the violated edge by
// solving the segment's line equation for the edge value. The other endpoint
// does not violate that edge, so the divisor is never zero; vertical and
// horizontal segments keep their constant coordinate exactly.
func project(a, b Point, code int, v Viewport) Point {
	dx := b.X - a.X
	dy := b.Y - a.Y

	switch {
	case code&OutcodeTop != 0:
		return Point{X: solveX(a, dx, dy, v.Y.Max), Y: v.Y.Max}
	case code&OutcodeBottom != 0:
		return Point{X: solveX(a, dx, dy, v.Y.Min), Y: v.Y.Min}
	case code&OutcodeRight != 0:
		return Point{X: v.X.Max, Y: solveY(a, dx, dy, v.X.Max)}
	default:
		return Point{X: v.X.Min, Y: solveY(a, dx, dy, v.X.Min)}
	}
}

// solveX returns the x coordinate where the line through a hits y.
func solveX(a Point, dx, dy, y float64) float64 {
	if dx == 0 {
		return a.X
	}
	return a.X + dx*(y-a.Y)/dy
}

// solveY returns the y coordinate where the line through a hits x.
func solveY(a Point, dx, dy, x float64) float64 {
	if dy == 0 {
		return a.Y
	}
	return a.Y + dy*(x-a.X)/dx
}
