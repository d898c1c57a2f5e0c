package geom

import (
	"errors"
	"math"
	"testing"
)

func TestMapCoord_BoundaryExactness(t *testing.T) {
	tests := []struct {
		name     string
		src, dst Range
	}{
		{"unit to pixels", Range{0, 1}, Range{0, 720}},
		{"negative source", Range{-3, 5}, Range{10, 20}},
		{"offset destination", Range{100, 200}, Range{36, 684}},
		{"tiny source", Range{1e-9, 2e-9}, Range{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, err := MapCoord(tt.src.Min, tt.src, tt.dst, false)
			if err != nil {
				t.Fatalf("MapCoord(min) error: %v", err)
			}
			hi, err := MapCoord(tt.src.Max, tt.src, tt.dst, false)
			if err != nil {
				t.Fatalf("MapCoord(max) error: %v", err)
			}
			if lo != tt.dst.Min {
				t.Errorf("min maps to %v, want %v", lo, tt.dst.Min)
			}
			if math.Abs(hi-tt.dst.Max) > 1e-9*math.Abs(tt.dst.Max) {
				t.Errorf("max maps to %v, want %v", hi, tt.dst.Max)
			}
		})
	}
}

func TestMapCoord_Invert(t *testing.T) {
	src := Range{0, 10}
	dst := Range{0, 100}

	got, err := MapCoord(0, src, dst, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != 100 {
		t.Errorf("inverted min = %v, want 100", got)
	}

	got, _ = MapCoord(10, src, dst, true)
	if got != 0 {
		t.Errorf("inverted max = %v, want 0", got)
	}

	got, _ = MapCoord(2.5, src, dst, true)
	if got != 75 {
		t.Errorf("inverted 2.5 = %v, want 75", got)
	}
}

func TestMapCoord_DegenerateSource(t *testing.T) {
	_, err := MapCoord(1, Range{1, 1}, Range{0, 100}, false)
	if !errors.Is(err, ErrDegenerateRange) {
		t.Errorf("MapCoord on degenerate range = %v, want ErrDegenerateRange", err)
	}
}

func TestProjector_Project(t *testing.T) {
	pr := Projector{View: NewViewport(0, 10, 0, 10), Width: 200, Height: 100}

	tests := []struct {
		p      Point
		wx, wy float64
	}{
		{Pt(0, 0), 0, 100},
		{Pt(10, 10), 200, 0},
		{Pt(5, 5), 100, 50},
		{Pt(-5, 20), -100, -100},
	}

	for _, tt := range tests {
		x, y, err := pr.Project(tt.p)
		if err != nil {
			t.Fatalf("Project(%v) error: %v", tt.p, err)
		}
		if x != tt.wx || y != tt.wy {
			t.Errorf("Project(%v) = (%v, %v), want (%v, %v)", tt.p, x, y, tt.wx, tt.wy)
		}
	}
}

func TestProjector_ProjectRectNormalises(t *testing.T) {
	pr := Projector{View: NewViewport(0, 10, 0, 10), Width: 100, Height: 100}

	x0, y0, x1, y1, err := pr.ProjectRect(Pt(0, 0), Pt(10, 10))
	if err != nil {
		t.Fatal(err)
	}
	if x0 != 0 || y0 != 0 || x1 != 100 || y1 != 100 {
		t.Errorf("ProjectRect = (%v, %v, %v, %v), want (0, 0, 100, 100)", x0, y0, x1, y1)
	}
}

func TestProjector_RoundTrip(t *testing.T) {
	pr := Projector{View: NewViewport(-2, 6, 1, 3), Width: 640, Height: 480}
	p := Pt(1.5, 2.25)

	x, y, err := pr.Project(p)
	if err != nil {
		t.Fatal(err)
	}
	back, err := pr.Unproject(x, y)
	if err != nil {
		t.Fatal(err)
	}
	assertPointNear(t, back, p)
}

func TestProjector_DegenerateView(t *testing.T) {
	pr := Projector{View: NewViewport(1, 1, 0, 10), Width: 100, Height: 100}
	if _, _, err := pr.Project(Pt(1, 1)); !errors.Is(err, ErrDegenerateRange) {
		t.Errorf("Project on degenerate view = %v, want ErrDegenerateRange", err)
	}
	empty := Projector{View: NewViewport(0, 1, 0, 1)}
	if _, err := empty.Unproject(0, 0); !errors.Is(err, ErrDegenerateRange) {
		t.Errorf("Unproject on empty surface = %v, want ErrDegenerateRange", err)
	}
}

func TestRange_Expand(t *testing.T) {
	r := Range{0, 10}

	got := r.Expand(1.0)
	if got != (Range{-10, 20}) {
		t.Errorf("Expand(1.0) = %v, want {-10 20}", got)
	}

	got = r.Expand(0.05)
	if got != (Range{-0.5, 10.5}) {
		t.Errorf("Expand(0.05) = %v, want {-0.5 10.5}", got)
	}

	got = r.Expand(-0.1)
	if got != (Range{1, 9}) {
		t.Errorf("Expand(-0.1) = %v, want {1 9}", got)
	}
}

func TestRange_Validate(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want error
	}{
		{"valid", Range{0, 1}, nil},
		{"degenerate", Range{3, 3}, ErrDegenerateRange},
		{"inverted", Range{3, 1}, ErrInvalidRange},
		{"nan", Range{math.NaN(), 1}, ErrInvalidRange},
		{"inf", Range{0, math.Inf(1)}, ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.r.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestViewport_ExpandAndInset(t *testing.T) {
	v := NewViewport(0, 100, -50, 50)

	e := v.Expand(0.05)
	if e.X != (Range{-5, 105}) || e.Y != (Range{-55, 55}) {
		t.Errorf("Expand(0.05) = %+v", e)
	}

	in := v.Inset(0.1)
	if in.X != (Range{10, 90}) || in.Y != (Range{-40, 40}) {
		t.Errorf("Inset(0.1) = %+v", in)
	}
}

func TestViewport_ZoomMatchesScroll(t *testing.T) {
	v := NewViewport(0, 10, 0, 10)

	z := v.Zoom(10.0 / 10)
	if z.X != (Range{-10, 20}) || z.Y != (Range{-10, 20}) {
		t.Errorf("Zoom(1) = %+v, want x and y [-10 20]", z)
	}
	if !z.X.Valid() {
		t.Error("zoomed range should be valid")
	}
	if (Range{5, 1}).Valid() {
		t.Error("inverted range reported valid")
	}
}
