package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func rectsAlmostEqual(a, b Rect) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y) &&
		almostEqual(a.W, b.W) && almostEqual(a.H, b.H)
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name       string
		v, lo, hi  float64
		want       float64
	}{
		{"below", -5, 0, 10, 0},
		{"above", 15, 0, 10, 10},
		{"inside", 5, 0, 10, 5},
		{"at low", 0, 0, 10, 0},
		{"at high", 10, 0, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%v,%v,%v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestRectFromPoints(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec2
		want Rect
	}{
		{"forward drag", Vec2{10, 20}, Vec2{40, 60}, Rect{10, 20, 30, 40}},
		{"reverse drag", Vec2{40, 60}, Vec2{10, 20}, Rect{10, 20, 30, 40}},
		{"mixed drag", Vec2{40, 20}, Vec2{10, 60}, Rect{10, 20, 30, 40}},
		{"zero size", Vec2{5, 5}, Vec2{5, 5}, Rect{5, 5, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RectFromPoints(tt.a, tt.b); !rectsAlmostEqual(got, tt.want) {
				t.Errorf("RectFromPoints = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectFromPointsAspect(t *testing.T) {
	// Wide drag with square aspect: width shrinks to match height.
	got := RectFromPointsAspect(Vec2{0, 0}, Vec2{100, 50}, 1)
	if !rectsAlmostEqual(got, Rect{0, 0, 50, 50}) {
		t.Errorf("square aspect: got %+v, want {0 0 50 50}", got)
	}

	// Tall drag with 2:1 aspect: height shrinks.
	got = RectFromPointsAspect(Vec2{0, 0}, Vec2{100, 200}, 2)
	if !rectsAlmostEqual(got, Rect{0, 0, 100, 50}) {
		t.Errorf("2:1 aspect: got %+v, want {0 0 100 50}", got)
	}

	// Drag up-left: the result must stay anchored at the start corner, so
	// it grows toward the pointer.
	got = RectFromPointsAspect(Vec2{100, 100}, Vec2{0, 50}, 1)
	if !almostEqual(got.Right(), 100) || !almostEqual(got.Bottom(), 100) {
		t.Errorf("reverse drag anchor: got %+v, want bottom-right at (100,100)", got)
	}
	if !almostEqual(got.W, got.H) {
		t.Errorf("reverse drag aspect: got %vx%v, want square", got.W, got.H)
	}
}

func TestRectFromPointsAspect_NoConstraint(t *testing.T) {
	for _, aspect := range []float64{0, -1} {
		got := RectFromPointsAspect(Vec2{0, 0}, Vec2{100, 50}, aspect)
		if !rectsAlmostEqual(got, Rect{0, 0, 100, 50}) {
			t.Errorf("aspect=%v: got %+v, want unconstrained {0 0 100 50}", aspect, got)
		}
	}
}

func TestClampRectInside(t *testing.T) {
	bounds := Rect{0, 0, 200, 100}

	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"already inside", Rect{10, 10, 50, 50}, Rect{10, 10, 50, 50}},
		{"past right", Rect{180, 10, 50, 50}, Rect{150, 10, 50, 50}},
		{"past left", Rect{-20, 10, 50, 50}, Rect{0, 10, 50, 50}},
		{"past bottom", Rect{10, 80, 50, 50}, Rect{10, 50, 50, 50}},
		{"oversized", Rect{-10, -10, 300, 300}, Rect{0, 0, 200, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampRectInside(tt.in, bounds)
			if !rectsAlmostEqual(got, tt.want) {
				t.Errorf("ClampRectInside(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClampRectInside_PreservesSize(t *testing.T) {
	bounds := Rect{0, 0, 200, 100}
	in := Rect{190, 90, 40, 30}
	got := ClampRectInside(in, bounds)
	if !almostEqual(got.W, 40) || !almostEqual(got.H, 30) {
		t.Errorf("size changed: got %vx%v, want 40x30", got.W, got.H)
	}
	if !got.ContainedIn(bounds) {
		t.Errorf("result %+v not contained in %+v", got, bounds)
	}
}

func TestClampRectEdges(t *testing.T) {
	bounds := Rect{0, 0, 200, 100}

	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"already inside", Rect{10, 10, 50, 50}, Rect{10, 10, 50, 50}},
		{"right edge out", Rect{150, 10, 100, 50}, Rect{150, 10, 50, 50}},
		{"left edge out", Rect{-30, 10, 100, 50}, Rect{0, 10, 70, 50}},
		{"both y edges out", Rect{10, -20, 50, 200}, Rect{10, 0, 50, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampRectEdges(tt.in, bounds)
			if !rectsAlmostEqual(got, tt.want) {
				t.Errorf("ClampRectEdges(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClampRectEdges_MinSizeFloor(t *testing.T) {
	bounds := Rect{0, 0, 200, 100}
	// Rect entirely outside: intersection is empty, dimensions floor at 1.
	got := ClampRectEdges(Rect{-50, -50, 10, 10}, bounds)
	if got.W < MinRectSize || got.H < MinRectSize {
		t.Errorf("dimensions below minimum: got %vx%v", got.W, got.H)
	}
}

func TestRotatedBounds(t *testing.T) {
	tests := []struct {
		name         string
		w, h, angle  float64
		wantW, wantH float64
	}{
		{"zero angle", 100, 50, 0, 100, 50},
		{"quarter turn", 100, 50, 90, 50, 100},
		{"half turn", 100, 50, 180, 100, 50},
		{"diagonal square", 100, 100, 45, 100 * math.Sqrt2, 100 * math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := RotatedBounds(tt.w, tt.h, tt.angle)
			if !almostEqual(w, tt.wantW) || !almostEqual(h, tt.wantH) {
				t.Errorf("RotatedBounds(%v,%v,%v) = %v,%v, want %v,%v",
					tt.w, tt.h, tt.angle, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRotatedBounds_GrowsWithinDiagonal(t *testing.T) {
	// For any straighten angle, the expanded bounds never exceed the
	// diagonal of the original rectangle.
	diag := math.Hypot(160, 90)
	for a := -15.0; a <= 15.0; a += 2.5 {
		w, h := RotatedBounds(160, 90, a)
		if w < 160-1e-9 || h < 90-1e-9 {
			t.Errorf("angle %v: bounds %vx%v smaller than source", a, w, h)
		}
		if w > diag+1e-9 || h > diag+1e-9 {
			t.Errorf("angle %v: bounds %vx%v exceed diagonal %v", a, w, h, diag)
		}
	}
}
