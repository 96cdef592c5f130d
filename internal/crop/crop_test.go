package crop

import (
	"math"
	"testing"

	"github.com/cropstudio/cropd/internal/geom"
)

var allHandles = []Handle{
	HandleN, HandleS, HandleE, HandleW,
	HandleNE, HandleNW, HandleSE, HandleSW,
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestMove(t *testing.T) {
	bounds := geom.Rect{X: 0, Y: 0, W: 200, H: 120}
	r := geom.Rect{X: 10, Y: 10, W: 50, H: 40}

	got := Move(r, geom.Vec2{X: 20, Y: 5}, bounds, false)
	want := geom.Rect{X: 30, Y: 15, W: 50, H: 40}
	if got != want {
		t.Errorf("Move = %+v, want %+v", got, want)
	}
}

func TestMove_ClampsToBounds(t *testing.T) {
	bounds := geom.Rect{X: 0, Y: 0, W: 200, H: 120}
	r := geom.Rect{X: 10, Y: 10, W: 50, H: 40}

	got := Move(r, geom.Vec2{X: 500, Y: 500}, bounds, false)
	if !got.ContainedIn(bounds) {
		t.Errorf("clamped move %+v escapes bounds %+v", got, bounds)
	}
	if got.W != 50 || got.H != 40 {
		t.Errorf("move changed size: got %vx%v, want 50x40", got.W, got.H)
	}
}

func TestMove_AllowOutside(t *testing.T) {
	bounds := geom.Rect{X: 0, Y: 0, W: 200, H: 120}
	r := geom.Rect{X: 10, Y: 10, W: 50, H: 40}

	got := Move(r, geom.Vec2{X: -100, Y: -100}, bounds, true)
	want := geom.Rect{X: -90, Y: -90, W: 50, H: 40}
	if got != want {
		t.Errorf("unclamped move = %+v, want %+v", got, want)
	}
}

// Resizing the south-east corner with the square modifier must yield equal
// dimensions regardless of the drag.
func TestResize_SquareCorner(t *testing.T) {
	bounds := geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}
	r := geom.Rect{X: 10, Y: 10, W: 100, H: 50}

	got := Resize(r, HandleSE, geom.Vec2{X: 30, Y: 5}, Modifiers{Square: true}, bounds, false)
	if math.Round(got.W) != math.Round(got.H) {
		t.Errorf("square resize: got %vx%v, want equal dimensions", got.W, got.H)
	}
	// Anchored resize: the north-west corner must not move.
	if !almostEqual(got.X, 10) || !almostEqual(got.Y, 10) {
		t.Errorf("anchor moved: got origin (%v,%v), want (10,10)", got.X, got.Y)
	}
}

// Symmetric east-edge resize grows both sides and keeps the center fixed.
func TestResize_SymmetricEdge(t *testing.T) {
	bounds := geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}
	r := geom.Rect{X: 10, Y: 10, W: 100, H: 50}

	got := Resize(r, HandleE, geom.Vec2{X: 10, Y: 0}, Modifiers{Symmetric: true}, bounds, false)
	if !almostEqual(got.W, 120) {
		t.Errorf("width: got %v, want 120", got.W)
	}
	if !almostEqual(got.Center().X, 60) {
		t.Errorf("center x: got %v, want 60", got.Center().X)
	}
	if !almostEqual(got.H, 50) {
		t.Errorf("height changed: got %v, want 50", got.H)
	}
}

// A huge drag past the canvas must clamp to bounds.
func TestResize_ClampsHugeDelta(t *testing.T) {
	bounds := geom.Rect{X: 0, Y: 0, W: 200, H: 120}
	r := geom.Rect{X: 10, Y: 10, W: 100, H: 50}

	got := Resize(r, HandleSE, geom.Vec2{X: 500, Y: 500}, Modifiers{}, bounds, false)
	if got.Right() > 200+1e-9 {
		t.Errorf("right edge %v exceeds 200", got.Right())
	}
	if got.Bottom() > 120+1e-9 {
		t.Errorf("bottom edge %v exceeds 120", got.Bottom())
	}
	// The opposite edges must not have moved.
	if !almostEqual(got.X, 10) || !almostEqual(got.Y, 10) {
		t.Errorf("anchored edges moved: origin (%v,%v), want (10,10)", got.X, got.Y)
	}
}

func TestResize_PerHandleEdges(t *testing.T) {
	bounds := geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}
	r := geom.Rect{X: 100, Y: 100, W: 100, H: 100}
	d := geom.Vec2{X: 10, Y: 20}

	tests := []struct {
		handle Handle
		want   geom.Rect
	}{
		{HandleN, geom.Rect{X: 100, Y: 120, W: 100, H: 80}},
		{HandleS, geom.Rect{X: 100, Y: 100, W: 100, H: 120}},
		{HandleE, geom.Rect{X: 100, Y: 100, W: 110, H: 100}},
		{HandleW, geom.Rect{X: 110, Y: 100, W: 90, H: 100}},
		{HandleNE, geom.Rect{X: 100, Y: 120, W: 110, H: 80}},
		{HandleNW, geom.Rect{X: 110, Y: 120, W: 90, H: 80}},
		{HandleSE, geom.Rect{X: 100, Y: 100, W: 110, H: 120}},
		{HandleSW, geom.Rect{X: 110, Y: 100, W: 90, H: 120}},
	}

	for _, tt := range tests {
		t.Run(string(tt.handle), func(t *testing.T) {
			got := Resize(r, tt.handle, d, Modifiers{}, bounds, false)
			if got != tt.want {
				t.Errorf("Resize(%s) = %+v, want %+v", tt.handle, got, tt.want)
			}
		})
	}
}

// Collapsing drags must never produce a dimension below the minimum, for
// any handle and modifier combination.
func TestResize_MinimumSizeInvariant(t *testing.T) {
	bounds := geom.Rect{X: 0, Y: 0, W: 400, H: 300}
	r := geom.Rect{X: 100, Y: 100, W: 60, H: 40}
	deltas := []geom.Vec2{
		{X: -500, Y: -500}, {X: 500, Y: 500}, {X: -65, Y: 5},
		{X: 0, Y: -45}, {X: -60, Y: -40}, {X: 1000, Y: -1000},
	}
	modCases := []Modifiers{
		{},
		{Square: true},
		{Symmetric: true},
		{Square: true, Symmetric: true},
		{AspectRatio: 1.778},
		{AspectRatio: 1.778, Symmetric: true},
	}

	for _, h := range allHandles {
		for _, d := range deltas {
			for _, m := range modCases {
				for _, outside := range []bool{false, true} {
					got := Resize(r, h, d, m, bounds, outside)
					if got.W < geom.MinRectSize-1e-9 || got.H < geom.MinRectSize-1e-9 {
						t.Fatalf("Resize(%s, %+v, %+v, outside=%v) = %+v: dimension below minimum",
							h, d, m, outside, got)
					}
				}
			}
		}
	}
}

// With the square modifier every handle and delta must yield equal
// rounded dimensions.
func TestResize_SquareInvariant(t *testing.T) {
	bounds := geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}
	r := geom.Rect{X: 200, Y: 200, W: 120, H: 80}
	deltas := []geom.Vec2{{X: 25, Y: -10}, {X: -30, Y: 40}, {X: 7, Y: 7}}

	for _, h := range allHandles {
		for _, d := range deltas {
			got := Resize(r, h, d, Modifiers{Square: true}, bounds, true)
			if math.Round(got.W) != math.Round(got.H) {
				t.Errorf("Resize(%s, %+v, square) = %vx%v, want square", h, d, got.W, got.H)
			}
		}
	}
}

// The symmetric modifier must preserve the rect center for every handle.
func TestResize_SymmetricCenterInvariant(t *testing.T) {
	bounds := geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}
	r := geom.Rect{X: 200, Y: 200, W: 120, H: 80}
	c := r.Center()
	deltas := []geom.Vec2{{X: 25, Y: -10}, {X: -30, Y: 40}, {X: -200, Y: -200}}

	for _, h := range allHandles {
		for _, d := range deltas {
			got := Resize(r, h, d, Modifiers{Symmetric: true}, bounds, true)
			gc := got.Center()
			if !almostEqual(gc.X, c.X) || !almostEqual(gc.Y, c.Y) {
				t.Errorf("Resize(%s, %+v, symmetric) center = %+v, want %+v", h, d, gc, c)
			}
		}
	}
}

// With clamping enabled the output must always be inside bounds.
func TestResize_BoundsInvariant(t *testing.T) {
	bounds := geom.Rect{X: 0, Y: 0, W: 300, H: 200}
	r := geom.Rect{X: 50, Y: 50, W: 100, H: 80}
	deltas := []geom.Vec2{{X: 500, Y: 500}, {X: -500, Y: -500}, {X: 500, Y: -500}}

	for _, h := range allHandles {
		for _, d := range deltas {
			for _, m := range []Modifiers{{}, {Square: true}, {Symmetric: true}} {
				got := Resize(r, h, d, m, bounds, false)
				if !got.ContainedIn(bounds) {
					t.Errorf("Resize(%s, %+v, %+v) = %+v escapes %+v", h, d, m, got, bounds)
				}
			}
		}
	}
}

// A custom aspect on an edge handle derives the perpendicular dimension
// from the dragged one, recentered on the unchanged center-line.
func TestResize_AspectEdgeDrag(t *testing.T) {
	bounds := geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}
	r := geom.Rect{X: 100, Y: 100, W: 100, H: 50}

	got := Resize(r, HandleE, geom.Vec2{X: 50, Y: 0}, Modifiers{AspectRatio: 2}, bounds, true)
	if !almostEqual(got.W, 150) {
		t.Errorf("width: got %v, want 150", got.W)
	}
	if !almostEqual(got.H, 75) {
		t.Errorf("derived height: got %v, want 75", got.H)
	}
	// Dragged axis anchors on the west edge; perpendicular axis keeps its
	// center-line.
	if !almostEqual(got.X, 100) {
		t.Errorf("west edge moved: got %v, want 100", got.X)
	}
	if !almostEqual(got.Center().Y, 125) {
		t.Errorf("center y: got %v, want 125", got.Center().Y)
	}
}

// Zero or negative aspect ratios mean unconstrained resize.
func TestResize_NonPositiveAspectIgnored(t *testing.T) {
	bounds := geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}
	r := geom.Rect{X: 100, Y: 100, W: 100, H: 50}

	for _, aspect := range []float64{0, -1.5} {
		got := Resize(r, HandleSE, geom.Vec2{X: 30, Y: 5}, Modifiers{AspectRatio: aspect}, bounds, false)
		want := geom.Rect{X: 100, Y: 100, W: 130, H: 55}
		if got != want {
			t.Errorf("aspect=%v: got %+v, want %+v", aspect, got, want)
		}
	}
}

func TestOrientedSize(t *testing.T) {
	tests := []struct {
		deg          int
		wantW, wantH float64
	}{
		{0, 320, 200},
		{90, 200, 320},
		{180, 320, 200},
		{270, 200, 320},
		{360, 320, 200},
		{-90, 200, 320},
	}

	for _, tt := range tests {
		w, h := OrientedSize(320, 200, tt.deg)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("OrientedSize(320,200,%d) = %v,%v, want %v,%v", tt.deg, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestRotateRect_Quarter(t *testing.T) {
	got := RotateRect(geom.Rect{X: 10, Y: 20, W: 30, H: 40}, 90, 100, 200)
	want := geom.Rect{X: 140, Y: 10, W: 40, H: 30}
	if got != want {
		t.Errorf("RotateRect 90 = %+v, want %+v", got, want)
	}
}

func TestRotateRect_Half(t *testing.T) {
	got := RotateRect(geom.Rect{X: 10, Y: 20, W: 30, H: 40}, 180, 100, 200)
	want := geom.Rect{X: 60, Y: 140, W: 30, H: 40}
	if got != want {
		t.Errorf("RotateRect 180 = %+v, want %+v", got, want)
	}
}

// Four quarter turns, swapping the canvas dimensions at each step, must
// return the original rect.
func TestRotateRect_FourTurnsIdentity(t *testing.T) {
	r := geom.Rect{X: 10, Y: 20, W: 30, H: 40}
	w, h := 100.0, 200.0

	got := r
	for i := 0; i < 4; i++ {
		got = RotateRect(got, 90, w, h)
		w, h = h, w
	}
	if got != r {
		t.Errorf("four quarter turns = %+v, want %+v", got, r)
	}
}

// Rotating by r degrees then by 360-r degrees (in the rotated canvas)
// must also round-trip; this is the inverse mapping export relies on.
func TestRotateRect_InverseMapping(t *testing.T) {
	r := geom.Rect{X: 15, Y: 25, W: 35, H: 45}

	for _, deg := range []int{90, 180, 270} {
		w, h := 120.0, 260.0
		fwd := RotateRect(r, deg, w, h)
		fw, fh := OrientedSize(w, h, deg)
		back := RotateRect(fwd, 360-deg, fw, fh)
		if back != r {
			t.Errorf("deg=%d: inverse mapping = %+v, want %+v", deg, back, r)
		}
	}
}
