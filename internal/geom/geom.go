package geom

import "math"

// MinRectSize is the smallest width or height any engine operation may
// produce. Degenerate gestures are corrected to this size rather than
// rejected.
const MinRectSize = 1.0

// Vec2 is a 2D coordinate or delta. The unit depends on context: pointer
// deltas arrive in image-space units, already converted from screen space
// by the caller.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle. Engine operations guarantee W and H
// are at least MinRectSize on output.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Center returns the rect's center point.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Translated returns the rect shifted by d.
func (r Rect) Translated(d Vec2) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// ContainedIn reports whether r lies fully within bounds, with a small
// tolerance for float error.
func (r Rect) ContainedIn(bounds Rect) bool {
	const eps = 1e-9
	return r.X >= bounds.X-eps && r.Y >= bounds.Y-eps &&
		r.Right() <= bounds.Right()+eps && r.Bottom() <= bounds.Bottom()+eps
}

// Clamp limits v to [lo, hi]. lo <= hi is assumed.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RectFromPoints normalizes two arbitrary corner points into a
// positive-size rect.
func RectFromPoints(a, b Vec2) Rect {
	return Rect{
		X: math.Min(a.X, b.X),
		Y: math.Min(a.Y, b.Y),
		W: math.Abs(b.X - a.X),
		H: math.Abs(b.Y - a.Y),
	}
}

// RectFromPointsAspect normalizes two corner points into a rect and, when
// aspect is positive, shrinks the longer dimension so W/H equals aspect.
// The result stays anchored at a: the sign of b-a determines which corner
// of the result a occupies. A non-positive aspect means no constraint.
func RectFromPointsAspect(a, b Vec2, aspect float64) Rect {
	r := RectFromPoints(a, b)
	if aspect <= 0 || r.W == 0 || r.H == 0 {
		return r
	}

	w, h := r.W, r.H
	if w/h > aspect {
		w = h * aspect
	} else {
		h = w / aspect
	}

	x := a.X
	if b.X < a.X {
		x = a.X - w
	}
	y := a.Y
	if b.Y < a.Y {
		y = a.Y - h
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// ClampRectInside moves r so it lies fully within bounds, preserving its
// size unless the size itself exceeds bounds: size is capped to the bounds
// size first, position clamped second. Used for pure-translation moves,
// where the rect must keep its shape.
func ClampRectInside(r, bounds Rect) Rect {
	w := math.Min(r.W, bounds.W)
	h := math.Min(r.H, bounds.H)
	return Rect{
		X: Clamp(r.X, bounds.X, bounds.Right()-w),
		Y: Clamp(r.Y, bounds.Y, bounds.Bottom()-h),
		W: w,
		H: h,
	}
}

// ClampRectEdges clamps each of the four edges of r independently to
// bounds, producing the intersection with width/height floored at
// MinRectSize. Used for resize operations: a dragged edge stops at the
// boundary while the opposite edge stays put.
func ClampRectEdges(r, bounds Rect) Rect {
	left := math.Max(r.X, bounds.X)
	top := math.Max(r.Y, bounds.Y)
	right := math.Min(r.Right(), bounds.Right())
	bottom := math.Min(r.Bottom(), bounds.Bottom())

	w := math.Max(right-left, MinRectSize)
	h := math.Max(bottom-top, MinRectSize)
	return Rect{X: left, Y: top, W: w, H: h}
}

// RotatedBounds returns the bounding box of a w×h rectangle rotated by
// angleDeg about its center.
func RotatedBounds(w, h, angleDeg float64) (float64, float64) {
	rad := angleDeg * math.Pi / 180
	c := math.Abs(math.Cos(rad))
	s := math.Abs(math.Sin(rad))
	return w*c + h*s, w*s + h*c
}
