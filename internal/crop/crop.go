package crop

import (
	"strings"

	"github.com/cropstudio/cropd/internal/geom"
)

// Handle identifies which edge or corner of a rectangle a resize gesture
// controls.
type Handle string

// The eight resize handles.
const (
	HandleN  Handle = "n"
	HandleS  Handle = "s"
	HandleE  Handle = "e"
	HandleW  Handle = "w"
	HandleNE Handle = "ne"
	HandleNW Handle = "nw"
	HandleSE Handle = "se"
	HandleSW Handle = "sw"
)

// Valid reports whether h is one of the eight recognized handles.
func (h Handle) Valid() bool {
	switch h {
	case HandleN, HandleS, HandleE, HandleW, HandleNE, HandleNW, HandleSE, HandleSW:
		return true
	}
	return false
}

func (h Handle) hasN() bool { return strings.Contains(string(h), "n") }
func (h Handle) hasS() bool { return strings.Contains(string(h), "s") }
func (h Handle) hasE() bool { return strings.Contains(string(h), "e") }
func (h Handle) hasW() bool { return strings.Contains(string(h), "w") }

// Modifiers is the ephemeral per-gesture configuration for a resize.
// Square forces a 1:1 aspect and wins over AspectRatio. Symmetric grows
// and shrinks the rect around its center. A non-positive AspectRatio
// means no aspect constraint.
type Modifiers struct {
	Square      bool    `json:"square"`
	Symmetric   bool    `json:"symmetric"`
	AspectRatio float64 `json:"aspect_ratio"`
}

// aspect resolves the effective width/height ratio, 0 meaning none.
func (m Modifiers) aspect() float64 {
	if m.Square {
		return 1
	}
	if m.AspectRatio > 0 {
		return m.AspectRatio
	}
	return 0
}

// Move translates r by delta. Unless allowOutside is set, the result is
// shifted back inside bounds with its size preserved.
func Move(r geom.Rect, delta geom.Vec2, bounds geom.Rect, allowOutside bool) geom.Rect {
	moved := r.Translated(delta)
	if allowOutside {
		return moved
	}
	return geom.ClampRectInside(moved, bounds)
}

// Resize applies a pointer delta to the edges implicated by handle,
// honoring the gesture modifiers, and returns the adjusted rectangle.
//
// The steps are ordered deliberately: the raw delta (mirrored to the
// opposite edges when Symmetric) is applied first, the per-axis minimum
// size is enforced, the aspect constraint recomputes the derived
// dimension, minimum size is enforced again since the aspect step can
// reintroduce a sub-minimum dimension, and finally the edges are clamped
// to bounds unless allowOutside is set.
func Resize(r geom.Rect, handle Handle, delta geom.Vec2, mods Modifiers, bounds geom.Rect, allowOutside bool) geom.Rect {
	left, right := r.X, r.Right()
	top, bottom := r.Y, r.Bottom()
	center := r.Center()

	if handle.hasW() {
		left += delta.X
		if mods.Symmetric {
			right -= delta.X
		}
	}
	if handle.hasE() {
		right += delta.X
		if mods.Symmetric {
			left -= delta.X
		}
	}
	if handle.hasN() {
		top += delta.Y
		if mods.Symmetric {
			bottom -= delta.Y
		}
	}
	if handle.hasS() {
		bottom += delta.Y
		if mods.Symmetric {
			top -= delta.Y
		}
	}

	// Which edges are under direct or symmetric control. A lone active
	// edge absorbs minimum-size correction against its pinned opposite;
	// a fully active pair corrects around the center.
	activeL := handle.hasW() || (mods.Symmetric && handle.hasE())
	activeR := handle.hasE() || (mods.Symmetric && handle.hasW())
	activeT := handle.hasN() || (mods.Symmetric && handle.hasS())
	activeB := handle.hasS() || (mods.Symmetric && handle.hasN())

	left, right = enforceMinAxis(left, right, activeL, activeR)
	top, bottom = enforceMinAxis(top, bottom, activeT, activeB)

	if aspect := mods.aspect(); aspect > 0 {
		w := right - left
		h := bottom - top

		xActive := handle.hasE() || handle.hasW()
		yActive := handle.hasN() || handle.hasS()

		switch {
		case xActive && yActive:
			// Corner drag: shrink whichever dimension overshoots the
			// ratio, so the rect stays under the pointer.
			if w/h > aspect {
				w = h * aspect
			} else {
				h = w / aspect
			}
		case xActive:
			h = w / aspect
		default:
			w = h * aspect
		}

		if mods.Symmetric {
			left, right = center.X-w/2, center.X+w/2
			top, bottom = center.Y-h/2, center.Y+h/2
		} else {
			left, right = anchorAxis(left, right, w, handle.hasW(), handle.hasE())
			top, bottom = anchorAxis(top, bottom, h, handle.hasN(), handle.hasS())
		}

		left, right = enforceMinAxis(left, right, activeL, activeR)
		top, bottom = enforceMinAxis(top, bottom, activeT, activeB)
	}

	out := geom.Rect{X: left, Y: top, W: right - left, H: bottom - top}
	if !allowOutside {
		out = geom.ClampRectEdges(out, bounds)
	}
	return out
}

// enforceMinAxis pushes one axis's edge pair apart to the minimum size.
// With a single controlled edge the opposite edge is pinned; with both
// edges active the pair expands around its current center.
func enforceMinAxis(lo, hi float64, activeLo, activeHi bool) (float64, float64) {
	if hi-lo >= geom.MinRectSize {
		return lo, hi
	}
	switch {
	case activeLo && activeHi:
		c := (lo + hi) / 2
		return c - geom.MinRectSize/2, c + geom.MinRectSize/2
	case activeLo:
		return hi - geom.MinRectSize, hi
	default:
		return lo, lo + geom.MinRectSize
	}
}

// anchorAxis places a recomputed span of the given size on one axis. The
// edge opposite the dragged one stays fixed; if neither edge of this axis
// is dragged (the dimension was derived from the aspect ratio), the span
// recenters on the axis's unchanged center-line.
func anchorAxis(lo, hi, size float64, draggedLo, draggedHi bool) (float64, float64) {
	switch {
	case draggedLo:
		return hi - size, hi
	case draggedHi:
		return lo, lo + size
	default:
		c := (lo + hi) / 2
		return c - size/2, c + size/2
	}
}
