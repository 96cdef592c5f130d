package crop

import "github.com/cropstudio/cropd/internal/geom"

// OrientedSize returns the canvas dimensions after a quarter-turn
// rotation: width and height swap for 90 and 270 degrees.
func OrientedSize(w, h float64, rotationDeg int) (float64, float64) {
	switch normalizeQuarter(rotationDeg) {
	case 90, 270:
		return h, w
	default:
		return w, h
	}
}

// RotateRect remaps a rect defined in a width×height canvas into the
// equivalent rect after the whole canvas is rotated clockwise by
// rotationDeg (a multiple of 90). It is used both to keep an applied crop
// rectangle valid across a rotate action and, with 360-rotation, to map a
// display-space rectangle back into source pixel space.
func RotateRect(r geom.Rect, rotationDeg int, width, height float64) geom.Rect {
	switch normalizeQuarter(rotationDeg) {
	case 90:
		return geom.Rect{X: height - r.Bottom(), Y: r.X, W: r.H, H: r.W}
	case 180:
		return geom.Rect{X: width - r.Right(), Y: height - r.Bottom(), W: r.W, H: r.H}
	case 270:
		return geom.Rect{X: r.Y, Y: width - r.Right(), W: r.H, H: r.W}
	default:
		return r
	}
}

// normalizeQuarter folds a rotation into {0, 90, 180, 270}, truncating
// anything that is not a multiple of 90.
func normalizeQuarter(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg / 90 * 90
}
