package transform

import (
	"github.com/cropstudio/cropd/internal/adjust"
	"github.com/cropstudio/cropd/internal/crop"
	"github.com/cropstudio/cropd/internal/geom"
)

// Rotation is a quarter-turn orientation in clockwise degrees, always one
// of 0, 90, 180 or 270.
type Rotation int

// The four orientations.
const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// MaxStraighten bounds the straighten angle in degrees on either side.
const MaxStraighten = 15.0

// NormalizeRotation folds an arbitrary number of clockwise degrees into
// the four right-angle values.
func NormalizeRotation(deg int) Rotation {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return Rotation(deg / 90 * 90)
}

// State is the single persisted document value for a loaded image. The
// zero-ish value produced by New is the identity: no crop, no rotation,
// no straighten, no flips, default adjustments.
type State struct {
	CropRect    *geom.Rect         `json:"crop_rect,omitempty"`
	Rotation    Rotation           `json:"rotation"`
	Straighten  float64            `json:"straighten"`
	FlipH       bool               `json:"flip_h"`
	FlipV       bool               `json:"flip_v"`
	Adjustments adjust.Adjustments `json:"adjustments"`
}

// New returns the identity state.
func New() State {
	return State{}
}

// IsIdentity reports whether the state would leave the image untouched.
func (s State) IsIdentity() bool {
	return s.CropRect == nil && s.Rotation == Rotate0 && s.Straighten == 0 &&
		!s.FlipH && !s.FlipV && s.Adjustments.IsDefault()
}

// DisplaySize returns the display-space dimensions for a source image of
// baseW×baseH: the oriented size expanded to the bounding box of the
// straighten rotation. This is the space crop rectangles are authored in.
func (s State) DisplaySize(baseW, baseH float64) (float64, float64) {
	ow, oh := crop.OrientedSize(baseW, baseH, int(s.Rotation))
	return geom.RotatedBounds(ow, oh, s.Straighten)
}

// DisplayBounds is DisplaySize as a rect anchored at the origin, the
// bounds gestures clamp and snap against.
func (s State) DisplayBounds(baseW, baseH float64) geom.Rect {
	w, h := s.DisplaySize(baseW, baseH)
	return geom.Rect{W: w, H: h}
}

// WithCrop returns the state with the crop rectangle set, or cleared when
// r is nil.
func (s State) WithCrop(r *geom.Rect) State {
	if r != nil {
		c := *r
		s.CropRect = &c
	} else {
		s.CropRect = nil
	}
	return s
}

// WithRotation returns the state rotated by the given clockwise
// quarter-turn delta (+90 or -90), remapping any applied crop rectangle
// into the new orientation. baseW and baseH are the source image
// dimensions; the remap uses the display dimensions at the time of the
// rotation.
func (s State) WithRotation(deltaDeg int, baseW, baseH float64) State {
	if s.CropRect != nil {
		dw, dh := s.DisplaySize(baseW, baseH)
		r := crop.RotateRect(*s.CropRect, deltaDeg, dw, dh)
		s.CropRect = &r
	}
	s.Rotation = NormalizeRotation(int(s.Rotation) + deltaDeg)
	return s
}

// WithFlipH toggles the horizontal flip, mirroring any applied crop
// rectangle across the vertical center-line of the display bounds so the
// selection keeps covering the same content.
func (s State) WithFlipH(baseW, baseH float64) State {
	if s.CropRect != nil {
		dw, _ := s.DisplaySize(baseW, baseH)
		r := *s.CropRect
		r.X = dw - r.Right()
		s.CropRect = &r
	}
	s.FlipH = !s.FlipH
	return s
}

// WithFlipV toggles the vertical flip, mirroring any applied crop
// rectangle across the horizontal center-line of the display bounds.
func (s State) WithFlipV(baseW, baseH float64) State {
	if s.CropRect != nil {
		_, dh := s.DisplaySize(baseW, baseH)
		r := *s.CropRect
		r.Y = dh - r.Bottom()
		s.CropRect = &r
	}
	s.FlipV = !s.FlipV
	return s
}

// WithStraighten returns the state with the straighten angle set, clamped
// to [-MaxStraighten, MaxStraighten] degrees.
func (s State) WithStraighten(deg float64) State {
	s.Straighten = geom.Clamp(deg, -MaxStraighten, MaxStraighten)
	return s
}

// WithAdjustments returns the state with the tonal sliders replaced.
func (s State) WithAdjustments(a adjust.Adjustments) State {
	s.Adjustments = a
	return s
}

// SourceCropRect maps a display-space rectangle back into source pixel
// space by undoing the quarter-turn orientation (rotating by
// 360-rotation). The mapping is exact when no straighten angle is
// applied; with straighten the display canvas has no axis-aligned source
// equivalent and export composes in display space instead.
func (s State) SourceCropRect(r geom.Rect, baseW, baseH float64) geom.Rect {
	ow, oh := crop.OrientedSize(baseW, baseH, int(s.Rotation))
	return crop.RotateRect(r, 360-int(s.Rotation), ow, oh)
}

// Equal reports whether two states are structurally identical, comparing
// crop rectangles by value.
func (s State) Equal(o State) bool {
	if (s.CropRect == nil) != (o.CropRect == nil) {
		return false
	}
	if s.CropRect != nil && *s.CropRect != *o.CropRect {
		return false
	}
	s.CropRect, o.CropRect = nil, nil
	return s == o
}
