package session

import (
	"github.com/cropstudio/cropd/internal/crop"
	"github.com/cropstudio/cropd/internal/geom"
	"github.com/cropstudio/cropd/internal/transform"
)

// gesture is the closed set of in-flight interactions. Exactly one may be
// active at a time; the marker method keeps the set closed to this
// package.
type gesture interface {
	isGesture()
}

// createGesture drags out a new crop rectangle from an anchor corner. The
// cursor accumulates pointer deltas so each update rebuilds the draft
// from the anchor instead of compounding rounding.
type createGesture struct {
	origin geom.Vec2
	cursor geom.Vec2
	draft  geom.Rect
}

// moveGesture translates the existing crop rectangle.
type moveGesture struct {
	start geom.Rect
	total geom.Vec2
	draft geom.Rect
}

// resizeGesture drags one handle of the existing crop rectangle.
type resizeGesture struct {
	handle crop.Handle
	start  geom.Rect
	total  geom.Vec2
	draft  geom.Rect
}

// panGesture scrolls the viewport. The session only gates it against the
// other gestures; the viewport itself lives in the client.
type panGesture struct{}

// sliderGesture is a live tonal or straighten drag. base is the state
// before the drag; updates replace the present value without touching
// history, and the release squashes the whole drag into one entry.
type sliderGesture struct {
	kind SliderKind
	base transform.State
}

func (*createGesture) isGesture() {}
func (*moveGesture) isGesture()   {}
func (*resizeGesture) isGesture() {}
func (*panGesture) isGesture()    {}
func (*sliderGesture) isGesture() {}

// SliderKind names a continuous control bound to one state field.
type SliderKind string

// The four sliders.
const (
	SliderStraighten SliderKind = "straighten"
	SliderBrightness SliderKind = "brightness"
	SliderContrast   SliderKind = "contrast"
	SliderCurve      SliderKind = "curve"
)

// Valid reports whether k is a recognized slider.
func (k SliderKind) Valid() bool {
	switch k {
	case SliderStraighten, SliderBrightness, SliderContrast, SliderCurve:
		return true
	}
	return false
}
