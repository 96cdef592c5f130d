package session

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/cropstudio/cropd/internal/crop"
	"github.com/cropstudio/cropd/internal/export"
	"github.com/cropstudio/cropd/internal/geom"
	"github.com/cropstudio/cropd/internal/history"
	"github.com/cropstudio/cropd/internal/loader"
	"github.com/cropstudio/cropd/internal/transform"
)

// Errors reported for out-of-order or invalid calls.
var (
	ErrGestureActive = errors.New("session: another gesture is active")
	ErrNoGesture     = errors.New("session: no active gesture")
	ErrWrongGesture  = errors.New("session: call does not match the active gesture")
	ErrNoCropRect    = errors.New("session: no crop rectangle")
	ErrBadCropRect   = errors.New("session: crop rectangle too small or outside the canvas")
	ErrInvalidHandle = errors.New("session: invalid resize handle")
	ErrInvalidSlider = errors.New("session: unknown slider")
	ErrBadRotation   = errors.New("session: rotation delta must be a nonzero multiple of 90")
)

// Options tunes gesture behavior for a session. The values come from
// config and stay fixed for the session's lifetime.
type Options struct {
	// SnapEnabled turns edge/third/center snapping on for move and
	// resize gestures.
	SnapEnabled bool

	// SnapThreshold is the snap capture distance in display-space
	// pixels.
	SnapThreshold float64

	// AllowOutside lets the crop rectangle leave the display bounds
	// during gestures instead of being clamped.
	AllowOutside bool
}

// DefaultOptions matches the stock config.
func DefaultOptions() Options {
	return Options{SnapEnabled: true, SnapThreshold: 8}
}

// Session is the live editing state for one loaded image. It is not safe
// for concurrent use; the caller serializes access.
type Session struct {
	img    image.Image
	info   loader.ImageInfo
	opts   Options
	hist   history.State[transform.State]
	active gesture
}

// New starts a session over a decoded image with a fresh identity state
// and empty history.
func New(img image.Image, info loader.ImageInfo, opts Options) *Session {
	return &Session{
		img:  img,
		info: info,
		opts: opts,
		hist: history.New(transform.New()),
	}
}

// State returns the committed present state.
func (s *Session) State() transform.State { return s.hist.Present }

// Info returns the loaded image's metadata.
func (s *Session) Info() loader.ImageInfo { return s.info }

// CanUndo reports whether an undo step exists.
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether a redo step exists.
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// GestureActive reports whether any gesture is in flight.
func (s *Session) GestureActive() bool { return s.active != nil }

func (s *Session) baseSize() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// DisplayBounds is the rectangle gestures clamp and snap against under
// the present state.
func (s *Session) DisplayBounds() geom.Rect {
	return s.hist.Present.DisplayBounds(s.baseSize())
}

// BeginCreate starts dragging out a new crop rectangle anchored at the
// given display-space point.
func (s *Session) BeginCreate(at geom.Vec2) error {
	if s.active != nil {
		return ErrGestureActive
	}
	s.active = &createGesture{origin: at, cursor: at}
	return nil
}

// BeginMove starts translating the existing crop rectangle.
func (s *Session) BeginMove() error {
	if s.active != nil {
		return ErrGestureActive
	}
	if s.hist.Present.CropRect == nil {
		return ErrNoCropRect
	}
	s.active = &moveGesture{start: *s.hist.Present.CropRect, draft: *s.hist.Present.CropRect}
	return nil
}

// BeginResize starts dragging one handle of the existing crop rectangle.
func (s *Session) BeginResize(h crop.Handle) error {
	if s.active != nil {
		return ErrGestureActive
	}
	if !h.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidHandle, h)
	}
	if s.hist.Present.CropRect == nil {
		return ErrNoCropRect
	}
	s.active = &resizeGesture{handle: h, start: *s.hist.Present.CropRect, draft: *s.hist.Present.CropRect}
	return nil
}

// BeginPan starts a viewport pan. It carries no state of its own but
// excludes the rect gestures while held.
func (s *Session) BeginPan() error {
	if s.active != nil {
		return ErrGestureActive
	}
	s.active = &panGesture{}
	return nil
}

// UpdatePointer feeds one pointer delta to the active rect gesture and
// returns the draft rectangle plus any snap guides to render. The draft
// is rebuilt from the gesture's start each call, so modifier changes
// mid-drag take full effect.
func (s *Session) UpdatePointer(delta geom.Vec2, mods crop.Modifiers) (geom.Rect, []crop.Guide, error) {
	bounds := s.DisplayBounds()

	switch g := s.active.(type) {
	case *createGesture:
		g.cursor.X += delta.X
		g.cursor.Y += delta.Y

		var draft geom.Rect
		if aspect := effectiveAspect(mods); aspect > 0 {
			draft = geom.RectFromPointsAspect(g.origin, g.cursor, aspect)
		} else {
			draft = geom.RectFromPoints(g.origin, g.cursor)
		}

		// A drag below the minimum size stays raw so the commit can
		// recognize and discard it; clamping would floor it up to a
		// committable rect.
		var guides []crop.Guide
		if draft.W >= geom.MinRectSize && draft.H >= geom.MinRectSize {
			if s.opts.SnapEnabled {
				draft, guides = crop.Snap(draft, bounds, s.opts.SnapThreshold, crop.SnapResize, createHandle(g.origin, g.cursor))
			}
			if !s.opts.AllowOutside {
				draft = geom.ClampRectEdges(draft, bounds)
			}
		}
		g.draft = draft
		return draft, guides, nil

	case *moveGesture:
		g.total.X += delta.X
		g.total.Y += delta.Y
		draft := crop.Move(g.start, g.total, bounds, s.opts.AllowOutside)

		var guides []crop.Guide
		if s.opts.SnapEnabled {
			draft, guides = crop.Snap(draft, bounds, s.opts.SnapThreshold, crop.SnapMove, "")
		}
		g.draft = draft
		return draft, guides, nil

	case *resizeGesture:
		g.total.X += delta.X
		g.total.Y += delta.Y
		draft := crop.Resize(g.start, g.handle, g.total, mods, bounds, s.opts.AllowOutside)

		var guides []crop.Guide
		if s.opts.SnapEnabled {
			draft, guides = crop.Snap(draft, bounds, s.opts.SnapThreshold, crop.SnapResize, g.handle)
		}
		g.draft = draft
		return draft, guides, nil

	case *panGesture:
		// Viewport motion is client-side; nothing to adjust here.
		return geom.Rect{}, nil, nil

	case nil:
		return geom.Rect{}, nil, ErrNoGesture

	default:
		return geom.Rect{}, nil, ErrWrongGesture
	}
}

// CommitGesture finishes the active gesture. Rect gestures push their
// draft as one history entry; a create smaller than the minimum size is
// discarded; sliders squash to a single entry. The returned state is the
// new present.
func (s *Session) CommitGesture() (transform.State, error) {
	switch g := s.active.(type) {
	case *createGesture:
		s.active = nil
		if g.draft.W < geom.MinRectSize || g.draft.H < geom.MinRectSize {
			return s.hist.Present, nil
		}
		return s.push(s.hist.Present.WithCrop(&g.draft)), nil

	case *moveGesture:
		s.active = nil
		return s.push(s.hist.Present.WithCrop(&g.draft)), nil

	case *resizeGesture:
		s.active = nil
		return s.push(s.hist.Present.WithCrop(&g.draft)), nil

	case *panGesture:
		s.active = nil
		return s.hist.Present, nil

	case *sliderGesture:
		return s.endSlider(g), nil

	default:
		return s.hist.Present, ErrNoGesture
	}
}

// CancelGesture abandons the active gesture without touching history.
// A live slider preview reverts to the pre-drag state.
func (s *Session) CancelGesture() {
	if g, ok := s.active.(*sliderGesture); ok {
		s.hist.Present = g.base
	}
	s.active = nil
}

// BeginSlider starts a live drag on the named slider.
func (s *Session) BeginSlider(kind SliderKind) error {
	if s.active != nil {
		return ErrGestureActive
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSlider, kind)
	}
	s.active = &sliderGesture{kind: kind, base: s.hist.Present}
	return nil
}

// UpdateSlider previews a slider value by replacing the present state in
// place. History is untouched until EndSlider.
func (s *Session) UpdateSlider(value float64) (transform.State, error) {
	g, ok := s.active.(*sliderGesture)
	if !ok {
		if s.active == nil {
			return s.hist.Present, ErrNoGesture
		}
		return s.hist.Present, ErrWrongGesture
	}

	next := s.hist.Present
	switch g.kind {
	case SliderStraighten:
		next = next.WithStraighten(value)
	case SliderBrightness:
		a := next.Adjustments
		a.Brightness = geom.Clamp(value, -1, 1)
		next = next.WithAdjustments(a)
	case SliderContrast:
		a := next.Adjustments
		a.Contrast = geom.Clamp(value, -1, 1)
		next = next.WithAdjustments(a)
	case SliderCurve:
		a := next.Adjustments
		a.Curve = geom.Clamp(value, -1, 1)
		next = next.WithAdjustments(a)
	}
	s.hist.Present = next
	return next, nil
}

// EndSlider commits the slider drag. The whole drag becomes one history
// entry with the pre-drag state as its undo target; a drag that lands
// back on the starting value leaves history untouched.
func (s *Session) EndSlider() (transform.State, error) {
	g, ok := s.active.(*sliderGesture)
	if !ok {
		if s.active == nil {
			return s.hist.Present, ErrNoGesture
		}
		return s.hist.Present, ErrWrongGesture
	}
	return s.endSlider(g), nil
}

func (s *Session) endSlider(g *sliderGesture) transform.State {
	s.active = nil
	final := s.hist.Present
	if final.Equal(g.base) {
		return final
	}
	s.hist.Present = g.base
	s.hist = history.Push(s.hist, final)
	return final
}

// Rotate applies a clockwise quarter-turn delta as one durable edit,
// remapping any crop rectangle into the new orientation.
func (s *Session) Rotate(deltaDeg int) (transform.State, error) {
	if s.active != nil {
		return s.hist.Present, ErrGestureActive
	}
	if deltaDeg == 0 || deltaDeg%90 != 0 {
		return s.hist.Present, fmt.Errorf("%w: %d", ErrBadRotation, deltaDeg)
	}
	w, h := s.baseSize()
	return s.push(s.hist.Present.WithRotation(deltaDeg, w, h)), nil
}

// FlipH toggles the horizontal mirror as one durable edit.
func (s *Session) FlipH() (transform.State, error) {
	if s.active != nil {
		return s.hist.Present, ErrGestureActive
	}
	w, h := s.baseSize()
	return s.push(s.hist.Present.WithFlipH(w, h)), nil
}

// FlipV toggles the vertical mirror as one durable edit.
func (s *Session) FlipV() (transform.State, error) {
	if s.active != nil {
		return s.hist.Present, ErrGestureActive
	}
	w, h := s.baseSize()
	return s.push(s.hist.Present.WithFlipV(w, h)), nil
}

// ApplyCrop commits a crop rectangle directly, bypassing the gesture
// path. The rect is clamped to the display bounds unless the session
// allows outside placement.
func (s *Session) ApplyCrop(r geom.Rect) (transform.State, error) {
	if s.active != nil {
		return s.hist.Present, ErrGestureActive
	}
	if !s.opts.AllowOutside {
		b := s.DisplayBounds()
		iw := math.Min(r.Right(), b.Right()) - math.Max(r.X, b.X)
		ih := math.Min(r.Bottom(), b.Bottom()) - math.Max(r.Y, b.Y)
		if iw < geom.MinRectSize || ih < geom.MinRectSize {
			return s.hist.Present, fmt.Errorf("%w: %+v", ErrBadCropRect, r)
		}
		r = geom.ClampRectEdges(r, b)
	}
	if r.W < geom.MinRectSize || r.H < geom.MinRectSize {
		return s.hist.Present, fmt.Errorf("%w: %+v", ErrBadCropRect, r)
	}
	return s.push(s.hist.Present.WithCrop(&r)), nil
}

// ClearCrop removes the crop rectangle as one durable edit.
func (s *Session) ClearCrop() (transform.State, error) {
	if s.active != nil {
		return s.hist.Present, ErrGestureActive
	}
	return s.push(s.hist.Present.WithCrop(nil)), nil
}

// Undo steps back one history entry; with nothing to undo it returns the
// present state unchanged.
func (s *Session) Undo() (transform.State, error) {
	if s.active != nil {
		return s.hist.Present, ErrGestureActive
	}
	s.hist = history.Undo(s.hist)
	return s.hist.Present, nil
}

// Redo re-applies the most recently undone entry; with nothing to redo it
// returns the present state unchanged.
func (s *Session) Redo() (transform.State, error) {
	if s.active != nil {
		return s.hist.Present, ErrGestureActive
	}
	s.hist = history.Redo(s.hist)
	return s.hist.Present, nil
}

// Reset pushes the identity state as one durable, undoable edit.
func (s *Session) Reset() (transform.State, error) {
	if s.active != nil {
		return s.hist.Present, ErrGestureActive
	}
	return s.push(transform.New()), nil
}

// Export renders the committed state through the full pipeline. The
// suggested filename defaults to the loaded image's display name.
func (s *Session) Export(opts export.Options) (*export.Result, error) {
	if opts.BaseName == "" {
		opts.BaseName = s.info.DisplayName
	}
	return export.Export(s.img, s.hist.Present, opts)
}

// Preview renders the guide-overlay preview. During a rect gesture the
// draft rectangle stands in for the committed crop so the overlay tracks
// the drag.
func (s *Session) Preview(opts export.PreviewOptions) (*export.Result, error) {
	return export.Preview(s.img, s.previewState(), opts)
}

func (s *Session) previewState() transform.State {
	st := s.hist.Present
	switch g := s.active.(type) {
	case *createGesture:
		if g.draft.W >= geom.MinRectSize && g.draft.H >= geom.MinRectSize {
			st = st.WithCrop(&g.draft)
		}
	case *moveGesture:
		st = st.WithCrop(&g.draft)
	case *resizeGesture:
		st = st.WithCrop(&g.draft)
	}
	return st
}

// push records next as a durable history entry, skipping no-op edits.
func (s *Session) push(next transform.State) transform.State {
	if next.Equal(s.hist.Present) {
		return s.hist.Present
	}
	s.hist = history.Push(s.hist, next)
	return next
}

// effectiveAspect resolves the gesture modifiers to a width/height ratio
// for the create path, 0 meaning unconstrained.
func effectiveAspect(m crop.Modifiers) float64 {
	if m.Square {
		return 1
	}
	if m.AspectRatio > 0 {
		return m.AspectRatio
	}
	return 0
}

// createHandle names the corner the cursor is dragging during a create,
// for edge-selective snapping.
func createHandle(origin, cursor geom.Vec2) crop.Handle {
	h := crop.HandleSE
	switch {
	case cursor.X < origin.X && cursor.Y < origin.Y:
		h = crop.HandleNW
	case cursor.X < origin.X:
		h = crop.HandleSW
	case cursor.Y < origin.Y:
		h = crop.HandleNE
	}
	return h
}
