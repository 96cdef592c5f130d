package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cropstudio/cropd/internal/crop"
	"github.com/cropstudio/cropd/internal/export"
	"github.com/cropstudio/cropd/internal/geom"
	"github.com/cropstudio/cropd/internal/loader"
	"github.com/cropstudio/cropd/internal/session"
	"github.com/cropstudio/cropd/internal/transform"
)

// stateResult is the common payload returned by every method that reads
// or mutates the committed state.
type stateResult struct {
	State         transform.State   `json:"state"`
	CanUndo       bool              `json:"can_undo"`
	CanRedo       bool              `json:"can_redo"`
	DisplayBounds geom.Rect         `json:"display_bounds"`
	Image         *loader.ImageInfo `json:"image,omitempty"`
}

// draftResult is the payload returned by gesture updates: the rectangle
// being dragged plus any snap guides to render.
type draftResult struct {
	Rect   geom.Rect    `json:"rect"`
	Guides []crop.Guide `json:"guides"`
}

// renderResult is the payload for export methods. Data carries the
// base64-encoded bytes when no output path was given.
type renderResult struct {
	MimeType string `json:"mime_type"`
	FileName string `json:"file_name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	ByteSize int    `json:"byte_size"`
	Path     string `json:"path,omitempty"`
	Data     string `json:"data,omitempty"`
}

// executeMethod dispatches an editor method.
//
// Each handler:
//  1. Unmarshals arguments from JSON
//  2. Applies defaults for optional parameters
//  3. Calls into the session
//  4. Returns the result or a typed RPC error
func (s *Server) executeMethod(name string, args json.RawMessage) (interface{}, *RPCError) {
	switch name {
	case "editor/open":
		return s.handleOpen(args)
	case "editor/state":
		return s.handleState()
	case "editor/reset":
		return s.stateOp(func() (transform.State, error) { return s.session.Reset() })

	case "gesture/begin":
		return s.handleGestureBegin(args)
	case "gesture/update":
		return s.handleGestureUpdate(args)
	case "gesture/commit":
		return s.stateOp(func() (transform.State, error) { return s.session.CommitGesture() })
	case "gesture/cancel":
		return s.handleGestureCancel()

	case "edit/rotate":
		return s.handleRotate(args)
	case "edit/flip":
		return s.handleFlip(args)
	case "edit/crop":
		return s.handleCrop(args)
	case "edit/clear_crop":
		return s.stateOp(func() (transform.State, error) { return s.session.ClearCrop() })

	case "slider/begin":
		return s.handleSliderBegin(args)
	case "slider/update":
		return s.handleSliderUpdate(args)
	case "slider/end":
		return s.stateOp(func() (transform.State, error) { return s.session.EndSlider() })

	case "history/undo":
		return s.stateOp(func() (transform.State, error) { return s.session.Undo() })
	case "history/redo":
		return s.stateOp(func() (transform.State, error) { return s.session.Redo() })

	case "export/render":
		return s.handleExportRender(args)
	case "export/preview":
		return s.handleExportPreview(args)

	default:
		return nil, &RPCError{Code: codeMethodNotFound, Message: fmt.Sprintf("Method not found: %s", name)}
	}
}

func invalidParams(err error) *RPCError {
	return &RPCError{Code: codeInvalidParams, Message: "Invalid params", Data: err.Error()}
}

func execError(err error) *RPCError {
	return &RPCError{Code: codeExecution, Message: "Operation failed", Data: err.Error()}
}

var errNoImage = &RPCError{Code: codeNoImage, Message: "No image loaded"}

// stateOp runs a session mutation behind the loaded-image check and wraps
// the resulting state.
func (s *Server) stateOp(op func() (transform.State, error)) (interface{}, *RPCError) {
	if s.session == nil {
		return nil, errNoImage
	}
	if _, err := op(); err != nil {
		return nil, execError(err)
	}
	return s.currentState(), nil
}

func (s *Server) currentState() stateResult {
	info := s.session.Info()
	return stateResult{
		State:         s.session.State(),
		CanUndo:       s.session.CanUndo(),
		CanRedo:       s.session.CanRedo(),
		DisplayBounds: s.session.DisplayBounds(),
		Image:         &info,
	}
}

// === Session lifecycle ===

type openArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleOpen(args json.RawMessage) (interface{}, *RPCError) {
	var a openArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, invalidParams(err)
	}
	if a.Path == "" {
		return nil, invalidParams(fmt.Errorf("path is required"))
	}

	img, info, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, execError(err)
	}

	// One active image at a time; drop the previous one from the cache.
	if s.path != "" && s.path != a.Path {
		s.cache.Evict(s.path)
	}
	s.path = a.Path
	s.session = session.New(img, info, session.Options{
		SnapEnabled:   s.cfg.Editor.SnapEnabled,
		SnapThreshold: s.cfg.Editor.SnapThreshold,
		AllowOutside:  s.cfg.Editor.AllowOutside,
	})
	s.logger.Info("image opened", "path", a.Path, "width", info.Width, "height", info.Height)
	return s.currentState(), nil
}

func (s *Server) handleState() (interface{}, *RPCError) {
	if s.session == nil {
		return nil, errNoImage
	}
	return s.currentState(), nil
}

// === Gestures ===

type gestureBeginArgs struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Handle string  `json:"handle"`
}

func (s *Server) handleGestureBegin(args json.RawMessage) (interface{}, *RPCError) {
	if s.session == nil {
		return nil, errNoImage
	}
	var a gestureBeginArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, invalidParams(err)
	}

	var err error
	switch a.Kind {
	case "create":
		err = s.session.BeginCreate(geom.Vec2{X: a.X, Y: a.Y})
	case "move":
		err = s.session.BeginMove()
	case "resize":
		err = s.session.BeginResize(crop.Handle(a.Handle))
	case "pan":
		err = s.session.BeginPan()
	default:
		return nil, invalidParams(fmt.Errorf("unknown gesture kind: %q", a.Kind))
	}
	if err != nil {
		return nil, execError(err)
	}
	return map[string]interface{}{}, nil
}

type gestureUpdateArgs struct {
	DX           float64 `json:"dx"`
	DY           float64 `json:"dy"`
	Square       bool    `json:"square"`
	Symmetric    bool    `json:"symmetric"`
	AspectPreset string  `json:"aspect_preset"`
	CustomAspect float64 `json:"custom_aspect"`
}

func (s *Server) handleGestureUpdate(args json.RawMessage) (interface{}, *RPCError) {
	if s.session == nil {
		return nil, errNoImage
	}
	var a gestureUpdateArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, invalidParams(err)
		}
	}

	mods := crop.Modifiers{Square: a.Square, Symmetric: a.Symmetric}
	if a.AspectPreset != "" {
		ratio, err := transform.AspectForPreset(a.AspectPreset, a.CustomAspect)
		if err != nil {
			return nil, invalidParams(err)
		}
		mods.AspectRatio = ratio
	}

	rect, guides, err := s.session.UpdatePointer(geom.Vec2{X: a.DX, Y: a.DY}, mods)
	if err != nil {
		return nil, execError(err)
	}
	if guides == nil {
		guides = []crop.Guide{}
	}
	return draftResult{Rect: rect, Guides: guides}, nil
}

func (s *Server) handleGestureCancel() (interface{}, *RPCError) {
	if s.session == nil {
		return nil, errNoImage
	}
	s.session.CancelGesture()
	return s.currentState(), nil
}

// === One-shot edits ===

type rotateArgs struct {
	Degrees int `json:"degrees"`
}

func (s *Server) handleRotate(args json.RawMessage) (interface{}, *RPCError) {
	var a rotateArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, invalidParams(err)
		}
	}
	if a.Degrees == 0 {
		a.Degrees = 90
	}
	return s.stateOp(func() (transform.State, error) { return s.session.Rotate(a.Degrees) })
}

type flipArgs struct {
	Axis string `json:"axis"`
}

func (s *Server) handleFlip(args json.RawMessage) (interface{}, *RPCError) {
	var a flipArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, invalidParams(err)
	}
	switch a.Axis {
	case "horizontal":
		return s.stateOp(func() (transform.State, error) { return s.session.FlipH() })
	case "vertical":
		return s.stateOp(func() (transform.State, error) { return s.session.FlipV() })
	default:
		return nil, invalidParams(fmt.Errorf("axis must be horizontal or vertical, got %q", a.Axis))
	}
}

type cropArgs struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (s *Server) handleCrop(args json.RawMessage) (interface{}, *RPCError) {
	var a cropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, invalidParams(err)
	}
	r := geom.Rect{X: a.X, Y: a.Y, W: a.W, H: a.H}
	return s.stateOp(func() (transform.State, error) { return s.session.ApplyCrop(r) })
}

// === Sliders ===

type sliderBeginArgs struct {
	Slider string `json:"slider"`
}

func (s *Server) handleSliderBegin(args json.RawMessage) (interface{}, *RPCError) {
	if s.session == nil {
		return nil, errNoImage
	}
	var a sliderBeginArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, invalidParams(err)
	}
	if err := s.session.BeginSlider(session.SliderKind(a.Slider)); err != nil {
		return nil, execError(err)
	}
	return map[string]interface{}{}, nil
}

type sliderUpdateArgs struct {
	Value float64 `json:"value"`
}

func (s *Server) handleSliderUpdate(args json.RawMessage) (interface{}, *RPCError) {
	if s.session == nil {
		return nil, errNoImage
	}
	var a sliderUpdateArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, invalidParams(err)
		}
	}
	st, err := s.session.UpdateSlider(a.Value)
	if err != nil {
		return nil, execError(err)
	}
	res := s.currentState()
	res.State = st
	return res, nil
}

// === Export ===

type exportRenderArgs struct {
	Format  string `json:"format"`
	Quality int    `json:"quality"`
	Path    string `json:"path"`
}

func (s *Server) handleExportRender(args json.RawMessage) (interface{}, *RPCError) {
	if s.session == nil {
		return nil, errNoImage
	}
	a := exportRenderArgs{Format: s.cfg.Export.Format, Quality: s.cfg.Export.Quality}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, invalidParams(err)
		}
	}
	if a.Format == "" {
		a.Format = s.cfg.Export.Format
	}
	if a.Quality == 0 {
		a.Quality = s.cfg.Export.Quality
	}

	format, err := export.ParseFormat(a.Format)
	if err != nil {
		return nil, invalidParams(err)
	}

	res, err := s.session.Export(export.Options{Format: format, Quality: a.Quality})
	if err != nil {
		return nil, execError(err)
	}

	out := renderResult{
		MimeType: res.MimeType,
		FileName: res.FileName,
		Width:    res.Width,
		Height:   res.Height,
		ByteSize: len(res.Data),
	}
	if a.Path != "" {
		if err := os.WriteFile(a.Path, res.Data, 0o644); err != nil {
			return nil, execError(err)
		}
		out.Path = a.Path
		s.logger.Info("export written", "path", a.Path, "bytes", len(res.Data))
	} else {
		out.Data = base64.StdEncoding.EncodeToString(res.Data)
	}
	return out, nil
}

type exportPreviewArgs struct {
	MaxEdge    int    `json:"max_edge"`
	ShowThirds *bool  `json:"show_thirds"`
	GuideColor string `json:"guide_color"`
}

func (s *Server) handleExportPreview(args json.RawMessage) (interface{}, *RPCError) {
	if s.session == nil {
		return nil, errNoImage
	}
	var a exportPreviewArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, invalidParams(err)
		}
	}
	opts := export.PreviewOptions{
		GuideColor: s.cfg.Editor.GuideColor,
		ShowThirds: s.cfg.Editor.ShowThirds,
		MaxEdge:    a.MaxEdge,
	}
	if a.GuideColor != "" {
		opts.GuideColor = a.GuideColor
	}
	if a.ShowThirds != nil {
		opts.ShowThirds = *a.ShowThirds
	}

	res, err := s.session.Preview(opts)
	if err != nil {
		return nil, execError(err)
	}
	return renderResult{
		MimeType: res.MimeType,
		FileName: res.FileName,
		Width:    res.Width,
		Height:   res.Height,
		ByteSize: len(res.Data),
		Data:     base64.StdEncoding.EncodeToString(res.Data),
	}, nil
}
