package export

import (
	"image"
	"image/color"
	"testing"

	"github.com/cropstudio/cropd/internal/geom"
	"github.com/cropstudio/cropd/internal/transform"
)

func blackImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
		}
	}
	return img
}

func TestPreview_DrawsCropOutline(t *testing.T) {
	src := blackImage(100, 100)
	st := transform.New().WithCrop(&geom.Rect{X: 10, Y: 10, W: 50, H: 50})

	res, err := Preview(src, st, PreviewOptions{GuideColor: "#ff0000"})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	// The preview shows the whole canvas, not the cropped region.
	if res.Width != 100 || res.Height != 100 {
		t.Errorf("dimensions: got %dx%d, want 100x100", res.Width, res.Height)
	}

	out := decodePNG(t, res.Data)
	if got := pixelAt(t, out, 10, 30); got != red {
		t.Errorf("left outline: got %+v, want red", got)
	}
	if got := pixelAt(t, out, 60, 30); got != red {
		t.Errorf("right outline: got %+v, want red", got)
	}
	if got := pixelAt(t, out, 35, 10); got != red {
		t.Errorf("top outline: got %+v, want red", got)
	}
	// Well inside the rect, away from any guide line, the canvas is
	// untouched.
	if got := pixelAt(t, out, 35, 35); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("interior: got %+v, want black", got)
	}
}

func TestPreview_ThirdsGrid(t *testing.T) {
	src := blackImage(100, 100)
	st := transform.New().WithCrop(&geom.Rect{X: 0, Y: 0, W: 90, H: 90})

	res, err := Preview(src, st, PreviewOptions{GuideColor: "#ff0000", ShowThirds: true})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	out := decodePNG(t, res.Data)

	// Thirds lines at x=30 and x=60, drawn in a softened variant of the
	// guide color: not black, not the pure outline color.
	got := pixelAt(t, out, 30, 45)
	if got == (color.NRGBA{0, 0, 0, 255}) {
		t.Error("thirds line missing at x=30")
	}
	if got == red {
		t.Error("thirds line should be softened, not the outline color")
	}
}

func TestPreview_NoCropNoGuides(t *testing.T) {
	src := blackImage(50, 50)

	res, err := Preview(src, transform.New(), PreviewOptions{GuideColor: "#00ff00"})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	out := decodePNG(t, res.Data)
	for _, p := range [][2]int{{0, 0}, {25, 25}, {49, 49}} {
		if got := pixelAt(t, out, p[0], p[1]); got != (color.NRGBA{0, 0, 0, 255}) {
			t.Errorf("pixel %v: got %+v, want untouched black", p, got)
		}
	}
}

func TestPreview_MaxEdgeDownscales(t *testing.T) {
	src := blackImage(200, 100)

	res, err := Preview(src, transform.New(), PreviewOptions{MaxEdge: 100})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if res.Width != 100 || res.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 100x50", res.Width, res.Height)
	}
}

func TestPreview_BadGuideColor(t *testing.T) {
	src := blackImage(50, 50)
	st := transform.New().WithCrop(&geom.Rect{X: 5, Y: 5, W: 20, H: 20})

	if _, err := Preview(src, st, PreviewOptions{GuideColor: "not-a-color"}); err == nil {
		t.Error("invalid guide color must be an error")
	}
}
