package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/cropstudio/cropd/internal/geom"
	"github.com/cropstudio/cropd/internal/transform"
)

// PreviewOptions configures a guide-overlay preview render.
type PreviewOptions struct {
	// GuideColor is the crop outline color as "#rrggbb". Empty defaults
	// to white.
	GuideColor string

	// ShowThirds draws the rule-of-thirds grid inside the crop rect.
	ShowThirds bool

	// MaxEdge caps the longer preview edge in pixels; the canvas is
	// downscaled to fit. Zero means no cap.
	MaxEdge int
}

// Preview composes the current state without applying the crop, draws the
// crop outline and optional thirds grid on top, and encodes the result as
// PNG. It is a rendering aid for clients that do not paint their own
// guides.
func Preview(src image.Image, st transform.State, opts PreviewOptions) (*Result, error) {
	cropRect := st.CropRect
	st.CropRect = nil

	canvas, err := Compose(src, st)
	if err != nil {
		return nil, err
	}

	scale := 1.0
	if opts.MaxEdge > 0 {
		b := canvas.Bounds()
		longest := b.Dx()
		if b.Dy() > longest {
			longest = b.Dy()
		}
		if longest > opts.MaxEdge {
			scale = float64(opts.MaxEdge) / float64(longest)
			canvas = imaging.Resize(canvas, int(float64(b.Dx())*scale), 0, imaging.Lanczos)
		}
	}

	if cropRect != nil {
		line, thirds, err := guideColors(opts.GuideColor)
		if err != nil {
			return nil, err
		}

		r := scaledRect(*cropRect, scale)
		if opts.ShowThirds {
			drawVLine(canvas, r.X+r.W/3, r.Y, r.Bottom(), thirds)
			drawVLine(canvas, r.X+2*r.W/3, r.Y, r.Bottom(), thirds)
			drawHLine(canvas, r.Y+r.H/3, r.X, r.Right(), thirds)
			drawHLine(canvas, r.Y+2*r.H/3, r.X, r.Right(), thirds)
		}
		drawVLine(canvas, r.X, r.Y, r.Bottom(), line)
		drawVLine(canvas, r.Right(), r.Y, r.Bottom(), line)
		drawHLine(canvas, r.Y, r.X, r.Right(), line)
		drawHLine(canvas, r.Bottom(), r.X, r.Right(), line)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingFailed, err)
	}

	b := canvas.Bounds()
	return &Result{
		Data:     buf.Bytes(),
		MimeType: string(FormatPNG),
		FileName: suggestFileName("preview", FormatPNG),
		Width:    b.Dx(),
		Height:   b.Dy(),
	}, nil
}

// guideColors parses the configured hex color and derives a softer
// variant for the thirds grid by blending toward white in Lab space.
func guideColors(hex string) (color.NRGBA, color.NRGBA, error) {
	if hex == "" {
		hex = "#ffffff"
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, color.NRGBA{}, fmt.Errorf("invalid guide color %q: %w", hex, err)
	}

	soft := c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.4)

	lr, lg, lb := c.RGB255()
	sr, sg, sb := soft.Clamped().RGB255()
	return color.NRGBA{R: lr, G: lg, B: lb, A: 255},
		color.NRGBA{R: sr, G: sg, B: sb, A: 255},
		nil
}

func scaledRect(r geom.Rect, scale float64) geom.Rect {
	return geom.Rect{X: r.X * scale, Y: r.Y * scale, W: r.W * scale, H: r.H * scale}
}

func drawVLine(img *image.NRGBA, x, y0, y1 float64, c color.NRGBA) {
	b := img.Bounds()
	xi := clampInt(int(math.Round(x)), b.Min.X, b.Max.X-1)
	for y := clampInt(int(math.Round(y0)), b.Min.Y, b.Max.Y-1); y <= clampInt(int(math.Round(y1)), b.Min.Y, b.Max.Y-1); y++ {
		img.SetNRGBA(xi, y, c)
	}
}

func drawHLine(img *image.NRGBA, y, x0, x1 float64, c color.NRGBA) {
	b := img.Bounds()
	yi := clampInt(int(math.Round(y)), b.Min.Y, b.Max.Y-1)
	for x := clampInt(int(math.Round(x0)), b.Min.X, b.Max.X-1); x <= clampInt(int(math.Round(x1)), b.Min.X, b.Max.X-1); x++ {
		img.SetNRGBA(x, yi, c)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
