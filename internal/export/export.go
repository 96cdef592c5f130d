package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/cropstudio/cropd/internal/adjust"
	"github.com/cropstudio/cropd/internal/geom"
	"github.com/cropstudio/cropd/internal/transform"
)

// Sentinel errors surfaced to the caller. Geometry problems never reach
// here; only resource failures do.
var (
	// ErrSurfaceCreation means no renderable output surface could be
	// produced (degenerate source or crop).
	ErrSurfaceCreation = errors.New("export: no renderable surface")

	// ErrEncodingFailed means the target encoder failed or produced no
	// output.
	ErrEncodingFailed = errors.New("export: encoding failed")

	// ErrUnsupportedFormat means the requested output format is not
	// recognized.
	ErrUnsupportedFormat = errors.New("export: unsupported format")
)

// Format is an output image MIME type.
type Format string

// Supported output formats.
const (
	FormatPNG  Format = "image/png"
	FormatJPEG Format = "image/jpeg"
	FormatWebP Format = "image/webp"
)

// ParseFormat accepts either a MIME type or a bare extension name
// ("png", "jpg", ...).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image/png", "png":
		return FormatPNG, nil
	case "image/jpeg", "jpeg", "jpg":
		return FormatJPEG, nil
	case "image/webp", "webp":
		return FormatWebP, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ext returns the filename extension for the format.
func (f Format) ext() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatWebP:
		return ".webp"
	default:
		return ".png"
	}
}

// Options configures an export call.
type Options struct {
	// Format selects the output encoding. Empty defaults to PNG.
	Format Format

	// Quality is the JPEG quality in [1,100]; ignored for other
	// formats. Zero defaults to 90.
	Quality int

	// BaseName seeds the suggested output filename; usually the loaded
	// image's display name. Its extension is replaced.
	BaseName string
}

// Result is the encoded output handed back to the platform layer.
type Result struct {
	Data     []byte `json:"-"`
	MimeType string `json:"mime_type"`
	FileName string `json:"file_name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Export composes src with the transform state and encodes the result.
func Export(src image.Image, st transform.State, opts Options) (*Result, error) {
	canvas, err := Compose(src, st)
	if err != nil {
		return nil, err
	}

	format := opts.Format
	if format == "" {
		format = FormatPNG
	}
	quality := opts.Quality
	if quality <= 0 {
		quality = 90
	}

	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		err = imaging.Encode(&buf, canvas, imaging.PNG)
	case FormatJPEG:
		err = imaging.Encode(&buf, canvas, imaging.JPEG, imaging.JPEGQuality(quality))
	case FormatWebP:
		err = webp.Encode(&buf, canvas, &webp.Options{Lossless: true})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodingFailed, err)
	}
	if buf.Len() == 0 {
		return nil, ErrEncodingFailed
	}

	b := canvas.Bounds()
	return &Result{
		Data:     buf.Bytes(),
		MimeType: string(format),
		FileName: suggestFileName(opts.BaseName, format),
		Width:    b.Dx(),
		Height:   b.Dy(),
	}, nil
}

// Compose renders src through the full transform pipeline and returns the
// final canvas, uncropped if the state carries no crop rect.
func Compose(src image.Image, st transform.State) (*image.NRGBA, error) {
	b := src.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		return nil, fmt.Errorf("%w: source is %dx%d", ErrSurfaceCreation, b.Dx(), b.Dy())
	}

	base := src
	if !st.Adjustments.IsDefault() {
		base = adjust.Apply(src, st.Adjustments)
	}

	canvas := orient(base, st.Rotation)
	if st.FlipH {
		canvas = imaging.FlipH(canvas)
	}
	if st.FlipV {
		canvas = imaging.FlipV(canvas)
	}
	if st.Straighten != 0 {
		// imaging.Rotate is counter-clockwise and grows the canvas to
		// the rotated bounding box; straighten is clockwise-positive.
		canvas = imaging.Rotate(canvas, -st.Straighten, color.NRGBA{})
	}

	if st.CropRect != nil {
		cb := canvas.Bounds()
		displayBounds := geom.Rect{W: float64(cb.Dx()), H: float64(cb.Dy())}
		r := geom.ClampRectEdges(*st.CropRect, displayBounds)

		x0 := int(math.Round(r.X))
		y0 := int(math.Round(r.Y))
		x1 := int(math.Round(r.Right()))
		y1 := int(math.Round(r.Bottom()))
		canvas = imaging.Crop(canvas, image.Rect(x0, y0, x1, y1))
		if canvas.Bounds().Empty() {
			return nil, fmt.Errorf("%w: crop %+v is empty", ErrSurfaceCreation, r)
		}
	}

	return canvas, nil
}

// orient applies the clockwise quarter-turn rotation. The imaging
// rotators are counter-clockwise, so 90 and 270 swap.
func orient(img image.Image, rot transform.Rotation) *image.NRGBA {
	switch rot {
	case transform.Rotate90:
		return imaging.Rotate270(img)
	case transform.Rotate180:
		return imaging.Rotate180(img)
	case transform.Rotate270:
		return imaging.Rotate90(img)
	default:
		return imaging.Clone(img)
	}
}

// suggestFileName derives the output filename from the source display
// name, marking the file as edited and replacing the extension.
func suggestFileName(base string, format Format) string {
	name := strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))
	if name == "" || name == "." {
		name = "untitled"
	}
	return name + "-edited" + format.ext()
}
