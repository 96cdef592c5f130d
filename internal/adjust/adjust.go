package adjust

import (
	"image"
	"image/color"
	"math"

	bildadjust "github.com/anthonynsimon/bild/adjust"

	"github.com/cropstudio/cropd/internal/geom"
)

// Epsilon is the tolerance under which an adjustment field counts as zero.
const Epsilon = 1e-4

// Adjustments holds the three tonal sliders, each in [-1, 1]. The zero
// value is the identity.
type Adjustments struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Curve      float64 `json:"curve"`
}

// IsDefault reports whether all three fields are within Epsilon of zero.
func (a Adjustments) IsDefault() bool {
	return math.Abs(a.Brightness) < Epsilon &&
		math.Abs(a.Contrast) < Epsilon &&
		math.Abs(a.Curve) < Epsilon
}

// CurveLUT builds the 256-entry tone curve lookup table for the given
// curve amount. The curve is a logistic sigmoid with steepness
// clamp(amount,-1,1)*8, rescaled so the endpoints map to 0 and 255. An
// amount within Epsilon of zero yields the identity table.
func CurveLUT(amount float64) [256]uint8 {
	var lut [256]uint8

	a := geom.Clamp(amount, -1, 1) * 8
	if math.Abs(a) < Epsilon {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}

	sigmoid := func(x float64) float64 {
		return 1 / (1 + math.Exp(-a*(x-0.5)))
	}
	lo := sigmoid(0)
	hi := sigmoid(1)

	for i := range lut {
		x := float64(i) / 255
		y := (sigmoid(x) - lo) / (hi - lo)
		lut[i] = uint8(math.Round(geom.Clamp(y, 0, 1) * 255))
	}
	return lut
}

// Apply returns a copy of img with the adjustments applied to every
// pixel's R, G and B channels: contrast then brightness, then the curve
// lookup when the curve amount is non-default.
func Apply(img image.Image, adj Adjustments) *image.RGBA {
	contrast := 1 + geom.Clamp(adj.Contrast, -1, 1)
	brightness := geom.Clamp(adj.Brightness, -1, 1) * 255

	useCurve := math.Abs(adj.Curve) >= Epsilon
	lut := CurveLUT(adj.Curve)

	channel := func(v uint8) uint8 {
		f := (float64(v)-128)*contrast + 128 + brightness
		out := uint8(math.Round(geom.Clamp(f, 0, 255)))
		if useCurve {
			out = lut[out]
		}
		return out
	}

	return bildadjust.Apply(img, func(c color.RGBA) color.RGBA {
		return color.RGBA{
			R: channel(c.R),
			G: channel(c.G),
			B: channel(c.B),
			A: c.A,
		}
	})
}
