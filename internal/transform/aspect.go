package transform

import "fmt"

// Aspect preset identifiers recognized by the configuration surface.
const (
	AspectFree   = "free"
	AspectSquare = "1:1"
	Aspect3x2    = "3:2"
	Aspect4x3    = "4:3"
	Aspect16x9   = "16:9"
	AspectCustom = "custom"
)

// aspectRatios maps preset identifiers to fixed width/height ratios.
// Zero means unconstrained.
var aspectRatios = map[string]float64{
	AspectFree:   0,
	AspectSquare: 1,
	Aspect3x2:    1.5,
	Aspect4x3:    1.333,
	Aspect16x9:   1.778,
}

// AspectForPreset resolves a preset identifier to its ratio. The custom
// preset resolves to customRatio (non-positive meaning unconstrained).
// Unknown identifiers are an error.
func AspectForPreset(preset string, customRatio float64) (float64, error) {
	if preset == AspectCustom {
		if customRatio <= 0 {
			return 0, nil
		}
		return customRatio, nil
	}
	ratio, ok := aspectRatios[preset]
	if !ok {
		return 0, fmt.Errorf("unknown aspect preset: %s", preset)
	}
	return ratio, nil
}
