// Package export composes a loaded bitmap with its transform state and
// encodes the result.
//
// The composition order is fixed and load-bearing: tonal adjustments are
// applied to the full-resolution source first, then the quarter-turn
// orientation, then the flips, then the straighten rotation (which
// expands the canvas to its rotated bounding box), and finally the crop.
// Flips happen after orientation and before straighten; swapping any two
// of these steps changes the visual result.
//
// Crop rectangles arrive in display space (oriented plus straighten
// expansion), so the crop is a plain sub-rectangle copy of the composed
// canvas. Rounding to whole pixels happens here and nowhere else.
package export
