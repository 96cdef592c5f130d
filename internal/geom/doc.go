// Package geom provides the rectangle and point primitives the crop editor
// is built on.
//
// All values are in image-space units with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward. Coordinates are float64
// so that sub-pixel gesture deltas accumulate without rounding; rounding to
// pixel boundaries happens only at the export boundary.
//
// Every function is pure: inputs are never mutated and results are plain
// values, so callers can compare states structurally.
package geom
