// Package crop implements the crop-rectangle manipulation engine: moving
// and resizing a selection rectangle under simultaneous constraints
// (minimum size, aspect lock, symmetric versus anchored resize, bounds
// clamping), axis-aligned snapping against guide targets, and remapping of
// rectangles across quarter-turn rotations of the canvas.
//
// # Coordinate System
//
// Rectangles are expressed in display space: the image after its
// quarter-turn orientation and straighten expansion have been applied.
// Callers convert pointer positions from screen space before calling in.
//
// # Error Handling
//
// Nothing in this package returns an error. Degenerate input (zero-size
// rects, inverted drags, handles pushed past bounds, non-positive aspect
// ratios) is recovered locally by clamping and normalizing, so a gesture
// can never produce an invalid rectangle.
package crop
