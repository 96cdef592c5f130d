// Package transform defines the persisted editor document: the crop
// rectangle, quarter-turn rotation, straighten angle, flips, and tonal
// adjustments, together with the pure state transitions that keep an
// applied crop rectangle valid across rotate and flip actions.
//
// Crop rectangles live in display space: the image after its clockwise
// quarter-turn orientation, expanded to the bounding box of the
// straighten rotation. Screen space and source pixel space are always
// derived at the boundary, never stored.
package transform
