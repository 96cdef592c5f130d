// Package session owns the live editing state for one loaded image: the
// undo/redo history of transform states, the single active pointer
// gesture, and the live slider previews that squash into one history
// entry on release.
//
// The active gesture is a closed sum type, so creating, moving, resizing,
// and panning are mutually exclusive by construction. Beginning a gesture
// while another is active is an error; the caller serializes pointer
// events, and a Session is not safe for concurrent use.
//
// History is created fresh when an image is loaded and never persisted.
// Durable edits (crop apply, rotate, flip, reset) go through the history
// container; slider drags replace the present value in place and commit
// once on release, with the pre-gesture state as the sole undo entry.
package session
