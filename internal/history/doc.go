// Package history implements a generic linear undo/redo container.
//
// A history is three ordered sequences: past (oldest first), present, and
// future (next redo first). Every operation returns a new value and never
// mutates its input, so each state is a plain comparable value and callers
// can squash live-preview updates by rebuilding the container around a
// base state.
package history
