// Package server implements the JSON-RPC 2.0 service that exposes the
// crop editor to platform shells.
//
// # Protocol
//
// The server communicates over stdio:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Reserved methods:
//   - initialize: handshake, returns server info
//   - methods/list: enumerate the editor methods
//   - ping: health check
//
// # Editor methods
//
// Session lifecycle:
//   - editor/open: decode an image and start a fresh session
//   - editor/state: current state plus undo/redo availability
//   - editor/reset: undoable reset to the identity state
//
// Gestures (one at a time; drafts live outside history until commit):
//   - gesture/begin, gesture/update, gesture/commit, gesture/cancel
//
// One-shot edits:
//   - edit/rotate, edit/flip, edit/crop, edit/clear_crop
//
// Sliders (live preview, squashed to one history entry on end):
//   - slider/begin, slider/update, slider/end
//
// History:
//   - history/undo, history/redo
//
// Output:
//   - export/render: full-pipeline render, written to disk or returned
//     base64-encoded
//   - export/preview: uncropped render with the crop outline drawn on top
package server
