package server

// Method describes one editor method for methods/list.
type Method struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func schema(props map[string]interface{}, required ...string) map[string]interface{} {
	s := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func num(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": desc}
}

func str(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": desc}
}

func boolean(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "boolean", "description": desc}
}

// MethodCatalog returns all editor methods.
func MethodCatalog() []Method {
	return []Method{
		// Session lifecycle
		{
			Name:        "editor/open",
			Description: "Decode an image file and start a fresh editing session with empty history. Any previous session is discarded.",
			InputSchema: schema(map[string]interface{}{
				"path": str("Absolute path to the image file"),
			}, "path"),
		},
		{
			Name:        "editor/state",
			Description: "Return the committed transform state, undo/redo availability, display bounds and image metadata.",
			InputSchema: schema(map[string]interface{}{}),
		},
		{
			Name:        "editor/reset",
			Description: "Reset all edits to the identity state. The reset itself is undoable.",
			InputSchema: schema(map[string]interface{}{}),
		},

		// Gestures
		{
			Name:        "gesture/begin",
			Description: "Begin a pointer gesture. Exactly one gesture may be active at a time.",
			InputSchema: schema(map[string]interface{}{
				"kind":   str("Gesture kind: create, move, resize or pan"),
				"x":      num("Anchor X in display space (create only)"),
				"y":      num("Anchor Y in display space (create only)"),
				"handle": str("Resize handle: n, s, e, w, ne, nw, se or sw (resize only)"),
			}, "kind"),
		},
		{
			Name:        "gesture/update",
			Description: "Feed a pointer delta to the active gesture. Returns the draft rectangle and any snap guides; nothing is committed.",
			InputSchema: schema(map[string]interface{}{
				"dx":            num("Pointer delta X since the last update"),
				"dy":            num("Pointer delta Y since the last update"),
				"square":        boolean("Constrain to a 1:1 aspect; wins over aspect_preset"),
				"symmetric":     boolean("Grow and shrink around the rect center"),
				"aspect_preset": str("Aspect preset: free, 1:1, 3:2, 4:3, 16:9 or custom"),
				"custom_aspect": num("Width/height ratio used with the custom preset"),
			}),
		},
		{
			Name:        "gesture/commit",
			Description: "Commit the active gesture as one history entry. A create below the minimum size is discarded.",
			InputSchema: schema(map[string]interface{}{}),
		},
		{
			Name:        "gesture/cancel",
			Description: "Abandon the active gesture without touching history.",
			InputSchema: schema(map[string]interface{}{}),
		},

		// One-shot edits
		{
			Name:        "edit/rotate",
			Description: "Rotate by a clockwise quarter-turn delta, remapping any crop rectangle. Default 90.",
			InputSchema: schema(map[string]interface{}{
				"degrees": num("Clockwise degrees, a nonzero multiple of 90"),
			}),
		},
		{
			Name:        "edit/flip",
			Description: "Mirror the image, keeping any crop rectangle over the same content.",
			InputSchema: schema(map[string]interface{}{
				"axis": str("Flip axis: horizontal or vertical"),
			}, "axis"),
		},
		{
			Name:        "edit/crop",
			Description: "Apply a crop rectangle directly in display space, bypassing the gesture path.",
			InputSchema: schema(map[string]interface{}{
				"x": num("Left edge"),
				"y": num("Top edge"),
				"w": num("Width"),
				"h": num("Height"),
			}, "x", "y", "w", "h"),
		},
		{
			Name:        "edit/clear_crop",
			Description: "Remove the crop rectangle.",
			InputSchema: schema(map[string]interface{}{}),
		},

		// Sliders
		{
			Name:        "slider/begin",
			Description: "Begin a live slider drag. Updates preview without creating history entries.",
			InputSchema: schema(map[string]interface{}{
				"slider": str("Slider: straighten, brightness, contrast or curve"),
			}, "slider"),
		},
		{
			Name:        "slider/update",
			Description: "Preview a slider value. Straighten is clamped to ±15 degrees, tonal sliders to ±1.",
			InputSchema: schema(map[string]interface{}{
				"value": num("New slider value"),
			}, "value"),
		},
		{
			Name:        "slider/end",
			Description: "Commit the slider drag as a single history entry; a drag back to the starting value commits nothing.",
			InputSchema: schema(map[string]interface{}{}),
		},

		// History
		{
			Name:        "history/undo",
			Description: "Step back one history entry. A no-op when nothing can be undone.",
			InputSchema: schema(map[string]interface{}{}),
		},
		{
			Name:        "history/redo",
			Description: "Re-apply the most recently undone entry. A no-op when nothing can be redone.",
			InputSchema: schema(map[string]interface{}{}),
		},

		// Export
		{
			Name:        "export/render",
			Description: "Render the committed state through the full pipeline (adjustments, orientation, flips, straighten, crop) and encode it. Writes to path when given, otherwise returns base64 data.",
			InputSchema: schema(map[string]interface{}{
				"format":  str("Output format: image/png, image/jpeg or image/webp (also accepts bare extensions). Defaults from config"),
				"quality": num("JPEG quality 1-100. Defaults from config"),
				"path":    str("Optional output file path"),
			}),
		},
		{
			Name:        "export/preview",
			Description: "Render the uncropped canvas with the crop outline (and optional thirds grid) drawn on top, base64 PNG.",
			InputSchema: schema(map[string]interface{}{
				"max_edge":    num("Cap the longer preview edge in pixels; 0 means no cap"),
				"show_thirds": boolean("Draw the rule-of-thirds grid. Defaults from config"),
				"guide_color": str("Outline color as #rrggbb. Defaults from config"),
			}),
		},
	}
}
