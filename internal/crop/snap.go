package crop

import (
	"math"

	"github.com/cropstudio/cropd/internal/geom"
)

// SnapMode selects which candidate positions of the rect may snap.
type SnapMode string

const (
	// SnapMove offers the rect's edges and center on both axes; the
	// whole rect shifts to align.
	SnapMove SnapMode = "move"
	// SnapResize offers only the edges implicated by the active handle;
	// the opposite edge stays put, so the rect's size changes.
	SnapResize SnapMode = "resize"
)

// GuideKind classifies the target a candidate snapped to.
type GuideKind string

const (
	GuideEdge   GuideKind = "edge"
	GuideCenter GuideKind = "center"
	GuideThird  GuideKind = "third"
)

// Axis names the axis a guide aligns on.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Guide is an alignment line produced while a gesture is active. Guides
// are ephemeral rendering hints and are never persisted.
type Guide struct {
	Axis  Axis      `json:"axis"`
	Value float64   `json:"value"`
	Kind  GuideKind `json:"kind"`
}

// snapTarget is one of the five fixed per-axis positions a candidate may
// align to: both edges, both thirds, and the center of bounds.
type snapTarget struct {
	value float64
	kind  GuideKind
}

func axisTargets(origin, size float64) [5]snapTarget {
	return [5]snapTarget{
		{origin, GuideEdge},
		{origin + size/3, GuideThird},
		{origin + size/2, GuideCenter},
		{origin + 2*size/3, GuideThird},
		{origin + size, GuideEdge},
	}
}

// snapCandidate is a position on the rect that may align with a target.
// lo/hi flag which edge it represents so resize snaps know which edge to
// move; a center candidate has neither set.
type snapCandidate struct {
	value float64
	isLo  bool
	isHi  bool
}

// Snap aligns r against the fixed targets of bounds. For each axis
// independently it finds the candidate/target pair with the smallest
// distance within threshold; if one exists the rect is shifted (move) or
// its implicated edge adjusted (resize) so the pair aligns exactly, and a
// guide is emitted at the aligned value. At most one guide per axis. Axes
// with no pair inside the threshold pass through unchanged.
func Snap(r, bounds geom.Rect, threshold float64, mode SnapMode, handle Handle) (geom.Rect, []Guide) {
	if threshold <= 0 {
		return r, nil
	}

	var xCands, yCands []snapCandidate
	if mode == SnapResize {
		if handle.hasW() {
			xCands = append(xCands, snapCandidate{r.X, true, false})
		}
		if handle.hasE() {
			xCands = append(xCands, snapCandidate{r.Right(), false, true})
		}
		if handle.hasN() {
			yCands = append(yCands, snapCandidate{r.Y, true, false})
		}
		if handle.hasS() {
			yCands = append(yCands, snapCandidate{r.Bottom(), false, true})
		}
	} else {
		xCands = []snapCandidate{
			{r.X, true, false},
			{r.Center().X, false, false},
			{r.Right(), false, true},
		}
		yCands = []snapCandidate{
			{r.Y, true, false},
			{r.Center().Y, false, false},
			{r.Bottom(), false, true},
		}
	}

	var guides []Guide

	if cand, target, ok := bestPair(xCands, axisTargets(bounds.X, bounds.W), threshold); ok {
		r = applySnapX(r, cand, target.value, mode)
		guides = append(guides, Guide{Axis: AxisX, Value: target.value, Kind: target.kind})
	}
	if cand, target, ok := bestPair(yCands, axisTargets(bounds.Y, bounds.H), threshold); ok {
		r = applySnapY(r, cand, target.value, mode)
		guides = append(guides, Guide{Axis: AxisY, Value: target.value, Kind: target.kind})
	}

	return r, guides
}

// bestPair returns the candidate/target pair minimizing the alignment
// distance, provided the minimum is within threshold.
func bestPair(cands []snapCandidate, targets [5]snapTarget, threshold float64) (snapCandidate, snapTarget, bool) {
	best := threshold
	var bc snapCandidate
	var bt snapTarget
	found := false

	for _, c := range cands {
		for _, t := range targets {
			if d := math.Abs(t.value - c.value); d <= best {
				best = d
				bc, bt = c, t
				found = true
			}
		}
	}
	return bc, bt, found
}

func applySnapX(r geom.Rect, c snapCandidate, target float64, mode SnapMode) geom.Rect {
	if mode == SnapResize {
		// Move only the snapped edge; skip if that would collapse the
		// rect below the minimum size.
		if c.isLo {
			if r.Right()-target >= geom.MinRectSize {
				r.W = r.Right() - target
				r.X = target
			}
		} else if c.isHi {
			if target-r.X >= geom.MinRectSize {
				r.W = target - r.X
			}
		}
		return r
	}
	r.X += target - c.value
	return r
}

func applySnapY(r geom.Rect, c snapCandidate, target float64, mode SnapMode) geom.Rect {
	if mode == SnapResize {
		if c.isLo {
			if r.Bottom()-target >= geom.MinRectSize {
				r.H = r.Bottom() - target
				r.Y = target
			}
		} else if c.isHi {
			if target-r.Y >= geom.MinRectSize {
				r.H = target - r.Y
			}
		}
		return r
	}
	r.Y += target - c.value
	return r
}
