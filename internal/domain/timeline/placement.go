package timeline

import "math"

// SnapKind names the edge alignment a drag snapped to.
type SnapKind string

const (
	SnapNone         SnapKind = ""
	SnapStartToEnd   SnapKind = "start_to_end"
	SnapStartToStart SnapKind = "start_to_start"
	SnapEndToStart   SnapKind = "end_to_start"
	SnapEndToEnd     SnapKind = "end_to_end"
	SnapOrigin       SnapKind = "origin"
)

// SnapResult is the outcome of snap resolution for one proposed position.
type SnapResult struct {
	Start        float64
	Kind         SnapKind
	TargetClipID uint64
	// IndicatorPx is the pixel offset of the aligned edge. Nil when nothing snapped.
	IndicatorPx *float64
}

// Snapped reports whether an alignment was found.
func (r SnapResult) Snapped() bool {
	return r.Kind != SnapNone
}

// SnapTolerance converts the pixel snap distance to seconds at the given scale.
func SnapTolerance(pixelsPerSecond float64) float64 {
	return SnapTolerancePixels / pixelsPerSecond
}

// ResolveSnap aligns a moving clip of the given trimmed length to the nearest
// qualifying edge of the other clips.
//
// Other clips are scanned in sequence order and each one is tested for
// start-to-end, start-to-start, end-to-start and end-to-end alignment in that
// order. The first match wins even if a later one is closer. Track origin is
// considered only when no clip edge matched. A candidate that would place the
// clip before the origin is skipped.
func ResolveSnap(others []Clip, proposedStart, trimmed, pixelsPerSecond float64) SnapResult {
	tolerance := SnapTolerance(pixelsPerSecond)
	proposedEnd := proposedStart + trimmed

	within := func(a, b float64) bool {
		return math.Abs(a-b) <= tolerance
	}

	for _, other := range others {
		otherStart, otherEnd := other.StartTime, other.EndTime()

		candidates := [...]struct {
			match bool
			start float64
			edge  float64
			kind  SnapKind
		}{
			{within(proposedStart, otherEnd), otherEnd, otherEnd, SnapStartToEnd},
			{within(proposedStart, otherStart), otherStart, otherStart, SnapStartToStart},
			{within(proposedEnd, otherStart), otherStart - trimmed, otherStart, SnapEndToStart},
			{within(proposedEnd, otherEnd), otherEnd - trimmed, otherEnd, SnapEndToEnd},
		}

		for _, c := range candidates {
			if !c.match || c.start < 0 {
				continue
			}
			indicator := c.edge * pixelsPerSecond
			return SnapResult{
				Start:        c.start,
				Kind:         c.kind,
				TargetClipID: other.ID,
				IndicatorPx:  &indicator,
			}
		}
	}

	if math.Abs(proposedStart) <= tolerance {
		indicator := 0.0
		return SnapResult{Start: 0, Kind: SnapOrigin, IndicatorPx: &indicator}
	}

	return SnapResult{Start: proposedStart}
}

// MoveResult describes what a move request did.
type MoveResult struct {
	Clip      Clip
	Committed bool
	Snap      SnapResult
}

// collides reports whether candidate overlaps any clip other than skipID.
func collides(clips []Clip, skipID uint64, candidate Interval) bool {
	for _, c := range clips {
		if c.ID == skipID {
			continue
		}
		if Overlaps(candidate, c.Interval()) {
			return true
		}
	}
	return false
}

// othersExcept returns the clips in sequence order without skipID.
func othersExcept(clips []Clip, skipID uint64) []Clip {
	others := make([]Clip, 0, len(clips))
	for _, c := range clips {
		if c.ID != skipID {
			others = append(others, c)
		}
	}
	return others
}

// maxEnd is the furthest end time of any clip, or zero for an empty track.
func maxEnd(clips []Clip) float64 {
	end := 0.0
	for _, c := range clips {
		end = math.Max(end, c.EndTime())
	}
	return end
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
