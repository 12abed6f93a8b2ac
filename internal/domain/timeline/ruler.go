package timeline

import (
	"math"
	"sort"
)

// TickKind is the weight of a ruler tick
type TickKind string

const (
	TickMajor  TickKind = "major"
	TickMinor  TickKind = "minor"
	TickSecond TickKind = "second"
)

const (
	majorTickSeconds = 10
	minorTickSeconds = 5
	// secondTickMinScale is the scale at which per-second ticks become legible
	secondTickMinScale = 50.0
	// minRulerSeconds is the shortest span the ruler ever covers
	minRulerSeconds = 60.0
)

// Tick is one mark on the time ruler. Only major ticks carry a label.
type Tick struct {
	Time  float64  `json:"time"`
	Pixel float64  `json:"pixel"`
	Kind  TickKind `json:"kind"`
	Label string   `json:"label,omitempty"`
}

// Ruler lays out the time ruler above a track of the given length. It covers
// at least a minute so an empty track still has a scale.
func Ruler(totalDuration, pixelsPerSecond float64) []Tick {
	visible := math.Max(totalDuration, minRulerSeconds)
	var ticks []Tick

	majors := int(math.Ceil(visible/majorTickSeconds)) + 1
	for i := 0; i < majors; i++ {
		at := float64(i * majorTickSeconds)
		ticks = append(ticks, Tick{
			Time:  at,
			Pixel: at * pixelsPerSecond,
			Kind:  TickMajor,
			Label: FormatClock(at),
		})
	}

	minors := int(math.Ceil(visible/minorTickSeconds)) + 1
	for i := 0; i < minors; i++ {
		if (i*minorTickSeconds)%majorTickSeconds == 0 {
			continue
		}
		at := float64(i * minorTickSeconds)
		ticks = append(ticks, Tick{Time: at, Pixel: at * pixelsPerSecond, Kind: TickMinor})
	}

	if pixelsPerSecond >= secondTickMinScale {
		seconds := int(math.Ceil(visible))
		for i := 0; i <= seconds; i++ {
			if i%minorTickSeconds == 0 {
				continue
			}
			at := float64(i)
			ticks = append(ticks, Tick{Time: at, Pixel: at * pixelsPerSecond, Kind: TickSecond})
		}
	}

	sort.SliceStable(ticks, func(i, j int) bool {
		return ticks[i].Time < ticks[j].Time
	})
	return ticks
}

// Ruler lays out the ruler for the timeline's current length and scale
func (t *Timeline) Ruler() []Tick {
	return Ruler(t.totalDuration, t.pixelsPerSecond)
}
