package timeline

import (
	"time"

	"github.com/google/uuid"
)

// ClipView is a clip with its derived geometry resolved for readers.
type ClipView struct {
	Clip
	TrimmedDuration float64 `json:"trimmed_duration"`
	EndTime         float64 `json:"end_time"`
	PixelStart      float64 `json:"pixel_start"`
	PixelWidth      float64 `json:"pixel_width"`
}

// NewClipView resolves a clip's derived fields at the given scale
func NewClipView(c Clip, pixelsPerSecond float64) ClipView {
	return ClipView{
		Clip:            c,
		TrimmedDuration: c.TrimmedDuration(),
		EndTime:         c.EndTime(),
		PixelStart:      c.PixelStart(pixelsPerSecond),
		PixelWidth:      c.PixelWidth(pixelsPerSecond),
	}
}

// Snapshot is an immutable copy of the timeline state.
type Snapshot struct {
	ID              uuid.UUID  `json:"id"`
	Version         int        `json:"version"`
	Clips           []ClipView `json:"clips"`
	TotalDuration   float64    `json:"total_duration"`
	CurrentTime     float64    `json:"current_time"`
	IsPlaying       bool       `json:"is_playing"`
	PixelsPerSecond float64    `json:"pixels_per_second"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Snapshot returns a copy of the current state with derived clip geometry.
func (t *Timeline) Snapshot() Snapshot {
	views := make([]ClipView, len(t.clips))
	for i, c := range t.clips {
		views[i] = NewClipView(c, t.pixelsPerSecond)
	}
	return Snapshot{
		ID:              t.id,
		Version:         t.version,
		Clips:           views,
		TotalDuration:   t.totalDuration,
		CurrentTime:     t.currentTime,
		IsPlaying:       t.isPlaying,
		PixelsPerSecond: t.pixelsPerSecond,
		UpdatedAt:       t.updatedAt,
	}
}

// Clip returns the view of the clip with the given id
func (s Snapshot) Clip(id uint64) (ClipView, bool) {
	for _, c := range s.Clips {
		if c.ID == id {
			return c, true
		}
	}
	return ClipView{}, false
}
