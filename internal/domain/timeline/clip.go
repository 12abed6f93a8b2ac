package timeline

import "strings"

// MediaType is the kind of source media a clip plays
type MediaType string

const (
	MediaTypeVideo   MediaType = "video"
	MediaTypeAudio   MediaType = "audio"
	MediaTypeImage   MediaType = "image"
	MediaTypeUnknown MediaType = "unknown"
)

// ParseMediaType maps a producer's type string onto a MediaType.
func ParseMediaType(s string) MediaType {
	switch MediaType(strings.ToLower(strings.TrimSpace(s))) {
	case MediaTypeVideo:
		return MediaTypeVideo
	case MediaTypeAudio:
		return MediaTypeAudio
	case MediaTypeImage:
		return MediaTypeImage
	default:
		return MediaTypeUnknown
	}
}

// MediaItem is the record a media catalog hands to the timeline when a file
// is added to the track. Duration is the catalog's "MM:SS" string.
type MediaItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      MediaType `json:"type"`
	Duration  string    `json:"duration"`
	Size      string    `json:"size,omitempty"`
	URL       string    `json:"url,omitempty"`
	Thumbnail string    `json:"thumbnail,omitempty"`
}

// Clip is a placed, possibly trimmed instance of a media record on the track.
//
// Only StartTime, TrimStart, TrimEnd and Duration are stored; end time and
// pixel geometry are always computed from them.
type Clip struct {
	ID            uint64    `json:"id"`
	MediaRecordID string    `json:"media_record_id"`
	Name          string    `json:"name"`
	Type          MediaType `json:"type"`
	Thumbnail     string    `json:"thumbnail,omitempty"`
	Duration      float64   `json:"duration"`
	TrimStart     float64   `json:"trim_start"`
	TrimEnd       float64   `json:"trim_end"`
	StartTime     float64   `json:"start_time"`
}

// TrimmedDuration is the length of the active playback window.
func (c Clip) TrimmedDuration() float64 {
	return c.TrimEnd - c.TrimStart
}

// EndTime is the exclusive end of the clip on the track.
func (c Clip) EndTime() float64 {
	return c.StartTime + c.TrimmedDuration()
}

// Interval returns the half-open span the clip occupies on the track.
func (c Clip) Interval() Interval {
	return Interval{Start: c.StartTime, End: c.EndTime()}
}

// PixelStart is the left edge of the clip at the given scale.
func (c Clip) PixelStart(pixelsPerSecond float64) float64 {
	return c.StartTime * pixelsPerSecond
}

// PixelWidth is the rendered width of the clip at the given scale.
func (c Clip) PixelWidth(pixelsPerSecond float64) float64 {
	return c.TrimmedDuration() * pixelsPerSecond
}

// IsTrimmed reports whether the playback window differs from the full source.
func (c Clip) IsTrimmed() bool {
	return c.TrimStart != 0 || c.TrimEnd != c.Duration
}

// Trimmable reports whether the clip's source has a timeline of its own.
// Stills are shown for their whole duration.
func (c Clip) Trimmable() bool {
	return c.Type == MediaTypeVideo || c.Type == MediaTypeAudio
}

// Interval is a half-open [Start, End) range in seconds.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Contains reports whether t falls in [Start, End).
func (i Interval) Contains(t float64) bool {
	return t >= i.Start && t < i.End
}

// Overlaps reports whether two half-open intervals share any point.
// Intervals that only touch at an edge do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}
