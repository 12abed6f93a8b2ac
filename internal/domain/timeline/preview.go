package timeline

// Active is the clip under the play-head and the position inside its source.
type Active struct {
	Clip        Clip    `json:"clip"`
	MediaOffset float64 `json:"media_offset"`
	// Playable is false for stills, which have no transport of their own
	Playable bool `json:"playable"`
}

// ActiveClipAt returns the first clip in sequence order whose interval
// contains t. It reports false when t falls in a gap or past the end.
func (t *Timeline) ActiveClipAt(at float64) (Active, bool) {
	for _, c := range t.clips {
		if !c.Interval().Contains(at) {
			continue
		}
		return Active{
			Clip:        c,
			MediaOffset: c.TrimStart + (at - c.StartTime),
			Playable:    c.Trimmable(),
		}, true
	}
	return Active{}, false
}

// Preview resolves the clip under the current play-head
func (t *Timeline) Preview() (Active, bool) {
	return t.ActiveClipAt(t.currentTime)
}
