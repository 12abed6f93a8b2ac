package timeline

const (
	// PlaybackQuantum is how far the play-head moves per clock tick
	PlaybackQuantum = 0.1
	// SkipSeconds is the distance of the skip back/forward controls
	SkipSeconds = 10.0
	// StepSeconds is the distance of a single-step seek
	StepSeconds = 1.0
)

// Advance moves the play-head forward by quantum while playing. Reaching the
// end of the track clamps the play-head there and stops playback. It reports
// whether playback is still running afterwards.
func (t *Timeline) Advance(quantum float64) bool {
	if !t.isPlaying {
		return false
	}
	if len(t.clips) == 0 {
		t.isPlaying = false
		return false
	}

	next := t.currentTime + quantum
	if next >= t.totalDuration {
		t.currentTime = t.totalDuration
		t.isPlaying = false
		return false
	}
	t.currentTime = next
	return true
}

// SkipBackward moves the play-head back by SkipSeconds
func (t *Timeline) SkipBackward() float64 {
	return t.SetCurrentTime(t.currentTime - SkipSeconds)
}

// SkipForward moves the play-head forward by SkipSeconds
func (t *Timeline) SkipForward() float64 {
	return t.SetCurrentTime(t.currentTime + SkipSeconds)
}

// Step moves the play-head one StepSeconds in the direction of dir.
// A zero direction leaves it in place.
func (t *Timeline) Step(dir int) float64 {
	switch {
	case dir > 0:
		return t.SetCurrentTime(t.currentTime + StepSeconds)
	case dir < 0:
		return t.SetCurrentTime(t.currentTime - StepSeconds)
	default:
		return t.currentTime
	}
}

// SeekToPixel moves the play-head to the time under a track pixel offset
func (t *Timeline) SeekToPixel(px float64) float64 {
	return t.SetCurrentTime(px / t.pixelsPerSecond)
}
