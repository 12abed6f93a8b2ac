package timeline

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultPixelsPerSecond is the horizontal scale of the track
	DefaultPixelsPerSecond = 100.0
	// SnapTolerancePixels is how close, on screen, two edges must be to snap
	SnapTolerancePixels = 10.0
	// DefaultClipSeconds is used when a media item carries no usable duration
	DefaultClipSeconds = 30.0
)

// Timeline is the single-track editing aggregate. It is not safe for
// concurrent use; callers serialise access.
type Timeline struct {
	id              uuid.UUID
	version         int
	createdAt       time.Time
	updatedAt       time.Time
	clips           []Clip
	totalDuration   float64
	currentTime     float64
	isPlaying       bool
	pixelsPerSecond float64
	nextID          uint64
}

// Option configures a new Timeline
type Option func(*Timeline)

// WithPixelsPerSecond sets the track scale. Non-positive values are ignored.
func WithPixelsPerSecond(pps float64) Option {
	return func(t *Timeline) {
		if finite(pps) && pps > 0 {
			t.pixelsPerSecond = pps
		}
	}
}

// WithID sets the timeline id instead of generating one
func WithID(id uuid.UUID) Option {
	return func(t *Timeline) {
		t.id = id
	}
}

// New creates an empty timeline
func New(opts ...Option) *Timeline {
	now := time.Now()
	t := &Timeline{
		id:              uuid.New(),
		version:         1,
		createdAt:       now,
		updatedAt:       now,
		clips:           make([]Clip, 0),
		pixelsPerSecond: DefaultPixelsPerSecond,
		nextID:          1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID returns the timeline id
func (t *Timeline) ID() uuid.UUID { return t.id }

// Version returns the number of committed changes plus one
func (t *Timeline) Version() int { return t.version }

// UpdatedAt returns the time of the last committed change
func (t *Timeline) UpdatedAt() time.Time { return t.updatedAt }

// TotalDuration returns the furthest clip end on the track
func (t *Timeline) TotalDuration() float64 { return t.totalDuration }

// CurrentTime returns the play-head position
func (t *Timeline) CurrentTime() float64 { return t.currentTime }

// IsPlaying reports whether playback is running
func (t *Timeline) IsPlaying() bool { return t.isPlaying }

// PixelsPerSecond returns the track scale
func (t *Timeline) PixelsPerSecond() float64 { return t.pixelsPerSecond }

// Len returns the number of clips
func (t *Timeline) Len() int { return len(t.clips) }

// Empty reports whether the track holds no clips
func (t *Timeline) Empty() bool { return len(t.clips) == 0 }

// Clips returns a copy of the clips in sequence order
func (t *Timeline) Clips() []Clip {
	out := make([]Clip, len(t.clips))
	copy(out, t.clips)
	return out
}

// Clip returns the clip with the given id
func (t *Timeline) Clip(id uint64) (Clip, error) {
	i := t.indexOf(id)
	if i < 0 {
		return Clip{}, ErrClipNotFound
	}
	return t.clips[i], nil
}

// AddClip appends a new clip built from item at the current end of the track.
// The clip plays the whole source: trim covers [0, duration).
func (t *Timeline) AddClip(item MediaItem) Clip {
	duration := ClipSeconds(item.Duration)

	clip := Clip{
		ID:            t.nextID,
		MediaRecordID: item.ID,
		Name:          item.Name,
		Type:          item.Type,
		Thumbnail:     item.Thumbnail,
		Duration:      duration,
		TrimStart:     0,
		TrimEnd:       duration,
		StartTime:     t.totalDuration,
	}
	if clip.Type == "" {
		clip.Type = MediaTypeUnknown
	}
	t.nextID++

	t.clips = append(t.clips, clip)
	t.totalDuration = clip.EndTime()
	t.touch()
	return clip
}

// RemoveClip deletes a clip. Later clips keep their positions, so a gap may
// remain where the clip used to be.
func (t *Timeline) RemoveClip(id uint64) (Clip, error) {
	i := t.indexOf(id)
	if i < 0 {
		return Clip{}, ErrClipNotFound
	}
	removed := t.clips[i]

	t.clips = append(t.clips[:i], t.clips[i+1:]...)
	t.setTotalDuration(maxEnd(t.clips))
	t.touch()
	return removed, nil
}

// Trim changes a clip's playback window. The clip's track position shifts
// by the same amount the window start moved, so the retained media stays
// where it was on the track. Neighbouring clips are not checked.
func (t *Timeline) Trim(id uint64, trimStart, trimEnd float64) (Clip, error) {
	i := t.indexOf(id)
	if i < 0 {
		return Clip{}, ErrClipNotFound
	}
	clip := t.clips[i]

	if err := validateTrimBounds(trimStart, trimEnd, clip.Duration); err != nil {
		return Clip{}, err
	}

	delta := trimStart - clip.TrimStart
	clip.StartTime += delta
	clip.TrimStart = trimStart
	clip.TrimEnd = trimEnd

	t.clips[i] = clip
	t.setTotalDuration(maxEnd(t.clips))
	t.touch()
	return clip, nil
}

// Move repositions a clip at proposedStart after snapping it to nearby edges.
// A position that would overlap another clip is rejected: the result is not
// committed and the timeline is left unchanged.
func (t *Timeline) Move(id uint64, proposedStart float64) (MoveResult, error) {
	i := t.indexOf(id)
	if i < 0 {
		return MoveResult{}, ErrClipNotFound
	}
	if !finite(proposedStart) {
		return MoveResult{}, NewValidationError(FieldPosition, ErrInvalidPosition.Error())
	}
	clip := t.clips[i]
	trimmed := clip.TrimmedDuration()

	proposedStart = math.Max(0, proposedStart)
	snap := ResolveSnap(othersExcept(t.clips, id), proposedStart, trimmed, t.pixelsPerSecond)

	candidate := Interval{Start: snap.Start, End: snap.Start + trimmed}
	if collides(t.clips, id, candidate) {
		return MoveResult{Clip: clip, Committed: false}, nil
	}

	clip.StartTime = snap.Start
	t.clips[i] = clip
	t.totalDuration = math.Max(t.totalDuration, clip.EndTime())
	t.touch()
	return MoveResult{Clip: clip, Committed: true, Snap: snap}, nil
}

// SetCurrentTime moves the play-head, clamped to [0, total duration].
// It returns the position actually applied.
func (t *Timeline) SetCurrentTime(seconds float64) float64 {
	t.currentTime = clamp(seconds, 0, t.totalDuration)
	return t.currentTime
}

// SetIsPlaying sets the playback flag
func (t *Timeline) SetIsPlaying(playing bool) {
	t.isPlaying = playing
}

// Clear removes every clip and resets the play-head. Clip ids keep counting
// so ids are never reused within a timeline.
func (t *Timeline) Clear() {
	t.clips = make([]Clip, 0)
	t.totalDuration = 0
	t.currentTime = 0
	t.isPlaying = false
	t.touch()
}

func (t *Timeline) indexOf(id uint64) int {
	for i, c := range t.clips {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// setTotalDuration updates the track length and pulls the play-head back
// inside it when the track shrank.
func (t *Timeline) setTotalDuration(total float64) {
	t.totalDuration = total
	if t.currentTime > total {
		t.currentTime = total
	}
}

func (t *Timeline) touch() {
	t.version++
	t.updatedAt = time.Now()
}
