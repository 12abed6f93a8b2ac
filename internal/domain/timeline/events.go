package timeline

import (
	"github.com/narwhalmedia/splice/internal/domain/events"
)

// AggregateType identifies timeline events on the wire
const AggregateType = "Timeline"

// Timeline event types
const (
	EventTypeClipAdded       = "clip.added"
	EventTypeClipRemoved     = "clip.removed"
	EventTypeClipTrimmed     = "clip.trimmed"
	EventTypeClipMoved       = "clip.moved"
	EventTypeTimelineCleared = "timeline.cleared"
	EventTypePlaybackStarted = "playback.started"
	EventTypePlaybackStopped = "playback.stopped"
)

// Reasons carried by PlaybackStoppedEvent
const (
	StopReasonPaused   = "paused"
	StopReasonEnded    = "ended"
	StopReasonEmptied  = "emptied"
	StopReasonShutdown = "shutdown"
)

func newBase(t *Timeline, eventType string) events.BaseEvent {
	return events.NewBaseEvent(t.id, AggregateType, eventType, t.version)
}

// ClipAddedEvent is raised when a media item is placed on the track
type ClipAddedEvent struct {
	events.BaseEvent
	Clip          Clip    `json:"clip"`
	TotalDuration float64 `json:"total_duration"`
}

// NewClipAddedEvent creates a new clip added event
func NewClipAddedEvent(t *Timeline, clip Clip) *ClipAddedEvent {
	return &ClipAddedEvent{
		BaseEvent:     newBase(t, EventTypeClipAdded),
		Clip:          clip,
		TotalDuration: t.totalDuration,
	}
}

// ClipRemovedEvent is raised when a clip is deleted from the track
type ClipRemovedEvent struct {
	events.BaseEvent
	ClipID        uint64  `json:"clip_id"`
	MediaRecordID string  `json:"media_record_id"`
	TotalDuration float64 `json:"total_duration"`
}

// NewClipRemovedEvent creates a new clip removed event
func NewClipRemovedEvent(t *Timeline, clip Clip) *ClipRemovedEvent {
	return &ClipRemovedEvent{
		BaseEvent:     newBase(t, EventTypeClipRemoved),
		ClipID:        clip.ID,
		MediaRecordID: clip.MediaRecordID,
		TotalDuration: t.totalDuration,
	}
}

// ClipTrimmedEvent is raised when a clip's playback window changes
type ClipTrimmedEvent struct {
	events.BaseEvent
	Clip              Clip    `json:"clip"`
	PreviousTrimStart float64 `json:"previous_trim_start"`
	PreviousTrimEnd   float64 `json:"previous_trim_end"`
	TotalDuration     float64 `json:"total_duration"`
}

// NewClipTrimmedEvent creates a new clip trimmed event
func NewClipTrimmedEvent(t *Timeline, before, after Clip) *ClipTrimmedEvent {
	return &ClipTrimmedEvent{
		BaseEvent:         newBase(t, EventTypeClipTrimmed),
		Clip:              after,
		PreviousTrimStart: before.TrimStart,
		PreviousTrimEnd:   before.TrimEnd,
		TotalDuration:     t.totalDuration,
	}
}

// ClipMovedEvent is raised when a move is committed
type ClipMovedEvent struct {
	events.BaseEvent
	ClipID    uint64   `json:"clip_id"`
	From      float64  `json:"from"`
	To        float64  `json:"to"`
	Snap      SnapKind `json:"snap,omitempty"`
	SnappedTo uint64   `json:"snapped_to,omitempty"`
}

// NewClipMovedEvent creates a new clip moved event
func NewClipMovedEvent(t *Timeline, from float64, result MoveResult) *ClipMovedEvent {
	return &ClipMovedEvent{
		BaseEvent: newBase(t, EventTypeClipMoved),
		ClipID:    result.Clip.ID,
		From:      from,
		To:        result.Clip.StartTime,
		Snap:      result.Snap.Kind,
		SnappedTo: result.Snap.TargetClipID,
	}
}

// TimelineClearedEvent is raised when every clip is removed at once
type TimelineClearedEvent struct {
	events.BaseEvent
	RemovedClips int `json:"removed_clips"`
}

// NewTimelineClearedEvent creates a new timeline cleared event
func NewTimelineClearedEvent(t *Timeline, removed int) *TimelineClearedEvent {
	return &TimelineClearedEvent{
		BaseEvent:    newBase(t, EventTypeTimelineCleared),
		RemovedClips: removed,
	}
}

// PlaybackStartedEvent is raised when the clock starts
type PlaybackStartedEvent struct {
	events.BaseEvent
	At float64 `json:"at"`
}

// NewPlaybackStartedEvent creates a new playback started event
func NewPlaybackStartedEvent(t *Timeline) *PlaybackStartedEvent {
	return &PlaybackStartedEvent{
		BaseEvent: newBase(t, EventTypePlaybackStarted),
		At:        t.currentTime,
	}
}

// PlaybackStoppedEvent is raised when the clock stops for any reason
type PlaybackStoppedEvent struct {
	events.BaseEvent
	At     float64 `json:"at"`
	Reason string  `json:"reason"`
}

// NewPlaybackStoppedEvent creates a new playback stopped event
func NewPlaybackStoppedEvent(t *Timeline, reason string) *PlaybackStoppedEvent {
	return &PlaybackStoppedEvent{
		BaseEvent: newBase(t, EventTypePlaybackStopped),
		At:        t.currentTime,
		Reason:    reason,
	}
}
