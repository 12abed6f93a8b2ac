// Package timelinev1 defines the wire messages and service descriptor of
// splice.timeline.v1.TimelineService. Messages travel as JSON using the
// "json" gRPC content-subtype registered by this package.
package timelinev1

import "time"

// Clip is one item on the track with its derived geometry
type Clip struct {
	ID              uint64  `json:"id"`
	MediaID         string  `json:"media_id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Thumbnail       string  `json:"thumbnail,omitempty"`
	Duration        float64 `json:"duration"`
	TrimStart       float64 `json:"trim_start"`
	TrimEnd         float64 `json:"trim_end"`
	StartTime       float64 `json:"start_time"`
	TrimmedDuration float64 `json:"trimmed_duration"`
	EndTime         float64 `json:"end_time"`
	PixelStart      float64 `json:"pixel_start"`
	PixelWidth      float64 `json:"pixel_width"`
}

// Timeline is a read-only view of the editor state
type Timeline struct {
	ID              string    `json:"id"`
	Version         int       `json:"version"`
	Clips           []*Clip   `json:"clips"`
	TotalDuration   float64   `json:"total_duration"`
	CurrentTime     float64   `json:"current_time"`
	IsPlaying       bool      `json:"is_playing"`
	PixelsPerSecond float64   `json:"pixels_per_second"`
	SnapIndicatorPx *float64  `json:"snap_indicator_px,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Media is a catalog record
type Media struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	Duration        string    `json:"duration"`
	DurationSeconds int       `json:"duration_seconds"`
	Size            int64     `json:"size"`
	SizeLabel       string    `json:"size_label"`
	MIMEType        string    `json:"mime_type"`
	SourceURL       string    `json:"source_url"`
	ThumbnailURL    string    `json:"thumbnail_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Preview describes what the preview surface should show at the play-head
type Preview struct {
	Active      bool    `json:"active"`
	At          float64 `json:"at"`
	Clip        *Clip   `json:"clip,omitempty"`
	MediaOffset float64 `json:"media_offset"`
	Playable    bool    `json:"playable"`
	SourceURL   string  `json:"source_url,omitempty"`
	IsPlaying   bool    `json:"is_playing"`
}

// Tick is one ruler mark
type Tick struct {
	Time  float64 `json:"time"`
	Pixel float64 `json:"pixel"`
	Kind  string  `json:"kind"`
	Label string  `json:"label,omitempty"`
}

type AddClipRequest struct {
	MediaID string `json:"media_id"`
}

type RemoveClipRequest struct {
	ClipID uint64 `json:"clip_id"`
}

// TrimClipRequest takes either the "M:SS.S" text fields or exact seconds.
// Seconds win when both are set.
type TrimClipRequest struct {
	ClipID       uint64   `json:"clip_id"`
	Start        string   `json:"start,omitempty"`
	End          string   `json:"end,omitempty"`
	StartSeconds *float64 `json:"start_seconds,omitempty"`
	EndSeconds   *float64 `json:"end_seconds,omitempty"`
}

type MoveClipRequest struct {
	ClipID        uint64  `json:"clip_id"`
	ProposedStart float64 `json:"proposed_start"`
}

type MoveClipResponse struct {
	Clip             *Clip     `json:"clip"`
	Committed        bool      `json:"committed"`
	SnapKind         string    `json:"snap_kind,omitempty"`
	SnapTargetClipID uint64    `json:"snap_target_clip_id,omitempty"`
	SnapIndicatorPx  *float64  `json:"snap_indicator_px,omitempty"`
	Timeline         *Timeline `json:"timeline"`
}

type SetCurrentTimeRequest struct {
	Seconds float64 `json:"seconds"`
}

type SetPlayingRequest struct {
	Playing bool `json:"playing"`
}

type SetPlayingResponse struct {
	IsPlaying bool `json:"is_playing"`
}

// SeekRequest moves the play-head. Kind is one of time, pixel,
// skip_backward, skip_forward, step_backward, step_forward.
type SeekRequest struct {
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
}

type PlayheadResponse struct {
	CurrentTime float64 `json:"current_time"`
}

type ClearRequest struct{}

type GetTimelineRequest struct{}

type GetPreviewRequest struct{}

type GetRulerRequest struct{}

type GetRulerResponse struct {
	Ticks []*Tick `json:"ticks"`
}

type ListMediaRequest struct{}

type ListMediaResponse struct {
	Media []*Media `json:"media"`
}

type RemoveMediaRequest struct {
	MediaID string `json:"media_id"`
}

type WatchTimelineRequest struct{}

type Empty struct{}
