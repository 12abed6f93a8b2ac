package catalog

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/narwhalmedia/splice/internal/domain/timeline"
)

// FallbackSeconds is the duration given to stills and to files whose
// metadata could not be read
const FallbackSeconds = 5

// MediaRecord is an uploaded media file known to the catalog. Records are
// immutable once created.
type MediaRecord struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	Type            timeline.MediaType `json:"type"`
	Duration        string             `json:"duration"`
	DurationSeconds int                `json:"duration_seconds"`
	Size            int64              `json:"size"`
	SizeLabel       string             `json:"size_label"`
	MIMEType        string             `json:"mime_type"`
	StorageKey      string             `json:"storage_key"`
	SourceURL       string             `json:"source_url"`
	ThumbnailURL    string             `json:"thumbnail_url,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

// NewMediaRecord builds a record for a stored file. seconds is the probed
// length; it is truncated to whole seconds the way the catalog displays it,
// but never below one second so short files keep a usable duration. A
// missing or non-positive length gets FallbackSeconds.
func NewMediaRecord(name, mimeType string, size int64, seconds float64, storageKey, sourceURL string) *MediaRecord {
	whole := FallbackSeconds
	if !math.IsNaN(seconds) && !math.IsInf(seconds, 0) && seconds > 0 {
		whole = max(1, int(math.Floor(seconds)))
	}

	record := &MediaRecord{
		ID:              uuid.New(),
		Name:            name,
		Type:            TypeFromFilename(name),
		Duration:        timeline.FormatClock(float64(whole)),
		DurationSeconds: whole,
		Size:            size,
		SizeLabel:       FormatFileSize(size),
		MIMEType:        mimeType,
		StorageKey:      storageKey,
		SourceURL:       sourceURL,
		CreatedAt:       time.Now().UTC(),
	}
	if record.Type == timeline.MediaTypeImage {
		record.ThumbnailURL = sourceURL
	}
	return record
}

// MediaItem converts the record into the form the timeline consumes
func (r *MediaRecord) MediaItem() timeline.MediaItem {
	return timeline.MediaItem{
		ID:        r.ID.String(),
		Name:      r.Name,
		Type:      r.Type,
		Duration:  r.Duration,
		Size:      r.SizeLabel,
		URL:       r.SourceURL,
		Thumbnail: r.ThumbnailURL,
	}
}
