package catalog

import (
	"github.com/google/uuid"

	"github.com/narwhalmedia/splice/internal/domain/events"
)

// AggregateType identifies catalog events on the wire
const AggregateType = "MediaRecord"

// Catalog event types
const (
	EventTypeMediaUploaded = "media.uploaded"
	EventTypeMediaRemoved  = "media.removed"
)

// MediaUploadedEvent is raised when a new record has been stored
type MediaUploadedEvent struct {
	events.BaseEvent
	Record *MediaRecord `json:"record"`
}

// NewMediaUploadedEvent creates a new media uploaded event
func NewMediaUploadedEvent(record *MediaRecord) *MediaUploadedEvent {
	return &MediaUploadedEvent{
		BaseEvent: events.NewBaseEvent(record.ID, AggregateType, EventTypeMediaUploaded, 1),
		Record:    record,
	}
}

// MediaRemovedEvent is raised when a record and its blob are deleted
type MediaRemovedEvent struct {
	events.BaseEvent
	MediaID uuid.UUID `json:"media_id"`
	Name    string    `json:"name"`
}

// NewMediaRemovedEvent creates a new media removed event
func NewMediaRemovedEvent(record *MediaRecord) *MediaRemovedEvent {
	return &MediaRemovedEvent{
		BaseEvent: events.NewBaseEvent(record.ID, AggregateType, EventTypeMediaRemoved, 2),
		MediaID:   record.ID,
		Name:      record.Name,
	}
}
