package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event represents something that happened to an aggregate
type Event interface {
	ID() uuid.UUID
	AggregateID() uuid.UUID
	AggregateType() string
	EventType() string
	Version() int
	CreatedAt() time.Time
	Metadata() map[string]interface{}
}

// BaseEvent provides common event functionality
type BaseEvent struct {
	id            uuid.UUID
	aggregateID   uuid.UUID
	aggregateType string
	eventType     string
	version       int
	createdAt     time.Time
	metadata      map[string]interface{}
}

// NewBaseEvent creates a new base event
func NewBaseEvent(aggregateID uuid.UUID, aggregateType, eventType string, version int) BaseEvent {
	return BaseEvent{
		id:            uuid.New(),
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		eventType:     eventType,
		version:       version,
		createdAt:     time.Now().UTC(),
		metadata:      make(map[string]interface{}),
	}
}

// ID returns the event ID
func (e BaseEvent) ID() uuid.UUID {
	return e.id
}

// AggregateID returns the aggregate ID
func (e BaseEvent) AggregateID() uuid.UUID {
	return e.aggregateID
}

// AggregateType returns the aggregate type
func (e BaseEvent) AggregateType() string {
	return e.aggregateType
}

// EventType returns the event type
func (e BaseEvent) EventType() string {
	return e.eventType
}

// Version returns the aggregate version the event was raised at
func (e BaseEvent) Version() int {
	return e.version
}

// CreatedAt returns the event creation time
func (e BaseEvent) CreatedAt() time.Time {
	return e.createdAt
}

// Metadata returns the event metadata
func (e BaseEvent) Metadata() map[string]interface{} {
	return e.metadata
}

// EventPublisher sends events to an external broker
type EventPublisher interface {
	PublishEvent(ctx context.Context, event Event) error
}

// Envelope wraps an event with transport metadata
type Envelope struct {
	ID            uuid.UUID              `json:"id"`
	AggregateID   uuid.UUID              `json:"aggregate_id"`
	AggregateType string                 `json:"aggregate_type"`
	EventType     string                 `json:"event_type"`
	Version       int                    `json:"version"`
	OccurredAt    time.Time              `json:"occurred_at"`
	Data          interface{}            `json:"data"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// ToEnvelope converts an event to an envelope for transport
func ToEnvelope(event Event) *Envelope {
	return &Envelope{
		ID:            event.ID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		EventType:     event.EventType(),
		Version:       event.Version(),
		OccurredAt:    event.CreatedAt(),
		Data:          event,
		Metadata:      event.Metadata(),
	}
}
