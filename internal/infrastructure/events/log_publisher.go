package events

import (
	"context"

	"go.uber.org/zap"

	"github.com/narwhalmedia/splice/internal/domain/events"
)

// LogPublisher writes events to the log when no broker is configured
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a new log-only publisher
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.Named("events")}
}

// PublishEvent implements events.EventPublisher
func (p *LogPublisher) PublishEvent(ctx context.Context, event events.Event) error {
	p.logger.Debug("event",
		zap.String("event_id", event.ID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Int("version", event.Version()),
	)
	return nil
}
