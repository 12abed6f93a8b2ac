package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/narwhalmedia/splice/internal/domain/catalog"
	domainevents "github.com/narwhalmedia/splice/internal/domain/events"
)

// Subject prefixes, one per aggregate
const (
	SubjectPrefixTimeline = "timeline"
	SubjectPrefixMedia    = "media"
)

// Publisher implements the EventPublisher interface using NATS JetStream
type Publisher struct {
	js     jetstream.JetStream
	logger *zap.Logger
}

// NewPublisher creates a new NATS event publisher
func NewPublisher(client *Client, logger *zap.Logger) *Publisher {
	return &Publisher{
		js:     client.JetStream(),
		logger: logger.Named("publisher"),
	}
}

// PublishEvent publishes a domain event to NATS
func (p *Publisher) PublishEvent(ctx context.Context, event domainevents.Event) error {
	subject := SubjectFor(event)

	data, err := json.Marshal(domainevents.ToEnvelope(event))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ack, err := p.js.Publish(ctx, subject, data, jetstream.WithMsgID(event.ID().String()))
	if err != nil {
		p.logger.Error("failed to publish event",
			zap.Error(err),
			zap.String("event_id", event.ID().String()),
			zap.String("event_type", event.EventType()),
			zap.String("subject", subject),
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("event published",
		zap.String("event_id", event.ID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("subject", subject),
		zap.Uint64("sequence", ack.Sequence),
		zap.String("stream", ack.Stream),
	)

	return nil
}

// SubjectFor maps an event onto its subject: timeline.<event type> for
// editor events, media.<action> for catalog events
func SubjectFor(event domainevents.Event) string {
	eventType := event.EventType()
	if event.AggregateType() == catalog.AggregateType {
		return SubjectPrefixMedia + "." + strings.TrimPrefix(eventType, SubjectPrefixMedia+".")
	}
	return SubjectPrefixTimeline + "." + eventType
}
