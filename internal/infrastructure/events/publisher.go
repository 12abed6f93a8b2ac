package events

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/narwhalmedia/splice/internal/config"
	"github.com/narwhalmedia/splice/internal/domain/events"
	"github.com/narwhalmedia/splice/internal/infrastructure/events/kafka"
	"github.com/narwhalmedia/splice/internal/infrastructure/events/nats"
)

// NewBrokerPublisher connects the broker selected by cfg.Events.Backend
func NewBrokerPublisher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (events.EventPublisher, func(), error) {
	switch cfg.Events.Backend {
	case "", "none":
		return NewLogPublisher(logger), func() {}, nil
	case "nats":
		client, cleanup, err := nats.NewClient(ctx, cfg.NATS, logger)
		if err != nil {
			return nil, nil, err
		}
		return nats.NewPublisher(client, logger), cleanup, nil
	case "kafka":
		publisher, err := kafka.NewPublisher(cfg.Kafka)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := publisher.Close(); err != nil {
				logger.Warn("closing kafka producer", zap.Error(err))
			}
		}
		return publisher, cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unsupported events backend %q", cfg.Events.Backend)
	}
}
