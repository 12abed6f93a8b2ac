// Package events carries domain events from the editor to external brokers.
package events

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/narwhalmedia/splice/internal/domain/events"
)

// Relay queues events in a bounded buffer and forwards them to a broker
// publisher from a single goroutine. PublishEvent never blocks: when the
// buffer is full the event is dropped and logged.
type Relay struct {
	next    events.EventPublisher
	queue   chan events.Event
	timeout time.Duration
	logger  *zap.Logger
	dropped atomic.Int64
}

// NewRelay creates a relay in front of next
func NewRelay(next events.EventPublisher, size int, timeout time.Duration, logger *zap.Logger) *Relay {
	if size <= 0 {
		size = 1
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Relay{
		next:    next,
		queue:   make(chan events.Event, size),
		timeout: timeout,
		logger:  logger.Named("relay"),
	}
}

// PublishEvent implements events.EventPublisher
func (r *Relay) PublishEvent(ctx context.Context, event events.Event) error {
	select {
	case r.queue <- event:
	default:
		r.dropped.Add(1)
		r.logger.Warn("event buffer full, dropping event",
			zap.String("event_id", event.ID().String()),
			zap.String("event_type", event.EventType()),
		)
	}
	return nil
}

// Dropped reports how many events were discarded because the buffer was full
func (r *Relay) Dropped() int64 {
	return r.dropped.Load()
}

// Run forwards queued events until ctx is done, then flushes what is left
func (r *Relay) Run(ctx context.Context) error {
	for {
		select {
		case event := <-r.queue:
			r.forward(ctx, event)
		case <-ctx.Done():
			r.flush(context.WithoutCancel(ctx))
			return nil
		}
	}
}

func (r *Relay) flush(ctx context.Context) {
	for {
		select {
		case event := <-r.queue:
			r.forward(ctx, event)
		default:
			return
		}
	}
}

func (r *Relay) forward(ctx context.Context, event events.Event) {
	pubCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.next.PublishEvent(pubCtx, event); err != nil {
		r.logger.Error("failed to forward event",
			zap.Error(err),
			zap.String("event_id", event.ID().String()),
			zap.String("event_type", event.EventType()),
		)
	}
}
