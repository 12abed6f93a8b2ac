package events

import (
	"context"
	"sync"
)

// DomainEventHandler handles events raised inside the editor process
type DomainEventHandler interface {
	// HandleDomainEvent processes an event synchronously
	HandleDomainEvent(ctx context.Context, event Event) error
}

// HandlerFunc adapts a function to DomainEventHandler
type HandlerFunc func(ctx context.Context, event Event) error

// HandleDomainEvent calls f(ctx, event)
func (f HandlerFunc) HandleDomainEvent(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// DomainEventDispatcher dispatches domain events to registered handlers
type DomainEventDispatcher interface {
	// RegisterHandler registers a handler for specific event types; no types means all events
	RegisterHandler(handler DomainEventHandler, eventTypes ...string)
	// Dispatch synchronously dispatches an event to all registered handlers
	Dispatch(ctx context.Context, event Event) error
}

type domainEventDispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]DomainEventHandler
	catchAll []DomainEventHandler
}

// NewDomainEventDispatcher creates a new domain event dispatcher
func NewDomainEventDispatcher() DomainEventDispatcher {
	return &domainEventDispatcher{
		handlers: make(map[string][]DomainEventHandler),
	}
}

func (d *domainEventDispatcher) RegisterHandler(handler DomainEventHandler, eventTypes ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(eventTypes) == 0 {
		d.catchAll = append(d.catchAll, handler)
		return
	}
	for _, eventType := range eventTypes {
		d.handlers[eventType] = append(d.handlers[eventType], handler)
	}
}

func (d *domainEventDispatcher) Dispatch(ctx context.Context, event Event) error {
	d.mu.RLock()
	handlers := make([]DomainEventHandler, 0, len(d.handlers[event.EventType()])+len(d.catchAll))
	handlers = append(handlers, d.handlers[event.EventType()]...)
	handlers = append(handlers, d.catchAll...)
	d.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler.HandleDomainEvent(ctx, event); err != nil {
			return err // Stop on first error
		}
	}
	return nil
}
