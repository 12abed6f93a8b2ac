package container

import (
	"go.uber.org/zap"

	"github.com/narwhalmedia/splice/internal/domain/events"
	"github.com/narwhalmedia/splice/internal/domain/timeline"
	eventsinfra "github.com/narwhalmedia/splice/internal/infrastructure/events"
)

// provideDispatcher builds the in-process dispatcher and registers the
// edit audit log for every timeline mutation
func provideDispatcher(logger *zap.Logger) events.DomainEventDispatcher {
	dispatcher := events.NewDomainEventDispatcher()

	audit := eventsinfra.NewLogPublisher(logger.Named("audit"))
	dispatcher.RegisterHandler(events.HandlerFunc(audit.PublishEvent),
		timeline.EventTypeClipAdded,
		timeline.EventTypeClipRemoved,
		timeline.EventTypeClipTrimmed,
		timeline.EventTypeClipMoved,
		timeline.EventTypeTimelineCleared,
	)
	return dispatcher
}
