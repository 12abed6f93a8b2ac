package events_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/narwhalmedia/splice/internal/config"
	domainevents "github.com/narwhalmedia/splice/internal/domain/events"
	"github.com/narwhalmedia/splice/internal/domain/timeline"
	"github.com/narwhalmedia/splice/internal/infrastructure/events"
)

type recordingPublisher struct {
	mu      sync.Mutex
	types   []string
	block   chan struct{}
	failing bool
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, event domainevents.Event) error {
	if p.block != nil {
		<-p.block
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, event.EventType())
	if p.failing {
		return errors.New("broker down")
	}
	return nil
}

func (p *recordingPublisher) seen() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.types...)
}

func clearedEvent() domainevents.Event {
	return timeline.NewTimelineClearedEvent(timeline.New(), 0)
}

func TestRelay_ForwardsInOrder(t *testing.T) {
	next := &recordingPublisher{}
	relay := events.NewRelay(next, 8, time.Second, zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Run(ctx) }()

	tl := timeline.New()
	require.NoError(t, relay.PublishEvent(ctx, timeline.NewPlaybackStartedEvent(tl)))
	require.NoError(t, relay.PublishEvent(ctx, timeline.NewPlaybackStoppedEvent(tl, timeline.StopReasonPaused)))

	assert.Eventually(t, func() bool { return len(next.seen()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{timeline.EventTypePlaybackStarted, timeline.EventTypePlaybackStopped}, next.seen())

	cancel()
	require.NoError(t, <-done)
}

func TestRelay_DropsWhenFull(t *testing.T) {
	next := &recordingPublisher{}
	relay := events.NewRelay(next, 2, time.Second, zaptest.NewLogger(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, relay.PublishEvent(ctx, clearedEvent()))
	}

	assert.Equal(t, int64(3), relay.Dropped())
}

func TestRelay_FlushesOnShutdown(t *testing.T) {
	next := &recordingPublisher{}
	relay := events.NewRelay(next, 4, time.Second, zaptest.NewLogger(t))
	require.NoError(t, relay.PublishEvent(context.Background(), clearedEvent()))
	require.NoError(t, relay.PublishEvent(context.Background(), clearedEvent()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, relay.Run(ctx))

	assert.Len(t, next.seen(), 2)
}

func TestRelay_PublishNeverBlocks(t *testing.T) {
	next := &recordingPublisher{block: make(chan struct{})}
	relay := events.NewRelay(next, 1, time.Second, zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Run(ctx) }()

	finished := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			_ = relay.PublishEvent(ctx, clearedEvent())
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("PublishEvent blocked on a stalled broker")
	}

	cancel()
	close(next.block)
	require.NoError(t, <-done)
	assert.Positive(t, relay.Dropped())
}

func TestRelay_ForwardErrorsAreLogged(t *testing.T) {
	next := &recordingPublisher{failing: true}
	relay := events.NewRelay(next, 1, time.Second, zaptest.NewLogger(t))
	require.NoError(t, relay.PublishEvent(context.Background(), clearedEvent()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, relay.Run(ctx))
	assert.Len(t, next.seen(), 1)
}

func TestNewBrokerPublisher(t *testing.T) {
	logger := zaptest.NewLogger(t)
	cfg := config.Default("splice-test")

	publisher, cleanup, err := events.NewBrokerPublisher(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &events.LogPublisher{}, publisher)
	assert.NoError(t, publisher.PublishEvent(context.Background(), clearedEvent()))

	cfg.Events.Backend = "pigeon"
	_, _, err = events.NewBrokerPublisher(context.Background(), cfg, logger)
	assert.Error(t, err)
}
