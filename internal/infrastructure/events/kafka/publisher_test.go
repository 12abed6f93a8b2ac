package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narwhalmedia/splice/internal/domain/timeline"
	"github.com/narwhalmedia/splice/internal/infrastructure/events/kafka"
)

func TestPublisher_PublishEvent(t *testing.T) {
	// Arrange
	producer := mocks.NewSyncProducer(t, nil)
	tl := timeline.New()
	clip := tl.AddClip(timeline.MediaItem{ID: "m1", Name: "a.mp4", Type: timeline.MediaTypeVideo, Duration: "00:10"})
	event := timeline.NewClipAddedEvent(tl, clip)

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var envelope map[string]interface{}
		if err := json.Unmarshal(val, &envelope); err != nil {
			return err
		}
		if envelope["event_type"] != timeline.EventTypeClipAdded {
			return errors.New("unexpected event type")
		}
		if envelope["aggregate_type"] != timeline.AggregateType {
			return errors.New("unexpected aggregate type")
		}
		return nil
	})
	publisher := kafka.NewPublisherWithProducer(producer, "splice.events")

	// Act
	err := publisher.PublishEvent(context.Background(), event)

	// Assert
	require.NoError(t, err)
	require.NoError(t, publisher.Close())
}

func TestPublisher_SendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	publisher := kafka.NewPublisherWithProducer(producer, "splice.events")
	tl := timeline.New()

	err := publisher.PublishEvent(context.Background(), timeline.NewTimelineClearedEvent(tl, 0))

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

func TestPublisher_CancelledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	publisher := kafka.NewPublisherWithProducer(producer, "splice.events")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := publisher.PublishEvent(ctx, timeline.NewTimelineClearedEvent(timeline.New(), 0))

	assert.ErrorIs(t, err, context.Canceled)
	require.NoError(t, publisher.Close())
}
