package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/narwhalmedia/splice/internal/config"
	"github.com/narwhalmedia/splice/internal/domain/events"
)

// Publisher implements events.EventPublisher
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher creates a new Kafka event publisher
func NewPublisher(cfg config.KafkaConfig) (*Publisher, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = cfg.ClientID
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Retry.Max = 5
	saramaCfg.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("creating producer: %w", err)
	}

	return NewPublisherWithProducer(producer, cfg.Topic), nil
}

// NewPublisherWithProducer wraps an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
	}
}

// PublishEvent publishes an event to Kafka. Messages are keyed by aggregate
// so one timeline's events stay ordered within a partition.
func (p *Publisher) PublishEvent(ctx context.Context, event events.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(events.ToEnvelope(event))
	if err != nil {
		return fmt.Errorf("marshaling message: %w", err)
	}

	kafkaMsg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.AggregateID().String()),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("event_type"),
				Value: []byte(event.EventType()),
			},
			{
				Key:   []byte("aggregate_type"),
				Value: []byte(event.AggregateType()),
			},
		},
	}

	if _, _, err := p.producer.SendMessage(kafkaMsg); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}

	return nil
}

// Close closes the publisher
func (p *Publisher) Close() error {
	return p.producer.Close()
}
