package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/narwhalmedia/splice/internal/config"
)

// Client wraps NATS and JetStream connections
type Client struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	logger *zap.Logger
	stream string
}

// NewClient creates a new NATS client with JetStream
func NewClient(ctx context.Context, cfg config.NATSConfig, logger *zap.Logger) (*Client, func(), error) {
	opts := []nats.Option{
		nats.Name(cfg.ClientID),
		nats.MaxReconnects(cfg.MaxReconnect),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	client := &Client{
		nc:     nc,
		js:     js,
		logger: logger.Named("nats"),
		stream: cfg.StreamName,
	}

	if err := client.initializeStream(ctx); err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to initialize stream: %w", err)
	}

	cleanup := func() {
		if err := nc.Drain(); err != nil {
			logger.Error("failed to drain NATS connection", zap.Error(err))
		}
	}

	logger.Info("NATS client initialized",
		zap.String("url", cfg.URL),
		zap.String("stream", cfg.StreamName),
	)

	return client, cleanup, nil
}

// JetStream returns the JetStream context
func (c *Client) JetStream() jetstream.JetStream {
	return c.js
}

// initializeStream creates the stream holding editor and catalog events
func (c *Client) initializeStream(ctx context.Context) error {
	stream := jetstream.StreamConfig{
		Name:        c.stream,
		Description: "Timeline editor and media catalog events",
		Subjects: []string{
			SubjectPrefixTimeline + ".>",
			SubjectPrefixMedia + ".>",
		},
		Retention:    jetstream.LimitsPolicy,
		MaxAge:       7 * 24 * time.Hour,
		MaxConsumers: -1,
		Replicas:     1,
		Storage:      jetstream.FileStorage,
		Discard:      jetstream.DiscardOld,
		MaxMsgs:      -1,
		MaxBytes:     -1,
	}

	if _, err := c.js.CreateOrUpdateStream(ctx, stream); err != nil {
		return fmt.Errorf("failed to create %s stream: %w", c.stream, err)
	}

	c.logger.Info("JetStream stream initialized", zap.String("stream", c.stream))
	return nil
}
