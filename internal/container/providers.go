// Package container assembles the editor server and the command line
// catalog from configuration.
package container

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	timelinev1 "github.com/narwhalmedia/splice/api/timeline/v1"
	catalogapp "github.com/narwhalmedia/splice/internal/application/catalog"
	"github.com/narwhalmedia/splice/internal/application/editor"
	"github.com/narwhalmedia/splice/internal/config"
	"github.com/narwhalmedia/splice/internal/domain/catalog"
	"github.com/narwhalmedia/splice/internal/domain/events"
	eventsinfra "github.com/narwhalmedia/splice/internal/infrastructure/events"
	"github.com/narwhalmedia/splice/internal/infrastructure/gateway"
	grpcsvc "github.com/narwhalmedia/splice/internal/infrastructure/grpc"
	"github.com/narwhalmedia/splice/internal/infrastructure/probe"
	"github.com/narwhalmedia/splice/internal/infrastructure/storage"
)

// Server holds everything `splice serve` runs
type Server struct {
	Config  *config.Config
	Logger  *zap.Logger
	Relay   *eventsinfra.Relay
	Catalog *catalogapp.Service
	Session *editor.Session
	GRPC    *grpcsvc.Server
	Gateway *gateway.Gateway
}

func provideStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (catalog.Storage, error) {
	return storage.New(ctx, cfg.Storage, logger)
}

func provideProber(cfg *config.Config, logger *zap.Logger) catalog.Prober {
	return probe.NewDefault(cfg.Upload.FFprobePath, cfg.Upload.ProbeTimeout, logger)
}

func provideCatalogOptions(cfg *config.Config) catalogapp.Options {
	return catalogapp.Options{
		MaxUploadBytes: cfg.Upload.MaxBytes,
		CacheTTL:       cfg.Upload.RecordCacheTTL,
	}
}

func provideCatalog(
	repo catalog.Repository,
	store catalog.Storage,
	prober catalog.Prober,
	publisher events.EventPublisher,
	opts catalogapp.Options,
	logger *zap.Logger,
) (*catalogapp.Service, func()) {
	service := catalogapp.NewService(repo, store, prober, publisher, opts, logger)
	return service, service.Close
}

// provideRelay puts a bounded queue in front of the configured broker. The
// caller must run Relay.Run for events to leave the process.
func provideRelay(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*eventsinfra.Relay, func(), error) {
	broker, cleanup, err := eventsinfra.NewBrokerPublisher(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting events backend: %w", err)
	}
	return eventsinfra.NewRelay(broker, cfg.Events.BufferSize, cfg.Events.PublishTimeout, logger), cleanup, nil
}

func provideSession(
	media *catalogapp.Service,
	dispatcher events.DomainEventDispatcher,
	publisher events.EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) (*editor.Session, func()) {
	session := editor.NewSession(media, dispatcher, publisher, editor.Config{
		PixelsPerSecond: cfg.Editor.PixelsPerSecond,
		TickInterval:    cfg.Editor.TickInterval,
	}, logger)
	return session, func() {
		if err := session.Close(); err != nil {
			logger.Warn("closing editor session", zap.Error(err))
		}
	}
}

// provideGatewayClient dials the local gRPC port. The connection is lazy so
// the server does not have to be listening yet.
func provideGatewayClient(cfg *config.Config) (timelinev1.TimelineServiceClient, func(), error) {
	conn, err := grpc.NewClient(
		fmt.Sprintf("localhost:%d", cfg.Server.GRPCPort),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(16<<20)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("creating gateway client: %w", err)
	}
	return timelinev1.NewTimelineServiceClient(conn), func() { conn.Close() }, nil
}

func provideGateway(client timelinev1.TimelineServiceClient, uploads *catalogapp.Service, cfg *config.Config, logger *zap.Logger) *gateway.Gateway {
	return gateway.New(client, uploads, gateway.Options{
		MaxUploadBytes: cfg.Upload.MaxBytes,
		TempDir:        cfg.Upload.TempDir,
	}, logger)
}
