//go:build wireinject
// +build wireinject

package container

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	timelinev1 "github.com/narwhalmedia/splice/api/timeline/v1"
	catalogapp "github.com/narwhalmedia/splice/internal/application/catalog"
	"github.com/narwhalmedia/splice/internal/application/editor"
	"github.com/narwhalmedia/splice/internal/config"
	"github.com/narwhalmedia/splice/internal/domain/catalog"
	"github.com/narwhalmedia/splice/internal/domain/events"
	eventsinfra "github.com/narwhalmedia/splice/internal/infrastructure/events"
	grpcsvc "github.com/narwhalmedia/splice/internal/infrastructure/grpc"
	gormrepo "github.com/narwhalmedia/splice/internal/infrastructure/persistence/gorm"
)

var catalogSet = wire.NewSet(
	// Database
	gormrepo.NewDB,

	// Repositories
	gormrepo.NewMediaRepository,
	wire.Bind(new(catalog.Repository), new(*gormrepo.MediaRepository)),

	// Storage and probing
	provideStorage,
	provideProber,

	// Application
	provideCatalogOptions,
	provideCatalog,
)

// InitializeServer creates the editor server with all dependencies
func InitializeServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, func(), error) {
	wire.Build(
		catalogSet,

		// Events
		provideRelay,
		wire.Bind(new(events.EventPublisher), new(*eventsinfra.Relay)),
		provideDispatcher,

		// Editor
		provideSession,

		// gRPC
		wire.Bind(new(grpcsvc.Editor), new(*editor.Session)),
		wire.Bind(new(grpcsvc.Catalog), new(*catalogapp.Service)),
		grpcsvc.NewTimelineService,
		wire.Bind(new(timelinev1.TimelineServiceServer), new(*grpcsvc.TimelineService)),
		grpcsvc.NewServer,

		// HTTP gateway
		provideGatewayClient,
		provideGateway,

		// Container
		wire.Struct(new(Server), "*"),
	)

	return nil, nil, nil
}

// InitializeCatalog creates a catalog service for command line use
func InitializeCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*catalogapp.Service, func(), error) {
	wire.Build(
		catalogSet,
		eventsinfra.NewBrokerPublisher,
	)

	return nil, nil, nil
}
