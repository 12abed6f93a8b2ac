// Package grpc exposes the editor session and media catalog over gRPC.
package grpc

import (
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	timelinev1 "github.com/narwhalmedia/splice/api/timeline/v1"
	"github.com/narwhalmedia/splice/internal/infrastructure/grpc/interceptors"
)

// Server bundles the gRPC server with its health service
type Server struct {
	*grpc.Server
	Health *health.Server
}

// NewServer creates a gRPC server with logging and recovery interceptors and
// registers the timeline service, health checks and reflection
func NewServer(svc timelinev1.TimelineServiceServer, logger *zap.Logger) *Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			interceptors.UnaryRecoveryInterceptor(logger),
			interceptors.UnaryLoggingInterceptor(logger),
		),
		grpc.ChainStreamInterceptor(
			interceptors.StreamRecoveryInterceptor(logger),
			interceptors.StreamLoggingInterceptor(logger),
		),
	)

	timelinev1.RegisterTimelineServiceServer(srv, svc)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus(timelinev1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	return &Server{Server: srv, Health: healthServer}
}

// Shutdown marks every service not serving so probes drain traffic first
func (s *Server) Shutdown() {
	s.Health.Shutdown()
}
