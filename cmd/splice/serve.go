package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/narwhalmedia/splice/internal/container"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC API and the HTTP gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := ctx.ensure()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("starting service",
				zap.String("environment", cfg.Server.Environment),
				zap.String("database", cfg.Database.Driver),
				zap.String("storage", cfg.Storage.Type),
				zap.String("events", cfg.Events.Backend))

			srv, cleanup, err := container.InitializeServer(runCtx, cfg, log)
			if err != nil {
				return fmt.Errorf("initialize service: %w", err)
			}
			defer cleanup()

			handler, err := srv.Gateway.Handler()
			if err != nil {
				return fmt.Errorf("register gateway routes: %w", err)
			}

			grpcLis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
			if err != nil {
				return fmt.Errorf("listen on gRPC port: %w", err)
			}
			httpServer := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			// the relay outlives the servers so shutdown events still flush
			relayCtx, cancelRelay := context.WithCancel(context.Background())
			relayDone := make(chan error, 1)
			go func() { relayDone <- srv.Relay.Run(relayCtx) }()

			g, gctx := errgroup.WithContext(runCtx)
			g.Go(func() error {
				log.Info("starting gRPC server", zap.Int("port", cfg.Server.GRPCPort))
				return srv.GRPC.Serve(grpcLis)
			})
			g.Go(func() error {
				log.Info("starting HTTP server", zap.Int("port", cfg.Server.HTTPPort))
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				log.Info("shutting down service")
				shutdown(srv, httpServer, cfg.Server.ShutdownTime, log)
				return nil
			})

			err = g.Wait()

			srv.Session.Close()
			cancelRelay()
			if relayErr := <-relayDone; relayErr != nil && !errors.Is(relayErr, context.Canceled) {
				log.Warn("event relay stopped", zap.Error(relayErr))
			}
			if dropped := srv.Relay.Dropped(); dropped > 0 {
				log.Warn("integration events dropped", zap.Int64("count", dropped))
			}

			log.Info("service shutdown complete")
			return err
		},
	}
}

func shutdown(srv *container.Server, httpServer *http.Server, timeout time.Duration, log *zap.Logger) {
	srv.GRPC.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown HTTP server", zap.Error(err))
	}

	// ends watch streams so graceful stop does not wait on them
	srv.Session.Close()

	stopped := make(chan struct{})
	go func() {
		srv.GRPC.GracefulStop()
		close(stopped)
	}()

	select {
	case <-ctx.Done():
		log.Warn("shutdown timeout exceeded, forcing stop")
		srv.GRPC.Stop()
	case <-stopped:
		log.Info("gRPC server stopped gracefully")
	}
}
