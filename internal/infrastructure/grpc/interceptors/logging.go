package interceptors

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/narwhalmedia/splice/pkg/logger"
)

// RequestIDKey is the metadata key carrying the request id
const RequestIDKey = "x-request-id"

// UnaryLoggingInterceptor logs unary RPC calls and puts a request-scoped
// logger into the handler context
func UnaryLoggingInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()

		reqLogger := log.With(
			zap.String("request_id", requestID(ctx)),
			zap.String("method", info.FullMethod),
		)
		ctx = logger.WithContext(ctx, reqLogger)

		resp, err := handler(ctx, req)

		code := status.Code(err)
		reqLogger.Log(levelFor(code), "grpc request",
			zap.Duration("duration", time.Since(start)),
			zap.String("code", code.String()),
			zap.Error(err),
		)

		return resp, err
	}
}

// StreamLoggingInterceptor logs streaming RPC calls
func StreamLoggingInterceptor(log *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()

		reqLogger := log.With(
			zap.String("request_id", requestID(ss.Context())),
			zap.String("method", info.FullMethod),
		)
		reqLogger.Debug("grpc stream opened")

		err := handler(srv, &loggedStream{
			ServerStream: ss,
			ctx:          logger.WithContext(ss.Context(), reqLogger),
		})

		code := status.Code(err)
		reqLogger.Log(levelFor(code), "grpc stream",
			zap.Duration("duration", time.Since(start)),
			zap.String("code", code.String()),
			zap.Bool("client_stream", info.IsClientStream),
			zap.Bool("server_stream", info.IsServerStream),
			zap.Error(err),
		)

		return err
	}
}

type loggedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *loggedStream) Context() context.Context {
	return s.ctx
}

// requestID returns the caller's request id or a fresh one
func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(RequestIDKey); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return uuid.New().String()
}

func levelFor(code codes.Code) zapcore.Level {
	switch code {
	case codes.OK, codes.Canceled:
		return zapcore.InfoLevel
	case codes.InvalidArgument, codes.NotFound, codes.FailedPrecondition, codes.AlreadyExists, codes.Unimplemented:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
