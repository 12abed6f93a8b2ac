package interceptors

import (
	"context"
	"runtime/debug"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnaryRecoveryInterceptor turns a panicking handler into an Internal
// status. The panic value is logged, never returned to the caller.
func UnaryRecoveryInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(logger, info.FullMethod, r)
			}
		}()

		return handler(ctx, req)
	}
}

// StreamRecoveryInterceptor is UnaryRecoveryInterceptor for streams
func StreamRecoveryInterceptor(logger *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(logger, info.FullMethod, r)
			}
		}()

		return handler(srv, ss)
	}
}

func recovered(logger *zap.Logger, method string, r interface{}) error {
	logger.Error("panic recovered",
		zap.String("method", method),
		zap.Any("panic", r),
		zap.ByteString("stack", debug.Stack()),
	)
	return status.Error(codes.Internal, "internal server error")
}
