package grpc

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// AuthMetadataKey carries the API token, raw or as "Bearer <token>"
const AuthMetadataKey = "authorization"

// AuthInterceptor rejects ledger calls whose API token does not match
// the configured one with codes.Unauthenticated.
func AuthInterceptor(apiToken string) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Errorf(codes.Unauthenticated, "%s: no request metadata", info.FullMethod)
		}

		values := md.Get(AuthMetadataKey)
		if len(values) == 0 {
			return nil, status.Errorf(codes.Unauthenticated, "%s: api token required", info.FullMethod)
		}

		token := strings.TrimSpace(strings.TrimPrefix(values[0], "Bearer "))
		if subtle.ConstantTimeCompare([]byte(token), []byte(apiToken)) != 1 {
			return nil, status.Errorf(codes.Unauthenticated, "%s: api token rejected", info.FullMethod)
		}

		return handler(ctx, req)
	}
}

// LoggingInterceptor returns a gRPC unary server interceptor that logs
// every call with its status code and duration
func LoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		level := slog.LevelInfo
		switch code {
		case codes.OK, codes.InvalidArgument, codes.NotFound, codes.FailedPrecondition, codes.Unauthenticated:
		default:
			level = slog.LevelError
		}
		logger.LogAttrs(ctx, level, "grpc call",
			slog.String("method", info.FullMethod),
			slog.String("code", code.String()),
			slog.Duration("duration", time.Since(start)),
		)

		return resp, err
	}
}
