package interceptors

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/pribylovaa/trending-curator/pkg/log"
)

// UnaryLoggingInterceptor кладёт в контекст логгер с request_id, method и peer
// и после обработчика пишет одну запись "grpc" с кодом статуса и длительностью.
//
// request_id берётся из metadata x-request-id, иначе генерируется UUID.
// Если peer неизвестен, пишется "-".
func UnaryLoggingInterceptor(base *slog.Logger) grpc.UnaryServerInterceptor {
	if base == nil {
		base = slog.Default()
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		l := base.With(
			slog.String("request_id", requestID(ctx)),
			slog.String("method", info.FullMethod),
			slog.String("peer", peerAddr(ctx)),
		)

		resp, err := handler(log.Into(ctx, l), req)

		l.Info("grpc",
			slog.String("code", status.Code(err).String()),
			slog.Duration("dur", time.Since(start)),
		)

		return resp, err
	}
}

func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get("x-request-id"); len(v) > 0 && v[0] != "" {
			return v[0]
		}
	}

	return uuid.NewString()
}

func peerAddr(ctx context.Context) string {
	if p, ok := peer.FromContext(ctx); ok && p != nil && p.Addr != nil {
		return p.Addr.String()
	}

	return "-"
}
