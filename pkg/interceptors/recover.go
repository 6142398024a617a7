package interceptors

import (
	"context"
	"log/slog"
	"runtime/debug"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pribylovaa/trending-curator/pkg/log"
)

// Recover перехватывает панику в unary-обработчике и отвечает codes.Internal.
// Метод, значение паники и стек пишутся в лог уровня Error; клиенту детали не уходят.
// Логгер берётся из контекста, при его отсутствии используется base.
func Recover(base *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			l := log.From(ctx)
			if l == slog.Default() && base != nil {
				l = base
			}

			l.Error("panic_recovered",
				slog.String("method", info.FullMethod),
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)

			resp, err = nil, status.Error(codes.Internal, "internal server error")
		}()

		return handler(ctx, req)
	}
}
