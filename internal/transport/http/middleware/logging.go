package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/trending-curator/pkg/log"
)

// Logging кладёт логгер запроса в контекст и после ответа пишет "http_request".
// 5xx пишется с уровнем Error, 4xx с уровнем Warn.
func Logging(base *slog.Logger) Middleware {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := log.Into(r.Context(), base)
			if rid := RequestIDFrom(ctx); rid != "" {
				ctx = log.With(ctx, slog.String("request_id", rid))
			}

			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r.WithContext(ctx))

			status := sw.status
			if status == 0 {
				status = http.StatusOK
			}

			log.From(ctx).LogAttrs(ctx, levelFor(status), "http_request",
				slog.String("method", r.Method),
				slog.String("route", routePattern(r)),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", sw.count),
				slog.Int64("dur_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// routePattern — шаблон маршрута chi (например, /sources/{id}/enable).
// Вне chi возвращает путь запроса.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}

	return r.URL.Path
}
