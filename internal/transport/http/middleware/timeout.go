package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout ограничивает обработку запроса бюджетом d. Более ранний deadline
// родительского контекста сохраняется. d <= 0 отключает ограничение.
func Timeout(d time.Duration) Middleware {
	if d <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deadline := time.Now().Add(d)
			if parent, ok := r.Context().Deadline(); ok && parent.Before(deadline) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithDeadline(r.Context(), deadline)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
