// http собирает REST-поверхность curator на chi.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/trending-curator/internal/transport/http/handlers"
	"github.com/pribylovaa/trending-curator/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; пустой — роуты на корне.
}

// NewRouter собирает http.Handler с middleware и маршрутами.
func NewRouter(svc handlers.Curator, opts Options) http.Handler {
	root := chi.NewRouter()

	// Внешний -> внутренний. RequestID до Logging, чтобы id попал в лог.
	root.Use(
		middleware.Recover(),
		middleware.RequestID(),
		middleware.Logging(opts.Logger),
		middleware.Timeout(opts.Timeout),
	)

	h := handlers.New(svc)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// trending
	r.Get("/trending-articles", h.TrendingArticles)
	r.Post("/trending-articles/refresh", h.RefreshTrendingArticles)

	// sources
	r.Get("/sources", h.ListSources)
	r.Get("/sources/availability", h.SourcesAvailability)
	r.Post("/sources/{id}/enable", h.EnableSource)
	r.Post("/sources/{id}/disable", h.DisableSource)

	// settings
	r.Get("/curation/settings", h.GetSettings)
	r.Put("/curation/settings", h.UpdateSettings)
}
