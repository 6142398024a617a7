package registry

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pribylovaa/trending-curator/internal/config"
	"github.com/pribylovaa/trending-curator/internal/source"
	"github.com/pribylovaa/trending-curator/internal/source/rss"
	"github.com/pribylovaa/trending-curator/internal/source/social"
	"github.com/pribylovaa/trending-curator/internal/source/synthetic"
	"github.com/pribylovaa/trending-curator/internal/source/topics"
	"github.com/pribylovaa/trending-curator/pkg/log"
)

// Deps — внешние зависимости, которые создаёт main.
type Deps struct {
	// Topics — хранилище тем; nil — источник topics не регистрируется.
	Topics   topics.Store
	Observer FetchObserver
	Now      func() time.Time
}

// Build собирает реестр из конфигурации. Для логического id social регистрируется
// ровно один экземпляр: живой при наличии токена и выключенном use_mock,
// иначе синтетический. rss и topics регистрируются, только если настроены.
func Build(ctx context.Context, cfg config.SourcesConfig, cacheTTL time.Duration, deps Deps) (*Registry, error) {
	const op = "registry.Build"

	lg := log.From(ctx)
	var sources []source.Source

	if cfg.Social.Live() {
		delay := cfg.Social.QueryDelay
		if delay == 0 {
			delay = -1
		}

		sources = append(sources, social.New(social.Options{
			Token:      cfg.Social.BearerToken,
			BaseURL:    cfg.Social.BaseURL,
			Queries:    cfg.Social.Queries,
			QueryDelay: delay,
			MaxResults: cfg.Social.MaxResults,
			Client:     &http.Client{Timeout: cfg.Social.Timeout},
			CacheTTL:   cacheTTL,
			Now:        deps.Now,
		}))
	} else {
		sources = append(sources, synthetic.New(synthetic.Options{
			ID:       social.ID,
			Name:     "Social Search (synthetic)",
			CacheTTL: cacheTTL,
			Now:      deps.Now,
		}))
	}

	if len(cfg.RSS.Feeds) > 0 {
		sources = append(sources, rss.New(rss.Options{
			Feeds:         cfg.RSS.Feeds,
			Client:        &http.Client{Timeout: cfg.RSS.Timeout},
			MaxConcurrent: cfg.RSS.MaxConcurrent,
			CacheTTL:      cacheTTL,
			Now:           deps.Now,
		}))
	}

	if deps.Topics != nil {
		sources = append(sources, topics.New(topics.Options{
			Store:    deps.Topics,
			Limit:    cfg.Topics.Limit,
			MaxAge:   cfg.Topics.MaxAge,
			CacheTTL: cacheTTL,
			Now:      deps.Now,
		}))
	}

	r, err := New(sources, WithObserver(deps.Observer))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, s := range r.Sources() {
		lg.Info("source_registered",
			slog.String("op", op),
			slog.String("source", s.ID()),
			slog.String("kind", string(s.Kind())),
		)
	}

	return r, nil
}
