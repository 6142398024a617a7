package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pribylovaa/trending-curator/internal/models"
	"github.com/pribylovaa/trending-curator/internal/registry"
	"github.com/pribylovaa/trending-curator/internal/source"
	"github.com/pribylovaa/trending-curator/pkg/log"
)

// TrendingRequest — параметры одного прохода курирования.
type TrendingRequest struct {
	// SourceID — id источника; пустое значение или AllSources — все включённые.
	SourceID string
	// Refresh — пропустить кэш результатов (собственные кэши источников остаются).
	Refresh bool
	// Settings — настройки запроса; nil — текущий снимок движка.
	Settings *models.CurationSettings
}

// TrendingArticles выполняет конвейер:
// кэш → загрузка → finalizeArticle → дедупликация → курирование → результат → кэш.
//
// Ошибки:
// - ErrInvalidArgument — невалидные настройки запроса;
// - ErrNotFound / ErrDisabled — неизвестный или выключенный источник;
// - ErrUnavailable — прямой запрос к источнику не удался.
// Пустая выдача ошибкой не считается.
func (s *Service) TrendingArticles(ctx context.Context, req TrendingRequest) (*models.TrendingResult, error) {
	const op = "service.TrendingArticles"

	lg := log.From(ctx)

	sourceID := strings.TrimSpace(req.SourceID)
	if sourceID == "" {
		sourceID = AllSources
	}

	settings := s.engine.Settings()
	if req.Settings != nil {
		settings = *req.Settings
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidArgument, err)
	}

	key := cacheKey(sourceID, settings)
	if !req.Refresh {
		if cached, ok := s.cacheGet(ctx, key); ok {
			lg.Debug("trending_cache_hit", slog.String("op", op), slog.String("source", sourceID))
			return cached, nil
		}
	}

	raw, err := s.fetch(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	batch := make([]models.Article, 0, len(raw))
	for _, a := range raw {
		if fa, ok := finalizeArticle(a, now); ok {
			batch = append(batch, fa)
		}
	}
	batch = source.DedupeByURL(batch)

	curated := s.engine.Curate(batch, settings)

	result := &models.TrendingResult{
		Articles:  curated,
		Sources:   s.sources.Descriptors(),
		Stats:     s.engine.DistributionStats(curated),
		Timestamp: now,
	}

	if s.observer != nil {
		s.observer.ObserveCurated(len(curated))
	}

	s.cacheSet(ctx, key, result)

	lg.Info("curation_done",
		slog.String("op", op),
		slog.String("source", sourceID),
		slog.Bool("refresh", req.Refresh),
		slog.Int("fetched", len(raw)),
		slog.Int("unique", len(batch)),
		slog.Int("curated", len(curated)),
	)

	return result, nil
}

// fetch загружает статьи из всех источников или из одного и переводит
// ошибки реестра в ошибки сервиса.
func (s *Service) fetch(ctx context.Context, sourceID string) ([]models.Article, error) {
	if sourceID == AllSources {
		return s.sources.FetchAllArticles(ctx), nil
	}

	items, err := s.sources.FetchArticlesFromSource(ctx, sourceID)
	if err != nil {
		return nil, mapSourceError(err)
	}

	return items, nil
}

func mapSourceError(err error) error {
	switch {
	case errors.Is(err, registry.ErrSourceNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, registry.ErrSourceDisabled):
		return fmt.Errorf("%w: %v", ErrDisabled, err)
	case errors.Is(err, source.ErrFetch):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return err
	}
}

// cacheKey включает эффективные настройки, поэтому смена настроек
// не отдаёт чужой результат.
func cacheKey(sourceID string, st models.CurationSettings) string {
	return fmt.Sprintf("%s:tb=%g:dl=%g:tw=%g:n=%t:max=%d",
		sourceID, st.TechBias, st.DiversityLevel, st.TrendingWeight, st.IncludeNiche, st.MaxArticles)
}

// cacheGet — ошибки кэша не фатальны: логируем и идём в источники.
func (s *Service) cacheGet(ctx context.Context, key string) (*models.TrendingResult, bool) {
	const op = "service.cacheGet"

	if s.cache == nil {
		return nil, false
	}

	r, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.From(ctx).Warn("result_cache_get_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, false
	}

	return r, ok
}

func (s *Service) cacheSet(ctx context.Context, key string, r *models.TrendingResult) {
	const op = "service.cacheSet"

	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, key, r, s.cacheTTL); err != nil {
		log.From(ctx).Warn("result_cache_set_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
	}
}
