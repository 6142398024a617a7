package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/trending-curator/internal/models"
	"github.com/pribylovaa/trending-curator/pkg/log"
)

// Sources возвращает описания всех зарегистрированных источников.
func (s *Service) Sources() []models.SourceDescriptor {
	return s.sources.Descriptors()
}

// CheckAvailability пробует все источники параллельно.
func (s *Service) CheckAvailability(ctx context.Context) map[string]bool {
	return s.sources.CheckSourceAvailability(ctx)
}

// EnableSource включает источник и сбрасывает кэш результатов.
func (s *Service) EnableSource(ctx context.Context, id string) error {
	return s.toggle(ctx, "service.EnableSource", id, s.sources.EnableSource)
}

// DisableSource выключает источник и сбрасывает кэш результатов.
func (s *Service) DisableSource(ctx context.Context, id string) error {
	return s.toggle(ctx, "service.DisableSource", id, s.sources.DisableSource)
}

func (s *Service) toggle(ctx context.Context, op, id string, fn func(string) error) error {
	lg := log.From(ctx)

	if id == "" {
		return fmt.Errorf("%s: %w: empty source id", op, ErrInvalidArgument)
	}

	if err := fn(id); err != nil {
		return fmt.Errorf("%s: %w", op, mapSourceError(err))
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			lg.Warn("result_cache_invalidate_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		}
	}

	lg.Info("source_toggled", slog.String("op", op), slog.String("source", id))
	return nil
}

// Settings возвращает текущий снимок настроек курирования.
func (s *Service) Settings() models.CurationSettings {
	return s.engine.Settings()
}

// UpdateSettings заменяет снимок настроек.
func (s *Service) UpdateSettings(ctx context.Context, st models.CurationSettings) (models.CurationSettings, error) {
	const op = "service.UpdateSettings"

	if err := s.engine.UpdateSettings(st); err != nil {
		return models.CurationSettings{}, fmt.Errorf("%s: %w: %v", op, ErrInvalidArgument, err)
	}

	log.From(ctx).Info("settings_updated",
		slog.String("op", op),
		slog.Float64("tech_bias", st.TechBias),
		slog.Float64("diversity_level", st.DiversityLevel),
		slog.Float64("trending_weight", st.TrendingWeight),
		slog.Int("max_articles", st.MaxArticles),
	)

	return s.engine.Settings(), nil
}
