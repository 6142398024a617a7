package models

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings — настройки курирования вне допустимых диапазонов.
var ErrInvalidSettings = errors.New("invalid curation settings")

// CurationSettings — настраиваемые веса этапов оценки и отбора.
type CurationSettings struct {
	// TechBias [0,100] — вес в пользу техно-категорий.
	TechBias float64 `json:"techBias" yaml:"tech_bias" env:"CURATION_TECH_BIAS" env-default:"60"`
	// DiversityLevel [0,100] — насколько сильно нетехнические категории защищены от штрафа.
	DiversityLevel float64 `json:"diversityLevel" yaml:"diversity_level" env:"CURATION_DIVERSITY_LEVEL" env-default:"70"`
	// TrendingWeight [0,100] — вес свежести/вирусности в итоговой оценке.
	TrendingWeight float64 `json:"trendingWeight" yaml:"trending_weight" env:"CURATION_TRENDING_WEIGHT" env-default:"50"`
	// IncludeNiche зарезервирован под будущую фильтрацию.
	IncludeNiche bool `json:"includeNiche" yaml:"include_niche" env:"CURATION_INCLUDE_NICHE" env-default:"true"`
	// MaxArticles — жёсткий предел размера выдачи.
	MaxArticles int `json:"maxArticles" yaml:"max_articles" env:"CURATION_MAX_ARTICLES" env-default:"20"`
}

// DefaultCurationSettings возвращает настройки по умолчанию.
func DefaultCurationSettings() CurationSettings {
	return CurationSettings{
		TechBias:       60,
		DiversityLevel: 70,
		TrendingWeight: 50,
		IncludeNiche:   true,
		MaxArticles:    20,
	}
}

// Validate проверяет диапазоны значений.
func (s CurationSettings) Validate() error {
	check := func(name string, v float64) error {
		if v < 0 || v > 100 {
			return fmt.Errorf("%w: %s must be within [0,100], got %v", ErrInvalidSettings, name, v)
		}
		return nil
	}

	if err := check("techBias", s.TechBias); err != nil {
		return err
	}
	if err := check("diversityLevel", s.DiversityLevel); err != nil {
		return err
	}
	if err := check("trendingWeight", s.TrendingWeight); err != nil {
		return err
	}
	if s.MaxArticles < 0 {
		return fmt.Errorf("%w: maxArticles must be >= 0, got %d", ErrInvalidSettings, s.MaxArticles)
	}

	return nil
}
