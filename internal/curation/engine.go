// curation — конвейер отбора: из сырого пула статей получается ограниченная,
// сбалансированная по категориям и отранжированная выдача.
//
// Engine хранит только таблицу распределения и снимок настроек; каждый вызов
// Curate — независимое вычисление над входом и снимком.
package curation

import (
	"fmt"
	"sync"
	"time"

	"github.com/pribylovaa/trending-curator/internal/models"
)

// Константы оценки. Регрессионные тесты закрепляют точные значения,
// поэтому менять их — значит менять выдачу.
const (
	// DecayHorizon — за это время вклад свежести линейно падает до нуля.
	DecayHorizon = 168 * time.Hour

	trendingShare      = 0.30
	techShare          = 0.40
	entertainmentShare = 0.20
	decayShare         = 0.10

	// TechBonusMax — бонус техно-категориям при techBias=100.
	TechBonusMax = 20.0
	// DiversityPenaltyMax — штраф нетехническим категориям при diversityLevel=0.
	DiversityPenaltyMax = 10.0
	// diversityMidpoint — выше него штраф не применяется.
	diversityMidpoint = 50.0

	// RelevanceTolerance — разница relevance не больше этого считается ничьей.
	RelevanceTolerance = 10.0
	// TrendingTolerance — то же для trending на втором ключе.
	TrendingTolerance = 5.0
)

// Engine — конвейер курирования. Безопасен для конкурентного использования.
type Engine struct {
	mu           sync.RWMutex
	settings     models.CurationSettings
	distribution models.CategoryDistribution
	order        []models.Category
	now          func() time.Time
}

// Option настраивает Engine.
type Option func(*Engine)

// WithClock подменяет часы, от которых считается возраст статьи.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine создаёт движок с таблицей распределения по умолчанию.
func NewEngine(settings models.CurationSettings, opts ...Option) (*Engine, error) {
	const op = "curation.NewEngine"

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	dist := models.DefaultDistribution()
	e := &Engine{
		settings:     settings,
		distribution: dist,
		order:        selectionOrder(dist),
		now:          time.Now,
	}

	for _, o := range opts {
		o(e)
	}

	return e, nil
}

// Settings возвращает копию текущего снимка настроек.
func (e *Engine) Settings() models.CurationSettings {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.settings
}

// UpdateSettings заменяет снимок настроек после валидации.
func (e *Engine) UpdateSettings(s models.CurationSettings) error {
	const op = "curation.UpdateSettings"

	if err := s.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	e.mu.Lock()
	e.settings = s
	e.mu.Unlock()

	return nil
}

// Distribution возвращает копию целевой таблицы распределения (проценты).
func (e *Engine) Distribution() models.CategoryDistribution {
	return e.distribution.Clone()
}

// CurateArticles курирует статьи по текущему снимку настроек.
func (e *Engine) CurateArticles(articles []models.Article) []models.Article {
	return e.Curate(articles, e.Settings())
}

// Curate выполняет пять этапов: оценка, смещение, группировка,
// отбор по распределению с добором, финальное ранжирование.
// Вход не изменяется; выход — новые значения.
func (e *Engine) Curate(articles []models.Article, s models.CurationSettings) []models.Article {
	if s.MaxArticles <= 0 || len(articles) == 0 {
		return []models.Article{}
	}

	now := e.now()
	scored := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		a = a.Clone()
		a.RelevanceScore = compositeScore(a, s, now)
		a.RelevanceScore = adjustForBias(a, s)
		scored = append(scored, a)
	}

	groups := groupByCategory(scored)
	selected := selectByDistribution(groups, e.distribution, e.order, s.MaxArticles)
	rankFinal(selected)

	if len(selected) > s.MaxArticles {
		selected = selected[:s.MaxArticles]
	}

	return selected
}

// DistributionStats считает статьи по категориям (количества, не проценты).
func (e *Engine) DistributionStats(articles []models.Article) models.CategoryDistribution {
	return DistributionStats(articles)
}

// DistributionStats считает статьи по категориям; все десять ключей присутствуют.
// Статьи с неизвестной категорией учитываются как other.
func DistributionStats(articles []models.Article) models.CategoryDistribution {
	out := models.NewCategoryDistribution()
	for _, a := range articles {
		c := a.Category
		if !c.Valid() {
			c = models.CategoryOther
		}
		out[c]++
	}

	return out
}
