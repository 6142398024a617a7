// service содержит оркестрацию: реестр источников → нормализация → курирование,
// плюс кэш результатов на стороне вызывающего.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/pribylovaa/trending-curator/internal/cache"
	"github.com/pribylovaa/trending-curator/internal/models"
)

var (
	// ErrNotFound — источник не зарегистрирован.
	// Транспорт: 404.
	ErrNotFound = errors.New("not found")
	// ErrDisabled — источник выключен.
	// Транспорт: 409.
	ErrDisabled = errors.New("source disabled")
	// ErrInvalidArgument — некорректные входные аргументы (настройки, id).
	// Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnavailable — прямой запрос к одному источнику не удался.
	// Транспорт: 503.
	ErrUnavailable = errors.New("source unavailable")
)

// AllSources — значение SourceID, означающее «все включённые источники».
const AllSources = "all"

// Aggregator — то, что сервису нужно от реестра источников.
type Aggregator interface {
	FetchAllArticles(ctx context.Context) []models.Article
	FetchArticlesFromSource(ctx context.Context, id string) ([]models.Article, error)
	CheckSourceAvailability(ctx context.Context) map[string]bool
	EnableSource(id string) error
	DisableSource(id string) error
	Descriptors() []models.SourceDescriptor
}

// Curator — то, что сервису нужно от движка курирования.
type Curator interface {
	Curate(articles []models.Article, s models.CurationSettings) []models.Article
	Settings() models.CurationSettings
	UpdateSettings(s models.CurationSettings) error
	DistributionStats(articles []models.Article) models.CategoryDistribution
}

// Observer получает размер каждой выдачи (метрики).
type Observer interface {
	ObserveCurated(n int)
}

// Options — необязательные зависимости сервиса.
type Options struct {
	// Cache — кэш результатов; nil — выключен.
	Cache    cache.ResultCache
	CacheTTL time.Duration
	Observer Observer
	Now      func() time.Time
}

// Service — бизнес-логика trending-curator.
type Service struct {
	sources  Aggregator
	engine   Curator
	cache    cache.ResultCache
	cacheTTL time.Duration
	observer Observer
	now      func() time.Time
}

// New создаёт новый экземпляр Service.
func New(sources Aggregator, engine Curator, opts Options) *Service {
	s := &Service{
		sources:  sources,
		engine:   engine,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		observer: opts.Observer,
		now:      opts.Now,
	}

	if s.now == nil {
		s.now = time.Now
	}
	if s.cacheTTL <= 0 {
		s.cacheTTL = 2 * time.Minute
	}

	return s
}
