// synthetic — детерминированный источник без сети. Регистрируется вместо живого,
// когда для него нет учётных данных или включён use_mock.
package synthetic

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pribylovaa/trending-curator/internal/models"
	"github.com/pribylovaa/trending-curator/internal/source"
	"github.com/pribylovaa/trending-curator/pkg/log"
)

const (
	defaultID   = "synthetic"
	defaultName = "Synthetic Feed"
)

// Options — параметры синтетического источника.
type Options struct {
	// ID — логический идентификатор, под которым источник зарегистрирован
	// (совпадает с ID живого источника, который он подменяет).
	ID string
	// Name — отображаемое имя.
	Name     string
	CacheTTL time.Duration
	Now      func() time.Time
}

// Source — синтетический источник.
type Source struct {
	id    string
	name  string
	now   func() time.Time
	cache *source.Cache
}

var _ source.Source = (*Source)(nil)

func New(opts Options) *Source {
	s := &Source{
		id:   strings.TrimSpace(opts.ID),
		name: strings.TrimSpace(opts.Name),
		now:  opts.Now,
	}

	if s.id == "" {
		s.id = defaultID
	}
	if s.name == "" {
		s.name = defaultName
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.cache = source.NewCache(opts.CacheTTL, s.now)

	return s
}

func (s *Source) ID() string                           { return s.id }
func (s *Source) Name() string                         { return s.name }
func (s *Source) Kind() models.SourceKind              { return models.SourceKindSynthetic }
func (s *Source) RateLimitInfo() *models.RateLimitInfo { return nil }

func (s *Source) IsAvailable(ctx context.Context) bool {
	return source.Probe(ctx, s)
}

// FetchArticles отдаёт фиксированный набор статей; время публикации
// отсчитывается от текущего момента, поэтому статьи всегда «свежие».
func (s *Source) FetchArticles(ctx context.Context) ([]models.Article, error) {
	const op = "synthetic.FetchArticles"

	if err := ctx.Err(); err != nil {
		return nil, source.NewFetchError(s.id, err)
	}

	if cached, ok := s.cache.Get(source.DefaultCacheKey); ok {
		return cached, nil
	}

	now := s.now().UTC()
	out := make([]models.Article, 0, len(fixtures))
	for _, f := range fixtures {
		out = append(out, s.build(f, now))
	}
	source.SortByTrending(out)

	s.cache.Set(source.DefaultCacheKey, out)

	log.From(ctx).Debug("synthetic_generated",
		slog.String("op", op),
		slog.String("source", s.id),
		slog.Int("articles", len(out)),
	)

	return out, nil
}

func (s *Source) build(f fixture, now time.Time) models.Article {
	published := now.Add(-f.age)
	link := "https://example.com/" + s.id + "/" + f.slug

	return models.Article{
		ID:                 models.ArticleID(s.id, link, published),
		Title:              f.title,
		URL:                link,
		Description:        f.description,
		Source:             s.id,
		SourceName:         s.name,
		PublishedAt:        published,
		Author:             f.author,
		Tags:               append(make([]string, 0, len(f.tags)), f.tags...),
		Category:           f.category,
		RelevanceScore:     f.trending,
		TrendingScore:      f.trending,
		TechScore:          f.tech,
		EntertainmentValue: f.entertainment,
	}
}
