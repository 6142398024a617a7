// topics — источник тем, которые пользователи присылают в сообщество.
// Таблицей владеет CRUD-слой; здесь она только читается.
package topics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pribylovaa/trending-curator/internal/models"
	"github.com/pribylovaa/trending-curator/internal/source"
	"github.com/pribylovaa/trending-curator/pkg/log"
)

const (
	// ID — логический идентификатор источника.
	ID = "topics"

	defaultName    = "Community Topics"
	defaultLimit   = 100
	defaultMaxAge  = 7 * 24 * time.Hour
	engagementCeil = 50.0
	commentWeight  = 2.0
)

// Options — параметры источника.
type Options struct {
	Store    Store
	Limit    int
	MaxAge   time.Duration
	CacheTTL time.Duration
	Now      func() time.Time
}

type Source struct {
	store  Store
	limit  int
	maxAge time.Duration
	now    func() time.Time
	cache  *source.Cache
}

var _ source.Source = (*Source)(nil)

func New(opts Options) *Source {
	s := &Source{
		store:  opts.Store,
		limit:  opts.Limit,
		maxAge: opts.MaxAge,
		now:    opts.Now,
	}

	if s.limit <= 0 {
		s.limit = defaultLimit
	}
	if s.maxAge <= 0 {
		s.maxAge = defaultMaxAge
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.cache = source.NewCache(opts.CacheTTL, s.now)

	return s
}

func (s *Source) ID() string                           { return ID }
func (s *Source) Name() string                         { return defaultName }
func (s *Source) Kind() models.SourceKind              { return models.SourceKindLive }
func (s *Source) RateLimitInfo() *models.RateLimitInfo { return nil }

func (s *Source) IsAvailable(ctx context.Context) bool {
	return source.Probe(ctx, s)
}

// FetchArticles читает свежие темы и маппит их в статьи.
func (s *Source) FetchArticles(ctx context.Context) ([]models.Article, error) {
	const op = "topics.FetchArticles"

	if cached, ok := s.cache.Get(source.DefaultCacheKey); ok {
		return cached, nil
	}

	if s.store == nil {
		return nil, source.NewFetchError(ID, errors.New("store is not configured"))
	}

	now := s.now().UTC()
	rows, err := s.store.RecentTopics(ctx, now.Add(-s.maxAge), s.limit)
	if err != nil {
		return nil, source.NewFetchError(ID, fmt.Errorf("%s: %w", op, err))
	}

	out := make([]models.Article, 0, len(rows))
	for _, t := range rows {
		if a, ok := toArticle(t, now); ok {
			out = append(out, a)
		}
	}

	out = source.DedupeByURL(out)
	source.SortByTrending(out)

	s.cache.Set(source.DefaultCacheKey, out)

	log.From(ctx).Debug("topics_fetched",
		slog.String("op", op),
		slog.Int("rows", len(rows)),
		slog.Int("articles", len(out)),
	)

	return out, nil
}

func toArticle(t Topic, now time.Time) (models.Article, bool) {
	title := source.CollapseSpaces(t.Title)
	link := source.CanonicalLink(t.URL)
	if title == "" || link == "" {
		return models.Article{}, false
	}

	published := t.CreatedAt.UTC()
	if published.IsZero() || published.After(now) {
		published = now
	}

	body := source.Truncate(source.StripHTML(t.Body), 300)
	text := title + " " + body + " " + strings.Join(t.Tags, " ")
	category := source.Classify(text)
	trending := models.ClampScore((float64(t.Votes) + float64(t.Comments)*commentWeight) / engagementCeil * 100)

	return models.Article{
		ID:                 models.ArticleID(ID, link, published),
		Title:              source.Truncate(title, 200),
		URL:                link,
		Description:        body,
		Source:             ID,
		SourceName:         defaultName,
		PublishedAt:        published,
		Author:             strings.TrimSpace(t.Author),
		Tags:               append(make([]string, 0, len(t.Tags)), t.Tags...),
		Category:           category,
		RelevanceScore:     trending,
		TrendingScore:      trending,
		TechScore:          source.TechScore(category, text),
		EntertainmentValue: source.EntertainmentValue(category),
	}, true
}
