// rss реализует source.Source поверх набора RSS/Atom-лент.
package rss

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/pribylovaa/trending-curator/internal/models"
	"github.com/pribylovaa/trending-curator/internal/source"
	"github.com/pribylovaa/trending-curator/pkg/log"
)

const (
	// ID — логический идентификатор источника.
	ID = "rss"

	defaultName          = "RSS Feeds"
	defaultTimeout       = 15 * time.Second
	defaultMaxConcurrent = 6
	maxAge               = 7 * 24 * time.Hour
	maxDescriptionRunes  = 300
	freshnessPerHour     = 2.0
)

// Options — параметры RSS-источника.
type Options struct {
	Feeds         []string
	Client        *http.Client
	MaxConcurrent int
	CacheTTL      time.Duration
	Now           func() time.Time
}

// Source загружает ленты конкурентно (не более maxConc одновременно).
type Source struct {
	feeds   []string
	client  *http.Client
	maxConc int
	now     func() time.Time
	cache   *source.Cache
}

var _ source.Source = (*Source)(nil)

// New создаёт RSS-источник. Пустые URL отбрасываются.
func New(opts Options) *Source {
	s := &Source{
		client:  opts.Client,
		maxConc: opts.MaxConcurrent,
		now:     opts.Now,
	}

	for _, f := range opts.Feeds {
		if f = strings.TrimSpace(f); f != "" {
			s.feeds = append(s.feeds, f)
		}
	}

	if s.client == nil {
		s.client = &http.Client{Timeout: defaultTimeout}
	}
	if s.maxConc <= 0 {
		s.maxConc = defaultMaxConcurrent
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

// FetchArticles загружает все ленты. Упавшая лента логируется и пропускается;
// ошибка возвращается, только если не удалось загрузить ни одной.
func (s *Source) FetchArticles(ctx context.Context) ([]models.Article, error) {
	const op = "rss.FetchArticles"

	if cached, ok := s.cache.Get(source.DefaultCacheKey); ok {
		return cached, nil
	}

	if len(s.feeds) == 0 {
		return nil, source.NewFetchError(ID, fmt.Errorf("%s: no feeds configured", op))
	}

	lg := log.From(ctx)

	var (
		mu      sync.Mutex
		failed  int
		lastErr error
	)
	perFeed := make([][]models.Article, len(s.feeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConc)

	for i, u := range s.feeds {
		g.Go(func() error {
			items, err := s.fetchOne(gctx, u)
			if err != nil {
				mu.Lock()
				failed++
				lastErr = err
				mu.Unlock()

				lg.Warn("rss_feed_failed",
					slog.String("op", op),
					slog.String("url", u),
					slog.String("err", err.Error()),
				)
				return nil
			}

			perFeed[i] = items
			return nil
		})
	}
	_ = g.Wait()

	if failed == len(s.feeds) {
		return nil, source.NewFetchError(ID, fmt.Errorf("%w: %v", source.ErrAllQueriesFailed, lastErr))
	}

	var all []models.Article
	for _, items := range perFeed {
		all = append(all, items...)
	}

	all = source.DedupeByURL(all)
	source.SortByTrending(all)

	s.cache.Set(source.DefaultCacheKey, all)

	lg.Debug("rss_fetched",
		slog.String("op", op),
		slog.Int("feeds", len(s.feeds)),
		slog.Int("feeds_failed", failed),
		slog.Int("articles", len(all)),
	)

	return all, nil
}

// fetchOne загружает и разбирает одну ленту.
func (s *Source) fetchOne(ctx context.Context, feedURL string) ([]models.Article, error) {
	const op = "rss.fetchOne"

	parser := gofeed.NewParser()
	parser.Client = s.client

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: parse: %w", op, err)
	}

	now := s.now().UTC()
	sourceName := strings.TrimSpace(feed.Title)
	if sourceName == "" {
		sourceName = defaultName
	}

	out := make([]models.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if a, ok := toArticle(item, sourceName, now); ok {
			out = append(out, a)
		}
	}

	return out, nil
}

// toArticle маппит элемент ленты. Элементы без заголовка или ссылки,
// а также старше maxAge отбрасываются.
func toArticle(item *gofeed.Item, sourceName string, now time.Time) (models.Article, bool) {
	if item == nil {
		return models.Article{}, false
	}

	title := source.CollapseSpaces(source.StripHTML(item.Title))
	link := source.CanonicalLink(item.Link)
	if link == "" && strings.HasPrefix(item.GUID, "http") {
		link = source.CanonicalLink(item.GUID)
	}
	if title == "" || link == "" {
		return models.Article{}, false
	}

	// Элементы без даты пропускаются: идентификатор зависит от publishedAt.
	var published time.Time
	switch {
	case item.PublishedParsed != nil:
		published = item.PublishedParsed.UTC()
	case item.UpdatedParsed != nil:
		published = item.UpdatedParsed.UTC()
	default:
		return models.Article{}, false
	}
	if published.After(now) {
		published = now
	}

	age := now.Sub(published)
	if age > maxAge {
		return models.Article{}, false
	}

	desc := item.Description
	if desc == "" {
		desc = item.Content
	}
	desc = source.Truncate(source.StripHTML(desc), maxDescriptionRunes)

	text := title + " " + desc + " " + strings.Join(item.Categories, " ")
	category := source.Classify(text)
	trending := models.ClampScore(100 - age.Hours()*freshnessPerHour)

	var author string
	if len(item.Authors) > 0 && item.Authors[0] != nil {
		author = strings.TrimSpace(item.Authors[0].Name)
	}

	tags := make([]string, 0, len(item.Categories))
	for _, c := range item.Categories {
		if c = strings.TrimSpace(c); c != "" {
			tags = append(tags, c)
		}
	}

	return models.Article{
		ID:                 models.ArticleID(ID, link, published),
		Title:              title,
		URL:                link,
		Description:        desc,
		Source:             ID,
		SourceName:         sourceName,
		PublishedAt:        published,
		Author:             author,
		Tags:               tags,
		Category:           category,
		RelevanceScore:     trending,
		TrendingScore:      trending,
		TechScore:          source.TechScore(category, text),
		EntertainmentValue: source.EntertainmentValue(category),
	}, true
}
