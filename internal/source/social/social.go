// social реализует source.Source поверх API социального поиска (recent search v2).
//
// Источник выполняет фиксированный список тематических запросов последовательно,
// с паузой между ними, чтобы не выжигать квоту апстрима. Ошибка отдельного
// запроса логируется и пропускается; загрузка падает, только если упали все.
package social

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pribylovaa/trending-curator/internal/models"
	"github.com/pribylovaa/trending-curator/internal/source"
	"github.com/pribylovaa/trending-curator/pkg/log"
)

const (
	// ID — логический идентификатор источника.
	ID = "social"

	defaultName       = "Social Search"
	defaultBaseURL    = "https://api.twitter.com"
	defaultQueryDelay = time.Second
	defaultTimeout    = 10 * time.Second
	defaultMaxResults = 50
	maxTitleRunes     = 100
	searchPath        = "/2/tweets/search/recent"
)

// DefaultQueries — тематические запросы по умолчанию.
var DefaultQueries = []string{
	"(AI OR LLM OR ChatGPT) -is:retweet lang:en",
	"(programming OR developer OR opensource) -is:retweet lang:en",
	"(gadget OR smartphone OR iPhone OR Android) -is:retweet lang:en",
	"(tech news OR startup) -is:retweet lang:en",
	"(gaming OR esports OR anime) -is:retweet lang:en",
}

// Options — параметры живого источника.
type Options struct {
	// Token — заранее проверенный bearer-токен.
	Token string
	// BaseURL — адрес API; пустой — defaultBaseURL.
	BaseURL string
	// Queries — список запросов; пустой — DefaultQueries.
	Queries []string
	// QueryDelay — пауза между запросами; отрицательное значение отключает паузу,
	// 0 — defaultQueryDelay.
	QueryDelay time.Duration
	// MaxResults — размер страницы одного запроса (10..100).
	MaxResults int
	// Client — HTTP-клиент; nil — клиент с таймаутом defaultTimeout.
	Client *http.Client
	// CacheTTL — TTL собственного кэша.
	CacheTTL time.Duration
	// Now — часы (для тестов).
	Now func() time.Time
}

// Source — живой источник социального поиска.
type Source struct {
	token      string
	baseURL    string
	queries    []string
	delay      time.Duration
	maxResults int
	client     *http.Client
	cache      *source.Cache
	now        func() time.Time

	mu        sync.Mutex
	rateLimit *models.RateLimitInfo
}

var _ source.Source = (*Source)(nil)

// New создаёт источник с применёнными значениями по умолчанию.
func New(opts Options) *Source {
	s := &Source{
		token:      strings.TrimSpace(opts.Token),
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		queries:    opts.Queries,
		delay:      opts.QueryDelay,
		maxResults: opts.MaxResults,
		client:     opts.Client,
		now:        opts.Now,
	}

	if s.baseURL == "" {
		s.baseURL = defaultBaseURL
	}
	if len(s.queries) == 0 {
		s.queries = DefaultQueries
	}
	switch {
	case s.delay == 0:
		s.delay = defaultQueryDelay
	case s.delay < 0:
		s.delay = 0
	}
	if s.maxResults < 10 || s.maxResults > 100 {
		s.maxResults = defaultMaxResults
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: defaultTimeout}
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.cache = source.NewCache(opts.CacheTTL, s.now)

	return s
}

func (s *Source) ID() string              { return ID }
func (s *Source) Name() string            { return defaultName }
func (s *Source) Kind() models.SourceKind { return models.SourceKindLive }

// IsAvailable пробует загрузку; любая ошибка — false.
func (s *Source) IsAvailable(ctx context.Context) bool {
	return source.Probe(ctx, s)
}

// RateLimitInfo возвращает квоту из последнего ответа апстрима.
func (s *Source) RateLimitInfo() *models.RateLimitInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rateLimit == nil {
		return nil
	}

	cp := *s.rateLimit
	return &cp
}

// FetchArticles возвращает статьи из кэша или выполняет все запросы по очереди.
func (s *Source) FetchArticles(ctx context.Context) ([]models.Article, error) {
	const op = "social.FetchArticles"

	if cached, ok := s.cache.Get(source.DefaultCacheKey); ok {
		return cached, nil
	}

	if s.token == "" {
		return nil, source.NewFetchError(ID, source.ErrMissingCredentials)
	}

	lg := log.From(ctx)

	var (
		all         []models.Article
		failed      int
		succeeded   int
		interrupted bool
		lastErr     error
	)

	for i, q := range s.queries {
		if i > 0 {
			if err := sleep(ctx, s.delay); err != nil {
				if succeeded == 0 {
					return nil, source.NewFetchError(ID, fmt.Errorf("%s: %w", op, err))
				}
				// Отмена между запросами: отдаём то, что уже собрано.
				lg.Warn("social_fetch_interrupted",
					slog.String("op", op),
					slog.Int("queries_done", i),
					slog.String("err", err.Error()),
				)
				interrupted = true
				break
			}
		}

		items, err := s.search(ctx, q)
		if err != nil {
			failed++
			lastErr = err
			lg.Warn("social_query_failed",
				slog.String("op", op),
				slog.String("query", q),
				slog.String("err", err.Error()),
			)
			continue
		}

		succeeded++
		all = append(all, items...)
	}

	if succeeded == 0 {
		return nil, source.NewFetchError(ID, fmt.Errorf("%w: %v", source.ErrAllQueriesFailed, lastErr))
	}

	all = source.DedupeByURL(all)
	source.SortByTrending(all)

	// Неполный результат не кэшируется.
	if !interrupted {
		s.cache.Set(source.DefaultCacheKey, all)
	}

	lg.Debug("social_fetched",
		slog.String("op", op),
		slog.Int("queries", len(s.queries)),
		slog.Int("queries_failed", failed),
		slog.Int("articles", len(all)),
	)

	return all, nil
}

// search выполняет один запрос и маппит посты в статьи.
func (s *Source) search(ctx context.Context, query string) ([]models.Article, error) {
	const op = "social.search"

	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", strconv.Itoa(s.maxResults))
	params.Set("tweet.fields", "created_at,public_metrics,author_id,entities,lang")
	params.Set("expansions", "author_id")
	params.Set("user.fields", "username,name")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+searchPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new_request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	s.recordRateLimit(resp.Header)

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: status=%d", op, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	users := make(map[string]user, len(body.Includes.Users))
	for _, u := range body.Includes.Users {
		users[u.ID] = u
	}

	out := make([]models.Article, 0, len(body.Data))
	for _, p := range body.Data {
		if a, ok := s.toArticle(p, users[p.AuthorID]); ok {
			out = append(out, a)
		}
	}

	return out, nil
}

// toArticle маппит пост в статью. Посты, у которых после удаления ссылок
// не осталось текста, отбрасываются.
func (s *Source) toArticle(p post, author user) (models.Article, bool) {
	text := source.StripLinks(p.Text)
	if text == "" || p.ID == "" {
		return models.Article{}, false
	}

	// Без даты публикации идентификатор статьи не воспроизводим.
	published, err := time.Parse(time.RFC3339, p.CreatedAt)
	if err != nil {
		return models.Article{}, false
	}
	published = published.UTC()

	link := postURL(author.Username, p.ID)
	category := source.Classify(p.Text)
	trending := source.TrendingScore(source.Engagement{
		Likes:   p.PublicMetrics.LikeCount,
		Shares:  p.PublicMetrics.RetweetCount,
		Quotes:  p.PublicMetrics.QuoteCount,
		Replies: p.PublicMetrics.ReplyCount,
	})

	tags := make([]string, 0, len(p.Entities.Hashtags))
	for _, h := range p.Entities.Hashtags {
		if tag := strings.TrimSpace(h.Tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	var authorName string
	if author.Username != "" {
		authorName = "@" + author.Username
	}

	return models.Article{
		ID:                 models.ArticleID(ID, link, published),
		Title:              source.Truncate(text, maxTitleRunes),
		URL:                link,
		Description:        text,
		Source:             ID,
		SourceName:         defaultName,
		PublishedAt:        published,
		Author:             authorName,
		Tags:               tags,
		Category:           category,
		RelevanceScore:     trending,
		TrendingScore:      trending,
		TechScore:          source.TechScore(category, p.Text),
		EntertainmentValue: source.EntertainmentValue(category),
	}, true
}

// recordRateLimit запоминает квоту из заголовков x-rate-limit-*.
func (s *Source) recordRateLimit(h http.Header) {
	limit, errL := strconv.Atoi(h.Get("x-rate-limit-limit"))
	remaining, errR := strconv.Atoi(h.Get("x-rate-limit-remaining"))
	if errL != nil || errR != nil {
		return
	}

	info := &models.RateLimitInfo{Limit: limit, Remaining: remaining}
	if reset, err := strconv.ParseInt(h.Get("x-rate-limit-reset"), 10, 64); err == nil {
		info.ResetAt = time.Unix(reset, 0).UTC()
	}

	s.mu.Lock()
	s.rateLimit = info
	s.mu.Unlock()
}

func postURL(username, id string) string {
	if username == "" {
		return "https://x.com/i/web/status/" + id
	}

	return "https://x.com/" + username + "/status/" + id
}

// sleep ждёт d или отмену ctx.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
