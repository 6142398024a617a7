package source

import (
	"sync"
	"time"

	"github.com/pribylovaa/trending-curator/internal/models"
)

const (
	// DefaultCacheTTL — время жизни записи кэша источника.
	DefaultCacheTTL = 15 * time.Minute
	// DefaultCacheKey — ключ по умолчанию: одна запись на экземпляр источника.
	DefaultCacheKey = "default"
)

type cacheEntry struct {
	articles  []models.Article
	fetchedAt time.Time
}

// Cache — TTL-кэш статей, которым владеет ровно один источник.
// Get/Set копируют срезы, поэтому вызывающие не делят память с кэшем.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

// NewCache создаёт кэш. ttl <= 0 — используется DefaultCacheTTL; now == nil — time.Now.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	if now == nil {
		now = time.Now
	}

	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

// Get возвращает неистёкшую запись по ключу.
func (c *Cache) Get(key string) ([]models.Article, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if c.now().Sub(e.fetchedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}

	return models.CloneArticles(e.articles), true
}

// Set сохраняет статьи с текущим временем загрузки.
func (c *Cache) Set(key string, articles []models.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		articles:  models.CloneArticles(articles),
		fetchedAt: c.now(),
	}
}

// FetchedAt возвращает время загрузки записи, если она есть.
func (c *Cache) FetchedAt(key string) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	return e.fetchedAt, ok
}

// Invalidate удаляет все записи.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

// TTL возвращает время жизни записи.
func (c *Cache) TTL() time.Duration { return c.ttl }
