// cache — кэш результатов курирования на стороне вызывающего (Redis).
// Собственные TTL-кэши источников живут в internal/source и сюда не относятся.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pribylovaa/trending-curator/internal/models"
)

// ResultCache — минимальный контракт кэша результатов.
type ResultCache interface {
	// Get возвращает результат и признак его наличия в кэше.
	Get(ctx context.Context, key string) (*models.TrendingResult, bool, error)
	// Set сохраняет результат с TTL.
	Set(ctx context.Context, key string, r *models.TrendingResult, ttl time.Duration) error
	// Invalidate удаляет все ключи с префиксом кэша.
	Invalidate(ctx context.Context) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "curator:".
func NewRedisCache(redisURL, prefix string) (ResultCache, error) {
	const op = "cache.NewRedisCache"

	if prefix == "" {
		prefix = "curator:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse_url: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) key(k string) string { return c.prefix + "result:" + k }

// Храним результат одной JSON-строкой.
func (c *redisCache) Get(ctx context.Context, key string) (*models.TrendingResult, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var r models.TrendingResult
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, false, err
	}

	return &r, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, r *models.TrendingResult, ttl time.Duration) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, c.key(key), raw, ttl).Err()
}

func (c *redisCache) Invalidate(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, c.prefix+"result:*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) == 0 {
		return nil
	}

	return c.rdb.Del(ctx, keys...).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }
