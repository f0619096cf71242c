package image

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListCache stores browsing pages for a short time. Get reports the
// generation it looked under; a page read from the store after a miss is
// stored under that same generation, so a write landing in between leaves
// it unreachable.
type ListCache interface {
	Get(ctx context.Context, p ListParams) (result *ListResult, gen int64, ok bool, err error)
	Set(ctx context.Context, gen int64, p ListParams, result *ListResult) error
	// Invalidate makes every cached page stale.
	Invalidate(ctx context.Context) error
}

const (
	cacheKeyPrefix     = "gallery:list"
	cacheGenerationKey = "gallery:list:generation"
)

// RedisListCache keys pages by a generation counter. Writes bump the
// counter, so old pages are never read again and expire on their own.
type RedisListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisListCache returns a nil ListCache when client is nil, which
// disables caching in the service.
func NewRedisListCache(client *redis.Client, ttl time.Duration) ListCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &RedisListCache{client: client, ttl: ttl}
}

func (c *RedisListCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, cacheGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func pageKey(gen int64, p ListParams) string {
	return fmt.Sprintf("%s:%d:%s:%d:%d", cacheKeyPrefix, gen, url.QueryEscape(p.Tag), p.Page, p.Limit)
}

func (c *RedisListCache) Get(ctx context.Context, p ListParams) (*ListResult, int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := c.client.Get(ctx, pageKey(gen, p)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, err
	}

	var result ListResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, gen, false, err
	}
	return &result, gen, true, nil
}

func (c *RedisListCache) Set(ctx context.Context, gen int64, p ListParams, result *ListResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, pageKey(gen, p), raw, c.ttl).Err()
}

func (c *RedisListCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, cacheGenerationKey).Err()
}
