package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	listCacheKey = "winter-cloths:list"
	listCacheTTL = 30 * time.Second
)

// ListCache caches the full catalog listing. A nil implementation means
// caching is disabled.
type ListCache interface {
	Get(ctx context.Context) ([]bson.M, error)
	Set(ctx context.Context, docs []bson.M) error
	Invalidate(ctx context.Context) error
}

type redisListCache struct {
	client *redis.Client
}

// NewRedisListCache builds a Redis-backed ListCache.
func NewRedisListCache(client *redis.Client) ListCache {
	return &redisListCache{client: client}
}

// Get returns the cached listing, or nil on a miss.
func (c *redisListCache) Get(ctx context.Context) ([]bson.M, error) {
	raw, err := c.client.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var docs []bson.M
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *redisListCache) Set(ctx context.Context, docs []bson.M) error {
	raw, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listCacheKey, raw, listCacheTTL).Err()
}

func (c *redisListCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, listCacheKey).Err()
}
