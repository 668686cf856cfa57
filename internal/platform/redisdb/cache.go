package redisdb

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/modbridge/modbridge-backend/internal/inference/engine"
	"github.com/modbridge/modbridge-backend/internal/platform/logger"
)

// InferenceCache is the redis-backed read-through cache for single-concept
// inference results. Every failure degrades to a cache miss; the cache can
// never make an inference fail.
type InferenceCache struct {
	rdb *goredis.Client
	log *logger.Logger
}

func NewInferenceCache(rdb *goredis.Client, log *logger.Logger) *InferenceCache {
	return &InferenceCache{rdb: rdb, log: log.With("cache", "InferenceCache")}
}

func (c *InferenceCache) GetInference(ctx context.Context, key string) (*engine.InferenceResult, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.Warn("cache read degraded", "key", key, "error", err)
		}
		return nil, false
	}
	var res engine.InferenceResult
	if err := json.Unmarshal(raw, &res); err != nil {
		c.log.Warn("cache entry corrupt, dropping", "key", key, "error", err)
		_ = c.rdb.Del(ctx, key).Err()
		return nil, false
	}
	return &res, true
}

func (c *InferenceCache) SetInference(ctx context.Context, key string, res *engine.InferenceResult, ttl time.Duration) {
	if c == nil || c.rdb == nil || res == nil || ttl <= 0 {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		c.log.Warn("cache write skipped, marshal failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.log.Warn("cache write degraded", "key", key, "error", err)
	}
}
