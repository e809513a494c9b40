// Package rediscache implements the CacheHandle contract (see the cache
// package) against Redis, using small server-side Lua scripts to give
// set/invalidate a monotonic-timestamp discipline: a stale write racing
// behind an invalidate for the same key is rejected by the server rather
// than resurrecting deleted data.
package rediscache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orishu/turbocache/cache"
	"github.com/orishu/turbocache/internal/logging"
)

// Cache wraps a Redis connection. The zero value is not usable; construct
// with New.
type Cache struct {
	rdb *redis.Client
}

// New wraps rdb and pre-loads the td_get/td_set/td_invalidate scripts so
// the first real call doesn't pay a cache-miss-on-script round trip.
// Loading is idempotent: calling New repeatedly against the same server is
// safe.
func New(ctx context.Context, rdb *redis.Client) (*Cache, error) {
	c := &Cache{rdb: rdb}
	for _, script := range []*redis.Script{tdGet, tdSet, tdInvalidate} {
		if err := script.Load(ctx, rdb).Err(); err != nil {
			return nil, cache.NewError("failed to load cache script", err)
		}
	}
	return c, nil
}

// Handle returns a cache.Handle backed by this Cache. Handles are cheap to
// clone: every clone shares the same underlying *redis.Client connection
// pool.
func (c *Cache) Handle() cache.Handle {
	return handle{cache: c}
}

type handle struct {
	cache *Cache
}

func (h handle) GetBytes(ctx context.Context, key string) ([]byte, error) {
	res, err := tdGet.Run(ctx, h.cache.rdb, []string{key}).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, cache.NewError("redis get failed for key "+key, err)
	}
	s, ok := res.(string)
	if !ok {
		return nil, nil
	}
	return []byte(s), nil
}

func (h handle) PutBytes(ctx context.Context, key string, value []byte) error {
	now := time.Now()
	res, err := tdSet.Run(ctx, h.cache.rdb, []string{key}, string(value), now.Unix(), int64(now.Nanosecond())).Result()
	if err != nil {
		return cache.NewError("redis put failed for key "+key, err)
	}
	if accepted, ok := res.(int64); ok && accepted == 0 {
		// Lost the race to a concurrent invalidate. Not an error from the
		// caller's point of view (see DESIGN.md Open Question 3) — just
		// worth knowing about when debugging cache coherence.
		logging.LogDebug(ctx, "redis cache write rejected by tombstone", map[string]interface{}{"key": key})
	}
	return nil
}

func (h handle) Delete(ctx context.Context, key string) error {
	now := time.Now()
	if err := tdInvalidate.Run(ctx, h.cache.rdb, []string{key}, now.Unix(), int64(now.Nanosecond())).Err(); err != nil {
		return cache.NewError("redis delete failed for key "+key, err)
	}
	return nil
}

func (h handle) ScanKeys(ctx context.Context, pattern string) (map[string]string, error) {
	out := make(map[string]string)
	iter := h.cache.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		val, err := h.cache.rdb.HGet(ctx, key, "v").Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, cache.NewError("redis scan failed to read key "+key, err)
		}
		out[key] = val
	}
	if err := iter.Err(); err != nil {
		return nil, cache.NewError("redis scan failed", err)
	}
	return out, nil
}

func (h handle) Clone() cache.Handle {
	return handle{cache: h.cache}
}
