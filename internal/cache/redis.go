// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisScanCount = 100

// RedisCache backs the page cache with Redis so that revalidation on
// one instance is visible to all of them. Keys are namespaced with a
// prefix to allow sharing a database with other applications.
type RedisCache struct {
	client *redis.Client
	prefix string
	closed atomic.Bool

	hits    atomic.Int64
	misses  atomic.Int64
	sets    atomic.Int64
	deletes atomic.Int64
}

// NewRedisCache connects to the Redis instance described by url
// (redis://[:password@]host:port/db) and verifies the connection.
func NewRedisCache(ctx context.Context, url, prefix string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if prefix == "" {
		prefix = "firmsite:"
	}
	return &RedisCache{client: client, prefix: prefix}, nil
}

func (c *RedisCache) key(key string) string {
	return c.prefix + key
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}
	value, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.misses.Add(1)
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	c.hits.Add(1)
	return value, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	c.sets.Add(1)
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	n, err := c.client.Del(ctx, c.key(key)).Result()
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	c.deletes.Add(n)
	return nil
}

// Clear removes every key under the cache prefix. It scans rather than
// FLUSHDB so keys owned by other applications survive.
func (c *RedisCache) Clear(ctx context.Context) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	iter := c.client.Scan(ctx, 0, c.prefix+"*", redisScanCount).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= redisScanCount {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis clear: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("redis clear: %w", err)
		}
	}
	return nil
}

func (c *RedisCache) Has(ctx context.Context, key string) bool {
	if c.closed.Load() {
		return false
	}
	n, err := c.client.Exists(ctx, c.key(key)).Result()
	return err == nil && n > 0
}

func (c *RedisCache) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	return c.client.Close()
}

func (c *RedisCache) Stats() CacheStats {
	var keys int64
	if !c.closed.Load() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		iter := c.client.Scan(ctx, 0, c.prefix+"*", redisScanCount).Iterator()
		for iter.Next(ctx) {
			keys++
		}
	}
	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Sets:    c.sets.Load(),
		Deletes: c.deletes.Load(),
		Keys:    keys,
	}
}
