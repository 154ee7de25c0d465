// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"

	"github.com/dmarchetti/firmsite-go/internal/config"
)

// New returns the cache backend selected by the configuration: Redis
// when FIRMSITE_REDIS_URL is set, the in-process memory cache otherwise.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Cacher, error) {
	if cfg.UseRedisCache() {
		redis, err := NewRedisCache(ctx, cfg.RedisURL, cfg.CachePrefix)
		if err != nil {
			return nil, err
		}
		logger.Info("cache backend: redis", "prefix", cfg.CachePrefix)
		return redis, nil
	}
	logger.Info("cache backend: memory")
	return NewMemoryCache(), nil
}
