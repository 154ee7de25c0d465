// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the page and fragment cache used by the
// frontend. Two backends are available: an in-process memory cache for
// development and single-instance deployments, and a Redis cache for
// multi-instance deployments where revalidation must reach every node.
package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCacheMiss is returned by Get when the key is absent or expired.
	ErrCacheMiss = errors.New("cache: miss")

	// ErrCacheClosed is returned after Close has been called.
	ErrCacheClosed = errors.New("cache: closed")
)

// Cacher is the backend contract. Values are opaque byte slices; typed
// access goes through TypedCache.
type Cacher interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
	Close() error
}

// CacheStats holds hit/miss counters for the stats endpoint.
type CacheStats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Sets    int64 `json:"sets"`
	Deletes int64 `json:"deletes"`
	Keys    int64 `json:"keys"`
}

// StatsProvider is implemented by backends that track counters.
type StatsProvider interface {
	Stats() CacheStats
}
