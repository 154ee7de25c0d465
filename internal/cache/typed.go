// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// TypedCache stores JSON-encoded values of a single type on top of a
// Cacher.
type TypedCache[T any] struct {
	backend Cacher
	ttl     time.Duration
}

// NewTypedCache wraps backend with a default TTL applied on Set.
func NewTypedCache[T any](backend Cacher, ttl time.Duration) *TypedCache[T] {
	return &TypedCache[T]{backend: backend, ttl: ttl}
}

func (c *TypedCache[T]) Get(ctx context.Context, key string) (T, error) {
	var value T
	raw, err := c.backend.Get(ctx, key)
	if err != nil {
		return value, err
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, fmt.Errorf("decode cached %q: %w", key, err)
	}
	return value, nil
}

func (c *TypedCache[T]) Set(ctx context.Context, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return c.backend.Set(ctx, key, raw, c.ttl)
}

func (c *TypedCache[T]) Delete(ctx context.Context, key string) error {
	return c.backend.Delete(ctx, key)
}

// GetOrSet returns the cached value, or computes, stores and returns it
// on a miss. A computed value is returned even when storing it fails;
// the caller gets fresh data and the next call recomputes.
func (c *TypedCache[T]) GetOrSet(ctx context.Context, key string, compute func(context.Context) (T, error)) (T, error) {
	value, err := c.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	value, err = compute(ctx)
	if err != nil {
		return value, err
	}
	_ = c.Set(ctx, key, value)
	return value, nil
}
