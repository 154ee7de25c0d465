// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"sync"
	"time"
)

// Tagged wraps a Cacher with a tag index so groups of keys can be
// dropped together. The revalidation webhook invalidates by tag (a
// content type) or by a single path; both map onto this index.
//
// The index lives in process memory. With the Redis backend a tag
// invalidation therefore only covers keys written by this instance;
// cross-instance invalidation goes through Clear.
type Tagged struct {
	backend Cacher

	mu   sync.Mutex
	tags map[string]map[string]struct{}
}

// PageKey is the cache key for a rendered page at the given URL path.
func PageKey(path string) string {
	return "page:" + path
}

// NewTagged wraps backend with an empty tag index.
func NewTagged(backend Cacher) *Tagged {
	return &Tagged{
		backend: backend,
		tags:    make(map[string]map[string]struct{}),
	}
}

func (t *Tagged) Get(ctx context.Context, key string) ([]byte, error) {
	return t.backend.Get(ctx, key)
}

// Set stores the value and records the key under each tag.
func (t *Tagged) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	if err := t.backend.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}
	t.mu.Lock()
	for _, tag := range tags {
		keys, ok := t.tags[tag]
		if !ok {
			keys = make(map[string]struct{})
			t.tags[tag] = keys
		}
		keys[key] = struct{}{}
	}
	t.mu.Unlock()
	return nil
}

// Delete removes a single key from the backend and the index.
func (t *Tagged) Delete(ctx context.Context, key string) error {
	t.mu.Lock()
	for tag, keys := range t.tags {
		delete(keys, key)
		if len(keys) == 0 {
			delete(t.tags, tag)
		}
	}
	t.mu.Unlock()
	return t.backend.Delete(ctx, key)
}

// InvalidateTag drops every key recorded under tag and returns how many
// keys were removed. An unknown tag is not an error.
func (t *Tagged) InvalidateTag(ctx context.Context, tag string) (int, error) {
	t.mu.Lock()
	keys := t.tags[tag]
	delete(t.tags, tag)
	removed := make([]string, 0, len(keys))
	for key := range keys {
		removed = append(removed, key)
		// The key may also be indexed under other tags.
		for other, others := range t.tags {
			delete(others, key)
			if len(others) == 0 {
				delete(t.tags, other)
			}
		}
	}
	t.mu.Unlock()

	for _, key := range removed {
		if err := t.backend.Delete(ctx, key); err != nil {
			return 0, err
		}
	}
	return len(removed), nil
}

// InvalidatePath drops the cached render of a single URL path.
func (t *Tagged) InvalidatePath(ctx context.Context, path string) error {
	return t.Delete(ctx, PageKey(path))
}

// Clear empties the backend and the index.
func (t *Tagged) Clear(ctx context.Context) error {
	t.mu.Lock()
	t.tags = make(map[string]map[string]struct{})
	t.mu.Unlock()
	return t.backend.Clear(ctx)
}
