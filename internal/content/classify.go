// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content implements the page-resolution pipeline: slug
// classification across CMS collections, record disambiguation, and the
// tolerant shape normalizers that extract canonical hero, image and
// rich-text structures from inconsistently shaped CMS payloads.
package content

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmarchetti/firmsite-go/internal/cms"
)

// indexPageSize bounds each classification index probe.
const indexPageSize = 200

// SlugIndexer fetches one page of a collection's slug index.
type SlugIndexer interface {
	FetchSlugs(ctx context.Context, coll cms.Collection, page, pageSize int) ([]string, error)
}

// Classifier determines which content type owns a slug by probing the
// specialized collections' slug indexes concurrently.
type Classifier struct {
	source SlugIndexer
	logger *slog.Logger
}

// NewClassifier creates a Classifier backed by the given slug index source.
func NewClassifier(source SlugIndexer, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{source: source, logger: logger}
}

// Classify resolves a slug path to its owning content type. The four
// specialized indexes are probed concurrently; membership is checked in
// tie-break priority order (attorney > article > job > faq), and a slug
// in none of them falls through to GenericPage. The generic collection
// is not probed: a wrong guess surfaces naturally as a zero-record
// detail fetch.
//
// A failed or malformed probe yields an empty membership set rather
// than an error: a transient CMS hiccup on one collection must not 404
// an otherwise-resolvable page.
func (c *Classifier) Classify(ctx context.Context, slugPath string) cms.ContentType {
	sets := make(map[cms.ContentType]map[string]struct{}, len(cms.SpecializedTypes))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, t := range cms.SpecializedTypes {
		wg.Add(1)
		go func(t cms.ContentType) {
			defer wg.Done()

			slugs, err := c.source.FetchSlugs(ctx, cms.Collections[t], 1, indexPageSize)
			if err != nil {
				c.logger.Warn("slug index probe failed, treating membership as empty",
					"collection", cms.Collections[t].Name, "error", err)
				return
			}

			set := make(map[string]struct{}, len(slugs))
			for _, s := range slugs {
				set[s] = struct{}{}
			}

			mu.Lock()
			sets[t] = set
			mu.Unlock()
		}(t)
	}
	wg.Wait()

	var matches []cms.ContentType
	for _, t := range cms.SpecializedTypes {
		if _, ok := sets[t][slugPath]; ok {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return cms.GenericPage
	case 1:
		return matches[0]
	default:
		// A slug claimed by more than one collection is a content-entry
		// mistake; resolve by priority but surface it for cleanup.
		c.logger.Warn("slug present in multiple collections, resolving by priority",
			"slug", slugPath, "matches", typeNames(matches), "resolved", string(matches[0]))
		return matches[0]
	}
}

func typeNames(types []cms.ContentType) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}
