// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmarchetti/firmsite-go/internal/cms"
	"github.com/dmarchetti/firmsite-go/internal/util"
)

// ErrNoMatch indicates a detail fetch succeeded but returned zero
// records. It is user-visibly identical to a source failure (both render
// not-found); the distinction exists for diagnostics only.
var ErrNoMatch = errors.New("content: no matching record")

// Fetcher executes a detail query against the CMS.
type Fetcher interface {
	Fetch(ctx context.Context, q cms.QuerySpec) ([]cms.Record, error)
}

// Source is the full CMS surface the resolver depends on.
type Source interface {
	Fetcher
	SlugIndexer
}

// Result is the outcome of resolving a slug path: either NotFound, or a
// classified type with its normalized content ready for layout
// selection.
type Result struct {
	NotFound bool
	Type     cms.ContentType
	SlugPath string
	Record   cms.Record
	Hero     Hero
	Blocks   []Block
}

// Resolver runs the full pipeline: classify the slug, build and execute
// the type-specific detail query, disambiguate duplicates, and normalize
// the winning record. Every failure along the way degrades to a
// NotFound result; no error escapes to the caller.
type Resolver struct {
	source     Source
	classifier *Classifier
	logger     *slog.Logger
}

// NewResolver creates a Resolver over the given CMS source.
func NewResolver(source Source, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		source:     source,
		classifier: NewClassifier(source, logger),
		logger:     logger,
	}
}

// Resolve maps a slug path to renderable content.
func (r *Resolver) Resolve(ctx context.Context, slugPath string) Result {
	slugPath = util.CleanSlugPath(slugPath)
	if slugPath == "" {
		return Result{NotFound: true}
	}

	// Classification is done once per request; the membership sets are
	// not re-fetched between here and the detail fetch.
	contentType := r.classifier.Classify(ctx, slugPath)
	parent, leaf := util.SplitSlugPath(slugPath)
	query := cms.BuildQuery(contentType, leaf, parent)

	records, err := r.source.Fetch(ctx, query)
	if err != nil {
		r.logger.Warn("detail fetch failed, rendering not-found",
			"slug", slugPath, "type", string(contentType), "error", err)
		return Result{NotFound: true, Type: contentType, SlugPath: slugPath}
	}

	best := PickBest(records)
	if best == nil {
		r.logger.Info("no record matched slug",
			"slug", slugPath, "type", string(contentType), "reason", ErrNoMatch.Error())
		return Result{NotFound: true, Type: contentType, SlugPath: slugPath}
	}
	if len(records) > 1 {
		r.logger.Warn("duplicate slug in collection, picked best candidate",
			"slug", slugPath, "type", string(contentType), "count", len(records))
	}

	return Result{
		Type:     contentType,
		SlugPath: slugPath,
		Record:   best,
		Hero:     ResolveHero(best),
		Blocks:   bodyBlocks(best),
	}
}

// bodyBlocks pulls the record's main rich-text array, trying the field
// names the different collections use.
func bodyBlocks(r cms.Record) []Block {
	raw, ok := r.Slice(
		"blocks", "Blocks",
		"Content", "content",
		"Body", "body",
		"Description", "description",
	)
	if !ok {
		return nil
	}
	return NormalizeBlocks(raw)
}
