// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmarchetti/firmsite-go/internal/cache"
	"github.com/dmarchetti/firmsite-go/internal/seo"
)

// sitemapTag groups every cached sitemap document; it is also the
// default tag of the revalidation webhook, so a bare revalidation call
// refreshes the sitemap.
const sitemapTag = "sitemap"

// SitemapHandler serves /sitemap.xml and the numbered chunks. Documents
// are rebuilt from the CMS on cache expiry or revalidation.
type SitemapHandler struct {
	source seo.SlugLister
	pages  *cache.Tagged
	site   seo.SiteConfig
	ttl    time.Duration
	logger *slog.Logger
}

// NewSitemapHandler creates the sitemap handler.
func NewSitemapHandler(source seo.SlugLister, pages *cache.Tagged, site seo.SiteConfig,
	ttl time.Duration, logger *slog.Logger) *SitemapHandler {
	return &SitemapHandler{source: source, pages: pages, site: site, ttl: ttl, logger: logger}
}

// Index handles GET /sitemap.xml: a single urlset for small sites, a
// sitemap index once the URL count exceeds the chunk size.
func (h *SitemapHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "sitemap:index", func(b *seo.SitemapBuilder) ([]byte, error) {
		if b.Chunks() > 1 {
			return b.BuildIndex()
		}
		return b.Build()
	})
}

// Chunk handles GET /sitemap-{n}.xml.
func (h *SitemapHandler) Chunk(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 1 {
		http.NotFound(w, r)
		return
	}
	h.serve(w, r, fmt.Sprintf("sitemap:%d", n), func(b *seo.SitemapBuilder) ([]byte, error) {
		return b.BuildChunk(n)
	})
}

func (h *SitemapHandler) serve(w http.ResponseWriter, r *http.Request, key string,
	build func(*seo.SitemapBuilder) ([]byte, error)) {
	ctx := r.Context()

	if doc, err := h.pages.Get(ctx, key); err == nil {
		serveXML(w, doc)
		return
	}

	builder, errs := seo.Collect(ctx, h.source, h.site.SiteURL)
	for _, err := range errs {
		h.logger.Warn("sitemap collection degraded", "error", err)
	}

	doc, err := build(builder)
	if err != nil {
		// Out-of-range chunk numbers land here.
		http.NotFound(w, r)
		return
	}

	if err := h.pages.Set(ctx, key, doc, h.ttl, sitemapTag); err != nil {
		h.logger.Warn("sitemap cache set failed", "key", key, "error", err)
	}
	serveXML(w, doc)
}

// Warm prebuilds the sitemap index into the cache. The scheduler calls
// this periodically so the first crawler of the day never pays the full
// collection walk.
func (h *SitemapHandler) Warm(ctx context.Context) {
	builder, errs := seo.Collect(ctx, h.source, h.site.SiteURL)
	for _, err := range errs {
		h.logger.Warn("sitemap warm degraded", "error", err)
	}
	var doc []byte
	var err error
	if builder.Chunks() > 1 {
		doc, err = builder.BuildIndex()
	} else {
		doc, err = builder.Build()
	}
	if err != nil {
		h.logger.Error("sitemap warm build failed", "error", err)
		return
	}
	if err := h.pages.Set(ctx, "sitemap:index", doc, h.ttl, sitemapTag); err != nil {
		h.logger.Warn("sitemap warm cache set failed", "error", err)
	}
}

func serveXML(w http.ResponseWriter, doc []byte) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(doc)
}
