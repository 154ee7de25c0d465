// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmarchetti/firmsite-go/internal/cache"
	"github.com/dmarchetti/firmsite-go/internal/cms"
	"github.com/dmarchetti/firmsite-go/internal/content"
	"github.com/dmarchetti/firmsite-go/internal/nav"
	"github.com/dmarchetti/firmsite-go/internal/render"
	"github.com/dmarchetti/firmsite-go/internal/seo"
	"github.com/dmarchetti/firmsite-go/internal/util"
)

// homeSlug is the generic page the site root resolves to.
const homeSlug = "home"

const navCacheKey = "nav"

// FrontendHandler serves the public pages: the home page and the slug
// catch-all. Rendered pages are cached under their path and tagged by
// content type so the revalidation webhook can drop them in groups.
type FrontendHandler struct {
	resolver *content.Resolver
	source   content.Source
	renderer *render.Renderer
	pages    *cache.Tagged
	nav      *cache.TypedCache[[]nav.Item]
	site     seo.SiteConfig
	ttl      time.Duration
	logger   *slog.Logger
}

// NewFrontendHandler wires the resolution pipeline to the page cache.
func NewFrontendHandler(source content.Source, renderer *render.Renderer, pages *cache.Tagged,
	navCache *cache.TypedCache[[]nav.Item], site seo.SiteConfig, ttl time.Duration,
	logger *slog.Logger) *FrontendHandler {
	return &FrontendHandler{
		resolver: content.NewResolver(source, logger),
		source:   source,
		renderer: renderer,
		pages:    pages,
		nav:      navCache,
		site:     site,
		ttl:      ttl,
		logger:   logger,
	}
}

// Home handles GET /. The root resolves the designated home slug; a
// missing home page still renders with site defaults instead of a 404
// at the front door.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := cache.PageKey("/")

	if page, err := h.pages.Get(ctx, key); err == nil {
		serveHTML(w, http.StatusOK, page, "HIT")
		return
	}

	res := h.resolver.Resolve(ctx, homeSlug)
	if res.NotFound {
		res = content.Result{Type: cms.GenericPage, Record: cms.Record{}}
	}
	res.SlugPath = "" // canonical path is /, not /home

	navItems := h.navItems(r)
	view := h.renderer.BuildView(res, h.site, navItems)
	if view.Hero.Title == "" {
		view.Hero.Title = h.site.SiteName
	}

	page, err := h.renderer.Render(render.LayoutHome, view)
	if err != nil {
		h.logger.Error("home render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.pages.Set(ctx, key, page, h.ttl, string(res.Type)); err != nil {
		h.logger.Warn("page cache set failed", "path", "/", "error", err)
	}
	serveHTML(w, http.StatusOK, page, "MISS")
}

// Page handles GET /* for every content path.
func (h *FrontendHandler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugPath := util.CleanSlugPath(chi.URLParam(r, "*"))
	path := "/" + slugPath
	key := cache.PageKey(path)

	if page, err := h.pages.Get(ctx, key); err == nil {
		serveHTML(w, http.StatusOK, page, "HIT")
		return
	}

	navItems := h.navItems(r)

	res := h.resolver.Resolve(ctx, slugPath)
	if res.NotFound {
		h.renderNotFound(w, r, navItems, path)
		return
	}

	view := h.renderer.BuildView(res, h.site, navItems)
	page, err := h.renderer.Render(render.SelectLayout(res.Type), view)
	if err != nil {
		h.logger.Error("page render failed", "path", path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.pages.Set(ctx, key, page, h.ttl, string(res.Type)); err != nil {
		h.logger.Warn("page cache set failed", "path", path, "error", err)
	}
	serveHTML(w, http.StatusOK, page, "MISS")
}

// NotFound renders the uniform 404 page for unmatched routes.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderNotFound(w, r, h.navItems(r), r.URL.Path)
}

func (h *FrontendHandler) renderNotFound(w http.ResponseWriter, r *http.Request, navItems []nav.Item, path string) {
	view := render.NotFoundView(h.site, navItems, path)
	page, err := h.renderer.Render(render.LayoutNotFound, view)
	if err != nil {
		h.logger.Error("not-found render failed", "error", err)
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	// Not cached: missing slugs are unbounded and would flood the cache.
	serveHTML(w, http.StatusNotFound, page, "")
}

// navItems returns the cached navigation tree, loading it from the CMS
// on expiry. A load failure degrades to an empty navbar.
func (h *FrontendHandler) navItems(r *http.Request) []nav.Item {
	items, err := h.nav.GetOrSet(r.Context(), navCacheKey, func(ctx context.Context) ([]nav.Item, error) {
		return nav.Load(ctx, h.source), nil
	})
	if err != nil {
		h.logger.Warn("navigation cache failed", "error", err)
		return nil
	}
	return items
}

func serveHTML(w http.ResponseWriter, status int, page []byte, cacheState string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if cacheState != "" {
		w.Header().Set("X-Cache", cacheState)
	}
	w.WriteHeader(status)
	_, _ = w.Write(page)
}
