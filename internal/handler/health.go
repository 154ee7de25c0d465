// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dmarchetti/firmsite-go/internal/cache"
)

// SourcePinger checks that the content source answers.
type SourcePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	source    SourcePinger
	cache     cache.Cacher
	startTime time.Time
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(source SourcePinger, c cache.Cacher) *HealthHandler {
	return &HealthHandler{source: source, cache: c, startTime: time.Now()}
}

// Health handles GET /health: overall status, uptime, and cache
// counters when the backend tracks them.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK

	cmsStatus := "ok"
	if err := h.source.Ping(r.Context()); err != nil {
		// A down CMS degrades the site to cached pages, it does not
		// take it offline.
		cmsStatus = "unreachable"
		status = "degraded"
	}

	resp := map[string]any{
		"status": status,
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
		"checks": map[string]string{"cms": cmsStatus},
	}
	if provider, ok := h.cache.(cache.StatsProvider); ok {
		resp["cache"] = provider.Stats()
	}
	writeJSON(w, code, resp)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready: not ready until the CMS
// answers.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if err := h.source.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
