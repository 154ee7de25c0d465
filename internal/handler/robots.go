// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/dmarchetti/firmsite-go/internal/seo"
)

// RobotsHandler serves /robots.txt. Staging deployments block all
// crawlers.
type RobotsHandler struct {
	body string
}

// NewRobotsHandler renders robots.txt once at startup; it only depends
// on configuration.
func NewRobotsHandler(siteURL string, disallowAll bool) *RobotsHandler {
	return &RobotsHandler{
		body: seo.GenerateRobots(seo.RobotsConfig{SiteURL: siteURL, DisallowAll: disallowAll}),
	}
}

// Robots handles GET /robots.txt.
func (h *RobotsHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(h.body))
}
