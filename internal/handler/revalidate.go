// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmarchetti/firmsite-go/internal/cache"
)

const maxRevalidateBody = 64 * 1024

// defaultRevalidateTag is invalidated when the webhook body names no
// tag or path.
const defaultRevalidateTag = "sitemap"

// RevalidateHandler exposes POST /api/revalidate for the CMS to drop
// cached content the moment something is published.
type RevalidateHandler struct {
	pages  *cache.Tagged
	secret string
	logger *slog.Logger
}

// NewRevalidateHandler creates the revalidation webhook handler.
func NewRevalidateHandler(pages *cache.Tagged, secret string, logger *slog.Logger) *RevalidateHandler {
	return &RevalidateHandler{pages: pages, secret: secret, logger: logger}
}

type revalidateRequest struct {
	Tag  string `json:"tag"`
	Path string `json:"path"`
}

// Revalidate handles the webhook call. The token arrives either in the
// x-webhook-token header or as a bearer token; both compare in constant
// time.
func (h *RevalidateHandler) Revalidate(w http.ResponseWriter, r *http.Request) {
	if h.secret == "" {
		h.logger.Error("revalidation requested but no secret is configured")
		writeJSONError(w, http.StatusInternalServerError, "revalidation is not configured")
		return
	}

	if !h.authorized(r) {
		writeJSONError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	var req revalidateRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRevalidateBody))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	// An empty body means "default tag"; anything else must parse.
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "malformed JSON body")
			return
		}
	}

	ctx := r.Context()
	now := time.Now().UnixMilli()

	if req.Path != "" {
		if !strings.HasPrefix(req.Path, "/") {
			req.Path = "/" + req.Path
		}
		if err := h.pages.InvalidatePath(ctx, req.Path); err != nil {
			h.logger.Error("path invalidation failed", "path", req.Path, "error", err)
			writeJSONError(w, http.StatusInternalServerError, "invalidation failed")
			return
		}
		h.logger.Info("revalidated path", "path", req.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"revalidated": true,
			"type":        "path",
			"path":        req.Path,
			"now":         now,
		})
		return
	}

	tag := req.Tag
	if tag == "" {
		tag = defaultRevalidateTag
	}
	dropped, err := h.pages.InvalidateTag(ctx, tag)
	if err != nil {
		h.logger.Error("tag invalidation failed", "tag", tag, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "invalidation failed")
		return
	}
	h.logger.Info("revalidated tag", "tag", tag, "dropped", dropped)
	writeJSON(w, http.StatusOK, map[string]any{
		"revalidated": true,
		"type":        "tag",
		"tag":         tag,
		"now":         now,
	})
}

func (h *RevalidateHandler) authorized(r *http.Request) bool {
	token := r.Header.Get("x-webhook-token")
	if token == "" {
		auth := r.Header.Get("Authorization")
		if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
			token = auth[7:]
		}
	}
	if token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.secret)) == 1
}
