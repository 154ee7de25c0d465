// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmarchetti/firmsite-go/internal/cache"
)

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(context.Context) error { return p.err }

func newHealthFixture(t *testing.T, pingErr error) *HealthHandler {
	t.Helper()
	backend := cache.NewMemoryCache()
	t.Cleanup(func() { _ = backend.Close() })
	return NewHealthHandler(&fakePinger{err: pingErr}, backend)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestHealthOK(t *testing.T) {
	h := newHealthFixture(t, nil)
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if _, ok := body["cache"]; !ok {
		t.Error("cache stats missing from health response")
	}
}

func TestHealthDegradedWhenCMSDown(t *testing.T) {
	h := newHealthFixture(t, errors.New("connection refused"))
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	// A down CMS degrades the site, it does not take it offline.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "degraded" {
		t.Errorf("status = %v, want degraded", body["status"])
	}
	checks := body["checks"].(map[string]any)
	if checks["cms"] != "unreachable" {
		t.Errorf("cms check = %v, want unreachable", checks["cms"])
	}
}

func TestLiveness(t *testing.T) {
	h := newHealthFixture(t, errors.New("down"))
	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestReadiness(t *testing.T) {
	h := newHealthFixture(t, nil)
	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	h = newHealthFixture(t, errors.New("down"))
	rec = httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
