// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

// Package relay forwards lead submissions and chat messages to the
// external automation endpoints. Delivery is best-effort: a failed
// relay is logged, never surfaced to the visitor.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	maxAttempts    = 3                // Total delivery attempts per payload
	baseBackoff    = 2 * time.Second  // Backoff unit; attempt n waits n units
	attemptTimeout = 10 * time.Second // Per-attempt HTTP timeout
	maxResponseLen = 4 * 1024         // Response body read cap
	userAgent      = "firmsite/1.0"
)

// Relay posts JSON payloads to a fixed external endpoint with bounded
// retries.
type Relay struct {
	httpc  *http.Client
	logger *slog.Logger

	// newBackoff builds the retry schedule for one delivery; tests
	// swap in a zero-wait schedule.
	newBackoff func() retry.Backoff
}

// New creates a relay with a shared pooled HTTP client.
func New(logger *slog.Logger) *Relay {
	return &Relay{
		httpc: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:     logger,
		newBackoff: func() retry.Backoff { return linearBackoff(baseBackoff) },
	}
}

// linearBackoff waits base after the first failure, 2*base after the
// second, and so on.
func linearBackoff(base time.Duration) retry.Backoff {
	var attempt int64
	return retry.BackoffFunc(func() (time.Duration, bool) {
		n := atomic.AddInt64(&attempt, 1)
		return time.Duration(n) * base, false
	})
}

// Deliver POSTs payload as JSON to url, retrying transport failures,
// 5xx, 408 and 429 responses up to maxAttempts total attempts. Other
// 4xx responses abort immediately since the request will not get
// better. The event name travels in the X-Relay-Event header.
func (r *Relay) Deliver(ctx context.Context, url, event, referenceID string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", event, err)
	}

	backoff := retry.WithMaxRetries(maxAttempts-1, r.newBackoff())
	attempt := 0

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := r.attempt(ctx, url, event, referenceID, body); err != nil {
			r.logger.Warn("relay attempt failed",
				"event", event,
				"reference_id", referenceID,
				"attempt", attempt,
				"error", err)
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("deliver %s after %d attempts: %w", event, attempt, err)
	}

	r.logger.Info("relayed",
		"event", event,
		"reference_id", referenceID,
		"attempts", attempt)
	return nil
}

func (r *Relay) attempt(ctx context.Context, url, event, referenceID string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err) // bad URL, no retry
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Relay-Event", event)
	req.Header.Set("X-Reference-ID", referenceID)

	resp, err := r.httpc.Do(req)
	if err != nil {
		return retry.RetryableError(fmt.Errorf("request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseLen))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusRequestTimeout, resp.StatusCode == http.StatusTooManyRequests:
		return retry.RetryableError(fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	default:
		return retry.RetryableError(fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}
}
