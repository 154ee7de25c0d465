// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ErrUnavailable indicates a transport-level failure talking to the CMS:
// network error, timeout, or a non-2xx response. Callers recover locally
// by treating the affected data as absent.
var ErrUnavailable = fmt.Errorf("cms: source unavailable")

// maxResponseSize caps how much of a CMS response body is read (8 MB).
const maxResponseSize = 8 << 20

// Client issues parameterized read queries against the CMS HTTP API.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  *slog.Logger
}

// NewClient creates a CMS client. The timeout bounds every outbound
// request; an unresponsive CMS must not hang a page render.
func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// get performs the HTTP request and returns the raw body bytes.
func (c *Client) get(ctx context.Context, q QuerySpec) ([]byte, error) {
	endpoint := c.baseURL + "/api/" + q.Collection
	if enc := q.Encode().Encode(); enc != "" {
		endpoint += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned HTTP %d", ErrUnavailable, q.Collection, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}
	return body, nil
}

// Fetch executes a query and returns the matched records, each already
// unwrapped to the flat canonical shape. The data element may be a list
// or, for single-type endpoints, a bare object; both are accepted.
func (c *Client) Fetch(ctx context.Context, q QuerySpec) ([]Record, error) {
	body, err := c.get(ctx, q)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed envelope from %s: %v", ErrUnavailable, q.Collection, err)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil, nil
	}

	var list []map[string]any
	if err := json.Unmarshal(envelope.Data, &list); err == nil {
		records := make([]Record, 0, len(list))
		for _, item := range list {
			records = append(records, Unwrap(item))
		}
		return records, nil
	}

	var single map[string]any
	if err := json.Unmarshal(envelope.Data, &single); err != nil {
		return nil, fmt.Errorf("%w: unexpected data shape from %s: %v", ErrUnavailable, q.Collection, err)
	}
	return []Record{Unwrap(single)}, nil
}

// Ping issues the cheapest possible read to verify the CMS answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, IndexQuery(Collections[GenericPage], 1, 1))
	return err
}

// FetchSlugs retrieves one page of a collection's slug index: only the
// slug field, capped at pageSize. Both the attributes-wrapped and flat
// response shapes are probed, in either field casing, since collections
// differ in both.
func (c *Client) FetchSlugs(ctx context.Context, coll Collection, page, pageSize int) ([]string, error) {
	body, err := c.get(ctx, IndexQuery(coll, page, pageSize))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var slugs []string
	for _, path := range slugIndexPaths(coll.SlugField) {
		for _, v := range gjson.GetBytes(body, path).Array() {
			s := v.String()
			if s == "" {
				continue
			}
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			slugs = append(slugs, s)
		}
	}
	return slugs, nil
}

// FetchAllSlugs pages through a collection's entire slug index. The page
// count is bounded so a misbehaving CMS cannot loop us forever.
func (c *Client) FetchAllSlugs(ctx context.Context, coll Collection, pageSize int) ([]string, error) {
	const maxPages = 50

	var all []string
	for page := 1; page <= maxPages; page++ {
		slugs, err := c.FetchSlugs(ctx, coll, page, pageSize)
		if err != nil {
			return all, err
		}
		all = append(all, slugs...)
		if len(slugs) < pageSize {
			break
		}
	}
	return all, nil
}

// slugIndexPaths lists the gjson paths to probe for a slug field,
// covering the attributes wrapper and both field casings.
func slugIndexPaths(field string) []string {
	variants := []string{field}
	if flipped := flipCase(field); flipped != field {
		variants = append(variants, flipped)
	}

	paths := make([]string, 0, len(variants)*2)
	for _, f := range variants {
		paths = append(paths, "data.#.attributes."+f, "data.#."+f)
	}
	return paths
}

// flipCase toggles the first letter's case: "slug" <-> "Slug".
func flipCase(s string) string {
	if s == "" {
		return s
	}
	first := s[:1]
	if upper := strings.ToUpper(first); upper != first {
		return upper + s[1:]
	}
	return strings.ToLower(first) + s[1:]
}
