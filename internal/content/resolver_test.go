// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarchetti/firmsite-go/internal/cms"
)

// fakeCMS is an httptest-backed CMS with per-collection slug indexes and
// canned detail responses.
type fakeCMS struct {
	t *testing.T

	// slug indexes per collection name
	indexes map[string][]string

	// detail responses per collection name (raw envelope JSON)
	details map[string]string

	// collections whose detail endpoint returns HTTP 500
	failDetail map[string]bool

	// last detail query observed, for asserting on query shape
	lastDetailQuery map[string]string
}

func (f *fakeCMS) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collection := r.URL.Path[len("/api/"):]
		q := r.URL.Query()

		// Index probes request only the slug field.
		if q.Get("fields[0]") != "" {
			slugs := f.indexes[collection]
			data := make([]map[string]any, 0, len(slugs))
			for _, s := range slugs {
				data = append(data, map[string]any{"slug": s, "Slug": s})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
			return
		}

		if f.failDetail[collection] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		f.lastDetailQuery = map[string]string{"collection": collection}
		for key, vals := range q {
			f.lastDetailQuery[key] = vals[0]
		}

		body, ok := f.details[collection]
		if !ok {
			body = `{"data":[]}`
		}
		_, _ = w.Write([]byte(body))
	}
}

func newTestResolver(t *testing.T, fake *fakeCMS) *Resolver {
	t.Helper()
	fake.t = t
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	client := cms.NewClient(srv.URL, "", 2*time.Second, nil)
	return NewResolver(client, nil)
}

func TestResolveAttorneyEndToEnd(t *testing.T) {
	// Scenario: only the attorney index knows "jane-doe".
	fake := &fakeCMS{
		indexes: map[string][]string{"team-members": {"jane-doe"}},
		details: map[string]string{
			"team-members": `{"data":[{"id":1,"slug":"jane-doe","name":"Jane Doe"}]}`,
		},
	}
	r := newTestResolver(t, fake)

	result := r.Resolve(context.Background(), "jane-doe")
	require.False(t, result.NotFound)
	assert.Equal(t, cms.AttorneyPage, result.Type)
	assert.Equal(t, "Jane Doe", result.Record.String("name"))

	// The detail fetch must be slug-filtered and wildcard-populated.
	assert.Equal(t, "team-members", fake.lastDetailQuery["collection"])
	assert.Equal(t, "jane-doe", fake.lastDetailQuery["filters[slug][$eq]"])
	assert.Equal(t, "*", fake.lastDetailQuery["populate"])
}

func TestResolveGenericWithParentPath(t *testing.T) {
	// Scenario: membership empty everywhere, nested slug.
	fake := &fakeCMS{
		details: map[string]string{
			"pages": `{"data":[{"id":4,"attributes":{"Title":"Overview","Slug":"overview"}}]}`,
		},
	}
	r := newTestResolver(t, fake)

	result := r.Resolve(context.Background(), "practice-areas/overview")
	require.False(t, result.NotFound)
	assert.Equal(t, cms.GenericPage, result.Type)
	assert.Equal(t, "Overview", result.Record.String("Title"))

	assert.Equal(t, "overview", fake.lastDetailQuery["filters[Slug][$eq]"])
	assert.Equal(t, "/practice-areas", fake.lastDetailQuery["filters[parent_page][URL][$eq]"])
	assert.Equal(t, "updatedAt:desc", fake.lastDetailQuery["sort"])
}

func TestResolveGenericSingleSegmentHasNoParentFilter(t *testing.T) {
	fake := &fakeCMS{
		details: map[string]string{
			"pages": `{"data":[{"id":4,"attributes":{"Title":"About","Slug":"about-us"}}]}`,
		},
	}
	r := newTestResolver(t, fake)

	result := r.Resolve(context.Background(), "about-us")
	require.False(t, result.NotFound)
	_, hasParent := fake.lastDetailQuery["filters[parent_page][URL][$eq]"]
	assert.False(t, hasParent)
}

func TestResolveDetailHTTPErrorRendersNotFound(t *testing.T) {
	fake := &fakeCMS{
		indexes:    map[string][]string{"articles": {"new-ruling"}},
		failDetail: map[string]bool{"articles": true},
	}
	r := newTestResolver(t, fake)

	result := r.Resolve(context.Background(), "new-ruling")
	assert.True(t, result.NotFound)
	assert.Equal(t, cms.ArticlePage, result.Type)
}

func TestResolveZeroRecordsRendersNotFound(t *testing.T) {
	fake := &fakeCMS{
		details: map[string]string{"pages": `{"data":[]}`},
	}
	r := newTestResolver(t, fake)

	result := r.Resolve(context.Background(), "missing-page")
	assert.True(t, result.NotFound)
	assert.Equal(t, cms.GenericPage, result.Type)
}

func TestResolveNormalizesHeroFromHeroNestedButton(t *testing.T) {
	fake := &fakeCMS{
		indexes: map[string][]string{"job-postings": {"paralegal"}},
		details: map[string]string{
			"job-postings": `{"data":[{
				"id":8,
				"slug":"paralegal",
				"title":"Paralegal",
				"Hero":{"button":[{"Text":"Apply","url":"/apply"}]},
				"description":[
					{"type":"paragraph","children":[{"type":"text","text":"Join our team."}]}
				]
			}]}`,
		},
	}
	r := newTestResolver(t, fake)

	result := r.Resolve(context.Background(), "paralegal")
	require.False(t, result.NotFound)
	assert.Equal(t, cms.JobPage, result.Type)

	require.NotNil(t, result.Hero.CTA)
	assert.Equal(t, "/apply", result.Hero.CTA.Href)
	assert.Equal(t, "Apply", result.Hero.CTA.Label)
	assert.False(t, result.Hero.CTA.IsExternal)

	require.Len(t, result.Blocks, 1)
	assert.Equal(t, "Join our team.", result.Blocks[0].Text())
}

func TestResolveDuplicateSlugsPicksBest(t *testing.T) {
	fake := &fakeCMS{
		details: map[string]string{
			"pages": `{"data":[
				{"id":1,"attributes":{"Title":"Bare","Slug":"dup"}},
				{"id":2,"attributes":{"Title":"Complete","Slug":"dup",
					"Button":[{"label":"Go","url":"/go"}]}}
			]}`,
		},
	}
	r := newTestResolver(t, fake)

	result := r.Resolve(context.Background(), "dup")
	require.False(t, result.NotFound)
	assert.Equal(t, "Complete", result.Record.String("Title"))
}

func TestResolveEmptySlug(t *testing.T) {
	fake := &fakeCMS{}
	r := newTestResolver(t, fake)
	assert.True(t, r.Resolve(context.Background(), "/").NotFound)
}
