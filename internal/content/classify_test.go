// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmarchetti/firmsite-go/internal/cms"
)

// fakeIndexer serves canned slug indexes per collection name, optionally
// failing some collections.
type fakeIndexer struct {
	slugs map[string][]string
	fail  map[string]bool
}

func (f *fakeIndexer) FetchSlugs(_ context.Context, coll cms.Collection, _, _ int) ([]string, error) {
	if f.fail[coll.Name] {
		return nil, errors.New("boom")
	}
	return f.slugs[coll.Name], nil
}

func classifierWith(slugs map[string][]string, fail map[string]bool) *Classifier {
	return NewClassifier(&fakeIndexer{slugs: slugs, fail: fail}, nil)
}

func TestClassifySingleMembership(t *testing.T) {
	tests := []struct {
		name     string
		coll     string
		expected cms.ContentType
	}{
		{"attorney", "team-members", cms.AttorneyPage},
		{"article", "articles", cms.ArticlePage},
		{"job", "job-postings", cms.JobPage},
		{"faq", "faqs", cms.FaqPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := classifierWith(map[string][]string{tt.coll: {"the-slug"}}, nil)
			assert.Equal(t, tt.expected, c.Classify(context.Background(), "the-slug"))
		})
	}
}

func TestClassifyIgnoresOtherSets(t *testing.T) {
	// Membership in exactly one set resolves to that type regardless of
	// what the other sets contain.
	c := classifierWith(map[string][]string{
		"team-members": {"jane-doe"},
		"articles":     {"some-article", "another"},
		"job-postings": {"paralegal"},
		"faqs":         {"billing"},
	}, nil)
	assert.Equal(t, cms.AttorneyPage, c.Classify(context.Background(), "jane-doe"))
	assert.Equal(t, cms.JobPage, c.Classify(context.Background(), "paralegal"))
}

func TestClassifyFallsBackToGenericPage(t *testing.T) {
	c := classifierWith(map[string][]string{"articles": {"other"}}, nil)
	assert.Equal(t, cms.GenericPage, c.Classify(context.Background(), "about-us"))
}

func TestClassifyPriorityOrderOnConflict(t *testing.T) {
	c := classifierWith(map[string][]string{
		"team-members": {"shared"},
		"articles":     {"shared"},
		"faqs":         {"shared"},
	}, nil)
	assert.Equal(t, cms.AttorneyPage, c.Classify(context.Background(), "shared"))

	c = classifierWith(map[string][]string{
		"articles": {"shared"},
		"faqs":     {"shared"},
	}, nil)
	assert.Equal(t, cms.ArticlePage, c.Classify(context.Background(), "shared"))
}

func TestClassifyProbeFailureTreatedAsEmpty(t *testing.T) {
	// A failing index probe must not abort classification; the slug
	// still resolves via the surviving sets.
	c := classifierWith(
		map[string][]string{"articles": {"new-ruling"}},
		map[string]bool{"team-members": true, "faqs": true},
	)
	assert.Equal(t, cms.ArticlePage, c.Classify(context.Background(), "new-ruling"))
}

func TestClassifyTotalFailureFallsThroughToGeneric(t *testing.T) {
	c := classifierWith(nil, map[string]bool{
		"team-members": true,
		"articles":     true,
		"job-postings": true,
		"faqs":         true,
	})
	assert.Equal(t, cms.GenericPage, c.Classify(context.Background(), "anything"))
}
