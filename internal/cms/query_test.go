// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQueryAttorney(t *testing.T) {
	spec := BuildQuery(AttorneyPage, "jane-doe", "")

	assert.Equal(t, "team-members", spec.Collection)
	assert.Equal(t, []Filter{{Path: []string{"slug"}, Value: "jane-doe"}}, spec.Filters)
	assert.Equal(t, []string{"*"}, spec.Populate)
	assert.Empty(t, spec.Sort)
}

func TestBuildQueryArticleTargetedPopulate(t *testing.T) {
	spec := BuildQuery(ArticlePage, "new-ruling", "")

	assert.Equal(t, "articles", spec.Collection)
	assert.NotContains(t, spec.Populate, "*")
	assert.Contains(t, spec.Populate, "cover")
}

func TestBuildQueryGenericWithoutParent(t *testing.T) {
	spec := BuildQuery(GenericPage, "about-us", "")

	assert.Equal(t, "pages", spec.Collection)
	assert.Equal(t, []Filter{{Path: []string{"Slug"}, Value: "about-us"}}, spec.Filters)
	assert.Equal(t, "updatedAt:desc", spec.Sort)
	assert.Equal(t, []string{"*"}, spec.Populate)
}

func TestBuildQueryGenericWithParent(t *testing.T) {
	spec := BuildQuery(GenericPage, "overview", "practice-areas")

	assert.Contains(t, spec.Filters, Filter{Path: []string{"Slug"}, Value: "overview"})
	assert.Contains(t, spec.Filters, Filter{Path: []string{"parent_page", "URL"}, Value: "/practice-areas"})
}

func TestBuildQueryGenericParentSlashesStripped(t *testing.T) {
	spec := BuildQuery(GenericPage, "overview", "/practice-areas/")

	assert.Contains(t, spec.Filters, Filter{Path: []string{"parent_page", "URL"}, Value: "/practice-areas"})
}

func TestEncode(t *testing.T) {
	spec := BuildQuery(GenericPage, "overview", "practice-areas")
	v := spec.Encode()

	assert.Equal(t, "overview", v.Get("filters[Slug][$eq]"))
	assert.Equal(t, "/practice-areas", v.Get("filters[parent_page][URL][$eq]"))
	assert.Equal(t, "*", v.Get("populate"))
	assert.Equal(t, "updatedAt:desc", v.Get("sort"))
}

func TestEncodeTargetedPopulate(t *testing.T) {
	spec := BuildQuery(ArticlePage, "x", "")
	v := spec.Encode()

	assert.Empty(t, v.Get("populate"))
	assert.Equal(t, "blocks.image", v.Get("populate[0]"))
	assert.Equal(t, "cover", v.Get("populate[2]"))
}

func TestEncodeIndexQuery(t *testing.T) {
	v := IndexQuery(Collections[ArticlePage], 1, 200).Encode()

	assert.Equal(t, "slug", v.Get("fields[0]"))
	assert.Equal(t, "1", v.Get("pagination[page]"))
	assert.Equal(t, "200", v.Get("pagination[pageSize]"))
}
