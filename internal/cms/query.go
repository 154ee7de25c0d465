// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmarchetti/firmsite-go/internal/util"
)

// Filter is a single equality constraint on a (possibly nested) field.
type Filter struct {
	Path  []string // e.g. ["Slug"] or ["parent_page", "URL"]
	Value string
}

// QuerySpec is an opaque request descriptor for a single CMS fetch:
// collection, filters, population depth, sort order and pagination.
type QuerySpec struct {
	Collection string
	Filters    []Filter
	Populate   []string // ["*"] for full wildcard, else targeted paths
	Sort       string
	Fields     []string
	Page       int
	PageSize   int
}

// articlePopulate targets only the nested block media and the cover
// image, keeping article payloads small. Everything else gets the full
// wildcard because field needs are unpredictable.
var articlePopulate = []string{"blocks.image", "blocks.media", "cover"}

// BuildQuery constructs the detail-fetch query for a classified content
// type and leaf slug. parentPath applies to generic pages only: when
// present, the query additionally constrains the parent record's URL
// field, because sibling sections may share a leaf slug.
func BuildQuery(t ContentType, leafSlug, parentPath string) QuerySpec {
	coll := Collections[t]
	spec := QuerySpec{
		Collection: coll.Name,
		Filters:    []Filter{{Path: []string{coll.SlugField}, Value: leafSlug}},
		Populate:   []string{"*"},
	}

	switch t {
	case ArticlePage:
		spec.Populate = articlePopulate
	case GenericPage:
		if normalized := util.NormalizeParentPath(parentPath); normalized != "" {
			spec.Filters = append(spec.Filters, Filter{
				Path:  []string{"parent_page", "URL"},
				Value: normalized,
			})
		}
		// Duplicate slugs happen; most recently updated first gives the
		// disambiguator the freshest candidate.
		spec.Sort = "updatedAt:desc"
	}

	return spec
}

// IndexQuery returns the lightweight slug-index query for a collection:
// only the slug field, capped at a bounded page size.
func IndexQuery(coll Collection, page, pageSize int) QuerySpec {
	return QuerySpec{
		Collection: coll.Name,
		Fields:     []string{coll.SlugField},
		Page:       page,
		PageSize:   pageSize,
	}
}

// Encode serializes the spec into the CMS API query-string format.
func (q QuerySpec) Encode() url.Values {
	v := url.Values{}

	for _, f := range q.Filters {
		key := "filters"
		for _, p := range f.Path {
			key += "[" + p + "]"
		}
		v.Set(key+"[$eq]", f.Value)
	}

	if len(q.Populate) == 1 && q.Populate[0] == "*" {
		v.Set("populate", "*")
	} else {
		for i, p := range q.Populate {
			v.Set(fmt.Sprintf("populate[%d]", i), p)
		}
	}

	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}

	for i, f := range q.Fields {
		v.Set(fmt.Sprintf("fields[%d]", i), f)
	}

	if q.Page > 0 {
		v.Set("pagination[page]", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pagination[pageSize]", strconv.Itoa(q.PageSize))
	}

	return v
}
