// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cms implements the read-only client for the headless CMS HTTP
// API: collection metadata, query construction, and tolerant decoding of
// the {data, meta} response envelope.
package cms

// ContentType identifies which content collection owns a slug.
type ContentType string

// The closed set of content types. Exactly one or zero applies to any
// given slug; GenericPage is the fallback when no specialized collection
// claims it.
const (
	GenericPage  ContentType = "page"
	AttorneyPage ContentType = "attorney"
	ArticlePage  ContentType = "article"
	JobPage      ContentType = "job"
	FaqPage      ContentType = "faq"
)

// Collection describes one CMS collection: its API name, the name of the
// field holding the URL slug, and the content type it resolves to. The
// slug field casing differs between collections because the CMS schemas
// were built by hand at different times.
type Collection struct {
	Name      string
	SlugField string
	Type      ContentType
}

// Collections is the single table mapping content types to CMS
// collections. The slug classifier probes the specialized entries, the
// query builder reads filter field names from it, and the sitemap
// generator walks all of it.
var Collections = map[ContentType]Collection{
	GenericPage:  {Name: "pages", SlugField: "Slug", Type: GenericPage},
	AttorneyPage: {Name: "team-members", SlugField: "slug", Type: AttorneyPage},
	ArticlePage:  {Name: "articles", SlugField: "slug", Type: ArticlePage},
	JobPage:      {Name: "job-postings", SlugField: "slug", Type: JobPage},
	FaqPage:      {Name: "faqs", SlugField: "slug", Type: FaqPage},
}

// SpecializedTypes lists the four collections probed by the slug
// classifier, in tie-break priority order. A slug present in more than
// one set resolves to the earliest entry here.
var SpecializedTypes = []ContentType{AttorneyPage, ArticlePage, JobPage, FaqPage}

// AllTypes lists every content type in a stable order, generic pages
// first. Sitemap generation walks this.
var AllTypes = []ContentType{GenericPage, AttorneyPage, ArticlePage, JobPage, FaqPage}
