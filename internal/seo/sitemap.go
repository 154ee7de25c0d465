// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the sitemap, robots.txt and page meta tags.
package seo

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/dmarchetti/firmsite-go/internal/cms"
	"github.com/dmarchetti/firmsite-go/internal/util"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChunkSize is the maximum number of URLs per sitemap file. Larger
// sites get an index file pointing at numbered chunks.
const ChunkSize = 1000

const collectionPageSize = 100

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

const (
	ChangeFreqDaily  ChangeFreq = "daily"
	ChangeFreqWeekly ChangeFreq = "weekly"
)

// SitemapURL is a single url entry.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

type sitemapRef struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	XMLNS    string       `xml:"xmlns,attr"`
	Sitemaps []sitemapRef `xml:"sitemap"`
}

// SitemapBuilder accumulates URLs and renders them as one urlset or as
// fixed-size chunks behind a sitemap index.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder for the given site base URL.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{siteURL: strings.TrimSuffix(siteURL, "/")}
}

// AddHomepage adds the site root.
func (b *SitemapBuilder) AddHomepage() {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + "/",
		ChangeFreq: ChangeFreqDaily,
		Priority:   "1.0",
	})
}

// AddSlug adds a content page by its slug.
func (b *SitemapBuilder) AddSlug(slug string) {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + "/" + strings.TrimPrefix(slug, "/"),
		ChangeFreq: ChangeFreqWeekly,
		Priority:   "0.8",
	})
}

// AddSlugs adds every slug in order.
func (b *SitemapBuilder) AddSlugs(slugs []string) {
	for _, s := range slugs {
		b.AddSlug(s)
	}
}

// Len returns the number of accumulated URLs.
func (b *SitemapBuilder) Len() int { return len(b.urls) }

// Chunks returns how many sitemap files the accumulated URLs need.
func (b *SitemapBuilder) Chunks() int {
	if len(b.urls) == 0 {
		return 1
	}
	return (len(b.urls) + ChunkSize - 1) / ChunkSize
}

// BuildChunk renders chunk n (1-based) as a urlset document.
func (b *SitemapBuilder) BuildChunk(n int) ([]byte, error) {
	if n < 1 || n > b.Chunks() {
		return nil, fmt.Errorf("sitemap chunk %d out of range 1..%d", n, b.Chunks())
	}
	start := (n - 1) * ChunkSize
	end := min(start+ChunkSize, len(b.urls))
	return marshalWithHeader(urlset{XMLNS: XMLNamespace, URLs: b.urls[start:end]})
}

// BuildIndex renders the sitemap index referencing every chunk.
func (b *SitemapBuilder) BuildIndex() ([]byte, error) {
	lastMod := time.Now().UTC().Format(time.RFC3339)
	refs := make([]sitemapRef, 0, b.Chunks())
	for n := 1; n <= b.Chunks(); n++ {
		refs = append(refs, sitemapRef{
			Loc:     fmt.Sprintf("%s/sitemap-%d.xml", b.siteURL, n),
			LastMod: lastMod,
		})
	}
	return marshalWithHeader(sitemapIndex{XMLNS: XMLNamespace, Sitemaps: refs})
}

// Build renders all URLs as a single urlset. Used when everything fits
// in one chunk.
func (b *SitemapBuilder) Build() ([]byte, error) {
	return marshalWithHeader(urlset{XMLNS: XMLNamespace, URLs: b.urls})
}

func marshalWithHeader(doc any) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// SlugLister pages through a collection's slugs. *cms.Client satisfies
// it.
type SlugLister interface {
	FetchAllSlugs(ctx context.Context, coll cms.Collection, pageSize int) ([]string, error)
}

// Collect fills a builder with the homepage plus every slug from every
// content collection. A collection that fails to list is skipped; the
// sitemap stays best-effort.
func Collect(ctx context.Context, source SlugLister, siteURL string) (*SitemapBuilder, []error) {
	b := NewSitemapBuilder(siteURL)
	b.AddHomepage()

	var errs []error
	for _, contentType := range cms.AllTypes {
		coll := cms.Collections[contentType]
		slugs, err := source.FetchAllSlugs(ctx, coll, collectionPageSize)
		if err != nil {
			errs = append(errs, fmt.Errorf("list %s: %w", coll.Name, err))
			continue
		}
		// Malformed slugs would produce uncrawlable URLs; skip them.
		for _, s := range slugs {
			if util.IsValidSlug(s) {
				b.AddSlug(s)
			}
		}
	}
	return b, errs
}
