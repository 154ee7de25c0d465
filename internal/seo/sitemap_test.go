// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmarchetti/firmsite-go/internal/cms"
)

func TestSitemapBuilderSingleChunk(t *testing.T) {
	b := NewSitemapBuilder("https://example.com/")
	b.AddHomepage()
	b.AddSlugs([]string{"about-us", "team/jane-doe"})

	if b.Chunks() != 1 {
		t.Fatalf("Chunks = %d, want 1", b.Chunks())
	}
	out, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	xml := string(out)

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`,
		"<loc>https://example.com/</loc>",
		"<loc>https://example.com/about-us</loc>",
		"<loc>https://example.com/team/jane-doe</loc>",
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("sitemap missing %q:\n%s", want, xml)
		}
	}
}

func TestSitemapBuilderChunking(t *testing.T) {
	b := NewSitemapBuilder("https://example.com")
	for i := 0; i < ChunkSize+5; i++ {
		b.AddSlug(fmt.Sprintf("page-%d", i))
	}

	if b.Chunks() != 2 {
		t.Fatalf("Chunks = %d, want 2", b.Chunks())
	}

	first, err := b.BuildChunk(1)
	if err != nil {
		t.Fatalf("BuildChunk(1): %v", err)
	}
	if got := strings.Count(string(first), "<url>"); got != ChunkSize {
		t.Errorf("chunk 1 has %d urls, want %d", got, ChunkSize)
	}

	second, err := b.BuildChunk(2)
	if err != nil {
		t.Fatalf("BuildChunk(2): %v", err)
	}
	if got := strings.Count(string(second), "<url>"); got != 5 {
		t.Errorf("chunk 2 has %d urls, want 5", got)
	}

	if _, err := b.BuildChunk(3); err == nil {
		t.Error("BuildChunk(3) = nil error, want out of range")
	}
	if _, err := b.BuildChunk(0); err == nil {
		t.Error("BuildChunk(0) = nil error, want out of range")
	}
}

func TestSitemapBuilderIndex(t *testing.T) {
	b := NewSitemapBuilder("https://example.com")
	for i := 0; i < 2*ChunkSize+1; i++ {
		b.AddSlug(fmt.Sprintf("p%d", i))
	}

	out, err := b.BuildIndex()
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	xml := string(out)
	if !strings.Contains(xml, "<sitemapindex") {
		t.Fatalf("not a sitemap index:\n%s", xml)
	}
	for n := 1; n <= 3; n++ {
		want := fmt.Sprintf("<loc>https://example.com/sitemap-%d.xml</loc>", n)
		if !strings.Contains(xml, want) {
			t.Errorf("index missing %q", want)
		}
	}
}

type fakeLister struct {
	slugs map[string][]string
	fail  map[string]bool
}

func (f fakeLister) FetchAllSlugs(_ context.Context, coll cms.Collection, _ int) ([]string, error) {
	if f.fail[coll.Name] {
		return nil, errors.New("cms unavailable")
	}
	return f.slugs[coll.Name], nil
}

func TestCollectWalksEveryCollection(t *testing.T) {
	source := fakeLister{slugs: map[string][]string{
		"pages":        {"about-us"},
		"team-members": {"jane-doe"},
		"articles":     {"first-post"},
		"job-postings": {"clerk"},
		"faqs":         {"fees"},
	}}

	b, errs := Collect(context.Background(), source, "https://example.com")
	if len(errs) != 0 {
		t.Fatalf("Collect errs = %v", errs)
	}
	// Homepage plus one slug per collection.
	if b.Len() != 6 {
		t.Errorf("Len = %d, want 6", b.Len())
	}
}

func TestCollectSkipsMalformedSlugs(t *testing.T) {
	source := fakeLister{slugs: map[string][]string{
		"pages": {"about-us", "", "Bad Slug!", "--broken--"},
	}}

	b, errs := Collect(context.Background(), source, "https://example.com")
	if len(errs) != 0 {
		t.Fatalf("Collect errs = %v", errs)
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want homepage + about-us", b.Len())
	}
}

func TestCollectSkipsFailingCollection(t *testing.T) {
	source := fakeLister{
		slugs: map[string][]string{"pages": {"about-us"}},
		fail:  map[string]bool{"articles": true},
	}

	b, errs := Collect(context.Background(), source, "https://example.com")
	if len(errs) != 1 {
		t.Fatalf("Collect errs = %v, want exactly one", errs)
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want homepage + about-us", b.Len())
	}
}
