// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import "strings"

const descriptionMaxLen = 160

// Meta holds the SEO tag data rendered into a page head.
type Meta struct {
	Title         string
	Description   string
	Canonical     string
	OGTitle       string
	OGDescription string
	OGImage       string
	OGType        string
	OGSiteName    string
	OGURL         string
}

// SiteConfig carries the site-wide values every page's meta shares.
type SiteConfig struct {
	SiteName string
	SiteURL  string
}

// PageMeta is the per-page input for BuildMeta.
type PageMeta struct {
	Title       string
	Description string // first body paragraph works fine
	Path        string // URL path starting with /
	ImageURL    string
	IsArticle   bool
}

// BuildMeta combines page and site data with fallbacks: a missing page
// title falls back to the site name, the description is truncated at a
// word boundary.
func BuildMeta(page PageMeta, site SiteConfig) Meta {
	base := strings.TrimSuffix(site.SiteURL, "/")
	canonical := base + page.Path

	meta := Meta{
		Title:       site.SiteName,
		Canonical:   canonical,
		OGType:      "website",
		OGSiteName:  site.SiteName,
		OGURL:       canonical,
		OGImage:     page.ImageURL,
		Description: TruncateDescription(page.Description),
	}
	if page.Title != "" {
		meta.Title = page.Title + " | " + site.SiteName
		meta.OGTitle = page.Title
	} else {
		meta.OGTitle = site.SiteName
	}
	if page.IsArticle {
		meta.OGType = "article"
	}
	meta.OGDescription = meta.Description
	return meta
}

// TruncateDescription caps a description at the meta-description length,
// cutting at the last full word and appending an ellipsis.
func TruncateDescription(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= descriptionMaxLen {
		return s
	}
	cut := s[:descriptionMaxLen]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
