// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"html/template"
	"strings"
	"time"

	"github.com/dmarchetti/firmsite-go/internal/cms"
	"github.com/dmarchetti/firmsite-go/internal/content"
	"github.com/dmarchetti/firmsite-go/internal/nav"
	"github.com/dmarchetti/firmsite-go/internal/seo"
)

// Layout names. Each maps to a template under pages/.
const (
	LayoutHome     = "home"
	LayoutGeneric  = "generic"
	LayoutAttorney = "attorney"
	LayoutArticle  = "article"
	LayoutJob      = "job"
	LayoutFaq      = "faq"
	LayoutNotFound = "notfound"
)

// SelectLayout maps a classified content type to its page template.
func SelectLayout(t cms.ContentType) string {
	switch t {
	case cms.AttorneyPage:
		return LayoutAttorney
	case cms.ArticlePage:
		return LayoutArticle
	case cms.JobPage:
		return LayoutJob
	case cms.FaqPage:
		return LayoutFaq
	default:
		return LayoutGeneric
	}
}

// PageView is the data every page template receives.
type PageView struct {
	Meta        seo.Meta
	SiteName    string
	Year        int
	CurrentPath string
	Nav         []nav.Item
	Type        string

	Hero   content.Hero
	Blocks []content.Block

	// BodyHTML carries sanitized CMS-authored HTML when the record's
	// body is an HTML string rather than a block array.
	BodyHTML template.HTML

	// Per-layout extras; zero values hide the corresponding markup.
	PublishedAt string
	Role        string
	Email       string
	Phone       string
	Location    string
}

// BuildView assembles the template data for a resolved page.
func (r *Renderer) BuildView(res content.Result, site seo.SiteConfig, navItems []nav.Item) PageView {
	currentPath := "/" + res.SlugPath
	if res.SlugPath == "" {
		currentPath = "/"
	}

	view := PageView{
		SiteName:    site.SiteName,
		Year:        time.Now().Year(),
		CurrentPath: currentPath,
		Nav:         navItems,
		Type:        string(res.Type),
		Hero:        res.Hero,
		Blocks:      res.Blocks,
	}

	// Records sometimes carry the body as one HTML string instead of a
	// block array; sanitize it before marking it safe.
	if len(res.Blocks) == 0 {
		raw := res.Record.String("Body", "body", "Content", "content", "Description", "description")
		if strings.Contains(raw, "<") {
			view.BodyHTML = r.SanitizeHTML(raw)
		}
	}

	switch res.Type {
	case cms.ArticlePage:
		view.PublishedAt = formatRecordDate(res.Record, "publishedAt", "PublishedAt", "publishedDate", "Date", "date")
	case cms.AttorneyPage:
		view.Role = res.Record.String("Role", "role", "Position", "position", "JobTitle", "jobTitle")
		view.Email = res.Record.String("Email", "email")
		view.Phone = res.Record.String("Phone", "phone")
	case cms.JobPage:
		view.Location = res.Record.String("Location", "location")
	}

	view.Meta = seo.BuildMeta(seo.PageMeta{
		Title:       res.Hero.Title,
		Description: metaDescription(res),
		Path:        currentPath,
		ImageURL:    heroImageURL(res.Hero),
		IsArticle:   res.Type == cms.ArticlePage,
	}, site)

	return view
}

// NotFoundView builds the uniform not-found page data.
func NotFoundView(site seo.SiteConfig, navItems []nav.Item, path string) PageView {
	cta := content.DefaultCTA()
	return PageView{
		SiteName:    site.SiteName,
		Year:        time.Now().Year(),
		CurrentPath: path,
		Nav:         navItems,
		Type:        "notfound",
		Hero:        content.Hero{Title: "Page not found", CTA: &cta},
		Meta: seo.BuildMeta(seo.PageMeta{
			Title: "Page not found",
			Path:  path,
		}, site),
	}
}

// metaDescription prefers the first body paragraph, then the hero
// subtitle.
func metaDescription(res content.Result) string {
	for _, b := range res.Blocks {
		if b.Kind == content.BlockParagraph {
			return b.Text()
		}
	}
	return res.Hero.Subtitle
}

func heroImageURL(h content.Hero) string {
	if h.Image == nil {
		return ""
	}
	return h.Image.URL
}

// formatRecordDate parses the first RFC 3339 date among the given keys
// into the site's display format.
func formatRecordDate(r cms.Record, keys ...string) string {
	raw := r.String(keys...)
	if raw == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return ""
}
