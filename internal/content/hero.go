// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "github.com/dmarchetti/firmsite-go/internal/cms"

// Hero is the canonical top-banner section of a content page.
type Hero struct {
	Title       string
	Subtitle    string
	IntroBlocks []Block
	CTA         *CTA
	Image       *Image
}

// ResolveHero composes the canonical hero from a record: title and
// subtitle from the hero object with root-level fallbacks, intro rich
// text, the resolved call-to-action, and the featured image. Absent
// pieces stay nil/empty; the caller applies final defaults.
func ResolveHero(r cms.Record) Hero {
	h := Hero{}

	hero, hasHero := r.Map("Hero", "hero")
	if hasHero {
		h.Title = hero.String("Title", "title", "Heading", "heading")
		h.Subtitle = hero.String("Subtitle", "subtitle", "Subheading", "subheading", "Tagline", "tagline")
		if intro, ok := hero.Slice("Intro", "intro", "Content", "content"); ok {
			h.IntroBlocks = NormalizeBlocks(intro)
		}
	}
	if h.Title == "" {
		h.Title = r.String("Title", "title", "Name", "name")
	}
	if h.Subtitle == "" {
		h.Subtitle = r.String("Subtitle", "subtitle", "Excerpt", "excerpt")
	}
	if len(h.IntroBlocks) == 0 {
		if intro, ok := r.Slice("Intro", "intro"); ok {
			h.IntroBlocks = NormalizeBlocks(intro)
		}
	}

	if cta, ok := ResolveCTA(r); ok {
		h.CTA = &cta
	}
	if img, ok := ResolveFeaturedImage(r); ok {
		h.Image = &img
	}

	return h
}
