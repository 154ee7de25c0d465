// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/dmarchetti/firmsite-go/internal/cms"
)

// CTA is the canonical hero call-to-action extracted from a record.
type CTA struct {
	Href       string
	Label      string
	Variant    string
	IsExternal bool
}

// Field-name preference orders for label and href resolution.
var (
	ctaLabelKeys = []string{"label", "text", "title", "name", "Text"}
	ctaHrefKeys  = []string{"href", "url", "path", "to", "URL"}
)

// ctaKeyPattern matches component keys worth scanning for a button in
// the restricted hero scan.
var ctaKeyPattern = regexp.MustCompile(`(?i)button|buttons|cta|ctas|link|links`)

// mediaExtPattern matches hrefs that point at media files. A scanner
// that grabbed an image field by mistake must never produce a clickable
// link target.
var mediaExtPattern = regexp.MustCompile(`(?i)\.(png|jpe?g|gif|webp|avif|svg|ico|bmp|mp4|webm|mov|avi|mkv|mp3|wav|ogg|m4a|flac)(\?.*)?$`)

// bfsMaxDepth caps the last-resort whole-record scan.
const bfsMaxDepth = 4

// DefaultCTA is the hard-coded fallback applied by callers when no
// usable button can be extracted from a record.
func DefaultCTA() CTA {
	return CTA{Href: "/contact", Label: "Free Consultation", Variant: "primary"}
}

// ResolveCTA extracts the hero call-to-action from a record. Strategies
// are attempted in a strict order, first success wins:
//
//  1. root-level Button/button component
//  2. hero-nested Button/button
//  3. flat scalar url/label field pairs
//  4. key-name scan under the hero object, one nesting level deep
//  5. bounded breadth-first scan of the whole record
//
// Each strategy may yield several candidates; a candidate whose resolved
// href is a media file falls through to the next. The second return
// value is false when nothing usable was found anywhere.
func ResolveCTA(r cms.Record) (CTA, bool) {
	for _, strategy := range []func(cms.Record) []cms.Record{
		ctaFromRoot,
		ctaFromHero,
		ctaFromFlatFields,
		ctaFromHeroScan,
		ctaFromDeepScan,
	} {
		for _, candidate := range strategy(r) {
			if cta, ok := finalizeCTA(candidate); ok {
				return cta, true
			}
		}
	}
	return CTA{}, false
}

// ctaFromRoot handles a root-level Button/button component, which may be
// an array (first element) or a bare object.
func ctaFromRoot(r cms.Record) []cms.Record {
	v, ok := r.Field("Button", "button")
	if !ok {
		return nil
	}
	return candidateFromValue(v)
}

// ctaFromHero handles Hero.Button/Hero.button with the same
// array-or-object tolerance.
func ctaFromHero(r cms.Record) []cms.Record {
	hero, ok := r.Map("Hero", "hero")
	if !ok {
		return nil
	}
	return ctaFromRoot(hero)
}

// ctaFromFlatFields handles pages where the button was entered as plain
// scalar fields instead of a component.
func ctaFromFlatFields(r cms.Record) []cms.Record {
	href := r.String("hero_button_url", "hero_cta_url", "button_url", "cta_url")
	if href == "" {
		return nil
	}
	label := r.String(
		"hero_button_label", "hero_button_text",
		"hero_cta_label", "hero_cta_text",
		"button_label", "button_text",
		"cta_label", "cta_text",
	)
	return []cms.Record{{"url": href, "label": label}}
}

// ctaFromHeroScan scans keys under the hero object whose names look
// button-ish, one level of nesting deep.
func ctaFromHeroScan(r cms.Record) []cms.Record {
	hero, ok := r.Map("Hero", "hero")
	if !ok {
		return nil
	}

	var candidates []cms.Record
	scan := func(m cms.Record) {
		for key, v := range m {
			if !ctaKeyPattern.MatchString(key) {
				continue
			}
			candidates = append(candidates, candidateFromValue(v)...)
		}
	}

	scan(hero)
	for _, v := range hero {
		if child, ok := v.(map[string]any); ok {
			scan(cms.Record(child))
		}
	}
	return candidates
}

// ctaFromDeepScan is the last resort: a breadth-first walk of the whole
// record, bounded to depth 4 with a visited guard against cycles,
// returning every object that exposes a url plus a label-like field.
func ctaFromDeepScan(r cms.Record) []cms.Record {
	type node struct {
		value any
		depth int
	}

	visited := make(map[uintptr]struct{})
	queue := []node{{value: map[string]any(r), depth: 0}}
	var candidates []cms.Record

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n.depth > bfsMaxDepth {
			continue
		}

		switch v := n.value.(type) {
		case map[string]any:
			if seen(visited, v) {
				continue
			}
			rec := cms.Record(v)
			if rec.String(ctaHrefKeys...) != "" && rec.String(ctaLabelKeys...) != "" {
				candidates = append(candidates, rec)
			}
			for _, child := range v {
				queue = append(queue, node{value: child, depth: n.depth + 1})
			}
		case []any:
			if seen(visited, v) {
				continue
			}
			for _, child := range v {
				queue = append(queue, node{value: child, depth: n.depth + 1})
			}
		}
	}
	return candidates
}

// seen records a map or slice in the visited set by identity, reporting
// whether it was already there.
func seen(visited map[uintptr]struct{}, v any) bool {
	ptr := reflect.ValueOf(v).Pointer()
	if _, ok := visited[ptr]; ok {
		return true
	}
	visited[ptr] = struct{}{}
	return false
}

// candidateFromValue accepts a component value that is either an array
// of button objects (first element wins) or a bare button object.
func candidateFromValue(v any) []cms.Record {
	switch val := v.(type) {
	case []any:
		if len(val) == 0 {
			return nil
		}
		if m, ok := val[0].(map[string]any); ok {
			return []cms.Record{cms.Record(m)}
		}
	case map[string]any:
		return []cms.Record{cms.Record(val)}
	}
	return nil
}

// finalizeCTA resolves label and href on a candidate and applies the
// media-href rejection and normalization rules.
func finalizeCTA(candidate cms.Record) (CTA, bool) {
	href := candidate.String(ctaHrefKeys...)
	if href == "" || IsMediaHref(href) {
		return CTA{}, false
	}

	label := candidate.String(ctaLabelKeys...)
	isExternal := strings.HasPrefix(href, "http")
	if !isExternal && !strings.HasPrefix(href, "/") {
		href = "/" + href
	}

	return CTA{
		Href:       href,
		Label:      label,
		Variant:    candidate.String("variant", "Variant", "type"),
		IsExternal: isExternal,
	}, true
}

// IsMediaHref reports whether an href points at a media file: a known
// image/video/audio extension, or any uploads path segment.
func IsMediaHref(href string) bool {
	if mediaExtPattern.MatchString(href) {
		return true
	}
	return strings.Contains(href, "/uploads/") || strings.HasPrefix(href, "uploads/")
}
