// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "github.com/dmarchetti/firmsite-go/internal/cms"

// Image is the canonical featured image extracted from a record.
type Image struct {
	URL string
	Alt string
}

// imagePaths is the fixed list of candidate field paths probed for the
// featured image, root-level and hero-nested, in multiple casings.
var imagePaths = [][]string{
	{"FeaturedImage"},
	{"featuredImage"},
	{"featured_image"},
	{"Hero", "FeaturedImage"},
	{"Hero", "featuredImage"},
	{"hero", "FeaturedImage"},
	{"hero", "featuredImage"},
	{"Hero", "Image"},
	{"hero", "image"},
	{"Cover"},
	{"cover"},
	{"Image"},
	{"image"},
}

// ResolveFeaturedImage extracts the featured image from a record. Each
// candidate path is resolved through the media unwrapper; the first one
// yielding a URL wins. Alt text falls back through the media's
// alternativeText and alt fields, then the hero title, then the page
// title, then a fixed placeholder.
func ResolveFeaturedImage(r cms.Record) (Image, bool) {
	for _, path := range imagePaths {
		media, ok := mediaAt(r, path)
		if !ok {
			continue
		}
		url := MediaURL(media)
		if url == "" {
			continue
		}

		alt := mediaAlt(media)
		if alt == "" {
			alt = fallbackAlt(r)
		}
		return Image{URL: url, Alt: alt}, true
	}
	return Image{}, false
}

// mediaAt walks a candidate field path down to the media value.
func mediaAt(r cms.Record, path []string) (cms.Record, bool) {
	current := r
	for i, key := range path {
		if i == len(path)-1 {
			v, ok := current.Field(key)
			if !ok {
				return nil, false
			}
			return mediaObject(v)
		}
		next, ok := current.Map(key)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

// mediaObject accepts the shapes the CMS produces for a media field: a
// bare object, or an array of objects (first element).
func mediaObject(v any) (cms.Record, bool) {
	switch val := v.(type) {
	case map[string]any:
		return cms.Record(val), true
	case []any:
		if len(val) == 0 {
			return nil, false
		}
		if m, ok := val[0].(map[string]any); ok {
			return cms.Record(m), true
		}
	}
	return nil, false
}

// MediaURL resolves the actual URL string out of a media value: a direct
// url field, or the data.attributes.url relation shape (where data may
// itself be an array).
func MediaURL(media cms.Record) string {
	if url := media.String("url", "URL"); url != "" {
		return url
	}

	data, ok := media.Field("data")
	if !ok {
		return ""
	}
	inner, ok := mediaObject(data)
	if !ok {
		return ""
	}
	if attrs, ok := inner.Map("attributes"); ok {
		return attrs.String("url", "URL")
	}
	return inner.String("url", "URL")
}

// mediaAlt resolves alt text from wherever the media URL lives: the
// object itself or the data.attributes relation shape.
func mediaAlt(media cms.Record) string {
	if alt := media.String("alternativeText", "alt"); alt != "" {
		return alt
	}

	data, ok := media.Field("data")
	if !ok {
		return ""
	}
	inner, ok := mediaObject(data)
	if !ok {
		return ""
	}
	if attrs, ok := inner.Map("attributes"); ok {
		return attrs.String("alternativeText", "alt")
	}
	return inner.String("alternativeText", "alt")
}

// fallbackAlt derives alt text from the hero title, then the page
// title, then a fixed placeholder.
func fallbackAlt(r cms.Record) string {
	if hero, ok := r.Map("Hero", "hero"); ok {
		if title := hero.String("Title", "title"); title != "" {
			return title
		}
	}
	if title := r.String("Title", "title", "Name", "name"); title != "" {
		return title
	}
	return "Featured"
}
