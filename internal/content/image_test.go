// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarchetti/firmsite-go/internal/cms"
)

func TestResolveFeaturedImageDirectURL(t *testing.T) {
	r := cms.Record{
		"FeaturedImage": map[string]any{"url": "/uploads/team.jpg", "alternativeText": "Our team"},
	}

	img, ok := ResolveFeaturedImage(r)
	require.True(t, ok)
	assert.Equal(t, "/uploads/team.jpg", img.URL)
	assert.Equal(t, "Our team", img.Alt)
}

func TestResolveFeaturedImageRelationShape(t *testing.T) {
	// Record exposes only Hero.FeaturedImage.data.attributes.url.
	r := cms.Record{
		"Hero": map[string]any{
			"FeaturedImage": map[string]any{
				"data": map[string]any{
					"attributes": map[string]any{"url": "/uploads/x.jpg"},
				},
			},
		},
	}

	img, ok := ResolveFeaturedImage(r)
	require.True(t, ok)
	assert.Equal(t, "/uploads/x.jpg", img.URL)
	assert.Equal(t, "Featured", img.Alt) // end of the alt fallback chain
}

func TestResolveFeaturedImageRelationAlt(t *testing.T) {
	r := cms.Record{
		"featuredImage": map[string]any{
			"data": map[string]any{
				"attributes": map[string]any{"url": "/uploads/x.jpg", "alternativeText": "Courthouse"},
			},
		},
	}

	img, ok := ResolveFeaturedImage(r)
	require.True(t, ok)
	assert.Equal(t, "Courthouse", img.Alt)
}

func TestResolveFeaturedImageArrayOfMedia(t *testing.T) {
	r := cms.Record{
		"image": []any{
			map[string]any{"url": "/uploads/first.png"},
			map[string]any{"url": "/uploads/second.png"},
		},
	}

	img, ok := ResolveFeaturedImage(r)
	require.True(t, ok)
	assert.Equal(t, "/uploads/first.png", img.URL)
}

func TestResolveFeaturedImageDataArray(t *testing.T) {
	r := cms.Record{
		"cover": map[string]any{
			"data": []any{
				map[string]any{"attributes": map[string]any{"url": "/uploads/cover.webp"}},
			},
		},
	}

	img, ok := ResolveFeaturedImage(r)
	require.True(t, ok)
	assert.Equal(t, "/uploads/cover.webp", img.URL)
}

func TestResolveFeaturedImageAltFallsBackToHeroTitle(t *testing.T) {
	r := cms.Record{
		"Hero": map[string]any{
			"Title":         "Personal Injury",
			"FeaturedImage": map[string]any{"url": "/uploads/pi.jpg"},
		},
	}

	img, ok := ResolveFeaturedImage(r)
	require.True(t, ok)
	assert.Equal(t, "Personal Injury", img.Alt)
}

func TestResolveFeaturedImageAltFallsBackToPageTitle(t *testing.T) {
	r := cms.Record{
		"Title": "About Us",
		"image": map[string]any{"url": "/uploads/office.jpg"},
	}

	img, ok := ResolveFeaturedImage(r)
	require.True(t, ok)
	assert.Equal(t, "About Us", img.Alt)
}

func TestResolveFeaturedImageMissing(t *testing.T) {
	_, ok := ResolveFeaturedImage(cms.Record{"Title": "no image"})
	assert.False(t, ok)

	// An image object without any resolvable URL is a miss, not a panic.
	_, ok = ResolveFeaturedImage(cms.Record{"image": map[string]any{"name": "x"}})
	assert.False(t, ok)
}
