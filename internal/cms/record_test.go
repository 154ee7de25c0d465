package cms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnwrapFlattensAttributes(t *testing.T) {
	raw := map[string]any{
		"id": float64(7),
		"attributes": map[string]any{
			"Title": "About Us",
			"Slug":  "about-us",
		},
	}

	r := Unwrap(raw)
	assert.Equal(t, "About Us", r.String("Title"))
	assert.Equal(t, "about-us", r.String("Slug"))
	id, ok := r.Number("id")
	assert.True(t, ok)
	assert.Equal(t, float64(7), id)
}

func TestUnwrapFlatRecordPassesThrough(t *testing.T) {
	raw := map[string]any{"Title": "Careers", "id": float64(3)}
	r := Unwrap(raw)
	assert.Equal(t, "Careers", r.String("Title"))
}

func TestFieldTriesKeysInOrder(t *testing.T) {
	r := Record{"button": []any{"x"}}

	v, ok := r.Field("Button", "button")
	assert.True(t, ok)
	assert.Equal(t, []any{"x"}, v)

	_, ok = r.Field("Hero", "hero")
	assert.False(t, ok)
}

func TestStringSkipsEmptyAndNonString(t *testing.T) {
	r := Record{"Title": "", "title": 42, "name": "Jane"}
	assert.Equal(t, "Jane", r.String("Title", "title", "name"))
	assert.Equal(t, "", r.String("missing"))
}

func TestMapAndSlice(t *testing.T) {
	r := Record{
		"Hero":  map[string]any{"Title": "Hi"},
		"items": []any{1, 2},
	}

	hero, ok := r.Map("hero", "Hero")
	assert.True(t, ok)
	assert.Equal(t, "Hi", hero.String("Title"))

	items, ok := r.Slice("items")
	assert.True(t, ok)
	assert.Len(t, items, 2)
}
