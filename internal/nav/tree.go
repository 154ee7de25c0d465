// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

// Package nav builds the site navigation forest from the CMS's flat
// list of navigation entries.
package nav

import (
	"context"
	"sort"

	"github.com/dmarchetti/firmsite-go/internal/cms"
)

// Entry is one flat navigation record from the CMS.
type Entry struct {
	ID       int64
	Label    string
	URL      string
	Order    int
	ParentID int64 // 0 means top-level
}

// Item is a node in the rendered navigation tree.
type Item struct {
	Label    string
	URL      string
	Children []Item
}

// BuildTree arranges flat entries into a forest. An entry with no
// parent reference is top-level; an entry whose declared parent id is
// absent from the set is silently dropped rather than failing the
// render. Siblings sort by their order field, then label.
func BuildTree(entries []Entry) []Item {
	byID := make(map[int64]Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	children := make(map[int64][]Entry)
	var roots []Entry
	for _, e := range entries {
		if e.ParentID == 0 {
			roots = append(roots, e)
			continue
		}
		if _, ok := byID[e.ParentID]; !ok {
			// Orphaned reference: drop, never crash the navbar.
			continue
		}
		children[e.ParentID] = append(children[e.ParentID], e)
	}

	var build func(list []Entry) []Item
	build = func(list []Entry) []Item {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Order != list[j].Order {
				return list[i].Order < list[j].Order
			}
			return list[i].Label < list[j].Label
		})

		items := make([]Item, 0, len(list))
		for _, e := range list {
			items = append(items, Item{
				Label:    e.Label,
				URL:      e.URL,
				Children: build(children[e.ID]),
			})
		}
		return items
	}

	return build(roots)
}

// Fetcher executes a CMS query; satisfied by *cms.Client.
type Fetcher interface {
	Fetch(ctx context.Context, q cms.QuerySpec) ([]cms.Record, error)
}

// Load fetches the navigation collection and builds the tree. A fetch
// failure yields an empty navigation rather than an error: the page
// still renders.
func Load(ctx context.Context, source Fetcher) []Item {
	records, err := source.Fetch(ctx, cms.QuerySpec{
		Collection: "navigations",
		Populate:   []string{"parent"},
		Sort:       "order:asc",
		PageSize:   100,
	})
	if err != nil {
		return nil
	}

	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		e := Entry{
			Label: r.String("Label", "label", "Title", "title"),
			URL:   r.String("URL", "url", "Path", "path"),
		}
		if id, ok := r.Number("id"); ok {
			e.ID = int64(id)
		}
		if ord, ok := r.Number("order", "Order"); ok {
			e.Order = int(ord)
		}
		if parent, ok := r.Map("parent", "Parent"); ok {
			if pid, ok := parent.Number("id"); ok {
				e.ParentID = int64(pid)
			} else if data, ok := parent.Map("data"); ok {
				if pid, ok := data.Number("id"); ok {
					e.ParentID = int64(pid)
				}
			}
		}
		if e.Label != "" && e.URL != "" {
			entries = append(entries, e)
		}
	}

	return BuildTree(entries)
}
