// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "github.com/dmarchetti/firmsite-go/internal/cms"

// PickBest selects the record to render when a detail fetch returns
// duplicates. Duplicate-slug pollution in the CMS is tolerated by
// preferring the record that looks most complete: the first one carrying
// a non-empty hero call-to-action button array, in either field casing.
// If none qualifies, the first record in received order wins. An empty
// result set returns nil, which the caller surfaces as not-found.
func PickBest(records []cms.Record) cms.Record {
	switch len(records) {
	case 0:
		return nil
	case 1:
		return records[0]
	}

	for _, r := range records {
		if buttons, ok := r.Slice("Button", "button"); ok && len(buttons) > 0 {
			return r
		}
	}
	return records[0]
}
