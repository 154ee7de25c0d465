// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"strings"

	"github.com/dmarchetti/firmsite-go/internal/cms"
)

// BlockKind discriminates the canonical rich-text block shapes.
type BlockKind string

// The canonical block kinds produced by NormalizeBlocks.
const (
	BlockParagraph BlockKind = "paragraph"
	BlockHeading   BlockKind = "heading"
	BlockList      BlockKind = "list"
	BlockMedia     BlockKind = "media"
)

// TextRun is a span of text with inline formatting preserved.
type TextRun struct {
	Text string
	Bold bool
}

// Block is one canonical rich-text node, carrying only the fields its
// rendering branch needs.
type Block struct {
	Kind    BlockKind
	Runs    []TextRun // paragraph and heading text
	Level   int       // heading level 1-4
	Ordered bool      // list formatting
	Items   []string  // list item text
	Image   Image     // media url/alt
}

// Text joins a block's runs into a plain string.
func (b Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// NormalizeBlocks re-tags a CMS block-editor array into the canonical
// discriminated shape. Unrecognized or malformed entries are skipped
// rather than failing the whole document; a heading without a level
// defaults to 2; list blocks preserve ordered vs unordered formatting;
// bold runs inside paragraphs are kept as a flag on each text run.
func NormalizeBlocks(raw []any) []Block {
	var blocks []Block
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if b, ok := normalizeBlock(cms.Record(m)); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func normalizeBlock(r cms.Record) (Block, bool) {
	kind := r.String("type", "__component")

	switch {
	case strings.Contains(kind, "paragraph"):
		runs := textRuns(r)
		if len(runs) == 0 {
			return Block{}, false
		}
		return Block{Kind: BlockParagraph, Runs: runs}, true

	case strings.Contains(kind, "heading"):
		runs := textRuns(r)
		if len(runs) == 0 {
			return Block{}, false
		}
		level := 2
		if n, ok := r.Number("level", "Level"); ok && n >= 1 && n <= 4 {
			level = int(n)
		}
		return Block{Kind: BlockHeading, Runs: runs, Level: level}, true

	case strings.Contains(kind, "list"):
		items := listItems(r)
		if len(items) == 0 {
			return Block{}, false
		}
		format := r.String("format", "Format")
		return Block{Kind: BlockList, Items: items, Ordered: format == "ordered"}, true

	case strings.Contains(kind, "image") || strings.Contains(kind, "media"):
		media, ok := r.Map("image", "Image", "media", "Media", "file", "File")
		if !ok {
			return Block{}, false
		}
		url := MediaURL(media)
		if url == "" {
			return Block{}, false
		}
		alt := mediaAlt(media)
		if alt == "" {
			alt = "Illustration"
		}
		return Block{Kind: BlockMedia, Image: Image{URL: url, Alt: alt}}, true
	}

	return Block{}, false
}

// textRuns collects the text children of a block, walking nested link
// nodes and preserving the bold flag on each run.
func textRuns(r cms.Record) []TextRun {
	children, ok := r.Slice("children", "Children")
	if !ok {
		return nil
	}
	return collectRuns(children)
}

func collectRuns(children []any) []TextRun {
	var runs []TextRun
	for _, child := range children {
		m, ok := child.(map[string]any)
		if !ok {
			continue
		}
		node := cms.Record(m)

		// Inline nodes like links carry their own children.
		if nested, ok := node.Slice("children", "Children"); ok {
			runs = append(runs, collectRuns(nested)...)
			continue
		}

		text, hasText := node["text"].(string)
		if !hasText || text == "" {
			continue
		}
		bold, _ := node["bold"].(bool)
		runs = append(runs, TextRun{Text: text, Bold: bold})
	}
	return runs
}

// listItems flattens a list block's item nodes into plain strings.
func listItems(r cms.Record) []string {
	children, ok := r.Slice("children", "Children")
	if !ok {
		return nil
	}

	var items []string
	for _, child := range children {
		m, ok := child.(map[string]any)
		if !ok {
			continue
		}
		var sb strings.Builder
		for _, run := range collectRuns([]any{m}) {
			sb.WriteString(run.Text)
		}
		if text := strings.TrimSpace(sb.String()); text != "" {
			items = append(items, text)
		}
	}
	return items
}
