// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "strings"

// SplitSlugPath splits a request path into its parent path and leaf slug.
// The input may carry leading or trailing slashes; both are ignored.
// "practice-areas/overview" yields ("practice-areas", "overview");
// a single-segment path yields an empty parent.
func SplitSlugPath(slugPath string) (parent, leaf string) {
	trimmed := strings.Trim(slugPath, "/")
	if trimmed == "" {
		return "", ""
	}

	segments := strings.Split(trimmed, "/")
	leaf = segments[len(segments)-1]
	if len(segments) > 1 {
		parent = strings.Join(segments[:len(segments)-1], "/")
	}
	return parent, leaf
}

// NormalizeParentPath strips leading and trailing slashes from a parent
// path and re-adds a single leading slash, matching the URL field format
// stored on parent page records.
func NormalizeParentPath(parent string) string {
	trimmed := strings.Trim(parent, "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}

// CleanSlugPath trims slashes and collapses empty segments so that
// "/a//b/" and "a/b" address the same content record.
func CleanSlugPath(slugPath string) string {
	parts := strings.Split(strings.Trim(slugPath, "/"), "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}
