// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import "strings"

// RobotsConfig holds configuration for robots.txt generation.
type RobotsConfig struct {
	SiteURL     string // Base URL for the sitemap reference
	DisallowAll bool   // Block all crawlers (staging deployments)
}

// GenerateRobots renders robots.txt. The API endpoints are always
// disallowed; they serve webhooks, not pages.
func GenerateRobots(cfg RobotsConfig) string {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")

	if cfg.DisallowAll {
		sb.WriteString("Disallow: /\n")
		return sb.String()
	}

	sb.WriteString("Disallow: /api/\n")
	sb.WriteString("Allow: /\n")

	if cfg.SiteURL != "" {
		sb.WriteString("\nSitemap: ")
		sb.WriteString(strings.TrimSuffix(cfg.SiteURL, "/"))
		sb.WriteString("/sitemap.xml\n")
	}
	return sb.String()
}
