// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

// Package views embeds the site templates into the binary.
package views

import "embed"

// FS contains the base layout, shared partials and per-layout page
// templates.
//
//go:embed all:layouts all:partials all:pages
var FS embed.FS
