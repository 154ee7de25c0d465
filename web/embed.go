// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the static assets served under /static/.
package web

import "embed"

//go:embed all:static
var Static embed.FS
