// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// SecurityHeadersConfig controls the response headers set on every
// page.
type SecurityHeadersConfig struct {
	// IsDevelopment disables HSTS, which would pin localhost to https.
	IsDevelopment bool

	// HSTSMaxAge in seconds; 0 disables the header.
	HSTSMaxAge int
}

// DefaultSecurityHeadersConfig returns the production defaults.
func DefaultSecurityHeadersConfig(isDev bool) SecurityHeadersConfig {
	return SecurityHeadersConfig{
		IsDevelopment: isDev,
		HSTSMaxAge:    31536000,
	}
}

// SecurityHeaders sets the standard hardening headers. The CSP allows
// CMS-hosted images and the chat widget script origin but nothing
// else off-site.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	csp := buildCSP(map[string]string{
		"default-src": "'self'",
		"script-src":  "'self' 'unsafe-inline'",
		"style-src":   "'self' 'unsafe-inline'",
		"img-src":     "'self' data: https:",
		"font-src":    "'self' data:",
		"connect-src": "'self'",
		"object-src":  "'none'",
		"base-uri":    "'self'",
		"form-action": "'self'",
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "SAMEORIGIN")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Content-Security-Policy", csp)
			if !cfg.IsDevelopment && cfg.HSTSMaxAge > 0 {
				h.Set("Strict-Transport-Security",
					fmt.Sprintf("max-age=%d; includeSubDomains", cfg.HSTSMaxAge))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func buildCSP(directives map[string]string) string {
	names := make([]string, 0, len(directives))
	for name := range directives {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+directives[name])
	}
	return strings.Join(parts, "; ")
}
