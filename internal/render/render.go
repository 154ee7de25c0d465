// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render turns resolved content into HTML pages using the
// embedded template set.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmarchetti/firmsite-go/internal/util"
)

// Renderer holds the parsed template set, one entry per page layout.
type Renderer struct {
	templates map[string]*template.Template
	policy    *bluemonday.Policy
}

// New parses every page template against the base layout and shared
// partials.
func New(viewsFS fs.FS) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		policy:    bluemonday.UGCPolicy(),
	}

	partials, err := fs.Glob(viewsFS, "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("globbing partials: %w", err)
	}
	pages, err := fs.Glob(viewsFS, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("globbing pages: %w", err)
	}

	for _, page := range pages {
		name := strings.TrimSuffix(path.Base(page), ".html")

		files := []string{"layouts/base.html"}
		files = append(files, partials...)
		files = append(files, page)

		tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(viewsFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}

	return r, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"truncate": func(s string, length int) string {
			if len(s) <= length {
				return s
			}
			return s[:length] + "..."
		},
		// Section headings carry slug anchors for deep links.
		"slugify": util.Slugify,
	}
}

// Render executes the named layout into a buffer so a failing template
// never writes a half page, and returns the bytes for caching.
func (r *Renderer) Render(name string, data any) ([]byte, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %s not found", name)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// SanitizeHTML strips script, event handlers and other dangerous markup
// from CMS-authored HTML before it is marked safe for the template.
func (r *Renderer) SanitizeHTML(s string) template.HTML {
	return template.HTML(r.policy.Sanitize(s))
}
