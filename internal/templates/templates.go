// Copyright 2025 Hendrik Verlin
// Licensed under the EUPL-1.2

// Package templates renders the server-side HTML pages.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed pages/*.html
var pagesFS embed.FS

// funcMap exposes helpers to the page templates. Post bodies and comments
// are rich text authored by logged-in users and are rendered as-is.
var funcMap = template.FuncMap{
	"safeHTML": func(s string) template.HTML {
		return template.HTML(s) //nolint:gosec // rich-text fields are rendered unescaped by design
	},
}

// Renderer implements echo.Renderer over the embedded pages. Every page is
// parsed together with the base layout.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses all embedded pages.
func New() (*Renderer, error) {
	entries, err := fs.Glob(pagesFS, "pages/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, entry := range entries {
		name := strings.TrimSuffix(path.Base(entry), ".html")
		if name == "base" {
			continue
		}
		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(pagesFS, "pages/base.html", entry)
		if err != nil {
			return nil, fmt.Errorf("parsing page %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

// Render writes the named page. Implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return tmpl.ExecuteTemplate(w, "base.html", data)
}
