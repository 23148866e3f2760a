// Package views holds the HTML templates of the admin panel.
package views

import (
	"embed"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"beststore/internal/storage"
)

//go:embed templates/*.tmpl
var files embed.FS

// ViewData is the map every page template is executed with.
type ViewData map[string]any

var funcs = template.FuncMap{
	"price": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"date":  func(t time.Time) string { return t.Format("2006-01-02") },
	"image": storage.URL,
}

// Parse loads every page; pages are looked up by file name, e.g. "products_index.tmpl".
func Parse() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.tmpl")
}
