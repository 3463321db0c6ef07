// Package web contains the HTML templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed static
var static embed.FS

// Templates parses all page templates with funcs available to them.
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templates, "templates/*.html")
}

// Static returns the static assets, rooted at the static directory.
func Static() (fs.FS, error) {
	return fs.Sub(static, "static")
}
