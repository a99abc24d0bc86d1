// Package templates embeds the HTML page served by the analyzer.
package templates

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed *.html
var files embed.FS

var funcs = template.FuncMap{
	"ratio": func(v float64) string { return fmt.Sprintf("%.4f", v) },
}

// Parse returns the page templates with the helper functions installed.
func Parse() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "*.html")
}
