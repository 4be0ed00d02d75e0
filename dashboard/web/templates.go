package web

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*
var templateFS embed.FS

// newTemplates creates and parses the HTML templates with custom functions.
func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"deref": func(f *float64) float64 {
			if f == nil {
				return 0
			}
			return *f
		},
		"fmtFloat": func(f *float64) string {
			if f == nil {
				return "n/a"
			}
			return fmt.Sprintf("%.4f", *f)
		},
		"fmtVal": func(f float64) string {
			return fmt.Sprintf("%.4f", f)
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
