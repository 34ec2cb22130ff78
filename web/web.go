package web

import (
	"embed"
	"html/template"
)

//go:embed template
var files embed.FS

// Templates parses the embedded blog templates with the given helpers.
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "template/blog/*.html")
}
