package handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"personalsite/ui"
)

// Renderer executes the embedded views.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(ui.Files, "html/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the named view. Output is buffered so a template error
// never leaves a half-written page.
func (v *Renderer) Render(w http.ResponseWriter, name string, data any) error {
	var buf bytes.Buffer
	if err := v.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}
