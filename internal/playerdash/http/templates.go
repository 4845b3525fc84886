package http

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/pixelforge/playerdash/pkg/sessions"
	"github.com/pixelforge/playerdash/pkg/slogx"
)

//go:embed views/*.html
var viewsFS embed.FS

var templates = template.Must(template.ParseFS(viewsFS, "views/*.html"))

// pageData is passed to every rendered view.
type pageData struct {
	Username string
	Flash    *sessions.Flash
}

// renderPage renders the named view with the pending flash message, if any.
func renderPage(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if flash, ok := sessions.PopFlash(w, r); ok {
		data.Flash = &flash
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		slogx.FromContext(r.Context()).Error("failed to render template", "template", name, "err", err)
	}
}
