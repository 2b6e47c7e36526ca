package httpapi

import (
	"bytes"
	"html/template"
	"net/http"
)

// render fetches the named template, parses it and executes it with data.
// Nothing is written to w unless execution succeeds.
func (a *App) render(w http.ResponseWriter, r *http.Request, route, name string, data any) {
	text, err := a.Templates.FetchText(r.Context(), name)
	if err != nil {
		a.writeError(w, r, route, err)
		return
	}
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		a.writeError(w, r, route, &renderError{name: name, err: err})
		return
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		a.writeError(w, r, route, &renderError{name: name, err: err})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
