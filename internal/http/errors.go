// Package httpapi exposes the storefront pages over HTTP.
package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fairyhunter13/storefront-service/internal/blob"
	"github.com/fairyhunter13/storefront-service/internal/catalog"
	"github.com/fairyhunter13/storefront-service/internal/model"
	"github.com/fairyhunter13/storefront-service/internal/queue"
)

// Error kinds reported in handler_error log lines.
const (
	kindUpstream = "upstream"
	kindParse    = "parse"
	kindNotFound = "not_found"
	kindQueue    = "queue"
	kindRender   = "render"
	kindPrice    = "price"
)

// renderError marks failures to parse or execute a fetched template.
type renderError struct {
	name string
	err  error
}

func (e *renderError) Error() string { return fmt.Sprintf("render %s: %v", e.name, e.err) }
func (e *renderError) Unwrap() error { return e.err }

// classify maps a handler error to its kind and response status.
func classify(err error) (string, int) {
	var fe *blob.FetchError
	var re *renderError
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return kindNotFound, http.StatusNotFound
	case errors.Is(err, catalog.ErrMalformedCatalog):
		return kindParse, http.StatusInternalServerError
	case errors.Is(err, queue.ErrSend):
		return kindQueue, http.StatusInternalServerError
	case errors.Is(err, model.ErrPriceOverflow):
		return kindPrice, http.StatusInternalServerError
	case errors.As(err, &re):
		return kindRender, http.StatusInternalServerError
	case errors.As(err, &fe):
		return kindUpstream, http.StatusInternalServerError
	default:
		// transport failures from the blob client land here too
		return kindUpstream, http.StatusInternalServerError
	}
}

// writeError logs err and writes a response that carries no detail from it.
func (a *App) writeError(w http.ResponseWriter, r *http.Request, route string, err error) {
	kind, status := classify(err)
	reqID := RequestIDFromContext(r.Context())
	level := slog.LevelError
	if status == http.StatusNotFound {
		level = slog.LevelInfo
	}
	a.Log.Log(r.Context(), level, "handler_error",
		"kind", kind,
		"route", route,
		"request_id", reqID,
		"error", err.Error(),
	)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if status == http.StatusNotFound {
		_, _ = fmt.Fprint(w, "Product not found")
		return
	}
	_, _ = fmt.Fprintf(w, "Internal Server Error (request id %s)", reqID)
}
