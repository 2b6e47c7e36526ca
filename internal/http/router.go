package httpapi

import (
	"net/http"

	"github.com/swaggest/swgui/v5emb"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	httpopenapi "github.com/fairyhunter13/storefront-service/internal/http/openapi"
)

// RouterOptions tunes NewRouter.
type RouterOptions struct {
	// Tracing wraps the handler with OpenTelemetry server instrumentation.
	Tracing bool
	// ServiceName names the server spans.
	ServiceName string
}

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", app.catalogHandler)
	mux.HandleFunc("GET /buy/{product_id}", app.buyHandler)
	mux.HandleFunc("GET /health", app.healthHandler)
	mux.HandleFunc("GET /openapi.yaml", openapiHandler)
	mux.Handle("GET /docs/", v5emb.New("Storefront API", "/openapi.yaml", "/docs/"))

	var h http.Handler = WithRequestID(WithLogging(app.Log, mux))
	if opts.Tracing {
		name := opts.ServiceName
		if name == "" {
			name = "storefront"
		}
		h = otelhttp.NewHandler(h, name)
	}
	return h
}

func openapiHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}
