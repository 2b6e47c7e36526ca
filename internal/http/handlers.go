package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fairyhunter13/storefront-service/internal/catalog"
	"github.com/fairyhunter13/storefront-service/internal/model"
)

// Template blob names in the HTML container.
const (
	HomeTemplate     = "home.html"
	DeliveryTemplate = "delivery.html"
)

// CatalogSource loads a fresh catalog snapshot.
type CatalogSource interface {
	Load(ctx context.Context) (catalog.Snapshot, error)
}

// TemplateSource returns the text of a named template blob.
type TemplateSource interface {
	FetchText(ctx context.Context, name string) (string, error)
}

// OrderSubmitter sends one order for a product.
type OrderSubmitter interface {
	Submit(ctx context.Context, p model.Product) (model.OrderMessage, error)
}

// App holds the per-process wiring shared by all requests. It has no
// mutable state.
type App struct {
	Catalog   CatalogSource
	Templates TemplateSource
	Orders    OrderSubmitter
	Log       *slog.Logger
}

// NewApp wires an App. A nil logger means slog.Default().
func NewApp(cat CatalogSource, tmpl TemplateSource, orders OrderSubmitter, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{Catalog: cat, Templates: tmpl, Orders: orders, Log: logger}
}

type homeData struct {
	Products catalog.Snapshot
	Query    string
}

type deliveryData struct {
	Product model.Product
	Order   model.OrderMessage
}

func (a *App) catalogHandler(w http.ResponseWriter, r *http.Request) {
	const route = "GET /"
	ctx := r.Context()
	snap, err := a.Catalog.Load(ctx)
	if err != nil {
		a.writeError(w, r, route, err)
		return
	}
	q := r.URL.Query().Get("q")
	a.render(w, r, route, HomeTemplate, homeData{Products: snap.Search(q), Query: q})
}

func (a *App) buyHandler(w http.ResponseWriter, r *http.Request) {
	const route = "GET /buy/{product_id}"
	ctx := r.Context()
	id, err := strconv.ParseUint(r.PathValue("product_id"), 10, 63)
	if err != nil {
		a.writeError(w, r, route, catalog.ErrProductNotFound)
		return
	}
	snap, err := a.Catalog.Load(ctx)
	if err != nil {
		a.writeError(w, r, route, err)
		return
	}
	p, err := snap.Find(int64(id))
	if err != nil {
		a.writeError(w, r, route, err)
		return
	}
	order, err := a.Orders.Submit(ctx, p)
	if err != nil {
		a.writeError(w, r, route, err)
		return
	}
	a.render(w, r, route, DeliveryTemplate, deliveryData{Product: p, Order: order})
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
