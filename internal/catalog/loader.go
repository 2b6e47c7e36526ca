// Package catalog loads the product catalog from blob storage and answers
// search and lookup queries over one loaded snapshot.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fairyhunter13/storefront-service/internal/blob"
	"github.com/fairyhunter13/storefront-service/internal/model"
)

// ProductsBlob is the catalog blob inside the product container.
const ProductsBlob = "product.json"

// Loader reads product.json and rewrites image references to signed URLs.
type Loader struct {
	products       *blob.Fetcher
	signer         *blob.Signer
	imageContainer string
	log            *slog.Logger
}

// NewLoader wires a Loader. products reads the product container; signer
// issues URLs for imageContainer.
func NewLoader(products *blob.Fetcher, signer *blob.Signer, imageContainer string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{products: products, signer: signer, imageContainer: imageContainer, log: logger}
}

// Load fetches a fresh snapshot. A body that is not a JSON array of
// products fails the whole load; a product without an image keeps an
// empty ImageURL.
func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	raw, err := l.products.Fetch(ctx, ProductsBlob)
	if err != nil {
		return nil, err
	}
	snap, err := decodeProducts(raw)
	if err != nil {
		return nil, err
	}
	for i := range snap {
		p := &snap[i]
		name := imageFilename(p.ImageURL)
		if name == "" {
			l.log.WarnContext(ctx, "catalog_image_missing", "product_id", p.ID)
			p.ImageURL = ""
			continue
		}
		u, err := l.signer.SignedURL(l.imageContainer, name)
		if err != nil {
			return nil, fmt.Errorf("sign image for product %d: %w", p.ID, err)
		}
		p.ImageURL = u
	}
	l.log.DebugContext(ctx, "catalog_loaded", "count", len(snap))
	return snap, nil
}

// record is one catalog entry as stored. ID shadows the embedded
// Product.ID so a missing id can be told apart from id 0.
type record struct {
	ID *int64 `json:"id"`
	model.Product
}

// decodeProducts parses product.json. The body must be a JSON array whose
// elements are objects carrying an id.
func decodeProducts(raw []byte) (Snapshot, error) {
	var recs []*record
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}
	if recs == nil {
		return nil, fmt.Errorf("%w: body is not an array", ErrMalformedCatalog)
	}
	snap := make(Snapshot, 0, len(recs))
	for i, r := range recs {
		if r == nil {
			return nil, fmt.Errorf("%w: record %d is null", ErrMalformedCatalog, i)
		}
		if r.ID == nil {
			return nil, fmt.Errorf("%w: record %d has no id", ErrMalformedCatalog, i)
		}
		p := r.Product
		p.ID = *r.ID
		snap = append(snap, p)
	}
	return snap, nil
}

// imageFilename returns the last path segment of a stored image reference,
// without any query string or fragment.
func imageFilename(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	return ref
}
