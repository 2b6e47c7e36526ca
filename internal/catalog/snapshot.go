package catalog

import (
	"strings"

	"github.com/fairyhunter13/storefront-service/internal/model"
)

// Snapshot is the catalog as read by one request, in source order.
// It is never shared between requests.
type Snapshot []model.Product

// Search keeps products whose name or category contains q, ignoring case
// and surrounding whitespace. An empty q returns s unchanged.
func (s Snapshot) Search(q string) Snapshot {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return s
	}
	out := make(Snapshot, 0, len(s))
	for _, p := range s {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the first product with the given id.
func (s Snapshot) Find(id int64) (model.Product, error) {
	for _, p := range s {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, ErrProductNotFound
}
