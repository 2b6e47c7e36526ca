package catalog

import "errors"

var (
	// ErrProductNotFound indicates the requested id is not in the snapshot.
	ErrProductNotFound = errors.New("product not found")

	// ErrMalformedCatalog indicates product.json could not be decoded.
	ErrMalformedCatalog = errors.New("malformed product catalog")
)
