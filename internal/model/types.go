// Package model defines domain types used by the service.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrPriceOverflow is returned when a normalized price does not fit in int64.
var ErrPriceOverflow = errors.New("normalized price overflows int64")

// Product is one record of the catalog blob. ImageURL holds the stored path
// on the way in and a signed URL once the catalog loader has rewritten it.
type Product struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    Price  `json:"price"`
	ImageURL string `json:"image_url"`
}

// OrderMessage is the payload written to the order queue.
type OrderMessage struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Price is the display form of a product price. The catalog may carry it
// as a JSON string ("$12.00") or a JSON number (12.5); either way the text
// is kept as written.
type Price string

// UnmarshalJSON accepts a string, a number or null.
func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*p = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Price(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("price must be a string or number: %w", err)
		}
		*p = Price(n.String())
	}
	return nil
}

// String returns the display text.
func (p Price) String() string { return string(p) }

// NormalizePrice drops every character that is not an ASCII digit and
// parses what is left. No digits at all yields 0.
func NormalizePrice(p Price) (int64, error) {
	var digits strings.Builder
	for _, r := range string(p) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, nil
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrPriceOverflow, p)
	}
	return n, nil
}

// NewOrderMessage builds the queue payload for p with its price normalized.
func NewOrderMessage(p Product) (OrderMessage, error) {
	price, err := NormalizePrice(p.Price)
	if err != nil {
		return OrderMessage{}, err
	}
	return OrderMessage{ID: p.ID, Name: p.Name, Price: price}, nil
}
