package domain

import "errors"

var (
	ErrProductIDRequired = errors.New("product id is required")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
)

// Item is a cart line. Quantity is always at least 1; removing a line is
// an explicit operation, not a zero-quantity update.
type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (i Item) Validate() error {
	if i.ProductID == "" {
		return ErrProductIDRequired
	}
	if i.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// Cart is the full set of lines for one owner (user or guest session).
type Cart struct {
	Items []Item `json:"items"`
}
