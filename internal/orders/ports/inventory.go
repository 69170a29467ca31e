package ports

import (
	"context"
	"errors"
)

// ProductSnapshot carries the product fields order placement needs: the
// mutable fields it snapshots into line items, and the current stock.
type ProductSnapshot struct {
	ID                 string
	Name               string
	Image              string
	PriceCents         int64
	DiscountPriceCents *int64
	Stock              int
}

// InventoryStore gives the placement flow access to product stock. The
// decrement is conditional and must be atomic per product: it only applies
// when at least quantity units remain, as one storage operation.
type InventoryStore interface {
	GetProduct(ctx context.Context, id string) (*ProductSnapshot, error)
	DecrementStock(ctx context.Context, id string, quantity int) error
	IncrementStock(ctx context.Context, id string, quantity int) error
}

var (
	// ErrProductNotFound is returned when a referenced product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a conditional decrement would
	// take stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)
