package ports

import (
	"context"
	"errors"

	"github.com/shopcore/storefront/internal/cart/domain"
)

var (
	// ErrItemNotFound indicates the product is not in the cart.
	ErrItemNotFound = errors.New("item not in cart")
)

// CartStore persists authenticated user carts.
type CartStore interface {
	GetItems(ctx context.Context, userID string) ([]domain.Item, error)
	// AddItem inserts a line. Adding a product already in the cart is a
	// no-op; the returned bool reports whether a line was inserted.
	AddItem(ctx context.Context, userID string, item domain.Item) (bool, error)
	UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) error
	RemoveItem(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

// GuestCartStore holds short-lived carts keyed by an opaque session token.
type GuestCartStore interface {
	GetItems(ctx context.Context, token string) ([]domain.Item, error)
	SetItems(ctx context.Context, token string, items []domain.Item) error
	Delete(ctx context.Context, token string) error
}
