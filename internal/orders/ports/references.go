package ports

import (
	"context"
	"errors"
)

// UserReader answers whether an order's owning user exists.
type UserReader interface {
	UserExists(ctx context.Context, id string) (bool, error)
}

// AddressReader resolves the owning user of a shipping address.
type AddressReader interface {
	AddressOwner(ctx context.Context, id string) (string, error)
}

var (
	// ErrAddressNotFound is returned when the shipping address does not exist.
	ErrAddressNotFound = errors.New("address not found")
)
