package ports

import (
	"context"
	"errors"

	"github.com/shopcore/storefront/internal/accounts/domain"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNotOwner indicates the address belongs to a different user.
	ErrNotOwner = errors.New("address owned by another user")
)

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AddressRepository persists delivery addresses.
type AddressRepository interface {
	Create(ctx context.Context, address domain.Address) error
	GetByID(ctx context.Context, id string) (*domain.Address, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Address, error)
	Update(ctx context.Context, address domain.Address) error
	Delete(ctx context.Context, id string) error
}
