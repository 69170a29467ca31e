package ports

import (
	"context"
	"errors"

	"github.com/shopcore/storefront/internal/catalog/domain"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a unique field (name, path url) is already taken.
	ErrDuplicate = errors.New("record already exists")
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID *string
	Search     *string
	Page       int
	PageSize   int
}

// ProductRepository persists catalog products.
type ProductRepository interface {
	Create(ctx context.Context, product domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByPath(ctx context.Context, pathURL string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, product domain.Product) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository persists product categories.
type CategoryRepository interface {
	Create(ctx context.Context, category domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category domain.Category) error
	Delete(ctx context.Context, id string) error
}
