package ports

import (
	"context"
	"errors"

	"github.com/shopcore/storefront/internal/reviews/domain"
)

// ReviewFilter narrows listings by author or reviewed product.
type ReviewFilter struct {
	UserID    *string
	ProductID *string
}

// ReviewRepository persists customer reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review domain.Review) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	List(ctx context.Context, filter ReviewFilter) ([]domain.Review, error)
	Delete(ctx context.Context, id string) error
}

var (
	// ErrNotFound is returned when the requested review does not exist.
	ErrNotFound = errors.New("review not found")
)
