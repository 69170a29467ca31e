package ports

import (
	"context"
	"errors"
	"time"

	"github.com/shopcore/storefront/internal/orders/domain"
)

// OrderRepository exposes persistence operations required by the application layer.
// UpdateStatus is a compare-and-set: the write applies only while the order
// still holds the expected prior status, so concurrent transitions cannot
// both win.
type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, deliveredAt *time.Time) error
}

// ListFilter narrows list queries by owner, status and pagination.
type ListFilter struct {
	UserID   *string
	Status   *domain.OrderStatus
	Page     int
	PageSize int
}

var (
	// ErrNotFound is returned when the requested order does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrStatusConflict is returned by UpdateStatus when the order no longer
	// holds the expected prior status, meaning a concurrent transition won.
	ErrStatusConflict = errors.New("order status changed concurrently")
)
