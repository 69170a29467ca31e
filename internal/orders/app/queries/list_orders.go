package queries

import (
	"context"

	"github.com/shopcore/storefront/internal/orders/domain"
	"github.com/shopcore/storefront/internal/orders/ports"
)

// ListOrdersQuery narrows order listings by owner, status and pagination.
type ListOrdersQuery struct {
	UserID   *string
	Status   *domain.OrderStatus
	Page     int
	PageSize int
}

// ListOrdersQueryHandler returns orders newest first.
type ListOrdersQueryHandler struct {
	repo ports.OrderRepository
}

// NewListOrdersQueryHandler constructs a ListOrdersQueryHandler.
func NewListOrdersQueryHandler(repo ports.OrderRepository) *ListOrdersQueryHandler {
	return &ListOrdersQueryHandler{repo: repo}
}

// Handle executes the query. Pagination is 1-based with a default page size.
func (h *ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]domain.Order, error) {
	return h.repo.List(ctx, ports.ListFilter{
		UserID:   query.UserID,
		Status:   query.Status,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
}
