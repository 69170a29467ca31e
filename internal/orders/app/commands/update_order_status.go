package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopcore/storefront/internal/orders/domain"
	"github.com/shopcore/storefront/internal/orders/ports"
)

var (
	// ErrInvalidTransition signals the requested status change is not
	// allowed by the order state machine.
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// UpdateOrderStatusCommand advances an order through its state machine.
type UpdateOrderStatusCommand struct {
	OrderID string
	Status  domain.OrderStatus
}

func (c UpdateOrderStatusCommand) Validate() error {
	if strings.TrimSpace(c.OrderID) == "" {
		return errors.New("order_id is required")
	}
	switch c.Status {
	case domain.StatusProcessing, domain.StatusShipped, domain.StatusDelivered, domain.StatusCancelled:
		return nil
	default:
		return fmt.Errorf("unknown order status %q", c.Status)
	}
}

// UpdateOrderStatusCommandHandler enforces the transition rules, stamps the
// delivery timestamp on Delivered, and restocks line items on Cancelled.
type UpdateOrderStatusCommandHandler struct {
	repo      ports.OrderRepository
	inventory ports.InventoryStore
	events    ports.EventBus
}

func NewUpdateOrderStatusCommandHandler(
	repo ports.OrderRepository,
	inventory ports.InventoryStore,
	events ports.EventBus,
) *UpdateOrderStatusCommandHandler {
	return &UpdateOrderStatusCommandHandler{
		repo:      repo,
		inventory: inventory,
		events:    events,
	}
}

func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	order, err := h.repo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(cmd.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, cmd.Status)
	}

	var deliveredAt *time.Time
	if cmd.Status == domain.StatusDelivered {
		now := time.Now().UTC()
		deliveredAt = &now
	}

	// The guarded update closes the window between the read above and the
	// write: if another transition landed first, nothing is written and no
	// restock runs.
	if err := h.repo.UpdateStatus(ctx, cmd.OrderID, order.Status, cmd.Status, deliveredAt); err != nil {
		if errors.Is(err, ports.ErrStatusConflict) {
			return nil, fmt.Errorf("%w: %s -> %s: %w", ErrInvalidTransition, order.Status, cmd.Status, err)
		}
		return nil, err
	}

	order.Status = cmd.Status
	order.DeliveredAt = deliveredAt
	order.UpdatedAt = time.Now().UTC()

	if cmd.Status == domain.StatusCancelled {
		if err := h.restock(ctx, order.Items); err != nil {
			return order, fmt.Errorf("order cancelled but restock incomplete: %w", err)
		}
	}

	if err := h.events.PublishOrderStatusChanged(ctx, order.ID, order.Status); err != nil {
		return order, fmt.Errorf("status updated but failed to publish event: %w", err)
	}

	return order, nil
}

func (h *UpdateOrderStatusCommandHandler) restock(ctx context.Context, items []domain.OrderItem) error {
	ctx = context.WithoutCancel(ctx)
	var errs []error
	for _, item := range items {
		if err := h.inventory.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			errs = append(errs, fmt.Errorf("restock %s: %w", item.ProductID, err))
		}
	}
	return errors.Join(errs...)
}
