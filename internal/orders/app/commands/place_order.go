package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopcore/storefront/internal/orders/domain"
	"github.com/shopcore/storefront/internal/orders/ports"
)

var (
	// ErrInvalidUser signals the order's user does not exist.
	ErrInvalidUser = errors.New("invalid user")
	// ErrInvalidAddress signals the shipping address does not exist.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrAddressOwnership signals the address belongs to a different user.
	ErrAddressOwnership = errors.New("address does not belong to this user")
	// ErrEmptyCart signals the request carried no line items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoFulfillableItems signals every requested item was missing or oversold.
	ErrNoFulfillableItems = errors.New("no items available in stock to place the order")
	// ErrOrderPersistence signals the order could not be committed; any stock
	// decrements applied in the attempt have been rolled back.
	ErrOrderPersistence = errors.New("order persistence failed")
)

// PlaceOrderItem is one requested line item. The price fields are advisory,
// like TotalAmountCentsHint: the handler snapshots authoritative prices from
// the product record at placement time.
type PlaceOrderItem struct {
	ProductID          string
	Quantity           int
	PriceCents         int64
	DiscountPriceCents *int64
}

// PlaceOrderCommand captures a checkout request. TotalAmountCentsHint and
// StatusHint are accepted but never trusted: the total is recomputed from
// validated items and the status always initializes to Processing.
type PlaceOrderCommand struct {
	UserID               string
	Items                []PlaceOrderItem
	ShippingAddressID    string
	PaymentMethod        domain.PaymentMethod
	TransactionID        string
	TotalAmountCentsHint int64
	StatusHint           string
}

// Validate performs structural checks that need no storage access.
func (c PlaceOrderCommand) Validate() error {
	if strings.TrimSpace(c.UserID) == "" {
		return ErrInvalidUser
	}
	if strings.TrimSpace(c.ShippingAddressID) == "" {
		return ErrInvalidAddress
	}
	if len(c.Items) == 0 {
		return ErrEmptyCart
	}
	for _, item := range c.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return errors.New("product_id is required for every item")
		}
		if item.Quantity < 1 {
			return errors.New("quantity must be at least 1")
		}
	}
	switch c.PaymentMethod {
	case domain.PaymentCashOnDelivery, domain.PaymentOnline:
	default:
		return errors.New("payment_method must be COD or Online")
	}
	return nil
}

type CommandHandler interface {
	Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error)
}

// PlaceOrderCommandHandler validates a checkout request against referenced
// records and current stock, reserves inventory, and creates the order.
//
// Items referencing missing products, or requesting more than the available
// stock, are dropped rather than failing the whole order; the order fails
// only when nothing survives. Stock is taken with per-product atomic
// conditional decrements, and the order insert is contingent on them: if the
// insert fails, every applied decrement is compensated before returning.
type PlaceOrderCommandHandler struct {
	repo      ports.OrderRepository
	inventory ports.InventoryStore
	users     ports.UserReader
	addresses ports.AddressReader
	events    ports.EventBus
}

func NewPlaceOrderCommandHandler(
	repo ports.OrderRepository,
	inventory ports.InventoryStore,
	users ports.UserReader,
	addresses ports.AddressReader,
	events ports.EventBus,
) *PlaceOrderCommandHandler {
	return &PlaceOrderCommandHandler{
		repo:      repo,
		inventory: inventory,
		users:     users,
		addresses: addresses,
		events:    events,
	}
}

func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	exists, err := h.users.UserExists(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return nil, ErrInvalidUser
	}

	owner, err := h.addresses.AddressOwner(ctx, cmd.ShippingAddressID)
	if err != nil {
		if errors.Is(err, ports.ErrAddressNotFound) {
			return nil, ErrInvalidAddress
		}
		return nil, fmt.Errorf("check address: %w", err)
	}
	if owner != cmd.UserID {
		return nil, ErrAddressOwnership
	}

	accepted, err := h.validateItems(ctx, cmd.Items)
	if err != nil {
		return nil, err
	}
	if len(accepted) == 0 {
		return nil, ErrNoFulfillableItems
	}

	items, err := h.reserveStock(ctx, accepted)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoFulfillableItems
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:                uuid.NewString(),
		UserID:            cmd.UserID,
		Items:             items,
		ShippingAddressID: cmd.ShippingAddressID,
		TotalAmountCents:  domain.TotalAmountCents(items),
		PaymentMethod:     cmd.PaymentMethod,
		PaymentStatus:     initialPaymentStatus(cmd),
		Status:            domain.StatusProcessing,
		TransactionID:     cmd.TransactionID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := order.Validate(); err != nil {
		if relErr := h.releaseStock(ctx, items); relErr != nil {
			return nil, fmt.Errorf("%w: %w; stock compensation incomplete: %w", ErrOrderPersistence, err, relErr)
		}
		return nil, err
	}

	if err := h.repo.Create(ctx, order); err != nil {
		if relErr := h.releaseStock(ctx, items); relErr != nil {
			return nil, fmt.Errorf("%w: %w; stock compensation incomplete: %w", ErrOrderPersistence, err, relErr)
		}
		return nil, fmt.Errorf("%w: %w", ErrOrderPersistence, err)
	}

	if err := h.events.PublishOrderPlaced(ctx, order.ID); err != nil {
		return &order, fmt.Errorf("order placed but failed to publish event: %w", err)
	}

	return &order, nil
}

// validateItems resolves every requested item and snapshots product fields
// for those that pass. Missing and oversold items are dropped silently; the
// stock check here is advisory only, the authoritative check happens in the
// conditional decrement.
func (h *PlaceOrderCommandHandler) validateItems(ctx context.Context, requested []PlaceOrderItem) ([]domain.OrderItem, error) {
	var accepted []domain.OrderItem
	for _, item := range requested {
		product, err := h.inventory.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, ports.ErrProductNotFound) {
				continue
			}
			return nil, fmt.Errorf("resolve product %s: %w", item.ProductID, err)
		}
		if item.Quantity > product.Stock {
			continue
		}

		accepted = append(accepted, domain.OrderItem{
			ProductID:          product.ID,
			ProductName:        product.Name,
			ProductImage:       product.Image,
			Quantity:           item.Quantity,
			PriceCents:         product.PriceCents,
			DiscountPriceCents: product.DiscountPriceCents,
		})
	}
	return accepted, nil
}

// reserveStock applies a conditional decrement per accepted item. Items that
// lose the race between validation and commit are dropped, same policy as
// validation. A storage failure rolls back the decrements already applied.
func (h *PlaceOrderCommandHandler) reserveStock(ctx context.Context, accepted []domain.OrderItem) ([]domain.OrderItem, error) {
	var applied []domain.OrderItem
	for _, item := range accepted {
		err := h.inventory.DecrementStock(ctx, item.ProductID, item.Quantity)
		if errors.Is(err, ports.ErrInsufficientStock) || errors.Is(err, ports.ErrProductNotFound) {
			continue
		}
		if err != nil {
			if relErr := h.releaseStock(ctx, applied); relErr != nil {
				return nil, fmt.Errorf("%w: reserve stock for %s: %w; stock compensation incomplete: %w", ErrOrderPersistence, item.ProductID, err, relErr)
			}
			return nil, fmt.Errorf("%w: reserve stock for %s: %w", ErrOrderPersistence, item.ProductID, err)
		}
		applied = append(applied, item)
	}
	return applied, nil
}

// releaseStock compensates decrements after a failed commit. It runs on a
// context detached from cancellation so an aborted request still restores
// stock, and keeps going past individual failures so every item gets its
// restore attempt. A non-nil return means some stock is still decremented
// with no order backing it.
func (h *PlaceOrderCommandHandler) releaseStock(ctx context.Context, items []domain.OrderItem) error {
	ctx = context.WithoutCancel(ctx)
	var errs []error
	for _, item := range items {
		if err := h.inventory.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			errs = append(errs, fmt.Errorf("restore stock for %s: %w", item.ProductID, err))
		}
	}
	return errors.Join(errs...)
}

// initialPaymentStatus derives the payment status from the method: cash on
// delivery starts Pending, online payments are Paid once a confirmation
// token is present.
func initialPaymentStatus(cmd PlaceOrderCommand) domain.PaymentStatus {
	if cmd.PaymentMethod == domain.PaymentOnline && cmd.TransactionID != "" {
		return domain.PaymentPaid
	}
	return domain.PaymentPending
}
