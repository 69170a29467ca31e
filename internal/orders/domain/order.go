package domain

import (
	"errors"
	"strings"
	"time"
)

// OrderStatus captures the lifecycle of a placed order.
type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// PaymentMethod identifies how the customer pays for an order.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "COD"
	PaymentOnline         PaymentMethod = "Online"
)

// PaymentStatus tracks the state of the payment attached to an order.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
	PaymentFailed  PaymentStatus = "Failed"
)

// OrderItem is a snapshot of a purchased product. The product fields are
// copied at placement time so later catalog edits never change the order.
type OrderItem struct {
	ProductID          string `json:"product_id"`
	ProductName        string `json:"product_name"`
	ProductImage       string `json:"product_image"`
	Quantity           int    `json:"quantity"`
	PriceCents         int64  `json:"price_cents"`
	DiscountPriceCents *int64 `json:"discount_price_cents,omitempty"`
}

// UnitPriceCents returns the effective price for one unit, preferring the
// discounted price when one was captured.
func (i OrderItem) UnitPriceCents() int64 {
	if i.DiscountPriceCents != nil {
		return *i.DiscountPriceCents
	}
	return i.PriceCents
}

// Validate ensures a line item snapshot is internally consistent.
func (i OrderItem) Validate() error {
	if strings.TrimSpace(i.ProductID) == "" {
		return errors.New("product_id is required")
	}
	if i.Quantity < 1 {
		return errors.New("quantity must be at least 1")
	}
	if i.PriceCents < 0 {
		return errors.New("price_cents must not be negative")
	}
	if i.DiscountPriceCents != nil && *i.DiscountPriceCents >= i.PriceCents {
		return errors.New("discount_price_cents must be below price_cents")
	}
	return nil
}

// Order is the immutable record produced by order placement. Only Status,
// PaymentStatus and DeliveredAt change afterwards, via status transitions.
type Order struct {
	ID                string        `json:"id"`
	UserID            string        `json:"user_id"`
	Items             []OrderItem   `json:"items"`
	ShippingAddressID string        `json:"shipping_address_id"`
	TotalAmountCents  int64         `json:"total_amount_cents"`
	PaymentMethod     PaymentMethod `json:"payment_method"`
	PaymentStatus     PaymentStatus `json:"payment_status"`
	Status            OrderStatus   `json:"status"`
	TransactionID     string        `json:"transaction_id,omitempty"`
	DeliveredAt       *time.Time    `json:"delivered_at,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// TotalAmountCents computes the authoritative order total from line items.
func TotalAmountCents(items []OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.UnitPriceCents() * int64(item.Quantity)
	}
	return total
}

// Validate ensures the order adheres to business constraints.
func (o Order) Validate() error {
	if strings.TrimSpace(o.UserID) == "" {
		return errors.New("user_id is required")
	}
	if strings.TrimSpace(o.ShippingAddressID) == "" {
		return errors.New("shipping_address_id is required")
	}
	if len(o.Items) == 0 {
		return errors.New("order must contain at least one item")
	}
	for _, item := range o.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	if o.TotalAmountCents != TotalAmountCents(o.Items) {
		return errors.New("total_amount_cents does not match line items")
	}
	switch o.PaymentMethod {
	case PaymentCashOnDelivery, PaymentOnline:
	default:
		return errors.New("payment_method must be COD or Online")
	}
	return nil
}

// IsTerminal indicates whether the status admits no further transition.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the status machine allows moving to next.
// Processing -> Shipped -> Delivered, with cancellation possible from
// Processing and Shipped.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case StatusProcessing:
		return next == StatusShipped || next == StatusCancelled
	case StatusShipped:
		return next == StatusDelivered || next == StatusCancelled
	default:
		return false
	}
}
