package domain_test

import (
	"testing"
	"time"

	"github.com/shopcore/storefront/internal/orders/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func validOrder() domain.Order {
	items := []domain.OrderItem{
		{
			ProductID:    "prod-1",
			ProductName:  "Widget",
			ProductImage: "https://cdn.example.com/widget.jpg",
			Quantity:     2,
			PriceCents:   1500,
		},
	}
	return domain.Order{
		ID:                "order-1",
		UserID:            "user-1",
		Items:             items,
		ShippingAddressID: "addr-1",
		TotalAmountCents:  domain.TotalAmountCents(items),
		PaymentMethod:     domain.PaymentCashOnDelivery,
		PaymentStatus:     domain.PaymentPending,
		Status:            domain.StatusProcessing,
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	}
}

func TestOrderValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *domain.Order)
		wantErr bool
	}{
		{
			name:    "valid order",
			mutate:  func(o *domain.Order) {},
			wantErr: false,
		},
		{
			name:    "missing user id",
			mutate:  func(o *domain.Order) { o.UserID = "  " },
			wantErr: true,
		},
		{
			name:    "missing shipping address",
			mutate:  func(o *domain.Order) { o.ShippingAddressID = "" },
			wantErr: true,
		},
		{
			name:    "no items",
			mutate:  func(o *domain.Order) { o.Items = nil },
			wantErr: true,
		},
		{
			name:    "zero quantity item",
			mutate:  func(o *domain.Order) { o.Items[0].Quantity = 0 },
			wantErr: true,
		},
		{
			name:    "negative price",
			mutate:  func(o *domain.Order) { o.Items[0].PriceCents = -1 },
			wantErr: true,
		},
		{
			name: "discount not below price",
			mutate: func(o *domain.Order) {
				o.Items[0].DiscountPriceCents = int64Ptr(1500)
			},
			wantErr: true,
		},
		{
			name:    "total mismatch",
			mutate:  func(o *domain.Order) { o.TotalAmountCents = 999 },
			wantErr: true,
		},
		{
			name:    "unknown payment method",
			mutate:  func(o *domain.Order) { o.PaymentMethod = "Barter" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := validOrder()
			tt.mutate(&order)
			err := order.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Order.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTotalAmountCents(t *testing.T) {
	items := []domain.OrderItem{
		{ProductID: "a", Quantity: 2, PriceCents: 1500},
		{ProductID: "b", Quantity: 3, PriceCents: 1000, DiscountPriceCents: int64Ptr(800)},
	}

	got := domain.TotalAmountCents(items)
	want := int64(2*1500 + 3*800)
	if got != want {
		t.Errorf("TotalAmountCents() = %d, want %d", got, want)
	}
}

func TestUnitPriceCents(t *testing.T) {
	full := domain.OrderItem{PriceCents: 1000}
	if got := full.UnitPriceCents(); got != 1000 {
		t.Errorf("UnitPriceCents() = %d, want 1000", got)
	}

	discounted := domain.OrderItem{PriceCents: 1000, DiscountPriceCents: int64Ptr(750)}
	if got := discounted.UnitPriceCents(); got != 750 {
		t.Errorf("UnitPriceCents() = %d, want 750", got)
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status domain.OrderStatus
		want   bool
	}{
		{"delivered is terminal", domain.StatusDelivered, true},
		{"cancelled is terminal", domain.StatusCancelled, true},
		{"processing is not terminal", domain.StatusProcessing, false},
		{"shipped is not terminal", domain.StatusShipped, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrderStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.OrderStatus
		to   domain.OrderStatus
		want bool
	}{
		{"processing to shipped", domain.StatusProcessing, domain.StatusShipped, true},
		{"processing to cancelled", domain.StatusProcessing, domain.StatusCancelled, true},
		{"processing to delivered skips shipped", domain.StatusProcessing, domain.StatusDelivered, false},
		{"shipped to delivered", domain.StatusShipped, domain.StatusDelivered, true},
		{"shipped to cancelled", domain.StatusShipped, domain.StatusCancelled, true},
		{"shipped back to processing", domain.StatusShipped, domain.StatusProcessing, false},
		{"delivered admits nothing", domain.StatusDelivered, domain.StatusCancelled, false},
		{"cancelled admits nothing", domain.StatusCancelled, domain.StatusShipped, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
