package app

import (
	"context"
	"fmt"

	"github.com/shopcore/storefront/internal/cart/domain"
	"github.com/shopcore/storefront/internal/cart/ports"
)

// Service exposes cart use cases for authenticated users and guests.
type Service struct {
	carts  ports.CartStore
	guests ports.GuestCartStore
}

// NewService wires the cart stores.
func NewService(carts ports.CartStore, guests ports.GuestCartStore) *Service {
	return &Service{carts: carts, guests: guests}
}

// GetCart returns the user's cart, empty when nothing was added yet.
func (s *Service) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	items, err := s.carts.GetItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &domain.Cart{Items: items}, nil
}

// AddItem puts a product in the user's cart. Re-adding a product that is
// already there leaves its quantity untouched; the bool reports whether a
// new line was created.
func (s *Service) AddItem(ctx context.Context, userID string, item domain.Item) (bool, error) {
	if err := item.Validate(); err != nil {
		return false, err
	}
	added, err := s.carts.AddItem(ctx, userID, item)
	if err != nil {
		return false, fmt.Errorf("add cart item: %w", err)
	}
	return added, nil
}

// UpdateItemQuantity sets the quantity of an existing line.
func (s *Service) UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}
	return s.carts.UpdateItemQuantity(ctx, userID, productID, quantity)
}

// RemoveItem deletes a line from the user's cart.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) error {
	return s.carts.RemoveItem(ctx, userID, productID)
}

// ClearCart removes every line.
func (s *Service) ClearCart(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}

// GetGuestCart returns the guest cart for a session token.
func (s *Service) GetGuestCart(ctx context.Context, token string) (*domain.Cart, error) {
	items, err := s.guests.GetItems(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("get guest cart: %w", err)
	}
	return &domain.Cart{Items: items}, nil
}

// AddGuestItem puts a product in a guest cart, refreshing its TTL.
// Re-adding keeps the existing quantity, matching the user cart behavior.
func (s *Service) AddGuestItem(ctx context.Context, token string, item domain.Item) (bool, error) {
	if err := item.Validate(); err != nil {
		return false, err
	}

	items, err := s.guests.GetItems(ctx, token)
	if err != nil {
		return false, fmt.Errorf("get guest cart: %w", err)
	}
	for _, existing := range items {
		if existing.ProductID == item.ProductID {
			return false, nil
		}
	}

	items = append(items, item)
	if err := s.guests.SetItems(ctx, token, items); err != nil {
		return false, fmt.Errorf("save guest cart: %w", err)
	}
	return true, nil
}

// MergeGuestCart folds a guest cart into the user's cart at login and
// discards the guest copy. Products already in the user's cart keep the
// authenticated quantity.
func (s *Service) MergeGuestCart(ctx context.Context, token, userID string) error {
	items, err := s.guests.GetItems(ctx, token)
	if err != nil {
		return fmt.Errorf("get guest cart: %w", err)
	}

	for _, item := range items {
		if _, err := s.carts.AddItem(ctx, userID, item); err != nil {
			return fmt.Errorf("merge cart item %s: %w", item.ProductID, err)
		}
	}

	if err := s.guests.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete guest cart: %w", err)
	}
	return nil
}
