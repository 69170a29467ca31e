package memory

import (
	"context"
	"sync"

	"github.com/shopcore/storefront/internal/cart/domain"
	"github.com/shopcore/storefront/internal/cart/ports"
)

// CartStore keeps user carts in memory.
type CartStore struct {
	mu    sync.Mutex
	carts map[string][]domain.Item
}

// NewCartStore creates an empty in-memory cart store.
func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string][]domain.Item)}
}

func (s *CartStore) GetItems(_ context.Context, userID string) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.Item, len(s.carts[userID]))
	copy(items, s.carts[userID])
	return items, nil
}

func (s *CartStore) AddItem(_ context.Context, userID string, item domain.Item) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.carts[userID] {
		if existing.ProductID == item.ProductID {
			return false, nil
		}
	}
	s.carts[userID] = append(s.carts[userID], item)
	return true, nil
}

func (s *CartStore) UpdateItemQuantity(_ context.Context, userID, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.carts[userID] {
		if existing.ProductID == productID {
			s.carts[userID][i].Quantity = quantity
			return nil
		}
	}
	return ports.ErrItemNotFound
}

func (s *CartStore) RemoveItem(_ context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[userID]
	for i, existing := range items {
		if existing.ProductID == productID {
			s.carts[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return ports.ErrItemNotFound
}

func (s *CartStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

// GuestCartStore keeps guest carts in memory, without expiry.
type GuestCartStore struct {
	mu    sync.Mutex
	carts map[string][]domain.Item
}

// NewGuestCartStore creates an empty in-memory guest cart store.
func NewGuestCartStore() *GuestCartStore {
	return &GuestCartStore{carts: make(map[string][]domain.Item)}
}

func (s *GuestCartStore) GetItems(_ context.Context, token string) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.Item, len(s.carts[token]))
	copy(items, s.carts[token])
	return items, nil
}

func (s *GuestCartStore) SetItems(_ context.Context, token string, items []domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]domain.Item, len(items))
	copy(stored, items)
	s.carts[token] = stored
	return nil
}

func (s *GuestCartStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, token)
	return nil
}
