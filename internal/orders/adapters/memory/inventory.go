package memory

import (
	"context"
	"sync"

	"github.com/shopcore/storefront/internal/orders/ports"
)

// Inventory keeps product snapshots in memory. The conditional decrement is
// atomic under the store mutex, matching the storage contract.
type Inventory struct {
	mu       sync.Mutex
	products map[string]ports.ProductSnapshot
}

// NewInventory constructs an empty in-memory inventory.
func NewInventory() *Inventory {
	return &Inventory{products: make(map[string]ports.ProductSnapshot)}
}

// Seed installs or replaces a product snapshot.
func (i *Inventory) Seed(product ports.ProductSnapshot) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.products[product.ID] = product
}

func (i *Inventory) GetProduct(_ context.Context, id string) (*ports.ProductSnapshot, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	product, ok := i.products[id]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	copy := product
	return &copy, nil
}

func (i *Inventory) DecrementStock(_ context.Context, id string, quantity int) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	product, ok := i.products[id]
	if !ok {
		return ports.ErrProductNotFound
	}
	if product.Stock < quantity {
		return ports.ErrInsufficientStock
	}
	product.Stock -= quantity
	i.products[id] = product
	return nil
}

func (i *Inventory) IncrementStock(_ context.Context, id string, quantity int) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	product, ok := i.products[id]
	if !ok {
		return ports.ErrProductNotFound
	}
	product.Stock += quantity
	i.products[id] = product
	return nil
}
