package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopcore/storefront/internal/accounts/domain"
	"github.com/shopcore/storefront/internal/accounts/ports"
)

// UserRepository keeps accounts in memory.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserRepository creates an empty in-memory user store.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ports.ErrDuplicateEmail
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			copy := user
			return &copy, nil
		}
	}
	return nil, ports.ErrNotFound
}

// AddressRepository keeps addresses in memory.
type AddressRepository struct {
	mu        sync.RWMutex
	addresses map[string]domain.Address
}

// NewAddressRepository creates an empty in-memory address store.
func NewAddressRepository() *AddressRepository {
	return &AddressRepository{addresses: make(map[string]domain.Address)}
}

func (r *AddressRepository) Create(_ context.Context, address domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addresses[address.ID] = address
	return nil
}

func (r *AddressRepository) GetByID(_ context.Context, id string) (*domain.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	address, ok := r.addresses[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &address, nil
}

func (r *AddressRepository) ListByUser(_ context.Context, userID string) ([]domain.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	addresses := []domain.Address{}
	for _, address := range r.addresses {
		if address.UserID == userID {
			addresses = append(addresses, address)
		}
	}
	sort.Slice(addresses, func(i, j int) bool {
		return addresses[i].CreatedAt.Before(addresses[j].CreatedAt)
	})
	return addresses, nil
}

func (r *AddressRepository) Update(_ context.Context, address domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.addresses[address.ID]; !ok {
		return ports.ErrNotFound
	}
	r.addresses[address.ID] = address
	return nil
}

func (r *AddressRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.addresses[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.addresses, id)
	return nil
}
