package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shopcore/storefront/internal/accounts/domain"
	"github.com/shopcore/storefront/internal/accounts/ports"
)

// Service exposes user and address use cases.
type Service struct {
	users     ports.UserRepository
	addresses ports.AddressRepository
}

// NewService wires the account repositories.
func NewService(users ports.UserRepository, addresses ports.AddressRepository) *Service {
	return &Service{users: users, addresses: addresses}
}

// CreateUser validates and stores a new account.
func (s *Service) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	user.Email = domain.NormalizeEmail(user.Email)
	if user.Role == "" {
		user.Role = domain.RoleCustomer
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// GetUser retrieves an account by ID.
func (s *Service) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetUserByEmail retrieves an account by normalized email.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
}

// CreateAddress validates and stores a new address for its user.
func (s *Service) CreateAddress(ctx context.Context, address domain.Address) (*domain.Address, error) {
	if err := address.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, address.UserID); err != nil {
		return nil, fmt.Errorf("verify address user: %w", err)
	}

	if address.ID == "" {
		address.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	address.CreatedAt = now
	address.UpdatedAt = now

	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return &address, nil
}

// GetAddress retrieves an address by ID.
func (s *Service) GetAddress(ctx context.Context, id string) (*domain.Address, error) {
	return s.addresses.GetByID(ctx, id)
}

// ListAddresses returns every address owned by the user.
func (s *Service) ListAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	return s.addresses.ListByUser(ctx, userID)
}

// UpdateAddress stores new address fields after checking ownership.
func (s *Service) UpdateAddress(ctx context.Context, callerID string, address domain.Address) (*domain.Address, error) {
	existing, err := s.addresses.GetByID(ctx, address.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != callerID {
		return nil, ports.ErrNotOwner
	}

	address.UserID = existing.UserID
	if err := address.Validate(); err != nil {
		return nil, err
	}

	address.CreatedAt = existing.CreatedAt
	address.UpdatedAt = time.Now().UTC()

	if err := s.addresses.Update(ctx, address); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}
	return &address, nil
}

// DeleteAddress removes an address after checking ownership.
func (s *Service) DeleteAddress(ctx context.Context, callerID, id string) error {
	existing, err := s.addresses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != callerID {
		return ports.ErrNotOwner
	}
	return s.addresses.Delete(ctx, id)
}
