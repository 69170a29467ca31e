package domain

import (
	"errors"
	"strings"
	"time"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

var (
	ErrEmailRequired     = errors.New("email is required")
	ErrInvalidEmail      = errors.New("email is invalid")
	ErrFirstNameRequired = errors.New("first name is required")
	ErrInvalidRole       = errors.New("role must be customer or admin")
)

// User is a minimal account record. Authentication is handled elsewhere;
// this store exists so orders can verify the buyer.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail lowercases and trims an email for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u User) Validate() error {
	if u.FirstName == "" {
		return ErrFirstNameRequired
	}
	if u.Email == "" {
		return ErrEmailRequired
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	switch u.Role {
	case RoleCustomer, RoleAdmin:
		return nil
	default:
		return ErrInvalidRole
	}
}
