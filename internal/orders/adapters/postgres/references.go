package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopcore/storefront/internal/orders/ports"
)

// UserReader answers existence checks against the users table.
type UserReader struct {
	pool *pgxpool.Pool
}

func NewUserReader(pool *pgxpool.Pool) *UserReader {
	return &UserReader{pool: pool}
}

func (r *UserReader) UserExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return exists, nil
}

// AddressReader resolves address ownership against the addresses table.
type AddressReader struct {
	pool *pgxpool.Pool
}

func NewAddressReader(pool *pgxpool.Pool) *AddressReader {
	return &AddressReader{pool: pool}
}

func (r *AddressReader) AddressOwner(ctx context.Context, id string) (string, error) {
	var owner string
	err := r.pool.QueryRow(ctx, `SELECT user_id FROM addresses WHERE id = $1`, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ports.ErrAddressNotFound
		}
		return "", fmt.Errorf("select address owner: %w", err)
	}
	return owner, nil
}
