package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopcore/storefront/internal/orders/ports"
)

// Inventory reads products and applies stock changes for order placement.
type Inventory struct {
	pool *pgxpool.Pool
}

func NewInventory(pool *pgxpool.Pool) *Inventory {
	return &Inventory{pool: pool}
}

func (i *Inventory) GetProduct(ctx context.Context, id string) (*ports.ProductSnapshot, error) {
	query := `
		SELECT id, name, thumbnail, price_cents, discount_price_cents, stock
		FROM products
		WHERE id = $1
	`

	var snapshot ports.ProductSnapshot
	err := i.pool.QueryRow(ctx, query, id).Scan(
		&snapshot.ID,
		&snapshot.Name,
		&snapshot.Image,
		&snapshot.PriceCents,
		&snapshot.DiscountPriceCents,
		&snapshot.Stock,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrProductNotFound
		}
		return nil, fmt.Errorf("select product: %w", err)
	}

	return &snapshot, nil
}

// DecrementStock is the atomic check-and-decrement: the update only matches
// when enough stock remains, so concurrent placements can never jointly
// drive stock negative.
func (i *Inventory) DecrementStock(ctx context.Context, id string, quantity int) error {
	query := `
		UPDATE products
		SET stock = stock - $2, updated_at = $3
		WHERE id = $1 AND stock >= $2
	`

	result, err := i.pool.Exec(ctx, query, id, quantity, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := i.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check product existence: %w", err)
	}
	if !exists {
		return ports.ErrProductNotFound
	}
	return ports.ErrInsufficientStock
}

func (i *Inventory) IncrementStock(ctx context.Context, id string, quantity int) error {
	query := `
		UPDATE products
		SET stock = stock + $2, updated_at = $3
		WHERE id = $1
	`

	result, err := i.pool.Exec(ctx, query, id, quantity, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ports.ErrProductNotFound
	}
	return nil
}
