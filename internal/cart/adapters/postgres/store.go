package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopcore/storefront/internal/cart/domain"
	"github.com/shopcore/storefront/internal/cart/ports"
)

// CartStore persists authenticated user carts in Postgres.
type CartStore struct {
	pool *pgxpool.Pool
}

// NewCartStore creates a Postgres-backed cart store.
func NewCartStore(pool *pgxpool.Pool) *CartStore {
	return &CartStore{pool: pool}
}

func (s *CartStore) GetItems(ctx context.Context, userID string) ([]domain.Item, error) {
	query := `
		SELECT product_id, quantity
		FROM cart_items
		WHERE user_id = $1
		ORDER BY added_at
	`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select cart items: %w", err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}
	return items, nil
}

func (s *CartStore) AddItem(ctx context.Context, userID string, item domain.Item) (bool, error) {
	// Re-adding a product keeps the existing line untouched.
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	tag, err := s.pool.Exec(ctx, query, userID, item.ProductID, item.Quantity)
	if err != nil {
		return false, fmt.Errorf("insert cart item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *CartStore) UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) error {
	query := `
		UPDATE cart_items
		SET quantity = $3
		WHERE user_id = $1 AND product_id = $2
	`

	tag, err := s.pool.Exec(ctx, query, userID, productID, quantity)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrItemNotFound
	}
	return nil
}

func (s *CartStore) RemoveItem(ctx context.Context, userID, productID string) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2",
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrItemNotFound
	}
	return nil
}

func (s *CartStore) Clear(ctx context.Context, userID string) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM cart_items WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
