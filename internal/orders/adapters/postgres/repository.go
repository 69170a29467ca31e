package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopcore/storefront/internal/orders/domain"
	"github.com/shopcore/storefront/internal/orders/ports"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts the order row and its line items in one transaction so no
// order ever exists without its item snapshots.
func (r *Repository) Create(ctx context.Context, order domain.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin order insert: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO orders (
			id, user_id, shipping_address_id, total_amount_cents,
			payment_method, payment_status, order_status, transaction_id,
			delivered_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = tx.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.ShippingAddressID,
		order.TotalAmountCents,
		order.PaymentMethod,
		order.PaymentStatus,
		order.Status,
		order.TransactionID,
		order.DeliveredAt,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (
			order_id, position, product_id, product_name, product_image,
			quantity, price_cents, discount_price_cents
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for pos, item := range order.Items {
		_, err = tx.Exec(ctx, itemQuery,
			order.ID,
			pos,
			item.ProductID,
			item.ProductName,
			item.ProductImage,
			item.Quantity,
			item.PriceCents,
			item.DiscountPriceCents,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order insert: %w", err)
	}

	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, user_id, shipping_address_id, total_amount_cents,
		       payment_method, payment_status, order_status, transaction_id,
		       delivered_at, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order domain.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.ShippingAddressID,
		&order.TotalAmountCents,
		&order.PaymentMethod,
		&order.PaymentStatus,
		&order.Status,
		&order.TransactionID,
		&order.DeliveredAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	items, err := r.loadItems(ctx, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]

	return &order, nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	query := `
		SELECT id, user_id, shipping_address_id, total_amount_cents,
		       payment_method, payment_status, order_status, transaction_id,
		       delivered_at, created_at, updated_at
		FROM orders
		WHERE ($1::text IS NULL OR user_id = $1)
		  AND ($2::text IS NULL OR order_status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	var statusFilter *string
	if filter.Status != nil {
		s := string(*filter.Status)
		statusFilter = &s
	}

	offset := (page - 1) * pageSize

	rows, err := r.pool.Query(ctx, query, filter.UserID, statusFilter, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []string
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.ShippingAddressID,
			&order.TotalAmountCents,
			&order.PaymentMethod,
			&order.PaymentStatus,
			&order.Status,
			&order.TransactionID,
			&order.DeliveredAt,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, nil
}

// UpdateStatus applies the transition only while the order still holds the
// expected prior status. Zero affected rows means either the order is gone
// or a concurrent transition got there first; the two are told apart with a
// follow-up existence check.
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to domain.OrderStatus, deliveredAt *time.Time) error {
	query := `
		UPDATE orders
		SET order_status = $1,
		    delivered_at = COALESCE($2, delivered_at),
		    updated_at = $3
		WHERE id = $4 AND order_status = $5
	`

	result, err := r.pool.Exec(ctx, query, to, deliveredAt, time.Now().UTC(), id, from)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("check order after guarded update: %w", err)
		}
		if !exists {
			return ports.ErrNotFound
		}
		return ports.ErrStatusConflict
	}

	return nil
}

func (r *Repository) loadItems(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	query := `
		SELECT order_id, product_id, product_name, product_image,
		       quantity, price_cents, discount_price_cents
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var orderID string
		var item domain.OrderItem
		if err := rows.Scan(
			&orderID,
			&item.ProductID,
			&item.ProductName,
			&item.ProductImage,
			&item.Quantity,
			&item.PriceCents,
			&item.DiscountPriceCents,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items[orderID] = append(items[orderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return items, nil
}
