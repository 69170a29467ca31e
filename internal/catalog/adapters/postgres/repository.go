package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopcore/storefront/internal/catalog/domain"
	"github.com/shopcore/storefront/internal/catalog/ports"
)

const uniqueViolationCode = "23505"

// ProductRepository persists catalog products in Postgres.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a Postgres-backed product repository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) Create(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (
			id, name, path_url, description, thumbnail,
			price_cents, discount_price_cents, stock, brand, category_id,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.PathURL,
		product.Description,
		product.Thumbnail,
		product.PriceCents,
		product.DiscountPriceCents,
		product.Stock,
		product.Brand,
		product.CategoryID,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ports.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.get(ctx, "id = $1", id)
}

func (r *ProductRepository) GetByPath(ctx context.Context, pathURL string) (*domain.Product, error) {
	return r.get(ctx, "path_url = $1", pathURL)
}

func (r *ProductRepository) get(ctx context.Context, where string, arg any) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT id, name, path_url, description, thumbnail,
		       price_cents, discount_price_cents, stock, brand, category_id,
		       created_at, updated_at
		FROM products
		WHERE %s
	`, where)

	var product domain.Product
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&product.ID,
		&product.Name,
		&product.PathURL,
		&product.Description,
		&product.Thumbnail,
		&product.PriceCents,
		&product.DiscountPriceCents,
		&product.Stock,
		&product.Brand,
		&product.CategoryID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select product: %w", err)
	}
	return &product, nil
}

func (r *ProductRepository) List(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
	query := `
		SELECT id, name, path_url, description, thumbnail,
		       price_cents, discount_price_cents, stock, brand, category_id,
		       created_at, updated_at
		FROM products
		WHERE 1=1
	`

	args := []any{}
	argPos := 1

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND category_id = $%d", argPos)
		args = append(args, *filter.CategoryID)
		argPos++
	}
	if filter.Search != nil {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR brand ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}

	query += " ORDER BY created_at DESC"

	page := filter.Page
	if page < 1 {
		page = 1
	}
	if filter.PageSize > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, filter.PageSize, (page-1)*filter.PageSize)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.PathURL,
			&product.Description,
			&product.Thumbnail,
			&product.PriceCents,
			&product.DiscountPriceCents,
			&product.Stock,
			&product.Brand,
			&product.CategoryID,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, path_url = $3, description = $4, thumbnail = $5,
		    price_cents = $6, discount_price_cents = $7, stock = $8,
		    brand = $9, category_id = $10, updated_at = $11
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.PathURL,
		product.Description,
		product.Thumbnail,
		product.PriceCents,
		product.DiscountPriceCents,
		product.Stock,
		product.Brand,
		product.CategoryID,
		product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ports.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// CategoryRepository persists categories in Postgres.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a Postgres-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Create(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (id, name, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Image,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ports.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `
		SELECT id, name, image, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	var category domain.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Image,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select category: %w", err)
	}
	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, image, created_at, updated_at
		FROM categories
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Image,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category domain.Category) error {
	query := `
		UPDATE categories
		SET name = $2, image = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		category.ID,
		category.Name,
		category.Image,
		category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ports.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
