package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopcore/storefront/internal/reviews/domain"
	"github.com/shopcore/storefront/internal/reviews/ports"
)

// ReviewRepository persists reviews in Postgres.
type ReviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository creates a Postgres-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func (r *ReviewRepository) Create(ctx context.Context, review domain.Review) error {
	query := `
		INSERT INTO reviews (
			id, user_id, product_id, title, description, rating,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.ProductID,
		review.Title,
		review.Description,
		review.Rating,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	query := `
		SELECT id, user_id, product_id, title, description, rating,
		       created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	var review domain.Review
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.UserID,
		&review.ProductID,
		&review.Title,
		&review.Description,
		&review.Rating,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select review: %w", err)
	}
	return &review, nil
}

func (r *ReviewRepository) List(ctx context.Context, filter ports.ReviewFilter) ([]domain.Review, error) {
	query := `
		SELECT id, user_id, product_id, title, description, rating,
		       created_at, updated_at
		FROM reviews
		WHERE ($1::text IS NULL OR user_id = $1)
		  AND ($2::text IS NULL OR product_id = $2)
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, filter.UserID, filter.ProductID)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.ProductID,
			&review.Title,
			&review.Description,
			&review.Rating,
			&review.CreatedAt,
			&review.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}
