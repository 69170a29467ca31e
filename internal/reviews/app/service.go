package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shopcore/storefront/internal/reviews/domain"
	"github.com/shopcore/storefront/internal/reviews/ports"
)

const defaultRating = 1

// Service exposes review submission, browsing and moderation use cases.
type Service struct {
	reviews ports.ReviewRepository
}

// NewService wires the review repository.
func NewService(reviews ports.ReviewRepository) *Service {
	return &Service{reviews: reviews}
}

// CreateReview validates and stores a new review. A zero rating defaults to
// the minimum rather than failing, matching the storefront's submit form.
func (s *Service) CreateReview(ctx context.Context, review domain.Review) (*domain.Review, error) {
	if review.Rating == 0 {
		review.Rating = defaultRating
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return &review, nil
}

// GetReview retrieves a review by ID.
func (s *Service) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	return s.reviews.GetByID(ctx, id)
}

// ListReviews returns reviews matching the filter, newest first.
func (s *Service) ListReviews(ctx context.Context, filter ports.ReviewFilter) ([]domain.Review, error) {
	return s.reviews.List(ctx, filter)
}

// DeleteReview removes a review. Moderation is an admin operation, so no
// ownership check applies here.
func (s *Service) DeleteReview(ctx context.Context, id string) error {
	return s.reviews.Delete(ctx, id)
}
