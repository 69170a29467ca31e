package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopcore/storefront/internal/reviews/domain"
	"github.com/shopcore/storefront/internal/reviews/ports"
)

// ReviewRepository keeps reviews in memory.
type ReviewRepository struct {
	mu      sync.RWMutex
	reviews map[string]domain.Review
}

// NewReviewRepository creates an empty in-memory review store.
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{reviews: make(map[string]domain.Review)}
}

func (r *ReviewRepository) Create(_ context.Context, review domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews[review.ID] = review
	return nil
}

func (r *ReviewRepository) GetByID(_ context.Context, id string) (*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &review, nil
}

func (r *ReviewRepository) List(_ context.Context, filter ports.ReviewFilter) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]domain.Review, 0, len(r.reviews))
	for _, review := range r.reviews {
		if filter.UserID != nil && review.UserID != *filter.UserID {
			continue
		}
		if filter.ProductID != nil && review.ProductID != *filter.ProductID {
			continue
		}
		matched = append(matched, review)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched, nil
}

func (r *ReviewRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}
