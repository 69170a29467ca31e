package domain

import (
	"errors"
	"time"
)

var (
	ErrUserRequired        = errors.New("user id is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

// Review is a customer's rating of a product. Title and ProductID are
// optional; a review without a product reads as general store feedback.
type Review struct {
	ID          string
	UserID      string
	ProductID   string
	Title       string
	Description string
	Rating      int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the invariants for a stored review.
func (r Review) Validate() error {
	if r.UserID == "" {
		return ErrUserRequired
	}
	if r.Description == "" {
		return ErrDescriptionRequired
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
