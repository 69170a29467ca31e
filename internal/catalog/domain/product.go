package domain

import (
	"errors"
	"time"
)

var (
	ErrNameRequired    = errors.New("name is required")
	ErrPathRequired    = errors.New("path url is required")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidDiscount = errors.New("discount price must be below the regular price")
	ErrNegativeStock   = errors.New("stock cannot be negative")
)

// Product is a catalog entry. Stock on this record is the authoritative
// available quantity; checkout decrements it conditionally.
type Product struct {
	ID                 string
	Name               string
	PathURL            string
	Description        string
	Thumbnail          string
	PriceCents         int64
	DiscountPriceCents *int64
	Stock              int
	Brand              string
	CategoryID         string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Validate checks the invariants shared by create and update.
func (p Product) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.PathURL == "" {
		return ErrPathRequired
	}
	if p.PriceCents <= 0 {
		return ErrInvalidPrice
	}
	if p.DiscountPriceCents != nil && (*p.DiscountPriceCents <= 0 || *p.DiscountPriceCents >= p.PriceCents) {
		return ErrInvalidDiscount
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// Category groups products for browsing.
type Category struct {
	ID        string
	Name      string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Category) Validate() error {
	if c.Name == "" {
		return ErrNameRequired
	}
	return nil
}
