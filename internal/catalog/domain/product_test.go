package domain

import (
	"errors"
	"testing"
)

func validProduct() Product {
	discount := int64(1500)
	return Product{
		ID:                 "prod-1",
		Name:               "Trail Runner",
		PathURL:            "trail-runner",
		Description:        "Lightweight trail running shoe",
		Thumbnail:          "/images/trail-runner.jpg",
		PriceCents:         1999,
		DiscountPriceCents: &discount,
		Stock:              25,
		Brand:              "Apex",
		CategoryID:         "cat-1",
	}
}

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Product)
		wantErr error
	}{
		{
			name:   "valid product",
			mutate: func(p *Product) {},
		},
		{
			name:   "valid without discount",
			mutate: func(p *Product) { p.DiscountPriceCents = nil },
		},
		{
			name:    "missing name",
			mutate:  func(p *Product) { p.Name = "" },
			wantErr: ErrNameRequired,
		},
		{
			name:    "missing path",
			mutate:  func(p *Product) { p.PathURL = "" },
			wantErr: ErrPathRequired,
		},
		{
			name:    "zero price",
			mutate:  func(p *Product) { p.PriceCents = 0 },
			wantErr: ErrInvalidPrice,
		},
		{
			name: "discount above price",
			mutate: func(p *Product) {
				discount := int64(2500)
				p.DiscountPriceCents = &discount
			},
			wantErr: ErrInvalidDiscount,
		},
		{
			name: "discount equal to price",
			mutate: func(p *Product) {
				discount := int64(1999)
				p.DiscountPriceCents = &discount
			},
			wantErr: ErrInvalidDiscount,
		},
		{
			name:    "negative stock",
			mutate:  func(p *Product) { p.Stock = -1 },
			wantErr: ErrNegativeStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := validProduct()
			tt.mutate(&product)

			err := product.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCategoryValidate(t *testing.T) {
	t.Run("valid category", func(t *testing.T) {
		category := Category{ID: "cat-1", Name: "Footwear"}
		if err := category.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		category := Category{ID: "cat-1"}
		if !errors.Is(category.Validate(), ErrNameRequired) {
			t.Error("expected ErrNameRequired")
		}
	})
}
