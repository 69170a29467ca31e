package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shopcore/storefront/internal/catalog/domain"
	"github.com/shopcore/storefront/internal/catalog/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service exposes catalog admin and browsing use cases.
type Service struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
}

// NewService wires the catalog repositories.
func NewService(products ports.ProductRepository, categories ports.CategoryRepository) *Service {
	return &Service{products: products, categories: categories}
}

// CreateProduct validates and stores a new product.
func (s *Service) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

// GetProduct retrieves a product by ID.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// GetProductByPath retrieves a product by its URL slug.
func (s *Service) GetProductByPath(ctx context.Context, pathURL string) (*domain.Product, error) {
	return s.products.GetByPath(ctx, pathURL)
}

// ListProducts returns products matching the filter, clamping pagination.
func (s *Service) ListProducts(ctx context.Context, filter ports.ProductFilter) ([]domain.Product, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}
	return s.products.List(ctx, filter)
}

// UpdateProduct validates and stores the full set of product fields.
func (s *Service) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.products.GetByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &product, nil
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// CreateCategory validates and stores a new category.
func (s *Service) CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// GetCategory retrieves a category by ID.
func (s *Service) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// ListCategories returns every category.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// UpdateCategory validates and stores the category fields.
func (s *Service) UpdateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.categories.GetByID(ctx, category.ID)
	if err != nil {
		return nil, err
	}

	category.CreatedAt = existing.CreatedAt
	category.UpdatedAt = time.Now().UTC()

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &category, nil
}

// DeleteCategory removes a category.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}
