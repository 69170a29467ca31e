package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopcore/storefront/internal/catalog/adapters/memory"
	"github.com/shopcore/storefront/internal/catalog/domain"
	"github.com/shopcore/storefront/internal/catalog/ports"
)

func newTestService() *Service {
	return NewService(memory.NewProductRepository(), memory.NewCategoryRepository())
}

func sampleProduct(name, path string) domain.Product {
	return domain.Product{
		Name:       name,
		PathURL:    path,
		PriceCents: 4999,
		Stock:      10,
		Brand:      "Apex",
		CategoryID: "cat-1",
	}
}

func TestCreateProduct(t *testing.T) {
	t.Run("assigns id and timestamps", func(t *testing.T) {
		service := newTestService()

		created, err := service.CreateProduct(context.Background(), sampleProduct("Trail Runner", "trail-runner"))
		if err != nil {
			t.Fatalf("CreateProduct() failed: %v", err)
		}

		if created.ID == "" {
			t.Error("expected generated ID")
		}
		if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
			t.Error("expected timestamps to be set")
		}

		fetched, err := service.GetProduct(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("GetProduct() failed: %v", err)
		}
		if fetched.Name != "Trail Runner" {
			t.Errorf("expected name Trail Runner, got %q", fetched.Name)
		}
	})

	t.Run("rejects invalid product", func(t *testing.T) {
		service := newTestService()

		product := sampleProduct("Trail Runner", "trail-runner")
		product.PriceCents = 0

		if _, err := service.CreateProduct(context.Background(), product); !errors.Is(err, domain.ErrInvalidPrice) {
			t.Errorf("expected ErrInvalidPrice, got %v", err)
		}
	})

	t.Run("rejects duplicate path", func(t *testing.T) {
		service := newTestService()
		ctx := context.Background()

		if _, err := service.CreateProduct(ctx, sampleProduct("Trail Runner", "trail-runner")); err != nil {
			t.Fatalf("CreateProduct() failed: %v", err)
		}
		if _, err := service.CreateProduct(ctx, sampleProduct("Other Shoe", "trail-runner")); !errors.Is(err, ports.ErrDuplicate) {
			t.Errorf("expected ErrDuplicate, got %v", err)
		}
	})
}

func TestGetProductByPath(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	created, err := service.CreateProduct(ctx, sampleProduct("Trail Runner", "trail-runner"))
	if err != nil {
		t.Fatalf("CreateProduct() failed: %v", err)
	}

	fetched, err := service.GetProductByPath(ctx, "trail-runner")
	if err != nil {
		t.Fatalf("GetProductByPath() failed: %v", err)
	}
	if fetched.ID != created.ID {
		t.Errorf("expected product %s, got %s", created.ID, fetched.ID)
	}

	if _, err := service.GetProductByPath(ctx, "nope"); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListProducts(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	products := []domain.Product{
		sampleProduct("Trail Runner", "trail-runner"),
		sampleProduct("Road Racer", "road-racer"),
		sampleProduct("Canvas Tote", "canvas-tote"),
	}
	products[2].CategoryID = "cat-2"
	products[2].Brand = "Haven"

	for _, product := range products {
		if _, err := service.CreateProduct(ctx, product); err != nil {
			t.Fatalf("CreateProduct() failed: %v", err)
		}
	}

	t.Run("filters by category", func(t *testing.T) {
		category := "cat-1"
		listed, err := service.ListProducts(ctx, ports.ProductFilter{CategoryID: &category})
		if err != nil {
			t.Fatalf("ListProducts() failed: %v", err)
		}
		if len(listed) != 2 {
			t.Errorf("expected 2 products, got %d", len(listed))
		}
	})

	t.Run("searches name and brand", func(t *testing.T) {
		search := "haven"
		listed, err := service.ListProducts(ctx, ports.ProductFilter{Search: &search})
		if err != nil {
			t.Fatalf("ListProducts() failed: %v", err)
		}
		if len(listed) != 1 || listed[0].PathURL != "canvas-tote" {
			t.Errorf("expected canvas-tote only, got %v", listed)
		}
	})

	t.Run("clamps page size", func(t *testing.T) {
		listed, err := service.ListProducts(ctx, ports.ProductFilter{Page: 1, PageSize: maxPageSize + 50})
		if err != nil {
			t.Fatalf("ListProducts() failed: %v", err)
		}
		if len(listed) != 3 {
			t.Errorf("expected 3 products, got %d", len(listed))
		}
	})
}

func TestUpdateProduct(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	created, err := service.CreateProduct(ctx, sampleProduct("Trail Runner", "trail-runner"))
	if err != nil {
		t.Fatalf("CreateProduct() failed: %v", err)
	}

	t.Run("updates fields and preserves created_at", func(t *testing.T) {
		updated := *created
		updated.Stock = 3
		updated.PriceCents = 5999

		result, err := service.UpdateProduct(ctx, updated)
		if err != nil {
			t.Fatalf("UpdateProduct() failed: %v", err)
		}
		if result.Stock != 3 || result.PriceCents != 5999 {
			t.Errorf("unexpected result %+v", result)
		}
		if !result.CreatedAt.Equal(created.CreatedAt) {
			t.Error("expected created_at to be preserved")
		}
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		updated := *created
		updated.Stock = -1

		if _, err := service.UpdateProduct(ctx, updated); !errors.Is(err, domain.ErrNegativeStock) {
			t.Errorf("expected ErrNegativeStock, got %v", err)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		missing := sampleProduct("Ghost", "ghost")
		missing.ID = "missing"

		if _, err := service.UpdateProduct(ctx, missing); !errors.Is(err, ports.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDeleteProduct(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	created, err := service.CreateProduct(ctx, sampleProduct("Trail Runner", "trail-runner"))
	if err != nil {
		t.Fatalf("CreateProduct() failed: %v", err)
	}

	if err := service.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProduct() failed: %v", err)
	}
	if _, err := service.GetProduct(ctx, created.ID); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCategories(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	t.Run("create list update delete", func(t *testing.T) {
		created, err := service.CreateCategory(ctx, domain.Category{Name: "Footwear", Image: "/images/footwear.jpg"})
		if err != nil {
			t.Fatalf("CreateCategory() failed: %v", err)
		}
		if created.ID == "" {
			t.Error("expected generated ID")
		}

		categories, err := service.ListCategories(ctx)
		if err != nil {
			t.Fatalf("ListCategories() failed: %v", err)
		}
		if len(categories) != 1 {
			t.Fatalf("expected 1 category, got %d", len(categories))
		}

		created.Name = "Shoes"
		if _, err := service.UpdateCategory(ctx, *created); err != nil {
			t.Fatalf("UpdateCategory() failed: %v", err)
		}

		fetched, err := service.GetCategory(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetCategory() failed: %v", err)
		}
		if fetched.Name != "Shoes" {
			t.Errorf("expected updated name, got %q", fetched.Name)
		}

		if err := service.DeleteCategory(ctx, created.ID); err != nil {
			t.Fatalf("DeleteCategory() failed: %v", err)
		}
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		if _, err := service.CreateCategory(ctx, domain.Category{Name: "Bags"}); err != nil {
			t.Fatalf("CreateCategory() failed: %v", err)
		}
		if _, err := service.CreateCategory(ctx, domain.Category{Name: "Bags"}); !errors.Is(err, ports.ErrDuplicate) {
			t.Errorf("expected ErrDuplicate, got %v", err)
		}
	})
}
