package service

import (
	"context"

	"loyalty-admin/models"
)

// CatalogServiceInterface defines the contract for category and product operations
type CatalogServiceInterface interface {
	ListCategories(ctx context.Context, filter string) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (models.Category, error)
	CreateCategory(ctx context.Context, c models.Category) (models.Category, error)
	UpdateCategory(ctx context.Context, id int64, patch models.CategoryPatch) (models.Category, error)
	// RemoveCategory fails with models.ErrInUse while products reference the category
	RemoveCategory(ctx context.Context, id int64) error

	ListProducts(ctx context.Context, filter string, categoryID int64) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch models.ProductPatch) (models.Product, error)
	RemoveProduct(ctx context.Context, id int64) error
}
