package service

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"loyalty-admin/models"
	"loyalty-admin/repository"
)

// CatalogService manages categories and products
// Implements CatalogServiceInterface
type CatalogService struct {
	mu         sync.Mutex // guards category references between products and categories
	categories repository.CategoryRepositoryInterface
	products   repository.ProductRepositoryInterface
	logger     *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(categories repository.CategoryRepositoryInterface, products repository.ProductRepositoryInterface, logger *zap.Logger) *CatalogService {
	return &CatalogService{categories: categories, products: products, logger: logger}
}

// Ensure CatalogService implements CatalogServiceInterface
var _ CatalogServiceInterface = (*CatalogService)(nil)

// ListCategories returns the categories whose name contains filter
func (s *CatalogService) ListCategories(ctx context.Context, filter string) ([]models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.categories.List(filter), nil
}

// GetCategory returns the category with the given id
func (s *CatalogService) GetCategory(ctx context.Context, id int64) (models.Category, error) {
	if err := ctx.Err(); err != nil {
		return models.Category{}, err
	}
	return s.categories.Get(id)
}

// CreateCategory validates and adds a category
func (s *CatalogService) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	if err := ctx.Err(); err != nil {
		return models.Category{}, err
	}
	c = models.CategoryPatch{Name: &c.Name, Description: &c.Description}.Apply(c)
	if err := c.Validate(); err != nil {
		s.logger.Warn("category rejected", zap.Error(err))
		return models.Category{}, err
	}
	created := s.categories.Add(c)
	s.logger.Info("category created", zap.Int64("id", created.ID), zap.String("name", created.Name))
	return created, nil
}

// UpdateCategory merges patch into the category with the given id
func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, patch models.CategoryPatch) (models.Category, error) {
	if err := ctx.Err(); err != nil {
		return models.Category{}, err
	}
	updated, err := s.categories.Update(id, func(c models.Category) (models.Category, error) {
		next := patch.Apply(c)
		return next, next.Validate()
	})
	if err != nil {
		s.logger.Warn("category update rejected", zap.Int64("id", id), zap.Error(err))
		return models.Category{}, err
	}
	s.logger.Info("category updated", zap.Int64("id", id))
	return updated, nil
}

// RemoveCategory deletes a category that no product references
func (s *CatalogService) RemoveCategory(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.categories.Get(id); err != nil {
		return err
	}
	if s.products.Exists(func(p models.Product) bool { return p.CategoryID == id }) {
		err := errors.Wrapf(models.ErrInUse, "category %d has products", id)
		s.logger.Warn("category remove rejected", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if err := s.categories.Remove(id); err != nil {
		return err
	}
	s.logger.Info("category removed", zap.Int64("id", id))
	return nil
}

// ListProducts returns the products whose name contains filter.
// A positive categoryID restricts the result to that category.
func (s *CatalogService) ListProducts(ctx context.Context, filter string, categoryID int64) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	products := s.products.List(filter)
	if categoryID <= 0 {
		return products, nil
	}
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetProduct returns the product with the given id
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	if err := ctx.Err(); err != nil {
		return models.Product{}, err
	}
	return s.products.Get(id)
}

// CreateProduct validates and adds a product; its category must exist
func (s *CatalogService) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if err := ctx.Err(); err != nil {
		return models.Product{}, err
	}
	p = models.ProductPatch{Name: &p.Name, Description: &p.Description}.Apply(p)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.validateProduct(p); err != nil {
		s.logger.Warn("product rejected", zap.Error(err))
		return models.Product{}, err
	}
	created := s.products.Add(p)
	s.logger.Info("product created", zap.Int64("id", created.ID), zap.String("name", created.Name))
	return created, nil
}

// UpdateProduct merges patch into the product with the given id
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, patch models.ProductPatch) (models.Product, error) {
	if err := ctx.Err(); err != nil {
		return models.Product{}, err
	}
	if patch.CategoryID != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := s.checkCategory(*patch.CategoryID); err != nil {
			return models.Product{}, err
		}
	}
	updated, err := s.products.Update(id, func(p models.Product) (models.Product, error) {
		next := patch.Apply(p)
		return next, next.Validate()
	})
	if err != nil {
		s.logger.Warn("product update rejected", zap.Int64("id", id), zap.Error(err))
		return models.Product{}, err
	}
	s.logger.Info("product updated", zap.Int64("id", id))
	return updated, nil
}

// RemoveProduct deletes a product; placed orders keep their line snapshots
func (s *CatalogService) RemoveProduct(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.products.Remove(id); err != nil {
		return err
	}
	s.logger.Info("product removed", zap.Int64("id", id))
	return nil
}

func (s *CatalogService) validateProduct(p models.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.checkCategory(p.CategoryID)
}

func (s *CatalogService) checkCategory(id int64) error {
	if _, err := s.categories.Get(id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.NewValidationError("categoryId", "category %d does not exist", id)
		}
		return err
	}
	return nil
}
