package service

import (
	"context"

	"loyalty-admin/models"
)

// CustomerServiceInterface defines the contract for customer operations
type CustomerServiceInterface interface {
	List(ctx context.Context, filter string) ([]models.Customer, error)
	Get(ctx context.Context, id int64) (models.Customer, error)
	Create(ctx context.Context, c models.Customer) (models.Customer, error)
	Update(ctx context.Context, id int64, patch models.CustomerPatch) (models.Customer, error)
	AdjustPoints(ctx context.Context, id int64, delta int64) (models.Customer, error)
	// Remove fails with models.ErrInUse while orders reference the customer
	Remove(ctx context.Context, id int64) error
	RefreshTiers(ctx context.Context) error
}
