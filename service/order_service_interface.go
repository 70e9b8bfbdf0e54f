package service

import (
	"context"

	"loyalty-admin/models"
)

// OrderServiceInterface defines the contract for order operations
type OrderServiceInterface interface {
	List(ctx context.Context, filter, status string) ([]models.Order, error)
	Get(ctx context.Context, id int64) (models.Order, error)
	Quote(ctx context.Context, req models.OrderRequest) (models.OrderQuote, error)
	PlaceOrder(ctx context.Context, req models.OrderRequest) (models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (models.Order, error)
	Remove(ctx context.Context, id int64) error
}
