package service

import (
	"context"
	"time"

	"loyalty-admin/models"
)

// PromotionServiceInterface defines the contract for promotion operations
type PromotionServiceInterface interface {
	Active(ctx context.Context) ([]models.Promotion, error)
	ActiveAt(ctx context.Context, asOf time.Time) ([]models.Promotion, error)
	List(ctx context.Context, filter, status string) ([]models.Promotion, error)
	Get(ctx context.Context, id int64) (models.Promotion, error)
	Create(ctx context.Context, p models.Promotion) (models.Promotion, error)
	Update(ctx context.Context, id int64, patch models.PromotionPatch) (models.Promotion, error)
	Remove(ctx context.Context, id int64) error
}
