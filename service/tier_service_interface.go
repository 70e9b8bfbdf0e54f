package service

import (
	"context"

	"loyalty-admin/models"
)

// TierServiceInterface defines the contract for loyalty tier table operations
type TierServiceInterface interface {
	List(ctx context.Context, filter string) ([]models.LoyaltyTier, error)
	Get(ctx context.Context, id int64) (models.LoyaltyTier, error)
	Resolve(ctx context.Context, points int64) (models.LoyaltyTier, error)
	Create(ctx context.Context, t models.LoyaltyTier) (models.LoyaltyTier, error)
	Update(ctx context.Context, id int64, patch models.LoyaltyTierPatch) (models.LoyaltyTier, error)
	Remove(ctx context.Context, id int64) error
}
