package service

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"loyalty-admin/models"
)

// TierTable supplies the current ordered tier table
type TierTable interface {
	All() []models.LoyaltyTier
}

// StaticTiers is a fixed tier table
type StaticTiers []models.LoyaltyTier

// All returns the tiers in table order
func (t StaticTiers) All() []models.LoyaltyTier { return t }

// TierResolverInterface defines the contract for mapping a points balance to a tier
type TierResolverInterface interface {
	ResolveTier(points int64) (models.LoyaltyTier, error)
}

// TierResolver maps points balances to loyalty tiers
// Implements TierResolverInterface
type TierResolver struct {
	tiers  TierTable
	logger *zap.Logger
}

// NewTierResolver creates a new TierResolver reading from tiers on every call
func NewTierResolver(tiers TierTable, logger *zap.Logger) *TierResolver {
	return &TierResolver{tiers: tiers, logger: logger}
}

// Ensure TierResolver implements TierResolverInterface
var _ TierResolverInterface = (*TierResolver)(nil)

// ResolveTier returns the tier with the highest threshold not above points
func (r *TierResolver) ResolveTier(points int64) (models.LoyaltyTier, error) {
	tier, err := ResolveTier(r.tiers.All(), points)
	if err != nil {
		return tier, err
	}
	r.logger.Debug("tier resolved", zap.Int64("points", points), zap.String("tier", tier.Name))
	return tier, nil
}

// ResolveTier picks from tiers the one with the highest threshold <= points.
// Equal thresholds resolve to the first such tier in table order.
// The table must contain a zero-threshold floor tier.
func ResolveTier(tiers []models.LoyaltyTier, points int64) (models.LoyaltyTier, error) {
	var best models.LoyaltyTier
	if points < 0 {
		return best, models.NewValidationError("points", "points cannot be negative, got %d", points)
	}
	if !HasFloorTier(tiers) {
		return best, errors.WithStack(models.ErrNoTierConfigured)
	}
	found := false
	for _, t := range tiers {
		if t.PointsThreshold > points {
			continue
		}
		if !found || t.PointsThreshold > best.PointsThreshold {
			best, found = t, true
		}
	}
	return best, nil
}

// HasFloorTier reports whether tiers contains a tier with threshold 0
func HasFloorTier(tiers []models.LoyaltyTier) bool {
	for _, t := range tiers {
		if t.PointsThreshold == 0 {
			return true
		}
	}
	return false
}
