package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"loyalty-admin/models"
)

func TestResolveTier(t *testing.T) {
	tiers := StaticTiers{
		{ID: 1, Name: "Silver", PointsThreshold: 0},
		{ID: 3, Name: "Platinum", PointsThreshold: 1000},
		{ID: 2, Name: "Gold", PointsThreshold: 500},
	}
	resolver := NewTierResolver(tiers, zap.NewNop())

	tests := []struct {
		points int64
		want   string
	}{
		{0, "Silver"},
		{499, "Silver"},
		{500, "Gold"},
		{999, "Gold"},
		{1000, "Platinum"},
		{1 << 40, "Platinum"},
	}
	for _, tt := range tests {
		got, err := resolver.ResolveTier(tt.points)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Name, "points %d", tt.points)
	}
}

func TestResolveTier_EqualThresholdsKeepTableOrder(t *testing.T) {
	tiers := []models.LoyaltyTier{
		{ID: 1, Name: "Base", PointsThreshold: 0},
		{ID: 2, Name: "Gold", PointsThreshold: 500},
		{ID: 3, Name: "Gold Plus", PointsThreshold: 500},
	}

	got, err := ResolveTier(tiers, 700)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)
}

func TestResolveTier_NoFloorTier(t *testing.T) {
	_, err := ResolveTier([]models.LoyaltyTier{{ID: 2, Name: "Gold", PointsThreshold: 500}}, 0)
	assert.ErrorIs(t, err, models.ErrNoTierConfigured)

	_, err = ResolveTier(nil, 100)
	assert.ErrorIs(t, err, models.ErrNoTierConfigured)
}

func TestResolveTier_NegativePoints(t *testing.T) {
	_, err := ResolveTier(StaticTiers{{ID: 1, Name: "Silver"}}, -1)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestTierResolver_ReadsCurrentTable(t *testing.T) {
	env := newTestEnv(t)

	got, err := env.resolver.ResolveTier(600)
	require.NoError(t, err)
	assert.Equal(t, "Gold", got.Name)

	_, err = env.tiers.Update(2, func(tier models.LoyaltyTier) (models.LoyaltyTier, error) {
		tier.PointsThreshold = 700
		return tier, nil
	})
	require.NoError(t, err)

	got, err = env.resolver.ResolveTier(600)
	require.NoError(t, err)
	assert.Equal(t, "Silver", got.Name)
}
