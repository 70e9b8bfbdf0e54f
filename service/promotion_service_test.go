package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loyalty-admin/models"
)

func TestActivePromotions(t *testing.T) {
	promos := []models.Promotion{
		{ID: 1, Name: "Summer Sale", Start: date("2024-06-01"), End: date("2024-08-31")},
		{ID: 2, Name: "Black Friday", Start: date("2024-11-29"), End: date("2024-11-30")},
		{ID: 3, Name: "July Flash", Start: date("2024-07-15"), End: date("2024-07-15")},
		{ID: 4, Name: "Spring", Start: date("2024-03-01"), End: date("2024-05-31")},
	}

	active := ActivePromotions(today, promos)

	require.Len(t, active, 2, "overlapping promotions are all returned")
	assert.Equal(t, int64(1), active[0].ID)
	assert.Equal(t, int64(3), active[1].ID)
	assert.Empty(t, ActivePromotions(date("2025-01-01"), promos))
}

func TestPromotionService_Active(t *testing.T) {
	env := newTestEnv(t)

	active, err := env.promotion.Active(env.ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Summer Sale", active[0].Name)

	active, err = env.promotion.ActiveAt(env.ctx, date("2024-11-30"))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Black Friday", active[0].Name)
}

func TestPromotionService_ListByStatus(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.promotion.Create(env.ctx, models.Promotion{
		Name: "Spring Clearance", Type: "Seasonal", DiscountRate: dec("0.15"),
		Start: date("2024-03-01"), End: date("2024-03-31"),
	})
	require.NoError(t, err)

	tests := []struct {
		status string
		want   []string
	}{
		{"", []string{"Summer Sale", "Black Friday", "Spring Clearance"}},
		{"All", []string{"Summer Sale", "Black Friday", "Spring Clearance"}},
		{"active", []string{"Summer Sale"}},
		{"Scheduled", []string{"Black Friday"}},
		{"Expired", []string{"Spring Clearance"}},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got, err := env.promotion.List(env.ctx, "", tt.status)
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}

	_, err = env.promotion.List(env.ctx, "", "Paused")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestPromotionService_CreateValidates(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.promotion.Create(env.ctx, models.Promotion{
		Name: "Backwards", DiscountRate: dec("0.1"), Start: date("2024-05-02"), End: date("2024-05-01"),
	})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = env.promotion.Create(env.ctx, models.Promotion{
		Name: "Too generous", DiscountRate: dec("1.5"), Start: date("2024-05-01"), End: date("2024-05-02"),
	})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Equal(t, 2, env.promotions.Count())
}

func TestPromotionService_UpdateAndRemove(t *testing.T) {
	env := newTestEnv(t)

	updated, err := env.promotion.Update(env.ctx, 2, models.PromotionPatch{DiscountRate: ptr(dec("0.35"))})
	require.NoError(t, err)
	assert.True(t, dec("0.35").Equal(updated.DiscountRate))
	assert.Equal(t, "Black Friday", updated.Name)

	_, err = env.promotion.Update(env.ctx, 2, models.PromotionPatch{End: ptr(date("2024-01-01"))})
	assert.ErrorIs(t, err, models.ErrValidation)

	require.NoError(t, env.promotion.Remove(env.ctx, 2))
	assert.ErrorIs(t, env.promotion.Remove(env.ctx, 2), models.ErrNotFound)
}
