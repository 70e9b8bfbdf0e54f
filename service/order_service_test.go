package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loyalty-admin/models"
)

func johnsBasket() models.OrderRequest {
	return models.OrderRequest{
		CustomerID: 1,
		Lines: []models.OrderLineRequest{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 2},
		},
		PromotionID:         ptr(int64(1)),
		PointsToRedeem:      100,
		SpecialInstructions: "Leave at the front desk",
	}
}

func stockOf(t *testing.T, env *testEnv, productID int64) int {
	t.Helper()
	p, err := env.products.Get(productID)
	require.NoError(t, err)
	return p.Stock
}

func TestOrderService_Quote(t *testing.T) {
	env := newTestEnv(t)

	quote, err := env.order.Quote(env.ctx, johnsBasket())
	require.NoError(t, err)

	b := quote.Breakdown
	assert.True(t, dec("757").Equal(b.Subtotal))
	assert.True(t, dec("75.7").Equal(b.TierDiscount))
	assert.True(t, dec("151.4").Equal(b.PromotionDiscount))
	assert.True(t, dec("1").Equal(b.PointsDiscount))
	assert.True(t, dec("528.9").Equal(b.Total))
	assert.Equal(t, int64(52), b.PointsEarned)
	assert.Equal(t, "Gold", b.TierName)
	assert.Equal(t, "Summer Sale", quote.PromotionName)
	assert.Equal(t, int64(500), quote.PointsBalance)
	assert.Equal(t, int64(452), quote.BalanceAfter)
	require.Len(t, quote.Lines, 2)
	assert.Equal(t, "Smartphone", quote.Lines[0].ProductName)

	assert.Equal(t, 0, env.orders.Count(), "quote does not commit")
	assert.Equal(t, 50, stockOf(t, env, 1))
}

func TestOrderService_PlaceOrderCommits(t *testing.T) {
	env := newTestEnv(t)

	order, err := env.order.PlaceOrder(env.ctx, johnsBasket())
	require.NoError(t, err)

	assert.Equal(t, int64(1), order.ID)
	assert.NotEqual(t, uuid.Nil, order.Reference)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, "John Doe", order.CustomerName)
	assert.Equal(t, int64(100), order.PointsRedeemed)
	assert.Equal(t, today, order.PlacedAt)
	require.NotNil(t, order.PromotionID)
	assert.Equal(t, int64(1), *order.PromotionID)

	john, err := env.customers.Get(1)
	require.NoError(t, err)
	assert.Equal(t, int64(452), john.Points)
	assert.Equal(t, int64(1), john.TierID, "balance below the Gold threshold")

	assert.Equal(t, 49, stockOf(t, env, 1))
	assert.Equal(t, 98, stockOf(t, env, 2))

	history, err := env.activity.List(env.ctx, "", "")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.ActivityPurchase, history[0].ActivityType)
	assert.Equal(t, int64(52), history[0].Points)
	assert.Equal(t, "Summer Sale", history[0].Promotion)
	assert.Equal(t, models.ActivityRedemption, history[1].ActivityType)
	assert.Equal(t, int64(-100), history[1].Points)
}

func TestOrderService_InsufficientPointsLeavesStateUnchanged(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.order.PlaceOrder(env.ctx, models.OrderRequest{
		CustomerID:     2,
		Lines:          []models.OrderLineRequest{{ProductID: 2, Quantity: 2}},
		PointsToRedeem: 250,
	})
	assert.ErrorIs(t, err, models.ErrInsufficientPoints)

	jane, err := env.customers.Get(2)
	require.NoError(t, err)
	assert.Equal(t, int64(200), jane.Points)
	assert.Equal(t, 100, stockOf(t, env, 2))
	assert.Equal(t, 0, env.orders.Count())
	assert.Equal(t, 0, env.activities.Count())
}

func TestOrderService_InactivePromotion(t *testing.T) {
	env := newTestEnv(t)
	req := johnsBasket()
	req.PromotionID = ptr(int64(2))

	_, err := env.order.PlaceOrder(env.ctx, req)
	assert.ErrorIs(t, err, models.ErrInvalidPromotion)
	assert.Equal(t, 0, env.orders.Count())
}

func TestOrderService_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		mutate func(r *models.OrderRequest)
		want   error
	}{
		{"no customer", func(r *models.OrderRequest) { r.CustomerID = 0 }, models.ErrValidation},
		{"unknown customer", func(r *models.OrderRequest) { r.CustomerID = 99 }, models.ErrNotFound},
		{"no lines", func(r *models.OrderRequest) { r.Lines = nil }, models.ErrValidation},
		{"duplicate product", func(r *models.OrderRequest) {
			r.Lines = append(r.Lines, models.OrderLineRequest{ProductID: 1, Quantity: 1})
		}, models.ErrValidation},
		{"unknown product", func(r *models.OrderRequest) { r.Lines[0].ProductID = 99 }, models.ErrNotFound},
		{"zero quantity", func(r *models.OrderRequest) { r.Lines[0].Quantity = 0 }, models.ErrValidation},
		{"above stock", func(r *models.OrderRequest) { r.Lines[0].Quantity = 51 }, models.ErrValidation},
		{"unknown promotion", func(r *models.OrderRequest) { r.PromotionID = ptr(int64(99)) }, models.ErrNotFound},
		{"negative points", func(r *models.OrderRequest) { r.PointsToRedeem = -1 }, models.ErrValidation},
		{"long instructions", func(r *models.OrderRequest) {
			r.SpecialInstructions = strings.Repeat("x", DefaultMaxInstructionsLength+1)
		}, models.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := johnsBasket()
			tt.mutate(&req)
			_, err := env.order.PlaceOrder(env.ctx, req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, 0, env.orders.Count())
	assert.Equal(t, 50, stockOf(t, env, 1))
}

func TestOrderService_InstructionsLimitCountsCharacters(t *testing.T) {
	env := newTestEnv(t)
	req := johnsBasket()
	req.SpecialInstructions = strings.Repeat("é", DefaultMaxInstructionsLength)

	_, err := env.order.PlaceOrder(env.ctx, req)
	assert.NoError(t, err)
}

func TestOrderService_StatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		path []models.OrderStatus
		ok   bool
	}{
		{"ship then deliver", []models.OrderStatus{models.OrderShipped, models.OrderDelivered}, true},
		{"cancel pending", []models.OrderStatus{models.OrderCancelled}, true},
		{"cancel shipped", []models.OrderStatus{models.OrderShipped, models.OrderCancelled}, true},
		{"same status is a no-op", []models.OrderStatus{models.OrderPending}, true},
		{"deliver pending", []models.OrderStatus{models.OrderDelivered}, false},
		{"cancel delivered", []models.OrderStatus{models.OrderShipped, models.OrderDelivered, models.OrderCancelled}, false},
		{"reopen cancelled", []models.OrderStatus{models.OrderCancelled, models.OrderPending}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			order, err := env.order.PlaceOrder(env.ctx, johnsBasket())
			require.NoError(t, err)

			for i, st := range tt.path {
				_, err = env.order.UpdateStatus(env.ctx, order.ID, st)
				if i < len(tt.path)-1 {
					require.NoError(t, err)
				}
			}
			if tt.ok {
				require.NoError(t, err)
				got, err := env.order.Get(env.ctx, order.ID)
				require.NoError(t, err)
				assert.Equal(t, tt.path[len(tt.path)-1], got.Status)
			} else {
				assert.ErrorIs(t, err, models.ErrInvalidTransition)
			}
		})
	}
}

func TestOrderService_CancelReversesLoyalty(t *testing.T) {
	env := newTestEnv(t)
	order, err := env.order.PlaceOrder(env.ctx, johnsBasket())
	require.NoError(t, err)

	cancelled, err := env.order.UpdateStatus(env.ctx, order.ID, models.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)

	john, err := env.customers.Get(1)
	require.NoError(t, err)
	assert.Equal(t, int64(500), john.Points)
	assert.Equal(t, int64(2), john.TierID)
	assert.Equal(t, 50, stockOf(t, env, 1))
	assert.Equal(t, 100, stockOf(t, env, 2))

	history, err := env.activity.List(env.ctx, "", models.ActivityCancellation)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(48), history[0].Points)
}

func TestOrderService_CancelNeverDropsBelowZero(t *testing.T) {
	env := newTestEnv(t)
	order, err := env.order.PlaceOrder(env.ctx, models.OrderRequest{
		CustomerID: 2,
		Lines:      []models.OrderLineRequest{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)
	earned := order.Breakdown.PointsEarned
	require.Equal(t, int64(132), earned)

	_, err = env.customer.AdjustPoints(env.ctx, 2, -300)
	require.NoError(t, err)

	_, err = env.order.UpdateStatus(env.ctx, order.ID, models.OrderCancelled)
	require.NoError(t, err)

	jane, err := env.customers.Get(2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), jane.Points)
}

func TestOrderService_ListAndRemove(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.order.PlaceOrder(env.ctx, johnsBasket())
	require.NoError(t, err)
	second, err := env.order.PlaceOrder(env.ctx, models.OrderRequest{
		CustomerID: 2,
		Lines:      []models.OrderLineRequest{{ProductID: 2, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = env.order.UpdateStatus(env.ctx, second.ID, models.OrderShipped)
	require.NoError(t, err)

	byName, err := env.order.List(env.ctx, "jane", "")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, second.ID, byName[0].ID)

	shipped, err := env.order.List(env.ctx, "", "Shipped")
	require.NoError(t, err)
	require.Len(t, shipped, 1)

	_, err = env.order.List(env.ctx, "", "Lost")
	assert.ErrorIs(t, err, models.ErrValidation)

	require.NoError(t, env.order.Remove(env.ctx, second.ID))
	assert.ErrorIs(t, env.order.Remove(env.ctx, second.ID), models.ErrNotFound)
	_, err = env.order.Get(env.ctx, second.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
