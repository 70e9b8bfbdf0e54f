package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"loyalty-admin/models"
	"loyalty-admin/pricing"
	"loyalty-admin/repository"
)

var today = time.Date(2024, time.July, 15, 9, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// testEnv wires every service over fresh stores seeded with the dashboard sample data
type testEnv struct {
	ctx        context.Context
	categories *repository.Store[models.Category]
	products   *repository.Store[models.Product]
	tiers      *repository.Store[models.LoyaltyTier]
	customers  *repository.Store[models.Customer]
	promotions *repository.Store[models.Promotion]
	orders     *repository.Store[models.Order]
	activities *repository.Store[models.CustomerActivity]

	resolver  *TierResolver
	catalog   *CatalogService
	customer  *CustomerService
	tier      *TierService
	promotion *PromotionService
	activity  *ActivityService
	order     *OrderService
	dashboard *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	clock := func() time.Time { return today }
	env := &testEnv{
		ctx:        context.Background(),
		categories: repository.NewCategoryRepository(),
		products:   repository.NewProductRepository(),
		tiers:      repository.NewTierRepository(),
		customers:  repository.NewCustomerRepository(),
		promotions: repository.NewPromotionRepository(),
		orders:     repository.NewOrderRepository(),
		activities: repository.NewActivityRepository(),
	}

	for _, tier := range []models.LoyaltyTier{
		{ID: 1, Name: "Silver", PointsThreshold: 0, DiscountRate: dec("0.05"), BonusPointsRate: dec("1")},
		{ID: 2, Name: "Gold", PointsThreshold: 500, DiscountRate: dec("0.10"), BonusPointsRate: dec("1.5")},
		{ID: 3, Name: "Platinum", PointsThreshold: 1000, DiscountRate: dec("0.15"), BonusPointsRate: dec("2")},
	} {
		_, err := env.tiers.Insert(tier)
		require.NoError(t, err)
	}
	env.categories.Add(models.Category{Name: "Electronics", Description: "Electronic items"})
	env.categories.Add(models.Category{Name: "Clothing", Description: "Apparel and accessories"})
	env.products.Add(models.Product{Name: "Smartphone", Price: dec("699"), CategoryID: 1, Description: "Latest model", Stock: 50})
	env.products.Add(models.Product{Name: "T-shirt", Price: dec("29"), CategoryID: 2, Description: "Cotton t-shirt", Stock: 100})
	env.promotions.Add(models.Promotion{Name: "Summer Sale", Type: "Seasonal", DiscountRate: dec("0.2"), Start: date("2024-06-01"), End: date("2024-08-31")})
	env.promotions.Add(models.Promotion{Name: "Black Friday", Type: "Holiday", DiscountRate: dec("0.3"), Start: date("2024-11-29"), End: date("2024-11-30")})

	env.resolver = NewTierResolver(env.tiers, logger)
	env.customer = NewCustomerService(env.customers, env.orders, env.resolver, logger)
	_, err := env.customer.Create(env.ctx, models.Customer{Name: "John Doe", Email: "john.doe@example.com", Points: 500})
	require.NoError(t, err)
	_, err = env.customer.Create(env.ctx, models.Customer{Name: "Jane Smith", Email: "jane.smith@example.com", Points: 200})
	require.NoError(t, err)

	engine, err := pricing.NewEngine(pricing.Settings{
		PointsToCurrencyRate: pricing.DefaultPointsToCurrencyRate,
		EarnRate:             pricing.DefaultEarnRate,
		Clock:                clock,
	}, env.resolver, logger)
	require.NoError(t, err)

	env.catalog = NewCatalogService(env.categories, env.products, logger)
	env.tier = NewTierService(env.tiers, env.resolver, env.customer, logger)
	env.promotion = NewPromotionService(env.promotions, clock, logger)
	env.activity = NewActivityService(env.activities, logger)
	env.dashboard = NewDashboardService(env.customers, env.promotions, env.orders, clock)
	env.order = NewOrderService(OrderServiceConfig{
		Orders:     env.orders,
		Customers:  env.customers,
		Products:   env.products,
		Promotions: env.promotions,
		Pricer:     engine,
		Tiers:      env.resolver,
		Activity:   env.activity,
		Clock:      clock,
		Logger:     logger,
	})
	return env
}

func ptr[T any](v T) *T { return &v }
