package service

import (
	"context"
	"time"

	"loyalty-admin/models"
	"loyalty-admin/repository"
)

// DashboardService computes the summary cards of the dashboard home
// Implements DashboardServiceInterface
type DashboardService struct {
	customers  repository.CustomerRepositoryInterface
	promotions repository.PromotionRepositoryInterface
	orders     repository.OrderRepositoryInterface
	clock      func() time.Time
}

// NewDashboardService creates a new DashboardService; clock defaults to time.Now
func NewDashboardService(customers repository.CustomerRepositoryInterface, promotions repository.PromotionRepositoryInterface, orders repository.OrderRepositoryInterface, clock func() time.Time) *DashboardService {
	if clock == nil {
		clock = time.Now
	}
	return &DashboardService{customers: customers, promotions: promotions, orders: orders, clock: clock}
}

// Ensure DashboardService implements DashboardServiceInterface
var _ DashboardServiceInterface = (*DashboardService)(nil)

// Statistics counts customers, promotions active today, points issued and redemptions.
// Cancelled orders are left out of the points figures.
func (s *DashboardService) Statistics(ctx context.Context) (models.Statistics, error) {
	if err := ctx.Err(); err != nil {
		return models.Statistics{}, err
	}
	stats := models.Statistics{
		TotalCustomers:   s.customers.Count(),
		ActivePromotions: len(ActivePromotions(s.clock(), s.promotions.All())),
	}
	for _, o := range s.orders.All() {
		if o.Status == models.OrderCancelled {
			continue
		}
		stats.PointsIssued += o.Breakdown.PointsEarned
		if o.PointsRedeemed > 0 {
			stats.Redemptions++
		}
	}
	return stats, nil
}
