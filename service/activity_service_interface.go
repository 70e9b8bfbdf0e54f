package service

import (
	"context"

	"loyalty-admin/models"
)

// ActivityServiceInterface defines the contract for customer activity operations
type ActivityServiceInterface interface {
	Record(ctx context.Context, a models.CustomerActivity) (models.CustomerActivity, error)
	List(ctx context.Context, filter, activityType string) ([]models.CustomerActivity, error)
	ActivityTypes(ctx context.Context) ([]string, error)
}

// DashboardServiceInterface defines the contract for dashboard statistics
type DashboardServiceInterface interface {
	Statistics(ctx context.Context) (models.Statistics, error)
}
