package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"loyalty-admin/models"
	"loyalty-admin/repository"
)

// ActivityService records and lists customer loyalty activity
// Implements ActivityServiceInterface
type ActivityService struct {
	activities repository.ActivityRepositoryInterface
	logger     *zap.Logger
}

// NewActivityService creates a new ActivityService
func NewActivityService(activities repository.ActivityRepositoryInterface, logger *zap.Logger) *ActivityService {
	return &ActivityService{activities: activities, logger: logger}
}

// Ensure ActivityService implements ActivityServiceInterface
var _ ActivityServiceInterface = (*ActivityService)(nil)

// Record appends an activity to the history
func (s *ActivityService) Record(ctx context.Context, a models.CustomerActivity) (models.CustomerActivity, error) {
	if err := ctx.Err(); err != nil {
		return models.CustomerActivity{}, err
	}
	recorded := s.activities.Add(a)
	s.logger.Debug("activity recorded",
		zap.Int64("customerId", a.CustomerID), zap.String("type", a.ActivityType), zap.Int64("points", a.Points))
	return recorded, nil
}

// List returns the activities whose customer or promotion name contains filter.
// A non-empty activityType other than "All" keeps only that type.
func (s *ActivityService) List(ctx context.Context, filter, activityType string) ([]models.CustomerActivity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	activityType = strings.TrimSpace(activityType)
	all := activityType == "" || strings.EqualFold(activityType, "All")
	return s.activities.Filter(func(a models.CustomerActivity) bool {
		if !all && !strings.EqualFold(a.ActivityType, activityType) {
			return false
		}
		return matches(filter, a)
	}), nil
}

// ActivityTypes returns the distinct activity types in first-seen order
func (s *ActivityService) ActivityTypes(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	types := make([]string, 0)
	for _, a := range s.activities.All() {
		if !seen[a.ActivityType] {
			seen[a.ActivityType] = true
			types = append(types, a.ActivityType)
		}
	}
	return types, nil
}
