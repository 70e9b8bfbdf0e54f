package service

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"loyalty-admin/models"
	"loyalty-admin/repository"
)

// CustomerService manages customers and keeps their tier in step with their points
// Implements CustomerServiceInterface
type CustomerService struct {
	customers repository.CustomerRepositoryInterface
	orders    repository.OrderRepositoryInterface
	tiers     TierResolverInterface
	logger    *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customers repository.CustomerRepositoryInterface, orders repository.OrderRepositoryInterface, tiers TierResolverInterface, logger *zap.Logger) *CustomerService {
	return &CustomerService{customers: customers, orders: orders, tiers: tiers, logger: logger}
}

// Ensure CustomerService implements CustomerServiceInterface
var _ CustomerServiceInterface = (*CustomerService)(nil)

// List returns the customers whose name or email contains filter
func (s *CustomerService) List(ctx context.Context, filter string) ([]models.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.customers.List(filter), nil
}

// Get returns the customer with the given id
func (s *CustomerService) Get(ctx context.Context, id int64) (models.Customer, error) {
	if err := ctx.Err(); err != nil {
		return models.Customer{}, err
	}
	return s.customers.Get(id)
}

// Create validates and adds a customer with the tier matching its points
func (s *CustomerService) Create(ctx context.Context, c models.Customer) (models.Customer, error) {
	if err := ctx.Err(); err != nil {
		return models.Customer{}, err
	}
	c = models.CustomerPatch{Name: &c.Name, Email: &c.Email}.Apply(c)
	c, err := s.withTier(c)
	if err != nil {
		s.logger.Warn("customer rejected", zap.Error(err))
		return models.Customer{}, err
	}
	created := s.customers.Add(c)
	s.logger.Info("customer created", zap.Int64("id", created.ID), zap.Int64("tierId", created.TierID))
	return created, nil
}

// Update merges patch into the customer with the given id and re-resolves its tier
func (s *CustomerService) Update(ctx context.Context, id int64, patch models.CustomerPatch) (models.Customer, error) {
	if err := ctx.Err(); err != nil {
		return models.Customer{}, err
	}
	updated, err := s.customers.Update(id, func(c models.Customer) (models.Customer, error) {
		return s.withTier(patch.Apply(c))
	})
	if err != nil {
		s.logger.Warn("customer update rejected", zap.Int64("id", id), zap.Error(err))
		return models.Customer{}, err
	}
	s.logger.Info("customer updated", zap.Int64("id", id), zap.Int64("points", updated.Points))
	return updated, nil
}

// AdjustPoints adds delta to the customer's balance, which cannot go below zero
func (s *CustomerService) AdjustPoints(ctx context.Context, id int64, delta int64) (models.Customer, error) {
	if err := ctx.Err(); err != nil {
		return models.Customer{}, err
	}
	updated, err := s.customers.Update(id, func(c models.Customer) (models.Customer, error) {
		if delta > 0 && c.Points > math.MaxInt64-delta {
			return c, models.NewValidationError("delta", "adding %d points to a balance of %d exceeds the maximum balance", delta, c.Points)
		}
		if c.Points+delta < 0 {
			return c, errors.Wrapf(models.ErrInsufficientPoints, "cannot remove %d points from a balance of %d", -delta, c.Points)
		}
		c.Points += delta
		return s.withTier(c)
	})
	if err != nil {
		s.logger.Warn("points adjustment rejected", zap.Int64("id", id), zap.Int64("delta", delta), zap.Error(err))
		return models.Customer{}, err
	}
	s.logger.Info("points adjusted", zap.Int64("id", id), zap.Int64("delta", delta), zap.Int64("points", updated.Points))
	return updated, nil
}

// Remove deletes a customer that has no orders
func (s *CustomerService) Remove(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.customers.Get(id); err != nil {
		return err
	}
	if s.orders.Exists(func(o models.Order) bool { return o.CustomerID == id }) {
		err := errors.Wrapf(models.ErrInUse, "customer %d has orders", id)
		s.logger.Warn("customer remove rejected", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if err := s.customers.Remove(id); err != nil {
		return err
	}
	s.logger.Info("customer removed", zap.Int64("id", id))
	return nil
}

// RefreshTiers re-resolves the tier of every customer, after the tier table changed
func (s *CustomerService) RefreshTiers(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	changed := 0
	for _, c := range s.customers.All() {
		_, err := s.customers.Update(c.ID, func(cur models.Customer) (models.Customer, error) {
			next, err := s.withTier(cur)
			if err == nil && next.TierID != cur.TierID {
				changed++
			}
			return next, err
		})
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return err
		}
	}
	s.logger.Info("customer tiers refreshed", zap.Int("changed", changed))
	return nil
}

// withTier validates c and sets its tier from its points
func (s *CustomerService) withTier(c models.Customer) (models.Customer, error) {
	if err := c.Validate(); err != nil {
		return c, err
	}
	tier, err := s.tiers.ResolveTier(c.Points)
	if err != nil {
		return c, err
	}
	c.TierID = tier.ID
	return c, nil
}
