package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"loyalty-admin/models"
	"loyalty-admin/repository"
)

// TierRefresher re-resolves derived customer tiers
type TierRefresher interface {
	RefreshTiers(ctx context.Context) error
}

// TierService manages the loyalty tier table.
// Every change keeps a zero-threshold floor tier and re-resolves customer tiers.
// Implements TierServiceInterface
type TierService struct {
	mu        sync.Mutex // serializes table changes
	tiers     repository.TierRepositoryInterface
	resolver  TierResolverInterface
	customers TierRefresher
	logger    *zap.Logger
}

// NewTierService creates a new TierService
func NewTierService(tiers repository.TierRepositoryInterface, resolver TierResolverInterface, customers TierRefresher, logger *zap.Logger) *TierService {
	return &TierService{tiers: tiers, resolver: resolver, customers: customers, logger: logger}
}

// Ensure TierService implements TierServiceInterface
var _ TierServiceInterface = (*TierService)(nil)

// List returns the tiers whose name contains filter, in table order
func (s *TierService) List(ctx context.Context, filter string) ([]models.LoyaltyTier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.tiers.List(filter), nil
}

// Get returns the tier with the given id
func (s *TierService) Get(ctx context.Context, id int64) (models.LoyaltyTier, error) {
	if err := ctx.Err(); err != nil {
		return models.LoyaltyTier{}, err
	}
	return s.tiers.Get(id)
}

// Resolve returns the tier a balance of points qualifies for
func (s *TierService) Resolve(ctx context.Context, points int64) (models.LoyaltyTier, error) {
	if err := ctx.Err(); err != nil {
		return models.LoyaltyTier{}, err
	}
	return s.resolver.ResolveTier(points)
}

// Create validates and appends a tier to the table
func (s *TierService) Create(ctx context.Context, t models.LoyaltyTier) (models.LoyaltyTier, error) {
	if err := ctx.Err(); err != nil {
		return models.LoyaltyTier{}, err
	}
	t = models.LoyaltyTierPatch{Name: &t.Name, Perks: &t.Perks}.Apply(t)
	if err := t.Validate(); err != nil {
		s.logger.Warn("tier rejected", zap.Error(err))
		return models.LoyaltyTier{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := requireFloor(append(s.tiers.All(), t)); err != nil {
		s.logger.Warn("tier rejected", zap.Error(err))
		return models.LoyaltyTier{}, err
	}
	created := s.tiers.Add(t)
	s.logger.Info("tier created", zap.Int64("id", created.ID), zap.String("name", created.Name))
	s.refreshCustomers(ctx)
	return created, nil
}

// Update merges patch into the tier with the given id
func (s *TierService) Update(ctx context.Context, id int64, patch models.LoyaltyTierPatch) (models.LoyaltyTier, error) {
	if err := ctx.Err(); err != nil {
		return models.LoyaltyTier{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.tiers.Get(id)
	if err != nil {
		return models.LoyaltyTier{}, err
	}
	next := patch.Apply(current)
	if err := next.Validate(); err != nil {
		s.logger.Warn("tier update rejected", zap.Int64("id", id), zap.Error(err))
		return models.LoyaltyTier{}, err
	}
	table := s.tiers.All()
	for i := range table {
		if table[i].ID == id {
			table[i] = next
		}
	}
	if err := requireFloor(table); err != nil {
		s.logger.Warn("tier update rejected", zap.Int64("id", id), zap.Error(err))
		return models.LoyaltyTier{}, err
	}
	updated, err := s.tiers.Update(id, func(models.LoyaltyTier) (models.LoyaltyTier, error) { return next, nil })
	if err != nil {
		return models.LoyaltyTier{}, err
	}
	s.logger.Info("tier updated", zap.Int64("id", id))
	s.refreshCustomers(ctx)
	return updated, nil
}

// Remove deletes a tier; the floor tier can only go once another takes its place
func (s *TierService) Remove(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.tiers.Get(id); err != nil {
		return err
	}
	remaining := s.tiers.Filter(func(t models.LoyaltyTier) bool { return t.ID != id })
	if err := requireFloor(remaining); err != nil {
		s.logger.Warn("tier remove rejected", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if err := s.tiers.Remove(id); err != nil {
		return err
	}
	s.logger.Info("tier removed", zap.Int64("id", id))
	s.refreshCustomers(ctx)
	return nil
}

// refreshCustomers re-resolves customer tiers after a committed table change.
// The change stands even if the caller has gone away or the refresh fails.
func (s *TierService) refreshCustomers(ctx context.Context) {
	if err := s.customers.RefreshTiers(context.WithoutCancel(ctx)); err != nil {
		s.logger.Error("customer tier refresh failed", zap.Error(err))
	}
}

func requireFloor(table []models.LoyaltyTier) error {
	if !HasFloorTier(table) {
		return models.NewValidationError("pointsThreshold", "the tier table must keep a tier with threshold 0")
	}
	return nil
}
