package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"loyalty-admin/models"
	"loyalty-admin/repository"
)

// PromotionStatusAll disables status filtering in PromotionService.List
const PromotionStatusAll = "All"

// ActivePromotions keeps the promotions with start <= asOf <= end, in input order.
// Overlapping promotions are all returned.
func ActivePromotions(asOf time.Time, promotions []models.Promotion) []models.Promotion {
	active := make([]models.Promotion, 0, len(promotions))
	for _, p := range promotions {
		if p.IsActive(asOf) {
			active = append(active, p)
		}
	}
	return active
}

// PromotionService manages promotions and evaluates which are active
// Implements PromotionServiceInterface
type PromotionService struct {
	repository repository.PromotionRepositoryInterface
	clock      func() time.Time
	logger     *zap.Logger
}

// NewPromotionService creates a new PromotionService; clock defaults to time.Now
func NewPromotionService(repo repository.PromotionRepositoryInterface, clock func() time.Time, logger *zap.Logger) *PromotionService {
	if clock == nil {
		clock = time.Now
	}
	return &PromotionService{repository: repo, clock: clock, logger: logger}
}

// Ensure PromotionService implements PromotionServiceInterface
var _ PromotionServiceInterface = (*PromotionService)(nil)

// Active returns the promotions active as of now
func (s *PromotionService) Active(ctx context.Context) ([]models.Promotion, error) {
	return s.ActiveAt(ctx, s.clock())
}

// ActiveAt returns the promotions active as of asOf; a zero asOf means now
func (s *PromotionService) ActiveAt(ctx context.Context, asOf time.Time) ([]models.Promotion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = s.clock()
	}
	active := ActivePromotions(asOf, s.repository.All())
	s.logger.Debug("active promotions evaluated",
		zap.String("asOf", asOf.Format(models.DateLayout)), zap.Int("count", len(active)))
	return active, nil
}

// List returns the promotions matching filter whose status as of now equals status.
// status is one of All (or empty), Active, Expired, Scheduled.
func (s *PromotionService) List(ctx context.Context, filter, status string) ([]models.Promotion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	promos := s.repository.List(filter)
	status = strings.TrimSpace(status)
	if status == "" || strings.EqualFold(status, PromotionStatusAll) {
		return promos, nil
	}
	want, err := parsePromotionStatus(status)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	out := make([]models.Promotion, 0, len(promos))
	for _, p := range promos {
		if p.StatusAt(now) == want {
			out = append(out, p)
		}
	}
	return out, nil
}

// Get returns the promotion with the given id
func (s *PromotionService) Get(ctx context.Context, id int64) (models.Promotion, error) {
	if err := ctx.Err(); err != nil {
		return models.Promotion{}, err
	}
	return s.repository.Get(id)
}

// Create validates and adds a promotion
func (s *PromotionService) Create(ctx context.Context, p models.Promotion) (models.Promotion, error) {
	if err := ctx.Err(); err != nil {
		return models.Promotion{}, err
	}
	p = models.PromotionPatch{Name: &p.Name, Type: &p.Type}.Apply(p)
	if err := p.Validate(); err != nil {
		s.logger.Warn("promotion rejected", zap.Error(err))
		return models.Promotion{}, err
	}
	created := s.repository.Add(p)
	s.logger.Info("promotion created", zap.Int64("id", created.ID), zap.String("name", created.Name))
	return created, nil
}

// Update merges patch into the promotion with the given id
func (s *PromotionService) Update(ctx context.Context, id int64, patch models.PromotionPatch) (models.Promotion, error) {
	if err := ctx.Err(); err != nil {
		return models.Promotion{}, err
	}
	updated, err := s.repository.Update(id, func(p models.Promotion) (models.Promotion, error) {
		next := patch.Apply(p)
		return next, next.Validate()
	})
	if err != nil {
		s.logger.Warn("promotion update rejected", zap.Int64("id", id), zap.Error(err))
		return models.Promotion{}, err
	}
	s.logger.Info("promotion updated", zap.Int64("id", id))
	return updated, nil
}

// Remove deletes the promotion with the given id; orders keep their priced breakdown
func (s *PromotionService) Remove(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.repository.Remove(id); err != nil {
		return err
	}
	s.logger.Info("promotion removed", zap.Int64("id", id))
	return nil
}

func parsePromotionStatus(status string) (models.PromotionStatus, error) {
	for _, st := range []models.PromotionStatus{models.PromotionActive, models.PromotionExpired, models.PromotionScheduled} {
		if strings.EqualFold(status, string(st)) {
			return st, nil
		}
	}
	return "", models.NewValidationError("status", "unknown promotion status %q", status)
}
