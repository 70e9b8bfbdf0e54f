package service

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"loyalty-admin/models"
	"loyalty-admin/repository"
)

// DefaultMaxInstructionsLength bounds the special instructions of an order
const DefaultMaxInstructionsLength = 200

// Pricer prices order lines for a customer
type Pricer interface {
	PriceAt(asOf time.Time, customer models.Customer, lines []models.OrderLineItem, promotion *models.Promotion, pointsToRedeem int64) (models.PriceBreakdown, error)
}

// OrderServiceConfig holds the collaborators of OrderService
type OrderServiceConfig struct {
	Orders     repository.OrderRepositoryInterface
	Customers  repository.CustomerRepositoryInterface
	Products   repository.ProductRepositoryInterface
	Promotions repository.PromotionRepositoryInterface
	Pricer     Pricer
	Tiers      TierResolverInterface
	Activity   ActivityServiceInterface
	Clock      func() time.Time
	// MaxInstructionsLength is counted in characters; defaults to DefaultMaxInstructionsLength
	MaxInstructionsLength int
	Logger                *zap.Logger
}

// OrderService quotes, places and tracks orders.
// Placing an order prices it first and then commits stock, points and the order record;
// a failure at any step leaves every store as it was.
// Implements OrderServiceInterface
type OrderService struct {
	mu sync.Mutex // serializes commits and status changes
	OrderServiceConfig
}

// NewOrderService creates a new OrderService
func NewOrderService(cfg OrderServiceConfig) *OrderService {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.MaxInstructionsLength <= 0 {
		cfg.MaxInstructionsLength = DefaultMaxInstructionsLength
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &OrderService{OrderServiceConfig: cfg}
}

// Ensure OrderService implements OrderServiceInterface
var _ OrderServiceInterface = (*OrderService)(nil)

// List returns the orders whose customer name, email or id contains filter.
// A non-empty status other than "All" keeps only orders in that status.
func (s *OrderService) List(ctx context.Context, filter, status string) ([]models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if status == "" || status == "All" {
		return s.Orders.List(filter), nil
	}
	want, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	return s.Orders.Filter(func(o models.Order) bool {
		return o.Status == want && matches(filter, o)
	}), nil
}

// Get returns the order with the given id
func (s *OrderService) Get(ctx context.Context, id int64) (models.Order, error) {
	if err := ctx.Err(); err != nil {
		return models.Order{}, err
	}
	return s.Orders.Get(id)
}

// Quote validates and prices a request without committing anything
func (s *OrderService) Quote(ctx context.Context, req models.OrderRequest) (models.OrderQuote, error) {
	if err := ctx.Err(); err != nil {
		return models.OrderQuote{}, err
	}
	quote, _, err := s.prepare(req, s.Clock())
	if err != nil {
		s.Logger.Warn("order quote rejected", zap.Int64("customerId", req.CustomerID), zap.Error(err))
		return models.OrderQuote{}, err
	}
	return quote, nil
}

// PlaceOrder prices the request and commits it: stock is taken, redeemed points are
// deducted and earned points credited, the customer's tier is re-resolved and the order
// is stored as Pending.
func (s *OrderService) PlaceOrder(ctx context.Context, req models.OrderRequest) (models.Order, error) {
	if err := ctx.Err(); err != nil {
		return models.Order{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Clock()
	quote, promotion, err := s.prepare(req, now)
	if err != nil {
		s.Logger.Warn("order rejected", zap.Int64("customerId", req.CustomerID), zap.Error(err))
		return models.Order{}, err
	}

	if err := s.takeStock(quote.Lines); err != nil {
		s.Logger.Warn("order rejected", zap.Int64("customerId", req.CustomerID), zap.Error(err))
		return models.Order{}, err
	}
	b := quote.Breakdown
	customer, err := s.Customers.Update(req.CustomerID, func(c models.Customer) (models.Customer, error) {
		if b.PointsRedeemed > c.Points {
			return c, errors.Wrapf(models.ErrInsufficientPoints, "redeeming %d points with a balance of %d", b.PointsRedeemed, c.Points)
		}
		c.Points = c.Points - b.PointsRedeemed + b.PointsEarned
		return s.withTier(c)
	})
	if err != nil {
		s.restock(quote.Lines)
		s.Logger.Warn("order rejected", zap.Int64("customerId", req.CustomerID), zap.Error(err))
		return models.Order{}, err
	}

	order := s.Orders.Add(models.Order{
		Reference:           uuid.New(),
		CustomerID:          customer.ID,
		CustomerName:        customer.Name,
		CustomerEmail:       customer.Email,
		Lines:               quote.Lines,
		PromotionID:         b.PromotionID,
		PointsRedeemed:      b.PointsRedeemed,
		Breakdown:           b,
		Status:              models.OrderPending,
		SpecialInstructions: req.SpecialInstructions,
		PlacedAt:            now,
	})
	s.Logger.Info("order placed",
		zap.Int64("id", order.ID),
		zap.String("reference", order.Reference.String()),
		zap.Int64("customerId", customer.ID),
		zap.String("total", b.Total.StringFixed(2)),
		zap.Int64("pointsEarned", b.PointsEarned),
		zap.Int64("pointsRedeemed", b.PointsRedeemed))

	// The order is committed; history is written even if the caller has gone away.
	ctx = context.WithoutCancel(ctx)
	promotionName := ""
	if promotion != nil {
		promotionName = promotion.Name
	}
	s.record(ctx, models.CustomerActivity{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		ActivityType: models.ActivityPurchase,
		OrderID:      order.ID,
		Promotion:    promotionName,
		Points:       b.PointsEarned,
		OccurredAt:   now,
	})
	if b.PointsRedeemed > 0 {
		s.record(ctx, models.CustomerActivity{
			CustomerID:   customer.ID,
			CustomerName: customer.Name,
			ActivityType: models.ActivityRedemption,
			OrderID:      order.ID,
			Promotion:    promotionName,
			Points:       -b.PointsRedeemed,
			OccurredAt:   now,
		})
	}
	return order, nil
}

// UpdateStatus moves an order along Pending -> Shipped -> Delivered; Pending and Shipped
// orders may be Cancelled. Cancelling returns the stock and reverses the loyalty points.
// Setting the current status again is a no-op.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (models.Order, error) {
	if err := ctx.Err(); err != nil {
		return models.Order{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.Orders.Get(id)
	if err != nil {
		return models.Order{}, err
	}
	if order.Status == status {
		return order, nil
	}
	if !order.Status.CanTransitionTo(status) {
		err := errors.Wrapf(models.ErrInvalidTransition, "order %d cannot move from %s to %s", id, order.Status, status)
		s.Logger.Warn("order status rejected", zap.Int64("id", id), zap.Error(err))
		return models.Order{}, err
	}

	var reversal *models.CustomerActivity
	if status == models.OrderCancelled {
		if reversal, err = s.reversePoints(order); err != nil {
			s.Logger.Warn("order cancel rejected", zap.Int64("id", id), zap.Error(err))
			return models.Order{}, err
		}
		s.restock(order.Lines)
	}

	updated, err := s.Orders.Update(id, func(o models.Order) (models.Order, error) {
		o.Status = status
		return o, nil
	})
	if err != nil {
		return models.Order{}, err
	}
	s.Logger.Info("order status updated", zap.Int64("id", id), zap.String("from", string(order.Status)), zap.String("to", string(status)))
	if reversal != nil {
		s.record(context.WithoutCancel(ctx), *reversal)
	}
	return updated, nil
}

// Remove deletes an order record without touching stock or points
func (s *OrderService) Remove(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Orders.Remove(id); err != nil {
		return err
	}
	s.Logger.Info("order removed", zap.Int64("id", id))
	return nil
}

// prepare validates the request against current data and prices it as of asOf
func (s *OrderService) prepare(req models.OrderRequest, asOf time.Time) (models.OrderQuote, *models.Promotion, error) {
	var quote models.OrderQuote
	if req.CustomerID <= 0 {
		return quote, nil, models.NewValidationError("customerId", "customer is required")
	}
	customer, err := s.Customers.Get(req.CustomerID)
	if err != nil {
		return quote, nil, err
	}
	if len(req.Lines) == 0 {
		return quote, nil, models.NewValidationError("lines", "add at least one product")
	}
	if n := utf8.RuneCountInString(req.SpecialInstructions); n > s.MaxInstructionsLength {
		return quote, nil, models.NewValidationError("specialInstructions",
			"special instructions are limited to %d characters, got %d", s.MaxInstructionsLength, n)
	}

	lines := make([]models.OrderLineItem, 0, len(req.Lines))
	seen := make(map[int64]bool, len(req.Lines))
	for _, rl := range req.Lines {
		if seen[rl.ProductID] {
			return quote, nil, models.NewValidationError("lines", "product %d already added", rl.ProductID)
		}
		seen[rl.ProductID] = true
		product, err := s.Products.Get(rl.ProductID)
		if err != nil {
			return quote, nil, err
		}
		if rl.Quantity < 1 {
			return quote, nil, models.NewValidationError("quantity", "quantity of %s must be at least 1, got %d", product.Name, rl.Quantity)
		}
		if rl.Quantity > product.Stock {
			return quote, nil, models.NewValidationError("quantity", "only %d of %s in stock, requested %d", product.Stock, product.Name, rl.Quantity)
		}
		lines = append(lines, models.OrderLineItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    rl.Quantity,
		})
	}

	var promotion *models.Promotion
	if req.PromotionID != nil {
		p, err := s.Promotions.Get(*req.PromotionID)
		if err != nil {
			return quote, nil, err
		}
		promotion = &p
	}

	b, err := s.Pricer.PriceAt(asOf, customer, lines, promotion, req.PointsToRedeem)
	if err != nil {
		return quote, nil, err
	}
	quote = models.OrderQuote{
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		Lines:         lines,
		Breakdown:     b,
		PointsBalance: customer.Points,
		BalanceAfter:  customer.Points - b.PointsRedeemed + b.PointsEarned,
	}
	if promotion != nil {
		quote.PromotionName = promotion.Name
	}
	return quote, promotion, nil
}

// takeStock decrements stock line by line, putting back what was taken on failure
func (s *OrderService) takeStock(lines []models.OrderLineItem) error {
	for i, line := range lines {
		_, err := s.Products.Update(line.ProductID, func(p models.Product) (models.Product, error) {
			if p.Stock < line.Quantity {
				return p, models.NewValidationError("quantity", "only %d of %s in stock, requested %d", p.Stock, p.Name, line.Quantity)
			}
			p.Stock -= line.Quantity
			return p, nil
		})
		if err != nil {
			s.restock(lines[:i])
			return err
		}
	}
	return nil
}

// restock returns line quantities to stock; products removed since are skipped
func (s *OrderService) restock(lines []models.OrderLineItem) {
	for _, line := range lines {
		_, err := s.Products.Update(line.ProductID, func(p models.Product) (models.Product, error) {
			p.Stock += line.Quantity
			return p, nil
		})
		if err != nil {
			s.Logger.Debug("restock skipped", zap.Int64("productId", line.ProductID), zap.Error(err))
		}
	}
}

// reversePoints gives back redeemed points and takes back earned points, never below zero
func (s *OrderService) reversePoints(order models.Order) (*models.CustomerActivity, error) {
	var before int64
	customer, err := s.Customers.Update(order.CustomerID, func(c models.Customer) (models.Customer, error) {
		before = c.Points
		c.Points += order.Breakdown.PointsRedeemed - order.Breakdown.PointsEarned
		if c.Points < 0 {
			c.Points = 0
		}
		return s.withTier(c)
	})
	if err != nil {
		return nil, err
	}
	return &models.CustomerActivity{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		ActivityType: models.ActivityCancellation,
		OrderID:      order.ID,
		Points:       customer.Points - before,
		OccurredAt:   s.Clock(),
	}, nil
}

func (s *OrderService) withTier(c models.Customer) (models.Customer, error) {
	tier, err := s.Tiers.ResolveTier(c.Points)
	if err != nil {
		return c, err
	}
	c.TierID = tier.ID
	return c, nil
}

func (s *OrderService) record(ctx context.Context, a models.CustomerActivity) {
	if s.Activity == nil {
		return
	}
	if _, err := s.Activity.Record(ctx, a); err != nil {
		s.Logger.Error("failed to record activity", zap.Int64("orderId", a.OrderID), zap.Error(err))
	}
}
