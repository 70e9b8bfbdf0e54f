package pricing

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"loyalty-admin/models"
)

// Default conversion rates
var (
	DefaultPointsToCurrencyRate = decimal.RequireFromString("0.01")
	DefaultEarnRate             = decimal.RequireFromString("0.1")
)

// Settings holds the configuration constants of the engine
type Settings struct {
	// PointsToCurrencyRate is the currency value of one redeemed point
	PointsToCurrencyRate decimal.Decimal
	// EarnRate is the number of points earned per currency unit of the final total
	EarnRate decimal.Decimal
	// Clock supplies the evaluation time of promotions; defaults to time.Now
	Clock func() time.Time
}

// TierResolver maps a points balance to a loyalty tier
type TierResolver interface {
	ResolveTier(points int64) (models.LoyaltyTier, error)
}

// Engine computes order price breakdowns. It never mutates state.
type Engine struct {
	settings Settings
	tiers    TierResolver
	logger   *zap.Logger
}

// NewEngine creates a new pricing engine
func NewEngine(settings Settings, tiers TierResolver, logger *zap.Logger) (*Engine, error) {
	if settings.PointsToCurrencyRate.IsNegative() {
		return nil, models.NewValidationError("pointsToCurrencyRate", "rate cannot be negative, got %s", settings.PointsToCurrencyRate)
	}
	if settings.EarnRate.IsNegative() {
		return nil, models.NewValidationError("earnRate", "rate cannot be negative, got %s", settings.EarnRate)
	}
	if tiers == nil {
		return nil, errors.New("pricing engine requires a tier resolver")
	}
	if settings.Clock == nil {
		settings.Clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{settings: settings, tiers: tiers, logger: logger}, nil
}

// Price prices an order as of now
func (e *Engine) Price(customer models.Customer, lines []models.OrderLineItem, promotion *models.Promotion, pointsToRedeem int64) (models.PriceBreakdown, error) {
	return e.PriceAt(e.settings.Clock(), customer, lines, promotion, pointsToRedeem)
}

// PriceAt prices an order with promotion activity evaluated as of asOf.
// Steps, each failing before any later one is computed:
//  1. subtotal = sum of unit price x quantity
//  2. tierDiscount = subtotal x tier rate, the tier resolved from the customer's points
//  3. promotionDiscount = subtotal x promotion rate; the promotion must be active
//  4. pointsDiscount = pointsToRedeem x points rate; pointsToRedeem must not exceed the balance
//  5. total = max(0, subtotal - discounts)
//  6. pointsEarned = floor(total x earn rate)
func (e *Engine) PriceAt(asOf time.Time, customer models.Customer, lines []models.OrderLineItem, promotion *models.Promotion, pointsToRedeem int64) (models.PriceBreakdown, error) {
	var b models.PriceBreakdown
	if pointsToRedeem < 0 {
		return b, models.NewValidationError("pointsToRedeem", "points to redeem cannot be negative, got %d", pointsToRedeem)
	}

	subtotal, err := Subtotal(lines)
	if err != nil {
		return b, err
	}

	tier, err := e.tiers.ResolveTier(customer.Points)
	if err != nil {
		return b, errors.Wrapf(err, "resolving tier for customer %d", customer.ID)
	}
	tierDiscount := subtotal.Mul(tier.DiscountRate)

	promotionDiscount := decimal.Zero
	var promotionID *int64
	if promotion != nil {
		if !promotion.IsActive(asOf) {
			return b, errors.Wrapf(models.ErrInvalidPromotion, "promotion %q is %s on %s",
				promotion.Name, promotion.StatusAt(asOf), asOf.Format(models.DateLayout))
		}
		promotionDiscount = subtotal.Mul(promotion.DiscountRate)
		id := promotion.ID
		promotionID = &id
	}

	if pointsToRedeem > customer.Points {
		return b, errors.Wrapf(models.ErrInsufficientPoints, "redeeming %d points with a balance of %d",
			pointsToRedeem, customer.Points)
	}
	pointsDiscount := decimal.NewFromInt(pointsToRedeem).Mul(e.settings.PointsToCurrencyRate)

	total := subtotal.Sub(tierDiscount).Sub(promotionDiscount).Sub(pointsDiscount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	pointsEarned := total.Mul(e.settings.EarnRate).Floor().IntPart()

	b = models.PriceBreakdown{
		Subtotal:          subtotal,
		TierName:          tier.Name,
		TierDiscountRate:  tier.DiscountRate,
		TierDiscount:      tierDiscount,
		PromotionID:       promotionID,
		PromotionDiscount: promotionDiscount,
		PointsRedeemed:    pointsToRedeem,
		PointsDiscount:    pointsDiscount,
		Total:             total,
		PointsEarned:      pointsEarned,
	}
	e.logger.Debug("order priced",
		zap.Int64("customerId", customer.ID),
		zap.String("subtotal", subtotal.String()),
		zap.String("total", total.String()),
		zap.Int64("pointsEarned", pointsEarned))
	return b, nil
}

// Subtotal sums unit price x quantity over the lines
func Subtotal(lines []models.OrderLineItem) (decimal.Decimal, error) {
	subtotal := decimal.Zero
	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return decimal.Zero, errors.Wrapf(err, "line %d", i+1)
		}
		subtotal = subtotal.Add(line.LineTotal())
	}
	return subtotal, nil
}
