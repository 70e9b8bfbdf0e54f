package pricing_test

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"loyalty-admin/models"
	"loyalty-admin/pricing"
	"loyalty-admin/service"
)

type pricingTestContext struct {
	tiers     []models.LoyaltyTier
	today     time.Time
	customer  models.Customer
	promotion *models.Promotion
	breakdown models.PriceBreakdown
	err       error
}

func (c *pricingTestContext) reset() {
	*c = pricingTestContext{}
}

func (c *pricingTestContext) theTierTable(table *godog.Table) error {
	c.tiers = nil
	for i, row := range table.Rows {
		if i == 0 {
			continue // skip header
		}
		threshold, err := strconv.ParseInt(row.Cells[1].Value, 10, 64)
		if err != nil {
			return err
		}
		rate, err := decimal.NewFromString(row.Cells[2].Value)
		if err != nil {
			return err
		}
		c.tiers = append(c.tiers, models.LoyaltyTier{
			ID:              int64(i),
			Name:            row.Cells[0].Value,
			PointsThreshold: threshold,
			DiscountRate:    rate,
		})
	}
	return nil
}

func (c *pricingTestContext) todayIs(day string) error {
	t, err := time.Parse(models.DateLayout, day)
	c.today = t
	return err
}

func (c *pricingTestContext) aCustomerWithPoints(points int64) error {
	c.customer = models.Customer{ID: 1, Name: "John Doe", Email: "john.doe@example.com", Points: points}
	return nil
}

func (c *pricingTestContext) thePromotionRunningFromToWithDiscount(name, start, end, rate string) error {
	s, err := time.Parse(models.DateLayout, start)
	if err != nil {
		return err
	}
	e, err := time.Parse(models.DateLayout, end)
	if err != nil {
		return err
	}
	d, err := decimal.NewFromString(rate)
	if err != nil {
		return err
	}
	c.promotion = &models.Promotion{ID: 1, Name: name, Type: "Seasonal", DiscountRate: d, Start: s, End: e}
	return nil
}

func parseLines(table *godog.Table) ([]models.OrderLineItem, error) {
	var lines []models.OrderLineItem
	for i, row := range table.Rows {
		if i == 0 {
			continue // skip header
		}
		price, err := decimal.NewFromString(row.Cells[1].Value)
		if err != nil {
			return nil, err
		}
		qty, err := strconv.Atoi(row.Cells[2].Value)
		if err != nil {
			return nil, err
		}
		lines = append(lines, models.OrderLineItem{
			ProductID:   int64(i),
			ProductName: row.Cells[0].Value,
			UnitPrice:   price,
			Quantity:    qty,
		})
	}
	return lines, nil
}

func (c *pricingTestContext) price(table *godog.Table, promo *models.Promotion, points int64) error {
	lines, err := parseLines(table)
	if err != nil {
		return err
	}
	engine, err := pricing.NewEngine(pricing.Settings{
		PointsToCurrencyRate: pricing.DefaultPointsToCurrencyRate,
		EarnRate:             pricing.DefaultEarnRate,
		Clock:                func() time.Time { return c.today },
	}, service.NewTierResolver(service.StaticTiers(c.tiers), zap.NewNop()), zap.NewNop())
	if err != nil {
		return err
	}
	c.breakdown, c.err = engine.Price(c.customer, lines, promo, points)
	return nil
}

func (c *pricingTestContext) iPriceTheLines(table *godog.Table) error {
	return c.price(table, nil, 0)
}

func (c *pricingTestContext) iPriceTheLinesWithThePromotion(table *godog.Table) error {
	return c.price(table, c.promotion, 0)
}

func (c *pricingTestContext) iRedeemPointsOnTheLines(points int64, table *godog.Table) error {
	return c.price(table, nil, points)
}

func (c *pricingTestContext) amountIs(field string, got decimal.Decimal, want string) error {
	if c.err != nil {
		return fmt.Errorf("pricing failed: %v", c.err)
	}
	if rounded := got.StringFixed(2); rounded != want {
		return fmt.Errorf("expected %s %s, got %s", field, want, rounded)
	}
	return nil
}

func (c *pricingTestContext) theSubtotalIs(want string) error {
	return c.amountIs("subtotal", c.breakdown.Subtotal, want)
}

func (c *pricingTestContext) theTierDiscountIs(want string) error {
	return c.amountIs("tier discount", c.breakdown.TierDiscount, want)
}

func (c *pricingTestContext) thePromotionDiscountIs(want string) error {
	return c.amountIs("promotion discount", c.breakdown.PromotionDiscount, want)
}

func (c *pricingTestContext) thePointsDiscountIs(want string) error {
	return c.amountIs("points discount", c.breakdown.PointsDiscount, want)
}

func (c *pricingTestContext) theTotalIs(want string) error {
	return c.amountIs("total", c.breakdown.Total, want)
}

func (c *pricingTestContext) theCustomerEarnsPoints(points int64) error {
	if c.err != nil {
		return fmt.Errorf("pricing failed: %v", c.err)
	}
	if c.breakdown.PointsEarned != points {
		return fmt.Errorf("expected %d points earned, got %d", points, c.breakdown.PointsEarned)
	}
	return nil
}

func (c *pricingTestContext) pricingFailsWith(kind string) error {
	if c.err == nil {
		return fmt.Errorf("expected %s, pricing succeeded", kind)
	}
	if got := models.Kind(c.err); got != kind {
		return fmt.Errorf("expected %s, got %s (%v)", kind, got, c.err)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &pricingTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the tier table:$`, tc.theTierTable)
	ctx.Step(`^today is "([^"]*)"$`, tc.todayIs)
	ctx.Step(`^a customer with (\d+) points$`, tc.aCustomerWithPoints)
	ctx.Step(`^the promotion "([^"]*)" running from "([^"]*)" to "([^"]*)" with discount ([0-9.]+)$`, tc.thePromotionRunningFromToWithDiscount)

	// When steps
	ctx.Step(`^I price the lines:$`, tc.iPriceTheLines)
	ctx.Step(`^I price the lines with the promotion:$`, tc.iPriceTheLinesWithThePromotion)
	ctx.Step(`^I redeem (\d+) points on the lines:$`, tc.iRedeemPointsOnTheLines)

	// Then steps
	ctx.Step(`^the subtotal is "([^"]*)"$`, tc.theSubtotalIs)
	ctx.Step(`^the tier discount is "([^"]*)"$`, tc.theTierDiscountIs)
	ctx.Step(`^the promotion discount is "([^"]*)"$`, tc.thePromotionDiscountIs)
	ctx.Step(`^the points discount is "([^"]*)"$`, tc.thePointsDiscountIs)
	ctx.Step(`^the total is "([^"]*)"$`, tc.theTotalIs)
	ctx.Step(`^the customer earns (\d+) points$`, tc.theCustomerEarnsPoints)
	ctx.Step(`^pricing fails with "([^"]*)"$`, tc.pricingFailsWith)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/order_pricing.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
