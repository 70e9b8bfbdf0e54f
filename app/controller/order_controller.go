package controller

import (
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"loyalty-admin/models"
	"loyalty-admin/service"
)

// OrderController handles the orders commands
type OrderController struct {
	service  service.OrderServiceInterface
	currency string
}

// NewOrderController creates a new OrderController; amounts are displayed in currency
func NewOrderController(svc service.OrderServiceInterface, currency string) *OrderController {
	return &OrderController{service: svc, currency: currency}
}

// orderView is an order with its breakdown rounded for display
type orderView struct {
	models.Order
	Summary models.PriceSummary `json:"summary"`
}

// quoteView is a quote with its breakdown rounded for display
type quoteView struct {
	models.OrderQuote
	Summary models.PriceSummary `json:"summary"`
}

func (ctl *OrderController) view(o models.Order) orderView {
	return orderView{Order: o, Summary: o.Breakdown.Display(ctl.currency)}
}

// List handles: orders list [--filter TEXT] [--status STATUS]; the filter matches customer name, email or order id
func (ctl *OrderController) List(c *cli.Context) error {
	orders, err := ctl.service.List(c.Context, c.String("filter"), c.String("status"))
	if err != nil {
		return err
	}
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, ctl.view(o))
	}
	return writeJSON(c, views)
}

// Get handles: orders get ID
func (ctl *OrderController) Get(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	order, err := ctl.service.Get(c.Context, id)
	if err != nil {
		return err
	}
	return writeJSON(c, ctl.view(order))
}

// Quote handles: orders quote --customer ID --line PRODUCT[:QTY]... [--promotion ID] [--redeem N]
// Nothing is committed.
// Example:
// orders quote --customer 1 --line 1 --line 2:2 --promotion 1 --redeem 100
// Example response (summary part):
// {
//   "subtotal": "$757.00",
//   "tierName": "Gold",
//   "tierDiscount": "$75.70",
//   "promotionDiscount": "$151.40",
//   "pointsRedeemed": 100,
//   "pointsDiscount": "$1.00",
//   "total": "$528.90",
//   "pointsEarned": 52
// }
func (ctl *OrderController) Quote(c *cli.Context) error {
	req, err := orderRequest(c)
	if err != nil {
		return err
	}
	quote, err := ctl.service.Quote(c.Context, req)
	if err != nil {
		return err
	}
	return writeJSON(c, quoteView{OrderQuote: quote, Summary: quote.Breakdown.Display(ctl.currency)})
}

// Place handles: orders place --customer ID --line PRODUCT[:QTY]... [--promotion ID] [--redeem N] [--instructions TEXT]
func (ctl *OrderController) Place(c *cli.Context) error {
	req, err := orderRequest(c)
	if err != nil {
		return err
	}
	order, err := ctl.service.PlaceOrder(c.Context, req)
	if err != nil {
		return err
	}
	return writeJSON(c, ctl.view(order))
}

// SetStatus handles: orders status --set Pending|Shipped|Delivered|Cancelled ID
func (ctl *OrderController) SetStatus(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	status, err := models.ParseOrderStatus(c.String("set"))
	if err != nil {
		return err
	}
	order, err := ctl.service.UpdateStatus(c.Context, id, status)
	if err != nil {
		return err
	}
	return writeJSON(c, ctl.view(order))
}

// Remove handles: orders remove ID
func (ctl *OrderController) Remove(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	if err := ctl.service.Remove(c.Context, id); err != nil {
		return err
	}
	return writeJSON(c, removed{ID: id, Removed: true})
}

func orderRequest(c *cli.Context) (models.OrderRequest, error) {
	lines, err := parseLines(c.StringSlice("line"))
	if err != nil {
		return models.OrderRequest{}, err
	}
	req := models.OrderRequest{
		CustomerID:          c.Int64("customer"),
		Lines:               lines,
		PromotionID:         optionalInt64(c, "promotion"),
		PointsToRedeem:      c.Int64("redeem"),
		SpecialInstructions: c.String("instructions"),
	}
	return req, nil
}

// parseLines parses PRODUCT[:QTY] values; the quantity defaults to 1
func parseLines(values []string) ([]models.OrderLineRequest, error) {
	lines := make([]models.OrderLineRequest, 0, len(values))
	for _, v := range values {
		productPart, qtyPart, hasQty := strings.Cut(strings.TrimSpace(v), ":")
		productID, err := strconv.ParseInt(productPart, 10, 64)
		if err != nil {
			return nil, models.NewValidationError("line", "invalid product id in %q", v)
		}
		qty := 1
		if hasQty {
			if qty, err = strconv.Atoi(qtyPart); err != nil {
				return nil, models.NewValidationError("line", "invalid quantity in %q", v)
			}
		}
		lines = append(lines, models.OrderLineRequest{ProductID: productID, Quantity: qty})
	}
	return lines, nil
}
