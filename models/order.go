package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfillment state of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
	OrderCancelled OrderStatus = "Cancelled"
)

// orderTransitions lists the statuses reachable from each status
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderShipped, OrderCancelled},
	OrderShipped: {OrderDelivered, OrderCancelled},
}

// ParseOrderStatus parses a status name, case-sensitive as displayed
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderPending, OrderShipped, OrderDelivered, OrderCancelled:
		return st, nil
	}
	return "", NewValidationError("status", "unknown order status %q", s)
}

// CanTransitionTo reports whether the order may move from s to next
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderLineItem represents a product line of an order with its unit price snapshot
type OrderLineItem struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}

// Validate checks the unit price and quantity of the line
func (l OrderLineItem) Validate() error {
	if l.UnitPrice.IsNegative() {
		return NewValidationError("unitPrice", "unit price cannot be negative, got %s", l.UnitPrice)
	}
	if l.Quantity <= 0 {
		return NewValidationError("quantity", "quantity must be greater than 0, got %d", l.Quantity)
	}
	return nil
}

// LineTotal returns unit price x quantity
func (l OrderLineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order represents a committed customer order
type Order struct {
	ID                  int64           `json:"id"`
	Reference           uuid.UUID       `json:"reference"`
	CustomerID          int64           `json:"customerId"`
	CustomerName        string          `json:"customerName"`
	CustomerEmail       string          `json:"customerEmail"`
	Lines               []OrderLineItem `json:"lines"`
	PromotionID         *int64          `json:"promotionId,omitempty"`
	PointsRedeemed      int64           `json:"pointsRedeemed"`
	Breakdown           PriceBreakdown  `json:"breakdown"`
	Status              OrderStatus     `json:"status"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
	PlacedAt            time.Time       `json:"placedAt"`
}

func (o Order) EntityID() int64 { return o.ID }

func (o Order) WithID(id int64) Order {
	o.ID = id
	return o
}

func (o Order) SearchFields() []string {
	return []string{o.CustomerName, o.CustomerEmail, strconv.FormatInt(o.ID, 10)}
}

// Clone returns a copy that shares no slices or pointers with o
func (o Order) Clone() Order {
	if o.Lines != nil {
		lines := make([]OrderLineItem, len(o.Lines))
		copy(lines, o.Lines)
		o.Lines = lines
	}
	if o.PromotionID != nil {
		id := *o.PromotionID
		o.PromotionID = &id
	}
	if o.Breakdown.PromotionID != nil {
		id := *o.Breakdown.PromotionID
		o.Breakdown.PromotionID = &id
	}
	return o
}

// OrderLineRequest represents one requested product line
type OrderLineRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// OrderRequest represents the input of the new-order form
type OrderRequest struct {
	CustomerID          int64              `json:"customerId"`
	Lines               []OrderLineRequest `json:"lines"`
	PromotionID         *int64             `json:"promotionId,omitempty"`
	PointsToRedeem      int64              `json:"pointsToRedeem"`
	SpecialInstructions string             `json:"specialInstructions,omitempty"`
}

// OrderQuote is a priced order request that has not been committed
type OrderQuote struct {
	CustomerID    int64           `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	Lines         []OrderLineItem `json:"lines"`
	PromotionName string          `json:"promotionName,omitempty"`
	Breakdown     PriceBreakdown  `json:"breakdown"`
	PointsBalance int64           `json:"pointsBalance"`
	BalanceAfter  int64           `json:"balanceAfter"`
}
