package models

import "time"

// Activity types recorded against customers
const (
	ActivityPurchase     = "Purchase"
	ActivityRedemption   = "Redemption"
	ActivityCancellation = "Cancellation"
)

// CustomerActivity represents one loyalty event in a customer's history
type CustomerActivity struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customerId"`
	CustomerName string    `json:"customerName"`
	ActivityType string    `json:"activityType"`
	OrderID      int64     `json:"orderId,omitempty"`
	Promotion    string    `json:"promotion,omitempty"`
	Points       int64     `json:"points"` // signed delta applied to the balance
	OccurredAt   time.Time `json:"occurredAt"`
}

func (a CustomerActivity) EntityID() int64 { return a.ID }

func (a CustomerActivity) WithID(id int64) CustomerActivity {
	a.ID = id
	return a
}

func (a CustomerActivity) SearchFields() []string { return []string{a.CustomerName, a.Promotion} }
