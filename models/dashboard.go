package models

// Statistics represents the summary cards of the dashboard home
type Statistics struct {
	TotalCustomers   int   `json:"totalCustomers"`
	ActivePromotions int   `json:"activePromotions"`
	PointsIssued     int64 `json:"pointsIssued"`
	Redemptions      int   `json:"redemptions"`
}
