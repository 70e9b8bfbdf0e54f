package models

import (
	"github.com/shopspring/decimal"

	"loyalty-admin/utils"
)

// PriceBreakdown represents the complete pricing calculation result for an order.
// Amounts keep full decimal precision; Display rounds them for output.
type PriceBreakdown struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	TierName          string          `json:"tierName"`
	TierDiscountRate  decimal.Decimal `json:"tierDiscountRate"`
	TierDiscount      decimal.Decimal `json:"tierDiscount"`
	PromotionID       *int64          `json:"promotionId,omitempty"`
	PromotionDiscount decimal.Decimal `json:"promotionDiscount"`
	PointsRedeemed    int64           `json:"pointsRedeemed"`
	PointsDiscount    decimal.Decimal `json:"pointsDiscount"`
	Total             decimal.Decimal `json:"total"`
	PointsEarned      int64           `json:"pointsEarned"`
}

// PriceSummary is the display form of a breakdown, amounts rounded to two decimals
// Example:
// {
//   "subtotal": "$200.00",
//   "tierDiscount": "$20.00",
//   "promotionDiscount": "$50.00",
//   "pointsDiscount": "$0.00",
//   "total": "$130.00",
//   "pointsEarned": 13
// }
type PriceSummary struct {
	Subtotal          string `json:"subtotal"`
	TierName          string `json:"tierName"`
	TierDiscount      string `json:"tierDiscount"`
	PromotionDiscount string `json:"promotionDiscount"`
	PointsRedeemed    int64  `json:"pointsRedeemed"`
	PointsDiscount    string `json:"pointsDiscount"`
	Total             string `json:"total"`
	PointsEarned      int64  `json:"pointsEarned"`
}

// Display rounds every amount of the breakdown for output
func (b PriceBreakdown) Display(currency string) PriceSummary {
	return PriceSummary{
		Subtotal:          utils.FormatMoney(b.Subtotal, currency),
		TierName:          b.TierName,
		TierDiscount:      utils.FormatMoney(b.TierDiscount, currency),
		PromotionDiscount: utils.FormatMoney(b.PromotionDiscount, currency),
		PointsRedeemed:    b.PointsRedeemed,
		PointsDiscount:    utils.FormatMoney(b.PointsDiscount, currency),
		Total:             utils.FormatMoney(b.Total, currency),
		PointsEarned:      b.PointsEarned,
	}
}
