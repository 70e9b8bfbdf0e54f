package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LoyaltyTier represents a customer tier unlocked at a points threshold
type LoyaltyTier struct {
	ID              int64           `json:"id" yaml:"id"`
	Name            string          `json:"name" yaml:"name"`
	PointsThreshold int64           `json:"pointsThreshold" yaml:"pointsThreshold"`
	DiscountRate    decimal.Decimal `json:"discountRate" yaml:"discountRate"`
	BonusPointsRate decimal.Decimal `json:"bonusPointsRate" yaml:"bonusPointsRate"`
	Perks           string          `json:"perks,omitempty" yaml:"perks"`
}

// LoyaltyTierPatch holds the fields to change on a tier; nil fields are left untouched
type LoyaltyTierPatch struct {
	Name            *string
	PointsThreshold *int64
	DiscountRate    *decimal.Decimal
	BonusPointsRate *decimal.Decimal
	Perks           *string
}

func (t LoyaltyTier) EntityID() int64 { return t.ID }

func (t LoyaltyTier) WithID(id int64) LoyaltyTier {
	t.ID = id
	return t
}

func (t LoyaltyTier) SearchFields() []string { return []string{t.Name} }

// Validate checks required fields and ranges
func (t LoyaltyTier) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return NewValidationError("name", "tier name is required")
	}
	if t.PointsThreshold < 0 {
		return NewValidationError("pointsThreshold", "points threshold cannot be negative, got %d", t.PointsThreshold)
	}
	if err := ValidateRate("discountRate", t.DiscountRate); err != nil {
		return err
	}
	if t.BonusPointsRate.IsNegative() {
		return NewValidationError("bonusPointsRate", "bonus points rate cannot be negative, got %s", t.BonusPointsRate)
	}
	return nil
}

// Apply merges the patch into a copy of the tier
func (p LoyaltyTierPatch) Apply(t LoyaltyTier) LoyaltyTier {
	if p.Name != nil {
		t.Name = strings.TrimSpace(*p.Name)
	}
	if p.PointsThreshold != nil {
		t.PointsThreshold = *p.PointsThreshold
	}
	if p.DiscountRate != nil {
		t.DiscountRate = *p.DiscountRate
	}
	if p.BonusPointsRate != nil {
		t.BonusPointsRate = *p.BonusPointsRate
	}
	if p.Perks != nil {
		t.Perks = strings.TrimSpace(*p.Perks)
	}
	return t
}

// ValidateRate checks that a rate is a fraction in [0,1]
func ValidateRate(field string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return NewValidationError(field, "rate must be between 0 and 1, got %s", rate)
	}
	return nil
}
