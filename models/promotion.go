package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PromotionStatus is the state of a promotion relative to an evaluation date
type PromotionStatus string

const (
	PromotionScheduled PromotionStatus = "Scheduled"
	PromotionActive    PromotionStatus = "Active"
	PromotionExpired   PromotionStatus = "Expired"
)

// Promotion represents a time-bounded discount campaign open to every customer.
// Start and End are calendar dates; both days are part of the campaign.
type Promotion struct {
	ID           int64           `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	Type         string          `json:"type" yaml:"type"`
	DiscountRate decimal.Decimal `json:"discountRate" yaml:"discountRate"`
	Start        time.Time       `json:"start" yaml:"start"`
	End          time.Time       `json:"end" yaml:"end"`
}

// PromotionPatch holds the fields to change on a promotion; nil fields are left untouched
type PromotionPatch struct {
	Name         *string
	Type         *string
	DiscountRate *decimal.Decimal
	Start        *time.Time
	End          *time.Time
}

func (p Promotion) EntityID() int64 { return p.ID }

func (p Promotion) WithID(id int64) Promotion {
	p.ID = id
	return p
}

func (p Promotion) SearchFields() []string { return []string{p.Name} }

// Validate checks required fields, the discount rate and the date range
func (p Promotion) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("name", "promotion name is required")
	}
	if err := ValidateRate("discountRate", p.DiscountRate); err != nil {
		return err
	}
	if p.Start.IsZero() || p.End.IsZero() {
		return NewValidationError("start", "start and end dates are required")
	}
	if dayKey(p.End) < dayKey(p.Start) {
		return NewValidationError("end", "end date %s is before start date %s",
			p.End.Format(DateLayout), p.Start.Format(DateLayout))
	}
	return nil
}

// StatusAt reports whether the promotion is scheduled, active or expired on the day of asOf
func (p Promotion) StatusAt(asOf time.Time) PromotionStatus {
	day := dayKey(asOf)
	switch {
	case day < dayKey(p.Start):
		return PromotionScheduled
	case day > dayKey(p.End):
		return PromotionExpired
	default:
		return PromotionActive
	}
}

// IsActive reports start <= asOf <= end at day granularity
func (p Promotion) IsActive(asOf time.Time) bool {
	return p.StatusAt(asOf) == PromotionActive
}

// Apply merges the patch into a copy of the promotion
func (pp PromotionPatch) Apply(p Promotion) Promotion {
	if pp.Name != nil {
		p.Name = strings.TrimSpace(*pp.Name)
	}
	if pp.Type != nil {
		p.Type = strings.TrimSpace(*pp.Type)
	}
	if pp.DiscountRate != nil {
		p.DiscountRate = *pp.DiscountRate
	}
	if pp.Start != nil {
		p.Start = *pp.Start
	}
	if pp.End != nil {
		p.End = *pp.End
	}
	return p
}

// DateLayout is the calendar date format used for promotion dates
const DateLayout = "2006-01-02"

// dayKey flattens the calendar date of t (in its own location) to yyyymmdd
func dayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
