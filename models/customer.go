package models

import "strings"

// Customer represents a loyalty program member.
// TierID is derived from Points by the tier resolver and refreshed whenever either changes.
type Customer struct {
	ID     int64  `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
	TierID int64  `json:"tierId" yaml:"-"`
	Points int64  `json:"points" yaml:"points"`
}

// CustomerPatch holds the fields to change on a customer; nil fields are left untouched
type CustomerPatch struct {
	Name   *string
	Email  *string
	Points *int64
}

func (c Customer) EntityID() int64 { return c.ID }

func (c Customer) WithID(id int64) Customer {
	c.ID = id
	return c
}

func (c Customer) SearchFields() []string { return []string{c.Name, c.Email} }

// Validate checks required fields and the points balance
func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", "customer name is required")
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return NewValidationError("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return NewValidationError("email", "invalid email %q", email)
	}
	if c.Points < 0 {
		return NewValidationError("points", "points balance cannot be negative, got %d", c.Points)
	}
	return nil
}

// Apply merges the patch into a copy of the customer
func (p CustomerPatch) Apply(c Customer) Customer {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		c.Email = strings.TrimSpace(*p.Email)
	}
	if p.Points != nil {
		c.Points = *p.Points
	}
	return c
}
