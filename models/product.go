package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product represents a sellable product
type Product struct {
	ID          int64           `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
	CategoryID  int64           `json:"categoryId" yaml:"categoryId"`
	Description string          `json:"description" yaml:"description"`
	Stock       int             `json:"stock" yaml:"stock"`
}

// ProductPatch holds the fields to change on a product; nil fields are left untouched
type ProductPatch struct {
	Name        *string
	Price       *decimal.Decimal
	CategoryID  *int64
	Description *string
	Stock       *int
}

func (p Product) EntityID() int64 { return p.ID }

func (p Product) WithID(id int64) Product {
	p.ID = id
	return p
}

func (p Product) SearchFields() []string { return []string{p.Name} }

// Validate checks required fields and ranges. Category existence is checked by the service.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return NewValidationError("name", "product name is required")
	}
	if p.Price.IsNegative() {
		return NewValidationError("price", "price cannot be negative, got %s", p.Price)
	}
	if p.CategoryID <= 0 {
		return NewValidationError("categoryId", "category is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return NewValidationError("description", "description is required")
	}
	if p.Stock < 0 {
		return NewValidationError("stock", "stock cannot be negative, got %d", p.Stock)
	}
	return nil
}

// Apply merges the patch into a copy of the product
func (pp ProductPatch) Apply(p Product) Product {
	if pp.Name != nil {
		p.Name = strings.TrimSpace(*pp.Name)
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.CategoryID != nil {
		p.CategoryID = *pp.CategoryID
	}
	if pp.Description != nil {
		p.Description = strings.TrimSpace(*pp.Description)
	}
	if pp.Stock != nil {
		p.Stock = *pp.Stock
	}
	return p
}
