package models

import "strings"

// Category represents a product category
type Category struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// CategoryPatch holds the fields to change on a category; nil fields are left untouched
type CategoryPatch struct {
	Name        *string
	Description *string
}

func (c Category) EntityID() int64 { return c.ID }

func (c Category) WithID(id int64) Category {
	c.ID = id
	return c
}

func (c Category) SearchFields() []string { return []string{c.Name} }

// Validate checks required fields
func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("name", "category name is required")
	}
	if strings.TrimSpace(c.Description) == "" {
		return NewValidationError("description", "description is required")
	}
	return nil
}

// Apply merges the patch into a copy of the category
func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		c.Description = strings.TrimSpace(*p.Description)
	}
	return c
}
