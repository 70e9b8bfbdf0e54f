package controller

import (
	"github.com/urfave/cli/v2"

	"loyalty-admin/models"
	"loyalty-admin/service"
)

// CategoryController handles the categories commands
type CategoryController struct {
	service service.CatalogServiceInterface
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(svc service.CatalogServiceInterface) *CategoryController {
	return &CategoryController{service: svc}
}

// List handles: categories list [--filter TEXT]
// Example response:
// [
//   {"id": 1, "name": "Electronics", "description": "Electronic items"}
// ]
func (ctl *CategoryController) List(c *cli.Context) error {
	categories, err := ctl.service.ListCategories(c.Context, c.String("filter"))
	if err != nil {
		return err
	}
	return writeJSON(c, categories)
}

// Get handles: categories get ID
func (ctl *CategoryController) Get(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	category, err := ctl.service.GetCategory(c.Context, id)
	if err != nil {
		return err
	}
	return writeJSON(c, category)
}

// Add handles: categories add --name NAME --description TEXT
func (ctl *CategoryController) Add(c *cli.Context) error {
	category, err := ctl.service.CreateCategory(c.Context, models.Category{
		Name:        c.String("name"),
		Description: c.String("description"),
	})
	if err != nil {
		return err
	}
	return writeJSON(c, category)
}

// Update handles: categories update [--name NAME] [--description TEXT] ID
func (ctl *CategoryController) Update(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	category, err := ctl.service.UpdateCategory(c.Context, id, models.CategoryPatch{
		Name:        optionalString(c, "name"),
		Description: optionalString(c, "description"),
	})
	if err != nil {
		return err
	}
	return writeJSON(c, category)
}

// Remove handles: categories remove ID
func (ctl *CategoryController) Remove(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	if err := ctl.service.RemoveCategory(c.Context, id); err != nil {
		return err
	}
	return writeJSON(c, removed{ID: id, Removed: true})
}

// removed is the response of every remove command
type removed struct {
	ID      int64 `json:"id"`
	Removed bool  `json:"removed"`
}
