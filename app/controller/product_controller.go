package controller

import (
	"github.com/urfave/cli/v2"

	"loyalty-admin/models"
	"loyalty-admin/service"
)

// ProductController handles the products commands
type ProductController struct {
	service service.CatalogServiceInterface
}

// NewProductController creates a new ProductController
func NewProductController(svc service.CatalogServiceInterface) *ProductController {
	return &ProductController{service: svc}
}

// List handles: products list [--filter TEXT] [--category ID]
func (ctl *ProductController) List(c *cli.Context) error {
	products, err := ctl.service.ListProducts(c.Context, c.String("filter"), c.Int64("category"))
	if err != nil {
		return err
	}
	return writeJSON(c, products)
}

// Get handles: products get ID
func (ctl *ProductController) Get(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	product, err := ctl.service.GetProduct(c.Context, id)
	if err != nil {
		return err
	}
	return writeJSON(c, product)
}

// Add handles: products add --name NAME --price AMOUNT --category ID --description TEXT [--stock N]
// Example:
// products add --name Laptop --price 1299.99 --category 1 --description "14 inch" --stock 5
// Example response:
// {"id": 3, "name": "Laptop", "price": "1299.99", "categoryId": 1, "description": "14 inch", "stock": 5}
func (ctl *ProductController) Add(c *cli.Context) error {
	price, err := decimalFlag(c, "price")
	if err != nil {
		return err
	}
	product, err := ctl.service.CreateProduct(c.Context, models.Product{
		Name:        c.String("name"),
		Price:       price,
		CategoryID:  c.Int64("category"),
		Description: c.String("description"),
		Stock:       c.Int("stock"),
	})
	if err != nil {
		return err
	}
	return writeJSON(c, product)
}

// Update handles: products update [--name] [--price] [--category] [--description] [--stock] ID
func (ctl *ProductController) Update(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	price, err := optionalDecimalFlag(c, "price")
	if err != nil {
		return err
	}
	product, err := ctl.service.UpdateProduct(c.Context, id, models.ProductPatch{
		Name:        optionalString(c, "name"),
		Price:       price,
		CategoryID:  optionalInt64(c, "category"),
		Description: optionalString(c, "description"),
		Stock:       optionalInt(c, "stock"),
	})
	if err != nil {
		return err
	}
	return writeJSON(c, product)
}

// Remove handles: products remove ID
func (ctl *ProductController) Remove(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	if err := ctl.service.RemoveProduct(c.Context, id); err != nil {
		return err
	}
	return writeJSON(c, removed{ID: id, Removed: true})
}
