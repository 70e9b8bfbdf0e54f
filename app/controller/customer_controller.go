package controller

import (
	"github.com/urfave/cli/v2"

	"loyalty-admin/models"
	"loyalty-admin/service"
)

// CustomerController handles the customers commands
type CustomerController struct {
	service service.CustomerServiceInterface
}

// NewCustomerController creates a new CustomerController
func NewCustomerController(svc service.CustomerServiceInterface) *CustomerController {
	return &CustomerController{service: svc}
}

// List handles: customers list [--filter TEXT]; the filter matches name or email
// Example response:
// [
//   {"id": 1, "name": "John Doe", "email": "john.doe@example.com", "tierId": 2, "points": 500}
// ]
func (ctl *CustomerController) List(c *cli.Context) error {
	customers, err := ctl.service.List(c.Context, c.String("filter"))
	if err != nil {
		return err
	}
	return writeJSON(c, customers)
}

// Get handles: customers get ID
func (ctl *CustomerController) Get(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	customer, err := ctl.service.Get(c.Context, id)
	if err != nil {
		return err
	}
	return writeJSON(c, customer)
}

// Add handles: customers add --name NAME --email EMAIL [--points N]
func (ctl *CustomerController) Add(c *cli.Context) error {
	customer, err := ctl.service.Create(c.Context, models.Customer{
		Name:   c.String("name"),
		Email:  c.String("email"),
		Points: c.Int64("points"),
	})
	if err != nil {
		return err
	}
	return writeJSON(c, customer)
}

// Update handles: customers update [--name NAME] [--email EMAIL] [--points N] ID
func (ctl *CustomerController) Update(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	customer, err := ctl.service.Update(c.Context, id, models.CustomerPatch{
		Name:   optionalString(c, "name"),
		Email:  optionalString(c, "email"),
		Points: optionalInt64(c, "points"),
	})
	if err != nil {
		return err
	}
	return writeJSON(c, customer)
}

// AdjustPoints handles: customers points --delta N ID
func (ctl *CustomerController) AdjustPoints(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	customer, err := ctl.service.AdjustPoints(c.Context, id, c.Int64("delta"))
	if err != nil {
		return err
	}
	return writeJSON(c, customer)
}

// Remove handles: customers remove ID
func (ctl *CustomerController) Remove(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	if err := ctl.service.Remove(c.Context, id); err != nil {
		return err
	}
	return writeJSON(c, removed{ID: id, Removed: true})
}
