package controller

import (
	"github.com/urfave/cli/v2"

	"loyalty-admin/service"
)

// ActivityController handles the activity and dashboard commands
type ActivityController struct {
	activity  service.ActivityServiceInterface
	dashboard service.DashboardServiceInterface
}

// NewActivityController creates a new ActivityController
func NewActivityController(activity service.ActivityServiceInterface, dashboard service.DashboardServiceInterface) *ActivityController {
	return &ActivityController{activity: activity, dashboard: dashboard}
}

// List handles: activity list [--filter TEXT] [--type TYPE]; the filter matches customer or promotion name
func (ctl *ActivityController) List(c *cli.Context) error {
	activities, err := ctl.activity.List(c.Context, c.String("filter"), c.String("type"))
	if err != nil {
		return err
	}
	return writeJSON(c, activities)
}

// Types handles: activity types
func (ctl *ActivityController) Types(c *cli.Context) error {
	types, err := ctl.activity.ActivityTypes(c.Context)
	if err != nil {
		return err
	}
	return writeJSON(c, types)
}

// Dashboard handles: dashboard
// Example response:
// {"totalCustomers": 2, "activePromotions": 1, "pointsIssued": 52, "redemptions": 1}
func (ctl *ActivityController) Dashboard(c *cli.Context) error {
	stats, err := ctl.dashboard.Statistics(c.Context)
	if err != nil {
		return err
	}
	return writeJSON(c, stats)
}
