package controller

import (
	"time"

	"github.com/urfave/cli/v2"

	"loyalty-admin/models"
	"loyalty-admin/service"
)

// PromotionController handles the promotions commands
type PromotionController struct {
	service service.PromotionServiceInterface
	clock   func() time.Time
}

// NewPromotionController creates a new PromotionController; clock dates the status of each promotion
func NewPromotionController(svc service.PromotionServiceInterface, clock func() time.Time) *PromotionController {
	if clock == nil {
		clock = time.Now
	}
	return &PromotionController{service: svc, clock: clock}
}

// promotionView is a promotion with its status as of today
type promotionView struct {
	models.Promotion
	Status models.PromotionStatus `json:"status"`
}

func (ctl *PromotionController) views(promos []models.Promotion) []promotionView {
	now := ctl.clock()
	out := make([]promotionView, 0, len(promos))
	for _, p := range promos {
		out = append(out, promotionView{Promotion: p, Status: p.StatusAt(now)})
	}
	return out
}

// List handles: promotions list [--filter TEXT] [--status All|Active|Expired|Scheduled]
// Example response:
// [
//   {"id": 1, "name": "Summer Sale", "type": "Seasonal", "discountRate": "0.2",
//    "start": "2024-06-01T00:00:00Z", "end": "2024-08-31T00:00:00Z", "status": "Active"}
// ]
func (ctl *PromotionController) List(c *cli.Context) error {
	promos, err := ctl.service.List(c.Context, c.String("filter"), c.String("status"))
	if err != nil {
		return err
	}
	return writeJSON(c, ctl.views(promos))
}

// Active handles: promotions active [--as-of YYYY-MM-DD]
func (ctl *PromotionController) Active(c *cli.Context) error {
	var asOf time.Time
	if c.IsSet("as-of") {
		var err error
		if asOf, err = dateFlag(c, "as-of"); err != nil {
			return err
		}
	}
	promos, err := ctl.service.ActiveAt(c.Context, asOf)
	if err != nil {
		return err
	}
	return writeJSON(c, promos)
}

// Get handles: promotions get ID
func (ctl *PromotionController) Get(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	promo, err := ctl.service.Get(c.Context, id)
	if err != nil {
		return err
	}
	return writeJSON(c, ctl.views([]models.Promotion{promo})[0])
}

// Add handles: promotions add --name NAME [--type TYPE] --discount RATE --start DATE --end DATE
func (ctl *PromotionController) Add(c *cli.Context) error {
	discount, err := decimalFlag(c, "discount")
	if err != nil {
		return err
	}
	start, err := dateFlag(c, "start")
	if err != nil {
		return err
	}
	end, err := dateFlag(c, "end")
	if err != nil {
		return err
	}
	promo, err := ctl.service.Create(c.Context, models.Promotion{
		Name:         c.String("name"),
		Type:         c.String("type"),
		DiscountRate: discount,
		Start:        start,
		End:          end,
	})
	if err != nil {
		return err
	}
	return writeJSON(c, promo)
}

// Update handles: promotions update [--name] [--type] [--discount] [--start] [--end] ID
func (ctl *PromotionController) Update(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	discount, err := optionalDecimalFlag(c, "discount")
	if err != nil {
		return err
	}
	start, err := optionalDateFlag(c, "start")
	if err != nil {
		return err
	}
	end, err := optionalDateFlag(c, "end")
	if err != nil {
		return err
	}
	promo, err := ctl.service.Update(c.Context, id, models.PromotionPatch{
		Name:         optionalString(c, "name"),
		Type:         optionalString(c, "type"),
		DiscountRate: discount,
		Start:        start,
		End:          end,
	})
	if err != nil {
		return err
	}
	return writeJSON(c, promo)
}

// Remove handles: promotions remove ID
func (ctl *PromotionController) Remove(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	if err := ctl.service.Remove(c.Context, id); err != nil {
		return err
	}
	return writeJSON(c, removed{ID: id, Removed: true})
}
