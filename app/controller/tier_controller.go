package controller

import (
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"loyalty-admin/models"
	"loyalty-admin/service"
)

// TierController handles the tiers commands
type TierController struct {
	service service.TierServiceInterface
}

// NewTierController creates a new TierController
func NewTierController(svc service.TierServiceInterface) *TierController {
	return &TierController{service: svc}
}

// List handles: tiers list [--filter TEXT]
func (ctl *TierController) List(c *cli.Context) error {
	tiers, err := ctl.service.List(c.Context, c.String("filter"))
	if err != nil {
		return err
	}
	return writeJSON(c, tiers)
}

// Get handles: tiers get ID
func (ctl *TierController) Get(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	tier, err := ctl.service.Get(c.Context, id)
	if err != nil {
		return err
	}
	return writeJSON(c, tier)
}

// Resolve handles: tiers resolve --points N
// Example response:
// {"id": 2, "name": "Gold", "pointsThreshold": 500, "discountRate": "0.1", "bonusPointsRate": "1.5", "perks": "Free shipping"}
func (ctl *TierController) Resolve(c *cli.Context) error {
	tier, err := ctl.service.Resolve(c.Context, c.Int64("points"))
	if err != nil {
		return err
	}
	return writeJSON(c, tier)
}

// Add handles: tiers add --name NAME --threshold N --discount RATE [--bonus RATE] [--perks TEXT]
func (ctl *TierController) Add(c *cli.Context) error {
	discount, err := decimalFlag(c, "discount")
	if err != nil {
		return err
	}
	bonus := decimal.Zero
	if c.IsSet("bonus") {
		if bonus, err = decimalFlag(c, "bonus"); err != nil {
			return err
		}
	}
	tier, err := ctl.service.Create(c.Context, models.LoyaltyTier{
		Name:            c.String("name"),
		PointsThreshold: c.Int64("threshold"),
		DiscountRate:    discount,
		BonusPointsRate: bonus,
		Perks:           c.String("perks"),
	})
	if err != nil {
		return err
	}
	return writeJSON(c, tier)
}

// Update handles: tiers update [--name] [--threshold] [--discount] [--bonus] [--perks] ID
func (ctl *TierController) Update(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	discount, err := optionalDecimalFlag(c, "discount")
	if err != nil {
		return err
	}
	bonus, err := optionalDecimalFlag(c, "bonus")
	if err != nil {
		return err
	}
	tier, err := ctl.service.Update(c.Context, id, models.LoyaltyTierPatch{
		Name:            optionalString(c, "name"),
		PointsThreshold: optionalInt64(c, "threshold"),
		DiscountRate:    discount,
		BonusPointsRate: bonus,
		Perks:           optionalString(c, "perks"),
	})
	if err != nil {
		return err
	}
	return writeJSON(c, tier)
}

// Remove handles: tiers remove ID
func (ctl *TierController) Remove(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	if err := ctl.service.Remove(c.Context, id); err != nil {
		return err
	}
	return writeJSON(c, removed{ID: id, Removed: true})
}
