package controller

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"loyalty-admin/models"
)

// writeJSON writes v as indented JSON to the app writer
func writeJSON(c *cli.Context, v interface{}) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// idArg parses the first positional argument as an entity id
func idArg(c *cli.Context) (int64, error) {
	raw := c.Args().First()
	if raw == "" {
		return 0, models.NewValidationError("id", "id argument is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("id", "invalid id %q", raw)
	}
	return id, nil
}

func decimalFlag(c *cli.Context, name string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(c.String(name))
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, models.NewValidationError(name, "invalid number %q", raw)
	}
	return d, nil
}

func optionalDecimalFlag(c *cli.Context, name string) (*decimal.Decimal, error) {
	if !c.IsSet(name) {
		return nil, nil
	}
	d, err := decimalFlag(c, name)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func dateFlag(c *cli.Context, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.String(name))
	t, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return time.Time{}, models.NewValidationError(name, "invalid date %q, expected YYYY-MM-DD", raw)
	}
	return t, nil
}

func optionalDateFlag(c *cli.Context, name string) (*time.Time, error) {
	if !c.IsSet(name) {
		return nil, nil
	}
	t, err := dateFlag(c, name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optionalString(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	v := c.String(name)
	return &v
}

func optionalInt64(c *cli.Context, name string) *int64 {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Int64(name)
	return &v
}

func optionalInt(c *cli.Context, name string) *int {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Int(name)
	return &v
}
