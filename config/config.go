// Package config loads the environment settings and the data file of the admin tool.
package config

import (
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"loyalty-admin/models"
	"loyalty-admin/service"
)

// EnvProduction selects production logging and skips .env loading
const EnvProduction = "production"

// Config represents the environment configuration
type Config struct {
	Env                   string          `envconfig:"ENV" default:"development"`
	LogLevel              string          `envconfig:"LOG_LEVEL" default:"info"`
	DataFile              string          `envconfig:"DATA_FILE" default:"data/seed.yaml"`
	Currency              string          `envconfig:"CURRENCY" default:"USD"`
	PointsToCurrencyRate  decimal.Decimal `envconfig:"POINTS_TO_CURRENCY_RATE" default:"0.01"`
	EarnRate              decimal.Decimal `envconfig:"EARN_RATE" default:"0.1"`
	MaxInstructionsLength int             `envconfig:"MAX_INSTRUCTIONS_LENGTH" default:"200"`
}

// IsProduction reports whether ENV is production
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// Load reads the configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to read environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the rates and limits
func (c Config) Validate() error {
	if c.PointsToCurrencyRate.IsNegative() {
		return models.NewValidationError("POINTS_TO_CURRENCY_RATE", "rate cannot be negative, got %s", c.PointsToCurrencyRate)
	}
	if c.EarnRate.IsNegative() {
		return models.NewValidationError("EARN_RATE", "rate cannot be negative, got %s", c.EarnRate)
	}
	if c.MaxInstructionsLength <= 0 {
		return models.NewValidationError("MAX_INSTRUCTIONS_LENGTH", "must be positive, got %d", c.MaxInstructionsLength)
	}
	return nil
}

// Fixture represents the data file: the tier table, the promotion list and the sample catalog
type Fixture struct {
	Tiers      []models.LoyaltyTier `yaml:"tiers"`
	Promotions []models.Promotion   `yaml:"promotions"`
	Categories []models.Category    `yaml:"categories"`
	Products   []models.Product     `yaml:"products"`
	Customers  []models.Customer    `yaml:"customers"`
}

// LoadFixture reads and validates the data file at path
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, errors.Wrapf(err, "failed to read data file %s", path)
	}
	return ParseFixture(data)
}

// ParseFixture decodes and validates a data file
func ParseFixture(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, errors.Wrap(err, "failed to parse data file")
	}
	if err := f.Validate(); err != nil {
		return Fixture{}, errors.Wrap(err, "invalid data file")
	}
	return f, nil
}

// Validate checks every entry and that a non-empty tier table has a floor tier.
// Customers need a tier table to resolve their tier.
func (f Fixture) Validate() error {
	if (len(f.Tiers) > 0 || len(f.Customers) > 0) && !service.HasFloorTier(f.Tiers) {
		return errors.Wrap(models.ErrNoTierConfigured, "tiers")
	}
	for i, t := range f.Tiers {
		if err := t.Validate(); err != nil {
			return errors.Wrapf(err, "tiers[%d]", i)
		}
	}
	for i, p := range f.Promotions {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "promotions[%d]", i)
		}
	}
	categories := make(map[int64]bool, len(f.Categories))
	for i, c := range f.Categories {
		if err := c.Validate(); err != nil {
			return errors.Wrapf(err, "categories[%d]", i)
		}
		categories[c.ID] = true
	}
	for i, p := range f.Products {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "products[%d]", i)
		}
		if !categories[p.CategoryID] {
			return errors.Wrapf(models.NewValidationError("categoryId", "category %d is not in the data file", p.CategoryID), "products[%d]", i)
		}
	}
	for i, c := range f.Customers {
		if err := c.Validate(); err != nil {
			return errors.Wrapf(err, "customers[%d]", i)
		}
	}
	return nil
}
