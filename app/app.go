package app

import (
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"loyalty-admin/app/controller"
	"loyalty-admin/app/router"
	"loyalty-admin/config"
	"loyalty-admin/models"
	"loyalty-admin/pricing"
	"loyalty-admin/repository"
	"loyalty-admin/service"
)

// Initialize loads the data file named by the configuration and wires the application
func Initialize(cfg config.Config, logger *zap.Logger) (*cli.App, error) {
	fixture, err := config.LoadFixture(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	logger.Info("data file loaded",
		zap.String("path", cfg.DataFile),
		zap.Int("tiers", len(fixture.Tiers)),
		zap.Int("promotions", len(fixture.Promotions)),
		zap.Int("products", len(fixture.Products)),
		zap.Int("customers", len(fixture.Customers)))
	return New(cfg, fixture, time.Now, logger)
}

// New wires stores seeded with fixture, the services and the command tree.
// clock supplies the current time to promotion evaluation and order placement.
func New(cfg config.Config, fixture config.Fixture, clock func() time.Time, logger *zap.Logger) (*cli.App, error) {
	if clock == nil {
		clock = time.Now
	}

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository()
	productRepo := repository.NewProductRepository()
	tierRepo := repository.NewTierRepository()
	customerRepo := repository.NewCustomerRepository()
	promotionRepo := repository.NewPromotionRepository()
	orderRepo := repository.NewOrderRepository()
	activityRepo := repository.NewActivityRepository()

	if err := seed(fixture, tierRepo, promotionRepo, categoryRepo, productRepo, customerRepo); err != nil {
		return nil, errors.Wrap(err, "failed to seed data")
	}

	// Initialize services
	resolver := service.NewTierResolver(tierRepo, logger)
	engine, err := pricing.NewEngine(pricing.Settings{
		PointsToCurrencyRate: cfg.PointsToCurrencyRate,
		EarnRate:             cfg.EarnRate,
		Clock:                clock,
	}, resolver, logger)
	if err != nil {
		return nil, err
	}
	catalogService := service.NewCatalogService(categoryRepo, productRepo, logger)
	customerService := service.NewCustomerService(customerRepo, orderRepo, resolver, logger)
	tierService := service.NewTierService(tierRepo, resolver, customerService, logger)
	promotionService := service.NewPromotionService(promotionRepo, clock, logger)
	activityService := service.NewActivityService(activityRepo, logger)
	dashboardService := service.NewDashboardService(customerRepo, promotionRepo, orderRepo, clock)
	orderService := service.NewOrderService(service.OrderServiceConfig{
		Orders:                orderRepo,
		Customers:             customerRepo,
		Products:              productRepo,
		Promotions:            promotionRepo,
		Pricer:                engine,
		Tiers:                 resolver,
		Activity:              activityService,
		Clock:                 clock,
		MaxInstructionsLength: cfg.MaxInstructionsLength,
		Logger:                logger,
	})

	// Create controllers
	controllers := &router.Controllers{
		Category:  controller.NewCategoryController(catalogService),
		Product:   controller.NewProductController(catalogService),
		Customer:  controller.NewCustomerController(customerService),
		Tier:      controller.NewTierController(tierService),
		Promotion: controller.NewPromotionController(promotionService, clock),
		Order:     controller.NewOrderController(orderService, cfg.Currency),
		Activity:  controller.NewActivityController(activityService, dashboardService),
	}

	return router.SetupCommands(controllers), nil
}

// seed inserts the fixture under its own ids; customer tiers are resolved from their points
func seed(
	f config.Fixture,
	tiers *repository.Store[models.LoyaltyTier],
	promotions *repository.Store[models.Promotion],
	categories *repository.Store[models.Category],
	products *repository.Store[models.Product],
	customers *repository.Store[models.Customer],
) error {
	members := make([]models.Customer, 0, len(f.Customers))
	for _, c := range f.Customers {
		tier, err := service.ResolveTier(f.Tiers, c.Points)
		if err != nil {
			return errors.Wrapf(err, "customer %q", c.Name)
		}
		c.TierID = tier.ID
		members = append(members, c)
	}

	if err := insertAll(tiers, f.Tiers); err != nil {
		return err
	}
	if err := insertAll(promotions, f.Promotions); err != nil {
		return err
	}
	if err := insertAll(categories, f.Categories); err != nil {
		return err
	}
	if err := insertAll(products, f.Products); err != nil {
		return err
	}
	return insertAll(customers, members)
}

func insertAll[T repository.Entity[T]](store *repository.Store[T], items []T) error {
	for _, item := range items {
		if _, err := store.Insert(item); err != nil {
			return errors.Wrapf(err, "%s %d", store.Name(), item.EntityID())
		}
	}
	return nil
}
