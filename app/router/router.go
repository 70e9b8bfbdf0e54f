package router

import (
	"bufio"
	"fmt"
	"io"

	"github.com/google/shlex"
	"github.com/urfave/cli/v2"

	"loyalty-admin/app/controller"
	"loyalty-admin/models"
)

// AppName is the name of the command line tool
const AppName = "loyalty-admin"

type Controllers struct {
	Category  *controller.CategoryController
	Product   *controller.ProductController
	Customer  *controller.CustomerController
	Tier      *controller.TierController
	Promotion *controller.PromotionController
	Order     *controller.OrderController
	Activity  *controller.ActivityController
}

const idUsage = "ID"

func filterFlag() cli.Flag {
	return &cli.StringFlag{Name: "filter", Aliases: []string{"f"}, Usage: "case-insensitive search text"}
}

// SetupCommands builds the command tree over the controllers
func SetupCommands(controllers *Controllers) *cli.App {
	app := &cli.App{
		Name:  AppName,
		Usage: "manage the catalog, customers, loyalty tiers, promotions and orders",
		// Errors are reported by the caller; never exit from inside a command.
		ExitErrHandler: func(*cli.Context, error) {},
		OnUsageError:   usageError,
	}
	app.Commands = []*cli.Command{
		categoryCommands(controllers.Category),
		productCommands(controllers.Product),
		customerCommands(controllers.Customer),
		tierCommands(controllers.Tier),
		promotionCommands(controllers.Promotion),
		orderCommands(controllers.Order),
		{
			Name:  "activity",
			Usage: "customer loyalty activity",
			Subcommands: []*cli.Command{
				{Name: "list", Usage: "list activity", Flags: []cli.Flag{filterFlag(), &cli.StringFlag{Name: "type", Usage: "Purchase, Redemption, Cancellation or All"}}, Action: controllers.Activity.List},
				{Name: "types", Usage: "list the recorded activity types", Action: controllers.Activity.Types},
			},
		},
		{Name: "dashboard", Usage: "show the summary statistics", Action: controllers.Activity.Dashboard},
		shellCommand(app),
	}
	setUsageErrors(app.Commands)
	return app
}

func categoryCommands(ctl *controller.CategoryController) *cli.Command {
	fields := func(required bool) []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "name", Required: required},
			&cli.StringFlag{Name: "description", Required: required},
		}
	}
	return &cli.Command{
		Name:  "categories",
		Usage: "product categories",
		Subcommands: []*cli.Command{
			{Name: "list", Flags: []cli.Flag{filterFlag()}, Action: ctl.List},
			{Name: "get", ArgsUsage: idUsage, Action: ctl.Get},
			{Name: "add", Flags: fields(true), Action: ctl.Add},
			{Name: "update", ArgsUsage: idUsage, Flags: fields(false), Action: ctl.Update},
			{Name: "remove", ArgsUsage: idUsage, Usage: "fails while products use the category", Action: ctl.Remove},
		},
	}
}

func productCommands(ctl *controller.ProductController) *cli.Command {
	fields := func(required bool) []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "name", Required: required},
			&cli.StringFlag{Name: "price", Required: required, Usage: "unit price, e.g. 29.99"},
			&cli.Int64Flag{Name: "category", Required: required, Usage: "category id"},
			&cli.StringFlag{Name: "description", Required: required},
			&cli.IntFlag{Name: "stock"},
		}
	}
	return &cli.Command{
		Name:  "products",
		Usage: "products",
		Subcommands: []*cli.Command{
			{Name: "list", Flags: []cli.Flag{filterFlag(), &cli.Int64Flag{Name: "category", Usage: "only products of this category"}}, Action: ctl.List},
			{Name: "get", ArgsUsage: idUsage, Action: ctl.Get},
			{Name: "add", Flags: fields(true), Action: ctl.Add},
			{Name: "update", ArgsUsage: idUsage, Flags: fields(false), Action: ctl.Update},
			{Name: "remove", ArgsUsage: idUsage, Action: ctl.Remove},
		},
	}
}

func customerCommands(ctl *controller.CustomerController) *cli.Command {
	fields := func(required bool) []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "name", Required: required},
			&cli.StringFlag{Name: "email", Required: required},
			&cli.Int64Flag{Name: "points", Usage: "points balance"},
		}
	}
	return &cli.Command{
		Name:  "customers",
		Usage: "loyalty program members",
		Subcommands: []*cli.Command{
			{Name: "list", Flags: []cli.Flag{filterFlag()}, Action: ctl.List},
			{Name: "get", ArgsUsage: idUsage, Action: ctl.Get},
			{Name: "add", Flags: fields(true), Action: ctl.Add},
			{Name: "update", ArgsUsage: idUsage, Flags: fields(false), Action: ctl.Update},
			{Name: "points", ArgsUsage: idUsage, Usage: "add or remove points", Flags: []cli.Flag{&cli.Int64Flag{Name: "delta", Required: true}}, Action: ctl.AdjustPoints},
			{Name: "remove", ArgsUsage: idUsage, Usage: "fails while the customer has orders", Action: ctl.Remove},
		},
	}
}

func tierCommands(ctl *controller.TierController) *cli.Command {
	fields := func(required bool) []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "name", Required: required},
			&cli.Int64Flag{Name: "threshold", Usage: "minimum points to qualify"},
			&cli.StringFlag{Name: "discount", Required: required, Usage: "discount rate between 0 and 1"},
			&cli.StringFlag{Name: "bonus", Usage: "bonus points rate"},
			&cli.StringFlag{Name: "perks"},
		}
	}
	return &cli.Command{
		Name:  "tiers",
		Usage: "loyalty tier table",
		Subcommands: []*cli.Command{
			{Name: "list", Flags: []cli.Flag{filterFlag()}, Action: ctl.List},
			{Name: "get", ArgsUsage: idUsage, Action: ctl.Get},
			{Name: "resolve", Usage: "show the tier for a points balance", Flags: []cli.Flag{&cli.Int64Flag{Name: "points", Required: true}}, Action: ctl.Resolve},
			{Name: "add", Flags: fields(true), Action: ctl.Add},
			{Name: "update", ArgsUsage: idUsage, Flags: fields(false), Action: ctl.Update},
			{Name: "remove", ArgsUsage: idUsage, Action: ctl.Remove},
		},
	}
}

func promotionCommands(ctl *controller.PromotionController) *cli.Command {
	fields := func(required bool) []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "name", Required: required},
			&cli.StringFlag{Name: "type"},
			&cli.StringFlag{Name: "discount", Required: required, Usage: "discount rate between 0 and 1"},
			&cli.StringFlag{Name: "start", Required: required, Usage: "first day, YYYY-MM-DD"},
			&cli.StringFlag{Name: "end", Required: required, Usage: "last day, YYYY-MM-DD"},
		}
	}
	return &cli.Command{
		Name:  "promotions",
		Usage: "time-bounded discount campaigns",
		Subcommands: []*cli.Command{
			{Name: "list", Flags: []cli.Flag{filterFlag(), &cli.StringFlag{Name: "status", Usage: "All, Active, Expired or Scheduled"}}, Action: ctl.List},
			{Name: "active", Usage: "promotions running on a day", Flags: []cli.Flag{&cli.StringFlag{Name: "as-of", Usage: "YYYY-MM-DD, defaults to today"}}, Action: ctl.Active},
			{Name: "get", ArgsUsage: idUsage, Action: ctl.Get},
			{Name: "add", Flags: fields(true), Action: ctl.Add},
			{Name: "update", ArgsUsage: idUsage, Flags: fields(false), Action: ctl.Update},
			{Name: "remove", ArgsUsage: idUsage, Action: ctl.Remove},
		},
	}
}

func orderCommands(ctl *controller.OrderController) *cli.Command {
	requestFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.Int64Flag{Name: "customer", Required: true, Usage: "customer id"},
			&cli.StringSliceFlag{Name: "line", Usage: "PRODUCT[:QTY], repeat for more products"},
			&cli.Int64Flag{Name: "promotion", Usage: "promotion id"},
			&cli.Int64Flag{Name: "redeem", Usage: "points to redeem"},
			&cli.StringFlag{Name: "instructions", Usage: "special instructions"},
		}
	}
	return &cli.Command{
		Name:  "orders",
		Usage: "customer orders",
		Subcommands: []*cli.Command{
			{Name: "list", Flags: []cli.Flag{filterFlag(), &cli.StringFlag{Name: "status", Usage: "Pending, Shipped, Delivered, Cancelled or All"}}, Action: ctl.List},
			{Name: "get", ArgsUsage: idUsage, Action: ctl.Get},
			{Name: "quote", Usage: "price an order without placing it", Flags: requestFlags(), Action: ctl.Quote},
			{Name: "place", Usage: "place an order", Flags: requestFlags(), Action: ctl.Place},
			{Name: "status", ArgsUsage: idUsage, Usage: "change the order status", Flags: []cli.Flag{&cli.StringFlag{Name: "set", Required: true}}, Action: ctl.SetStatus},
			{Name: "remove", ArgsUsage: idUsage, Action: ctl.Remove},
		},
	}
}

// shellCommand runs commands read line by line against the same in-memory state
func shellCommand(app *cli.App) *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "read commands from standard input, one per line, until EOF or exit",
		Action: func(c *cli.Context) error {
			scanner := bufio.NewScanner(c.App.Reader)
			for scanner.Scan() {
				// shlex drops # comments and honours quotes and escapes
				args, err := shlex.Split(scanner.Text())
				if err != nil {
					ReportError(c.App.ErrWriter, models.NewValidationError("", "%v", err))
					continue
				}
				if len(args) == 0 {
					continue
				}
				switch args[0] {
				case "exit", "quit":
					return nil
				case "shell":
					ReportError(c.App.ErrWriter, models.NewValidationError("", "already in the shell"))
					continue
				}
				if err := app.RunContext(c.Context, append([]string{app.Name}, args...)); err != nil {
					ReportError(c.App.ErrWriter, err)
				}
			}
			return scanner.Err()
		},
	}
}

// ReportError prints an error as "Kind: message"
func ReportError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s: %v\n", models.Kind(err), err)
}

func usageError(_ *cli.Context, err error, _ bool) error {
	return models.NewValidationError("", "%v", err)
}

func setUsageErrors(commands []*cli.Command) {
	for _, cmd := range commands {
		cmd.OnUsageError = usageError
		setUsageErrors(cmd.Subcommands)
	}
}
