package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/agente-ai/agente/pkg/usecase/report"
)

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show inventory and sales statistics",
		Commands: []*cli.Command{
			statsInventoryCommand(),
			statsSalesCommand(),
		},
	}
}

func statsInventoryCommand() *cli.Command {
	var cfg config

	flags := append([]cli.Flag{}, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "inventory",
		Usage: "Show document counts by access level",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			uc := report.New(repo)
			stats, err := uc.Inventory(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Documents: %d total, %d public, %d private\n",
				stats.Total, stats.Public, stats.Private)
			return nil
		},
	}
}

func statsSalesCommand() *cli.Command {
	var (
		cfg      config
		month    int64
		year     int64
		customer string
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "month",
			Aliases:     []string{"m"},
			Usage:       "Filter by month (1-12)",
			Destination: &month,
		},
		&cli.IntFlag{
			Name:        "year",
			Aliases:     []string{"y"},
			Usage:       "Filter by year",
			Destination: &year,
		},
		&cli.StringFlag{
			Name:        "customer",
			Aliases:     []string{"c"},
			Usage:       "Filter by customer name (exact, case-insensitive)",
			Destination: &customer,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "sales",
		Usage: "Show aggregated sales with a category breakdown",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if month < 0 || month > 12 {
				return goerr.New("month must be between 1 and 12", goerr.V("month", month))
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			uc := report.New(repo)
			stats, err := uc.Sales(ctx, &report.SalesFilter{
				Month:    time.Month(month),
				Year:     int(year),
				Customer: customer,
			})
			if err != nil {
				return err
			}

			w := c.Root().Writer
			fmt.Fprintf(w, "Sales: %d record(s), %d unit(s), $%.2f total\n",
				stats.Count, stats.Units, stats.Revenue)
			for _, cat := range stats.Categories {
				fmt.Fprintf(w, "  %-20s %4d unit(s)  $%.2f\n", cat.Category, cat.Units, cat.Revenue)
			}
			return nil
		},
	}
}
