package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/agente-ai/agente/pkg/usecase/report"
)

func exportCommand() *cli.Command {
	var (
		cfg     config
		dataset string
		table   string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "dataset",
			Usage:       "BigQuery dataset ID",
			Required:    true,
			Sources:     cli.EnvVars("AGENTE_BQ_DATASET"),
			Destination: &dataset,
		},
		&cli.StringFlag{
			Name:        "table",
			Usage:       "BigQuery table ID",
			Value:       "sales",
			Sources:     cli.EnvVars("AGENTE_BQ_TABLE"),
			Destination: &table,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "export",
		Usage: "Export sale records to BigQuery",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			warehouse, err := cfg.newWarehouse(ctx)
			if err != nil {
				return err
			}

			uc := report.New(repo, report.WithWarehouse(warehouse))
			count, err := uc.ExportSales(ctx, dataset, table)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Exported %d sale(s) to %s.%s\n", count, dataset, table)
			return nil
		},
	}
}
