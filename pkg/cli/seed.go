package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/agente-ai/agente/pkg/usecase/product"
)

func seedCommand() *cli.Command {
	var (
		cfg   config
		input string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to YAML seed file",
			Required:    true,
			Destination: &input,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Load initial documents from a YAML file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			data, err := os.ReadFile(input)
			if err != nil {
				return goerr.Wrap(err, "failed to read seed file", goerr.V("path", input))
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			uc := product.New(repo, gemini)
			created, err := uc.Seed(ctx, data)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Seeded %d document(s)\n", created)
			return nil
		},
	}
}
