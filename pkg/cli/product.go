package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/agente-ai/agente/pkg/usecase/product"
)

func productCommand() *cli.Command {
	return &cli.Command{
		Name:  "product",
		Usage: "Manage the document catalog",
		Commands: []*cli.Command{
			productListCommand(),
			productUpdateCommand(),
		},
	}
}

func productListCommand() *cli.Command {
	var cfg config

	flags := append([]cli.Flag{}, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "list",
		Usage: "List all documents",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			uc := product.New(repo, nil)
			docs, err := uc.List(ctx)
			if err != nil {
				return err
			}

			if len(docs) == 0 {
				fmt.Fprintf(c.Root().Writer, "No documents\n")
				return nil
			}

			for _, doc := range docs {
				fmt.Fprintf(c.Root().Writer, "%-10s %-40s %s\n",
					doc.AccessLevel, doc.Name, doc.Description)
			}
			return nil
		},
	}
}

func productUpdateCommand() *cli.Command {
	var (
		cfg         config
		name        string
		newName     string
		description string
		accessLevel string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "name",
			Aliases:     []string{"n"},
			Usage:       "Current name of the document to edit",
			Required:    true,
			Destination: &name,
		},
		&cli.StringFlag{
			Name:        "new-name",
			Usage:       "New document name",
			Destination: &newName,
		},
		&cli.StringFlag{
			Name:        "description",
			Usage:       "New document description",
			Destination: &description,
		},
		&cli.StringFlag{
			Name:        "access-level",
			Usage:       "New access level (public or private)",
			Destination: &accessLevel,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "update",
		Usage: "Edit a document's name, description or access level",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			input := &product.UpdateInput{}
			if c.IsSet("new-name") {
				input.Name = &newName
			}
			if c.IsSet("description") {
				input.Description = &description
			}
			if c.IsSet("access-level") {
				input.AccessLevel = &accessLevel
			}
			if input.Name == nil && input.Description == nil && input.AccessLevel == nil {
				return goerr.New("nothing to update")
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
			doc, err := uc.Update(ctx, name, input)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Updated %s (%s)\n", doc.Name, doc.AccessLevel)
			return nil
		},
	}
}
