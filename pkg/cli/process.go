package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/agente-ai/agente/pkg/usecase/ingest"
)

func processCommand() *cli.Command {
	var (
		cfg   config
		limit int64
	)

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "limit",
			Aliases:     []string{"l"},
			Usage:       "Maximum number of raw records to process in one run",
			Value:       50,
			Destination: &limit,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)
	flags = append(flags, archiveFlags(&cfg)...)

	return &cli.Command{
		Name:  "process",
		Usage: "Classify pending raw records into documents and sales",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			var opts []ingest.Option
			archive, err := cfg.newArchive(ctx)
			if err != nil {
				return err
			}
			if archive != nil {
				opts = append(opts, ingest.WithArchive(archive))
			}

			uc := ingest.New(repo, gemini, opts...)
			processed, err := uc.ProcessBatch(ctx, int(limit))
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Processed %d record(s)\n", processed)
			return nil
		},
	}
}
