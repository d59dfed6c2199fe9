package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/agente-ai/agente/pkg/usecase/ingest"
)

func ingestCommand() *cli.Command {
	var (
		cfg    config
		input  string
		source string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to JSON file with record data (stdin when omitted)",
			Destination: &input,
		},
		&cli.StringFlag{
			Name:        "source",
			Aliases:     []string{"s"},
			Usage:       "Label identifying where the record came from",
			Value:       "manual",
			Destination: &source,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "ingest",
		Usage: "Save a raw JSON record for later processing",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			data, err := readInput(input)
			if err != nil {
				return err
			}

			var payload any
			if err := json.Unmarshal(data, &payload); err != nil {
				return goerr.Wrap(err, "input is not valid JSON")
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			uc := ingest.New(repo, nil)
			rec, err := uc.Ingest(ctx, source, payload)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Saved raw record %s\n", rec.ID)
			return nil
		},
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read stdin")
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read input file", goerr.V("path", path))
	}
	return data, nil
}
