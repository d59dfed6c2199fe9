package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/agente-ai/agente/pkg/model"
	"github.com/agente-ai/agente/pkg/usecase/chat"
)

func askCommand() *cli.Command {
	var (
		cfg         config
		question    string
		roleName    string
		interactive bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "question",
			Aliases:     []string{"q"},
			Usage:       "Question to answer",
			Destination: &question,
		},
		&cli.StringFlag{
			Name:        "role",
			Aliases:     []string{"r"},
			Usage:       "Caller role (customer or admin)",
			Value:       "customer",
			Sources:     cli.EnvVars("AGENTE_ROLE"),
			Destination: &roleName,
		},
		&cli.BoolFlag{
			Name:        "interactive",
			Aliases:     []string{"i"},
			Usage:       "Start an interactive question loop",
			Destination: &interactive,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "ask",
		Usage: "Answer a question from stored documents and sales history",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			role, err := model.ParseRole(roleName)
			if err != nil {
				return err
			}

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			uc := chat.New(repo, gemini, cfg.newLLM(gemini))

			if interactive {
				return askLoop(ctx, c.Root().Writer, uc, role)
			}

			if question == "" {
				return goerr.New("question is required (or use --interactive)")
			}

			answer, err := uc.Ask(ctx, question, role)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "%s\n", answer)
			return nil
		},
	}
}

func askLoop(ctx context.Context, w io.Writer, uc *chat.UseCase, role model.Role) error {
	rl, err := readline.New("? ")
	if err != nil {
		return goerr.Wrap(err, "failed to start interactive prompt")
	}
	defer rl.Close()

	fmt.Fprintf(w, "Ask about products and sales. Type 'exit' to quit.\n")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to read question")
		}

		question := strings.TrimSpace(line)
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		sp.Suffix = " thinking..."
		sp.Start()

		answer, err := uc.Ask(ctx, question, role)
		sp.Stop()
		if err != nil {
			fmt.Fprintf(w, "error: %s\n", err)
			continue
		}

		fmt.Fprintf(w, "%s\n\n", answer)
	}

	fmt.Fprintf(w, "\nBye\n")
	return nil
}
