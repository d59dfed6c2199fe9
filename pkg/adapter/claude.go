package adapter

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/m-mizutani/goerr/v2"
)

// claudeClient implements LLM using the Anthropic API
type claudeClient struct {
	client *anthropic.Client
	model  anthropic.Model
}

var _ LLM = (*claudeClient)(nil)

// NewClaude creates a new Claude completion client
func NewClaude(apiKey string) LLM {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &claudeClient{
		client: &client,
		model:  anthropic.ModelClaudeSonnet4_20250514,
	}
}

func (c *claudeClient) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMessage)),
		},
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to call anthropic API")
	}

	var parts []string
	for _, block := range message.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return "", goerr.New("no text in claude response")
	}

	return strings.Join(parts, ""), nil
}
