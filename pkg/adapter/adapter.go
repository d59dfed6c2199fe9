package adapter

import "context"

// Embedder converts text into a fixed-length vector. Implementations must
// return vectors of a single dimensionality for the lifetime of the process.
// A nil or empty vector signals that no embedding could be produced.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// LLM generates an answer from a system instruction and a user message.
// No retry is built in; providers surface their failures as errors.
type LLM interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}
