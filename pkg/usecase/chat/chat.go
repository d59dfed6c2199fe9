package chat

import (
	"github.com/agente-ai/agente/pkg/adapter"
	"github.com/agente-ai/agente/pkg/repository"
)

const (
	// top documents retrieved per question
	maxDocuments = 3
	// most recent sales included when customers are mentioned
	maxSales = 10
)

// UseCase answers natural-language questions from retrieved documents and
// sales history
type UseCase struct {
	repo     repository.Repository
	embedder adapter.Embedder
	llm      adapter.LLM
	matcher  CustomerMatcher
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithMatcher replaces the customer matching heuristic
func WithMatcher(m CustomerMatcher) Option {
	return func(u *UseCase) {
		u.matcher = m
	}
}

// New creates a new answering UseCase instance
func New(repo repository.Repository, embedder adapter.Embedder, llm adapter.LLM, opts ...Option) *UseCase {
	u := &UseCase{
		repo:     repo,
		embedder: embedder,
		llm:      llm,
		matcher:  NewSubstringMatcher(),
	}

	for _, opt := range opts {
		opt(u)
	}

	return u
}
