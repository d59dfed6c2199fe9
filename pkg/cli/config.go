package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/agente-ai/agente/pkg/adapter"
	"github.com/agente-ai/agente/pkg/repository"
)

// config holds configuration values
type config struct {
	// Repository
	project  string
	database string

	// Adapters
	geminiProject       string
	geminiLocation      string
	generativeModel     string
	embeddingModel      string
	embeddingDimensions int64
	anthropicAPIKey     string
	archiveBucket       string
}

// globalFlags returns common flags used across commands with destination config
func globalFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "project",
			Aliases:     []string{"p"},
			Usage:       "Google Cloud project ID",
			Sources:     cli.EnvVars("GOOGLE_CLOUD_PROJECT"),
			Destination: &cfg.project,
		},
		&cli.StringFlag{
			Name:        "database",
			Aliases:     []string{"d"},
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIRESTORE_DATABASE_ID"),
			Destination: &cfg.database,
		},
	}
}

// llmFlags returns flags for embedding and completion configuration with
// destination config
func llmFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini",
			Sources:     cli.EnvVars("GEMINI_PROJECT_ID"),
			Destination: &cfg.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Sources:     cli.EnvVars("GEMINI_LOCATION"),
			Destination: &cfg.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "generative-model",
			Usage:       "Gemini model for answer generation",
			Value:       "gemini-2.5-flash",
			Sources:     cli.EnvVars("AGENTE_GENERATIVE_MODEL"),
			Destination: &cfg.generativeModel,
		},
		&cli.StringFlag{
			Name:        "embedding-model",
			Usage:       "Gemini model for embeddings",
			Value:       "gemini-embedding-001",
			Sources:     cli.EnvVars("AGENTE_EMBEDDING_MODEL"),
			Destination: &cfg.embeddingModel,
		},
		&cli.IntFlag{
			Name:        "embedding-dimensions",
			Usage:       "Output dimensionality of embedding vectors",
			Value:       768,
			Sources:     cli.EnvVars("AGENTE_EMBEDDING_DIMENSIONS"),
			Destination: &cfg.embeddingDimensions,
		},
		&cli.StringFlag{
			Name:        "anthropic-api-key",
			Usage:       "Anthropic API key (switches answer generation to Claude)",
			Sources:     cli.EnvVars("ANTHROPIC_API_KEY"),
			Destination: &cfg.anthropicAPIKey,
		},
	}
}

// archiveFlags returns flags for the raw payload archive with destination
// config
func archiveFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "archive-bucket",
			Usage:       "Cloud Storage bucket for raw payload archiving",
			Sources:     cli.EnvVars("AGENTE_ARCHIVE_BUCKET"),
			Destination: &cfg.archiveBucket,
		},
	}
}

// newRepository creates a new repository instance
func (cfg *config) newRepository(ctx context.Context) (repository.Repository, error) {
	if cfg.project == "" {
		return nil, goerr.New("project is required")
	}
	if cfg.database == "" {
		return nil, goerr.New("database is required")
	}

	repo, err := repository.New(ctx, cfg.project, cfg.database)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create repository")
	}
	return repo, nil
}

// newGemini creates a new Gemini adapter instance
func (cfg *config) newGemini(ctx context.Context) (*adapter.GeminiClient, error) {
	if cfg.geminiProject == "" {
		return nil, goerr.New("gemini-project is required")
	}
	if cfg.geminiLocation == "" {
		return nil, goerr.New("gemini-location is required")
	}

	return adapter.NewGemini(ctx, cfg.geminiProject, cfg.geminiLocation,
		adapter.WithGenerativeModel(cfg.generativeModel),
		adapter.WithEmbeddingModel(cfg.embeddingModel),
		adapter.WithEmbeddingDimensions(int32(cfg.embeddingDimensions)),
	)
}

// newLLM returns the completion provider: Claude when an Anthropic API key is
// set, the Gemini client otherwise
func (cfg *config) newLLM(gemini *adapter.GeminiClient) adapter.LLM {
	if cfg.anthropicAPIKey != "" {
		return adapter.NewClaude(cfg.anthropicAPIKey)
	}
	return gemini
}

// newArchive creates a raw payload archive when a bucket is configured
func (cfg *config) newArchive(ctx context.Context) (adapter.Archive, error) {
	if cfg.archiveBucket == "" {
		return nil, nil
	}

	archive, err := adapter.NewStorageArchive(ctx, cfg.archiveBucket)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create archive")
	}
	return archive, nil
}

// newWarehouse creates a BigQuery warehouse client
func (cfg *config) newWarehouse(ctx context.Context) (adapter.Warehouse, error) {
	if cfg.project == "" {
		return nil, goerr.New("project is required")
	}
	return adapter.NewBigQuery(ctx, cfg.project)
}
