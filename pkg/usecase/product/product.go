// Package product manages the document catalog directly: listing, editing
// metadata, and seeding initial entries from YAML files.
package product

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"

	"github.com/agente-ai/agente/pkg/adapter"
	"github.com/agente-ai/agente/pkg/model"
	"github.com/agente-ai/agente/pkg/repository"
	"github.com/agente-ai/agente/pkg/utils/logging"
)

type UseCase struct {
	repo     repository.Repository
	embedder adapter.Embedder
}

func New(repo repository.Repository, embedder adapter.Embedder) *UseCase {
	return &UseCase{
		repo:     repo,
		embedder: embedder,
	}
}

// List returns every document in the catalog
func (u *UseCase) List(ctx context.Context) ([]*model.Document, error) {
	docs, err := u.repo.ListDocuments(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list documents")
	}
	return docs, nil
}

// UpdateInput carries the editable fields of a document. Nil fields are left
// unchanged.
type UpdateInput struct {
	Name        *string
	Description *string
	AccessLevel *string
}

// Update edits a document found by its current name. The embedding is
// recomputed when the name or description changes so retrieval stays in sync
// with the visible text.
func (u *UseCase) Update(ctx context.Context, name string, input *UpdateInput) (*model.Document, error) {
	doc, err := u.repo.GetDocumentByName(ctx, name)
	if err != nil {
		return nil, err
	}

	update := &repository.DocumentUpdate{
		Name:        input.Name,
		Description: input.Description,
	}

	if input.AccessLevel != nil {
		level := model.AccessLevel(*input.AccessLevel)
		if err := level.Validate(); err != nil {
			return nil, err
		}
		update.AccessLevel = &level
	}

	if err := u.repo.UpdateDocument(ctx, doc.ID, update); err != nil {
		return nil, goerr.Wrap(err, "failed to update document", goerr.V("name", name))
	}

	if input.Name != nil {
		doc.Name = *input.Name
	}
	if input.Description != nil {
		doc.Description = *input.Description
	}
	if update.AccessLevel != nil {
		doc.AccessLevel = *update.AccessLevel
	}

	if input.Name != nil || input.Description != nil {
		if err := u.reembed(ctx, doc); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func (u *UseCase) reembed(ctx context.Context, doc *model.Document) error {
	vec, err := u.embedder.Embed(ctx, embeddingText(doc.Name, doc.Description))
	if err != nil {
		return goerr.Wrap(err, "failed to embed document", goerr.V("name", doc.Name))
	}
	if len(vec) == 0 {
		logging.From(ctx).Warn("embedding provider returned no vector, keeping previous embedding",
			"name", doc.Name)
		return nil
	}

	doc.Embedding = firestore.Vector32(vec)
	if err := u.repo.PutDocument(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to save document", goerr.V("name", doc.Name))
	}
	return nil
}

// seedEntry is one document in a seed file
type seedEntry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	AccessLevel string `yaml:"access_level"`
}

// Seed loads documents from YAML data. Entries whose name already exists in
// the catalog are skipped, so seeding is safe to repeat. It returns the number
// of documents created.
func (u *UseCase) Seed(ctx context.Context, data []byte) (int, error) {
	var entries []seedEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return 0, goerr.Wrap(err, "failed to parse seed file")
	}

	logger := logging.From(ctx)
	created := 0

	for _, entry := range entries {
		if entry.Name == "" {
			return created, goerr.New("seed entry has no name")
		}

		if _, err := u.repo.GetDocumentByName(ctx, entry.Name); err == nil {
			logger.Info("skipping existing document", "name", entry.Name)
			continue
		} else if !errors.Is(err, model.ErrDocumentNotFound) {
			return created, err
		}

		level := model.ParseAccessLevel(entry.AccessLevel)

		vec, err := u.embedder.Embed(ctx, embeddingText(entry.Name, entry.Description))
		if err != nil {
			return created, goerr.Wrap(err, "failed to embed seed entry", goerr.V("name", entry.Name))
		}

		doc := &model.Document{
			ID:          model.NewDocumentID(),
			Name:        entry.Name,
			Description: entry.Description,
			Embedding:   firestore.Vector32(vec),
			AccessLevel: level,
			CreatedAt:   time.Now(),
		}
		if err := u.repo.PutDocument(ctx, doc); err != nil {
			return created, goerr.Wrap(err, "failed to save seed entry", goerr.V("name", entry.Name))
		}

		logger.Info("seeded document", "name", entry.Name, "access_level", level)
		created++
	}

	return created, nil
}

func embeddingText(name, description string) string {
	return strings.TrimSpace(name + "\n" + description)
}
