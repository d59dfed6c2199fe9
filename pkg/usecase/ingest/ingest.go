package ingest

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/agente-ai/agente/pkg/adapter"
	"github.com/agente-ai/agente/pkg/model"
	"github.com/agente-ai/agente/pkg/repository"
)

// UseCase turns raw ingested records into documents and sale records
type UseCase struct {
	repo     repository.Repository
	embedder adapter.Embedder
	archive  adapter.Archive
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithArchive enables archiving of consumed raw records before deletion
func WithArchive(a adapter.Archive) Option {
	return func(u *UseCase) {
		u.archive = a
	}
}

// New creates a new ingestion UseCase instance
func New(repo repository.Repository, embedder adapter.Embedder, opts ...Option) *UseCase {
	u := &UseCase{
		repo:     repo,
		embedder: embedder,
	}

	for _, opt := range opts {
		opt(u)
	}

	return u
}

// Ingest stores one raw record for later batch processing. The payload must
// be a decoded JSON object or a list of objects.
func (u *UseCase) Ingest(ctx context.Context, source string, payload any) (*model.RawRecord, error) {
	switch payload.(type) {
	case map[string]any, []any:
	default:
		return nil, goerr.New("payload must be a JSON object or array")
	}

	rec := &model.RawRecord{
		ID:        model.NewRawRecordID(),
		Source:    source,
		Payload:   payload,
		CreatedAt: time.Now(),
	}

	if err := u.repo.PutRawRecord(ctx, rec); err != nil {
		return nil, goerr.Wrap(err, "failed to store raw record")
	}

	return rec, nil
}
