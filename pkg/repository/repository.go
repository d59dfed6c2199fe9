package repository

import (
	"context"
	"time"

	"github.com/agente-ai/agente/pkg/model"
)

// Batch holds entities staged during one processing call. Nothing is visible
// to other callers until Apply commits the whole batch atomically.
type Batch struct {
	Documents []*model.Document
	Sales     []*model.SaleRecord
	Consumed  []model.RawRecordID
}

// Empty reports whether the batch stages no writes
func (b *Batch) Empty() bool {
	return len(b.Documents) == 0 && len(b.Sales) == 0 && len(b.Consumed) == 0
}

// DocumentUpdate describes a partial edit of a document. Nil fields are left
// unchanged.
type DocumentUpdate struct {
	Name        *string
	Description *string
	AccessLevel *model.AccessLevel
}

// DocumentCounts holds inventory counters split by access level
type DocumentCounts struct {
	Total  int64
	Public int64
}

// Repository defines the persistence interface for documents, sales and raw
// records
type Repository interface {
	// PutRawRecord saves an unprocessed raw record
	PutRawRecord(ctx context.Context, rec *model.RawRecord) error

	// ListRawRecords retrieves up to limit unprocessed raw records
	ListRawRecords(ctx context.Context, limit int) ([]*model.RawRecord, error)

	// PutDocument saves a document
	PutDocument(ctx context.Context, doc *model.Document) error

	// GetDocument retrieves a document by ID
	GetDocument(ctx context.Context, id model.DocumentID) (*model.Document, error)

	// GetDocumentByName retrieves a document by exact name match. Returns an
	// error wrapping model.ErrDocumentNotFound when no document has the name.
	GetDocumentByName(ctx context.Context, name string) (*model.Document, error)

	// UpdateDocument applies a partial edit to an existing document
	UpdateDocument(ctx context.Context, id model.DocumentID, update *DocumentUpdate) error

	// ListDocuments retrieves all documents
	ListDocuments(ctx context.Context) ([]*model.Document, error)

	// SearchDocuments returns up to limit documents ordered by ascending
	// Euclidean distance between their embedding and the query vector. When
	// publicOnly is set the access filter is part of the store query, so
	// private documents never leave the store.
	SearchDocuments(ctx context.Context, vector []float32, limit int, publicOnly bool) ([]*model.Document, error)

	// ListCustomerNames returns the distinct customer names across all sales
	ListCustomerNames(ctx context.Context) ([]string, error)

	// ListSalesByCustomers returns up to limit sales whose customer name is in
	// names, newest sale date first
	ListSalesByCustomers(ctx context.Context, names []string, limit int) ([]*model.SaleRecord, error)

	// ListSales returns sales within [since, until). Zero times leave the
	// corresponding bound open.
	ListSales(ctx context.Context, since, until time.Time) ([]*model.SaleRecord, error)

	// CountDocuments returns inventory counters
	CountDocuments(ctx context.Context) (*DocumentCounts, error)

	// Apply commits a staged batch atomically: either every staged document,
	// sale and raw-record deletion lands, or none do.
	Apply(ctx context.Context, batch *Batch) error
}
