package repository

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/agente-ai/agente/pkg/model"
)

var _ Repository = (*Memory)(nil)

// Memory is an in-memory Repository for tests and local development. Nearest
// neighbor ordering uses squared Euclidean distance, which ranks identically
// to the unsquared distance.
type Memory struct {
	mu         sync.RWMutex
	rawRecords []*model.RawRecord
	documents  []*model.Document
	sales      []*model.SaleRecord
}

// NewMemory creates a new in-memory repository
func NewMemory() *Memory {
	return &Memory{}
}

func (r *Memory) PutRawRecord(_ context.Context, rec *model.RawRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *rec
	r.rawRecords = append(r.rawRecords, &copied)
	return nil
}

func (r *Memory) ListRawRecords(_ context.Context, limit int) ([]*model.RawRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := min(limit, len(r.rawRecords))
	records := make([]*model.RawRecord, 0, n)
	for _, rec := range r.rawRecords[:n] {
		copied := *rec
		records = append(records, &copied)
	}
	return records, nil
}

func (r *Memory) PutDocument(_ context.Context, doc *model.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.putDocumentLocked(doc)
	return nil
}

func (r *Memory) putDocumentLocked(doc *model.Document) {
	copied := *doc
	for i, existing := range r.documents {
		if existing.ID == doc.ID {
			r.documents[i] = &copied
			return
		}
	}
	r.documents = append(r.documents, &copied)
}

func (r *Memory) GetDocument(_ context.Context, id model.DocumentID) (*model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, doc := range r.documents {
		if doc.ID == id {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, goerr.Wrap(model.ErrDocumentNotFound, "no such document", goerr.V("id", id))
}

func (r *Memory) GetDocumentByName(_ context.Context, name string) (*model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, doc := range r.documents {
		if doc.Name == name {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, goerr.Wrap(model.ErrDocumentNotFound, "no document with name", goerr.V("name", name))
}

func (r *Memory) UpdateDocument(_ context.Context, id model.DocumentID, update *DocumentUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, doc := range r.documents {
		if doc.ID != id {
			continue
		}
		if update.Name != nil {
			doc.Name = *update.Name
		}
		if update.Description != nil {
			doc.Description = *update.Description
		}
		if update.AccessLevel != nil {
			doc.AccessLevel = *update.AccessLevel
		}
		return nil
	}
	return goerr.Wrap(model.ErrDocumentNotFound, "no such document", goerr.V("id", id))
}

func (r *Memory) ListDocuments(_ context.Context) ([]*model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]*model.Document, 0, len(r.documents))
	for _, doc := range r.documents {
		copied := *doc
		docs = append(docs, &copied)
	}
	return docs, nil
}

func (r *Memory) SearchDocuments(_ context.Context, vector []float32, limit int, publicOnly bool) ([]*model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type scored struct {
		doc      *model.Document
		distance float64
	}

	var candidates []scored
	for _, doc := range r.documents {
		if publicOnly && doc.AccessLevel != model.AccessPublic {
			continue
		}
		candidates = append(candidates, scored{doc: doc, distance: squaredDistance(doc.Embedding, vector)})
	}

	// Stable sort keeps insertion order on ties
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	n := min(limit, len(candidates))
	docs := make([]*model.Document, 0, n)
	for _, c := range candidates[:n] {
		copied := *c.doc
		docs = append(docs, &copied)
	}
	return docs, nil
}

func squaredDistance(a []float32, b []float32) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}

	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

func (r *Memory) ListCustomerNames(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var names []string
	for _, sale := range r.sales {
		if sale.CustomerName == "" {
			continue
		}
		if _, dup := seen[sale.CustomerName]; !dup {
			seen[sale.CustomerName] = struct{}{}
			names = append(names, sale.CustomerName)
		}
	}
	return names, nil
}

func (r *Memory) ListSalesByCustomers(_ context.Context, names []string, limit int) ([]*model.SaleRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make(map[string]struct{}, len(names))
	for _, name := range names {
		members[name] = struct{}{}
	}

	var sales []*model.SaleRecord
	for _, sale := range r.sales {
		if _, ok := members[sale.CustomerName]; ok {
			copied := *sale
			sales = append(sales, &copied)
		}
	}

	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].SaleDate.After(sales[j].SaleDate)
	})
	if len(sales) > limit {
		sales = sales[:limit]
	}
	return sales, nil
}

func (r *Memory) ListSales(_ context.Context, since, until time.Time) ([]*model.SaleRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sales []*model.SaleRecord
	for _, sale := range r.sales {
		if !since.IsZero() && sale.SaleDate.Before(since) {
			continue
		}
		if !until.IsZero() && !sale.SaleDate.Before(until) {
			continue
		}
		copied := *sale
		sales = append(sales, &copied)
	}
	return sales, nil
}

func (r *Memory) CountDocuments(_ context.Context) (*DocumentCounts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := &DocumentCounts{Total: int64(len(r.documents))}
	for _, doc := range r.documents {
		if doc.AccessLevel == model.AccessPublic {
			counts.Public++
		}
	}
	return counts, nil
}

func (r *Memory) Apply(_ context.Context, batch *Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, doc := range batch.Documents {
		r.putDocumentLocked(doc)
	}
	for _, sale := range batch.Sales {
		copied := *sale
		r.sales = append(r.sales, &copied)
	}

	consumed := make(map[model.RawRecordID]struct{}, len(batch.Consumed))
	for _, id := range batch.Consumed {
		consumed[id] = struct{}{}
	}
	remaining := r.rawRecords[:0]
	for _, rec := range r.rawRecords {
		if _, ok := consumed[rec.ID]; !ok {
			remaining = append(remaining, rec)
		}
	}
	r.rawRecords = remaining

	return nil
}
