package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/agente-ai/agente/pkg/model"
)

const (
	colDocuments  = "documents"
	colSales      = "sales"
	colRawRecords = "raw_records"

	// Firestore rejects "in" filters with more than 30 values
	maxInValues = 30
)

var _ Repository = (*Firestore)(nil)

// Firestore implements Repository using Cloud Firestore. Document embeddings
// are stored as firestore.Vector32 and queried with FindNearest.
type Firestore struct {
	client *firestore.Client
}

// New creates a new Firestore repository
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID), goerr.V("database", databaseID))
	}

	return &Firestore{client: client}, nil
}

// Close releases the underlying client
func (r *Firestore) Close() error {
	return r.client.Close()
}

func (r *Firestore) PutRawRecord(ctx context.Context, rec *model.RawRecord) error {
	ref := r.client.Collection(colRawRecords).Doc(string(rec.ID))
	if _, err := ref.Set(ctx, rec); err != nil {
		return goerr.Wrap(err, "failed to put raw record", goerr.V("id", rec.ID))
	}
	return nil
}

func (r *Firestore) ListRawRecords(ctx context.Context, limit int) ([]*model.RawRecord, error) {
	iter := r.client.Collection(colRawRecords).Limit(limit).Documents(ctx)
	defer iter.Stop()

	var records []*model.RawRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list raw records")
		}

		var rec model.RawRecord
		if err := snap.DataTo(&rec); err != nil {
			return nil, goerr.Wrap(err, "failed to decode raw record", goerr.V("id", snap.Ref.ID))
		}
		records = append(records, &rec)
	}

	return records, nil
}

func (r *Firestore) PutDocument(ctx context.Context, doc *model.Document) error {
	ref := r.client.Collection(colDocuments).Doc(string(doc.ID))
	if _, err := ref.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put document", goerr.V("id", doc.ID))
	}
	return nil
}

func (r *Firestore) GetDocument(ctx context.Context, id model.DocumentID) (*model.Document, error) {
	snap, err := r.client.Collection(colDocuments).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrDocumentNotFound, "no such document", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get document", goerr.V("id", id))
	}

	var doc model.Document
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode document", goerr.V("id", id))
	}
	return &doc, nil
}

func (r *Firestore) GetDocumentByName(ctx context.Context, name string) (*model.Document, error) {
	iter := r.client.Collection(colDocuments).
		Where("name", "==", name).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(model.ErrDocumentNotFound, "no document with name", goerr.V("name", name))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query document by name", goerr.V("name", name))
	}

	var doc model.Document
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode document", goerr.V("name", name))
	}
	return &doc, nil
}

func (r *Firestore) UpdateDocument(ctx context.Context, id model.DocumentID, update *DocumentUpdate) error {
	var updates []firestore.Update
	if update.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *update.Name})
	}
	if update.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *update.Description})
	}
	if update.AccessLevel != nil {
		updates = append(updates, firestore.Update{Path: "access_level", Value: string(*update.AccessLevel)})
	}
	if len(updates) == 0 {
		return nil
	}

	ref := r.client.Collection(colDocuments).Doc(string(id))
	if _, err := ref.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(model.ErrDocumentNotFound, "no such document", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to update document", goerr.V("id", id))
	}
	return nil
}

func (r *Firestore) ListDocuments(ctx context.Context) ([]*model.Document, error) {
	iter := r.client.Collection(colDocuments).OrderBy("created_at", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var docs []*model.Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list documents")
		}

		var doc model.Document
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode document", goerr.V("id", snap.Ref.ID))
		}
		docs = append(docs, &doc)
	}

	return docs, nil
}

func (r *Firestore) SearchDocuments(ctx context.Context, vector []float32, limit int, publicOnly bool) ([]*model.Document, error) {
	q := r.client.Collection(colDocuments).Query
	if publicOnly {
		// The access filter must run inside the store query so private
		// documents are never transmitted to restricted callers.
		q = q.Where("access_level", "==", string(model.AccessPublic))
	}

	vq := q.FindNearest("embedding", firestore.Vector32(vector), limit, firestore.DistanceMeasureEuclidean, nil)

	iter := vq.Documents(ctx)
	defer iter.Stop()

	var docs []*model.Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to run vector search")
		}

		var doc model.Document
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode document", goerr.V("id", snap.Ref.ID))
		}
		docs = append(docs, &doc)
	}

	return docs, nil
}

func (r *Firestore) ListCustomerNames(ctx context.Context) ([]string, error) {
	// Firestore has no DISTINCT, so scan the customer_name field and dedupe
	// in-process. Acceptable at the current data scale.
	iter := r.client.Collection(colSales).Select("customer_name").Documents(ctx)
	defer iter.Stop()

	seen := make(map[string]struct{})
	var names []string
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan customer names")
		}

		name, err := snap.DataAt("customer_name")
		if err != nil {
			continue
		}
		s, ok := name.(string)
		if !ok || s == "" {
			continue
		}
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			names = append(names, s)
		}
	}

	return names, nil
}

func (r *Firestore) ListSalesByCustomers(ctx context.Context, names []string, limit int) ([]*model.SaleRecord, error) {
	if len(names) == 0 {
		return nil, nil
	}

	// Chunk the "in" filter to Firestore's value limit, then merge and
	// re-sort across chunks.
	var sales []*model.SaleRecord
	for start := 0; start < len(names); start += maxInValues {
		end := min(start+maxInValues, len(names))

		iter := r.client.Collection(colSales).
			Where("customer_name", "in", names[start:end]).
			OrderBy("sale_date", firestore.Desc).
			Limit(limit).
			Documents(ctx)

		chunk, err := decodeSales(iter)
		if err != nil {
			return nil, err
		}
		sales = append(sales, chunk...)
	}

	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].SaleDate.After(sales[j].SaleDate)
	})
	if len(sales) > limit {
		sales = sales[:limit]
	}

	return sales, nil
}

func (r *Firestore) ListSales(ctx context.Context, since, until time.Time) ([]*model.SaleRecord, error) {
	q := r.client.Collection(colSales).Query
	if !since.IsZero() {
		q = q.Where("sale_date", ">=", since)
	}
	if !until.IsZero() {
		q = q.Where("sale_date", "<", until)
	}

	return decodeSales(q.Documents(ctx))
}

func decodeSales(iter *firestore.DocumentIterator) ([]*model.SaleRecord, error) {
	defer iter.Stop()

	var sales []*model.SaleRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list sales")
		}

		var sale model.SaleRecord
		if err := snap.DataTo(&sale); err != nil {
			return nil, goerr.Wrap(err, "failed to decode sale", goerr.V("id", snap.Ref.ID))
		}
		sales = append(sales, &sale)
	}

	return sales, nil
}

func (r *Firestore) CountDocuments(ctx context.Context) (*DocumentCounts, error) {
	total, err := r.countDocumentsWhere(ctx, r.client.Collection(colDocuments).Query)
	if err != nil {
		return nil, err
	}

	public, err := r.countDocumentsWhere(ctx,
		r.client.Collection(colDocuments).Where("access_level", "==", string(model.AccessPublic)))
	if err != nil {
		return nil, err
	}

	return &DocumentCounts{Total: total, Public: public}, nil
}

func (r *Firestore) countDocumentsWhere(ctx context.Context, q firestore.Query) (int64, error) {
	result, err := q.NewAggregationQuery().WithCount("count").Get(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to run count aggregation")
	}

	value, ok := result["count"].(*firestorepb.Value)
	if !ok {
		return 0, goerr.New("unexpected count aggregation result")
	}
	return value.GetIntegerValue(), nil
}

func (r *Firestore) Apply(ctx context.Context, batch *Batch) error {
	if batch.Empty() {
		return nil
	}

	// WriteBatch commits atomically but is capped at 500 operations, which
	// bounds the batch size the processor may stage in one call.
	wb := r.client.Batch()
	for _, doc := range batch.Documents {
		wb.Set(r.client.Collection(colDocuments).Doc(string(doc.ID)), doc)
	}
	for _, sale := range batch.Sales {
		wb.Set(r.client.Collection(colSales).Doc(string(sale.ID)), sale)
	}
	for _, id := range batch.Consumed {
		wb.Delete(r.client.Collection(colRawRecords).Doc(string(id)))
	}

	if _, err := wb.Commit(ctx); err != nil {
		return goerr.Wrap(err, "failed to commit batch",
			goerr.V("documents", len(batch.Documents)),
			goerr.V("sales", len(batch.Sales)),
			goerr.V("consumed", len(batch.Consumed)))
	}

	return nil
}
