package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/agente-ai/agente/pkg/model"
	"github.com/agente-ai/agente/pkg/repository"
	"github.com/agente-ai/agente/pkg/utils/logging"
)

const saleDateLayout = "2006-01-02 15:04:05"

// ProcessBatch fetches up to limit raw records, classifies every payload
// element as sale or document, and commits the derived entities in one atomic
// batch. The return value counts payload elements of consumed records,
// including elements skipped for missing embeddings. Embedding failures skip
// the element; persistence failures fail the whole call and discard all
// staged writes.
func (u *UseCase) ProcessBatch(ctx context.Context, limit int) (int, error) {
	logger := logging.From(ctx)

	records, err := u.repo.ListRawRecords(ctx, limit)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to fetch raw records")
	}

	batch := &repository.Batch{}
	// Product cache scoped to this call only: later sale elements reuse
	// documents resolved or created for earlier ones.
	products := make(map[string]model.DocumentID)

	processed := 0
	for _, rec := range records {
		elements := rec.Elements()
		for _, entry := range elements {
			switch elem := classify(entry).(type) {
			case saleElement:
				if err := u.stageSale(ctx, batch, products, elem); err != nil {
					return 0, err
				}
			case docElement:
				u.stageDocument(ctx, batch, rec.ID, elem)
			}
		}

		if u.archive != nil {
			if err := u.archiveRecord(ctx, rec); err != nil {
				return 0, err
			}
		}

		// All elements of a raw record are consumed together, skips included
		batch.Consumed = append(batch.Consumed, rec.ID)
		processed += len(elements)
	}

	if err := u.repo.Apply(ctx, batch); err != nil {
		return 0, goerr.Wrap(err, "failed to commit batch")
	}

	logger.Info("processed raw records",
		"records", len(records),
		"elements", processed,
		"documents", len(batch.Documents),
		"sales", len(batch.Sales))

	return processed, nil
}

func (u *UseCase) stageSale(ctx context.Context, batch *repository.Batch, products map[string]model.DocumentID, elem saleElement) error {
	name := stringField(elem.fields, "product_name", model.DefaultProductName)

	productID, cached := products[name]
	if !cached {
		id, err := u.resolveProduct(ctx, batch, name, elem.fields)
		if err != nil {
			return err
		}
		if id == "" {
			// Could not synthesize the owning document; skip this sale
			// without failing the batch. Not cached, so a later element
			// with the same product retries.
			logging.From(ctx).Warn("skipping sale element: no embedding for new product", "product", name)
			return nil
		}
		products[name] = id
		productID = id
	}

	saleDate, err := time.Parse(saleDateLayout, stringField(elem.fields, "sale_date", ""))
	if err != nil {
		// Malformed dates never fail the batch
		saleDate = time.Now()
	}

	batch.Sales = append(batch.Sales, &model.SaleRecord{
		ID:           model.NewSaleID(),
		ProductID:    productID,
		Quantity:     intField(elem.fields, "quantity", 1),
		PriceTotal:   floatField(elem.fields, "price_total", 0),
		SaleDate:     saleDate,
		Category:     stringField(elem.fields, "category", model.DefaultCategory),
		Region:       stringField(elem.fields, "region", model.DefaultRegion),
		CustomerType: stringField(elem.fields, "customer_type", model.DefaultCustomerType),
		CustomerName: stringField(elem.fields, "customer_name", model.DefaultCustomerName),
		SellerName:   stringField(elem.fields, "seller_name", model.DefaultSellerName),
		CreatedAt:    time.Now(),
	})

	return nil
}

// resolveProduct finds the document owning a sale by exact name, creating it
// when the sale references an unknown product. Created documents are staged
// with a client-generated ID, so the sale can link to them before the batch
// commits. Returns an empty ID when no embedding could be produced.
func (u *UseCase) resolveProduct(ctx context.Context, batch *repository.Batch, name string, fields map[string]any) (model.DocumentID, error) {
	doc, err := u.repo.GetDocumentByName(ctx, name)
	if err == nil {
		return doc.ID, nil
	}
	if !errors.Is(err, model.ErrDocumentNotFound) {
		return "", goerr.Wrap(err, "failed to look up product", goerr.V("product", name))
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		return "", goerr.Wrap(err, "failed to serialize sale payload", goerr.V("product", name))
	}

	vec, err := u.embedder.Embed(ctx, string(payload))
	if err != nil {
		logging.From(ctx).Warn("embedding failed for new product", "product", name, "error", err)
		return "", nil
	}
	if len(vec) == 0 {
		return "", nil
	}

	created := &model.Document{
		ID:          model.NewDocumentID(),
		Name:        name,
		Description: "Auto-creado desde venta: " + name,
		Embedding:   firestore.Vector32(vec),
		AccessLevel: accessLevelOf(fields),
		CreatedAt:   time.Now(),
	}
	batch.Documents = append(batch.Documents, created)

	return created.ID, nil
}

func (u *UseCase) stageDocument(ctx context.Context, batch *repository.Batch, recID model.RawRecordID, elem docElement) {
	// encoding/json renders map keys in sorted order, so re-serializing the
	// decoded element is a stable canonical form
	payload, err := json.Marshal(elem.value)
	if err != nil {
		logging.From(ctx).Warn("skipping element: payload not serializable", "raw_record", recID, "error", err)
		return
	}
	text := string(payload)

	vec, err := u.embedder.Embed(ctx, text)
	if err != nil || len(vec) == 0 {
		// Soft failure: the element is skipped, the batch continues
		logging.From(ctx).Warn("skipping element: no embedding", "raw_record", recID, "error", err)
		return
	}

	batch.Documents = append(batch.Documents, &model.Document{
		ID:          model.NewDocumentID(),
		Name:        displayName(elem.value, recID),
		Description: text,
		Embedding:   firestore.Vector32(vec),
		AccessLevel: accessLevelOf(elem.value),
		CreatedAt:   time.Now(),
	})
}

func (u *UseCase) archiveRecord(ctx context.Context, rec *model.RawRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return goerr.Wrap(err, "failed to serialize raw record for archive", goerr.V("id", rec.ID))
	}

	key := "raw/" + string(rec.ID) + ".json"
	if err := u.archive.Put(ctx, key, data); err != nil {
		// The record is about to be deleted; without the audit copy the
		// batch must not proceed.
		return goerr.Wrap(err, "failed to archive raw record", goerr.V("id", rec.ID))
	}

	return nil
}
