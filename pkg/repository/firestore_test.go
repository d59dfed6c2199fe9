package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/gt"

	"github.com/agente-ai/agente/pkg/model"
	"github.com/agente-ai/agente/pkg/repository"
)

func setupFirestore(t *testing.T) *repository.Firestore {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	if projectID == "" || databaseID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID and TEST_FIRESTORE_DATABASE_ID must be set to run Firestore tests")
	}

	repo, err := repository.New(context.Background(), projectID, databaseID)
	gt.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return repo
}

func testEmbedding(base float32) firestore.Vector32 {
	vec := make(firestore.Vector32, 768)
	for i := range vec {
		vec[i] = base + float32(i)/768.0*0.01
	}
	return vec
}

func TestFirestorePutGetDocument(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()

	doc := &model.Document{
		ID:          model.NewDocumentID(),
		Name:        "Integration Widget",
		Description: "document used by the integration test",
		Embedding:   testEmbedding(0.5),
		AccessLevel: model.AccessPublic,
		CreatedAt:   time.Now(),
	}
	gt.NoError(t, repo.PutDocument(ctx, doc))

	retrieved, err := repo.GetDocument(ctx, doc.ID)
	gt.NoError(t, err)
	gt.Equal(t, retrieved.Name, doc.Name)
	gt.Equal(t, retrieved.AccessLevel, model.AccessPublic)
	gt.A(t, retrieved.Embedding).Length(768)

	byName, err := repo.GetDocumentByName(ctx, doc.Name)
	gt.NoError(t, err)
	gt.Equal(t, byName.ID, doc.ID)
}

func TestFirestoreGetDocumentNotFound(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()

	_, err := repo.GetDocument(ctx, model.DocumentID("does-not-exist"))
	gt.Error(t, err)
}

func TestFirestoreSearchDocumentsPublicOnly(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()

	private := &model.Document{
		ID:          model.NewDocumentID(),
		Name:        "Private Near",
		Embedding:   testEmbedding(0.2),
		AccessLevel: model.AccessPrivate,
		CreatedAt:   time.Now(),
	}
	public := &model.Document{
		ID:          model.NewDocumentID(),
		Name:        "Public Far",
		Embedding:   testEmbedding(0.8),
		AccessLevel: model.AccessPublic,
		CreatedAt:   time.Now(),
	}
	gt.NoError(t, repo.PutDocument(ctx, private))
	gt.NoError(t, repo.PutDocument(ctx, public))

	// Wait for Firestore to index
	time.Sleep(2 * time.Second)

	query := make([]float32, 768)
	for i := range query {
		query[i] = 0.2
	}

	results, err := repo.SearchDocuments(ctx, query, 10, true)
	gt.NoError(t, err)
	for _, doc := range results {
		gt.Equal(t, doc.AccessLevel, model.AccessPublic)
	}
}

func TestFirestoreApplyBatch(t *testing.T) {
	repo := setupFirestore(t)
	ctx := context.Background()

	rec := &model.RawRecord{
		ID:        model.NewRawRecordID(),
		Source:    "integration_test",
		Payload:   map[string]any{"product_name": "Batch Widget", "price_total": 10.0},
		CreatedAt: time.Now(),
	}
	gt.NoError(t, repo.PutRawRecord(ctx, rec))

	doc := &model.Document{
		ID:          model.NewDocumentID(),
		Name:        "Batch Widget",
		Embedding:   testEmbedding(0.4),
		AccessLevel: model.AccessPrivate,
		CreatedAt:   time.Now(),
	}
	sale := &model.SaleRecord{
		ID:           model.NewSaleID(),
		ProductID:    doc.ID,
		Quantity:     2,
		PriceTotal:   10,
		SaleDate:     time.Now(),
		CustomerName: "Integration Customer",
		CreatedAt:    time.Now(),
	}

	err := repo.Apply(ctx, &repository.Batch{
		Documents: []*model.Document{doc},
		Sales:     []*model.SaleRecord{sale},
		Consumed:  []model.RawRecordID{rec.ID},
	})
	gt.NoError(t, err)

	stored, err := repo.GetDocument(ctx, doc.ID)
	gt.NoError(t, err)
	gt.Equal(t, stored.Name, "Batch Widget")

	sales, err := repo.ListSalesByCustomers(ctx, []string{"Integration Customer"}, 10)
	gt.NoError(t, err)
	gt.A(t, sales).Longer(0)
}
