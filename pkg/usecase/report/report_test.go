package report_test

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/gt"

	"github.com/agente-ai/agente/pkg/model"
	"github.com/agente-ai/agente/pkg/repository"
	"github.com/agente-ai/agente/pkg/usecase/report"
)

func seedSales(t *testing.T, repo repository.Repository) {
	t.Helper()
	sale := func(category, customer string, qty int, total float64, date time.Time) *model.SaleRecord {
		return &model.SaleRecord{
			ID:           model.NewSaleID(),
			ProductID:    model.NewDocumentID(),
			Quantity:     qty,
			PriceTotal:   total,
			SaleDate:     date,
			Category:     category,
			Region:       model.DefaultRegion,
			CustomerType: model.DefaultCustomerType,
			CustomerName: customer,
			SellerName:   model.DefaultSellerName,
			CreatedAt:    time.Now(),
		}
	}

	batch := &repository.Batch{
		Sales: []*model.SaleRecord{
			sale("Electronics", "Alpha Systems", 2, 500, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)),
			sale("Electronics", "Beta Corp", 1, 300, time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)),
			sale("Furniture", "Alpha Systems", 4, 800, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
			sale("Furniture", "Beta Corp", 1, 150, time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC)),
		},
	}
	gt.NoError(t, repo.Apply(context.Background(), batch))
}

func TestInventory(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	for i, level := range []model.AccessLevel{model.AccessPublic, model.AccessPublic, model.AccessPrivate} {
		doc := &model.Document{
			ID:          model.NewDocumentID(),
			Name:        string(rune('A' + i)),
			Embedding:   firestore.Vector32{1, 0, 0},
			AccessLevel: level,
			CreatedAt:   time.Now(),
		}
		gt.NoError(t, repo.PutDocument(ctx, doc))
	}

	uc := report.New(repo)
	stats, err := uc.Inventory(ctx)
	gt.NoError(t, err)
	gt.Equal(t, stats.Total, int64(3))
	gt.Equal(t, stats.Public, int64(2))
	gt.Equal(t, stats.Private, int64(1))
}

func TestSales(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	seedSales(t, repo)
	uc := report.New(repo)

	t.Run("Unfiltered", func(t *testing.T) {
		stats, err := uc.Sales(ctx, &report.SalesFilter{})
		gt.NoError(t, err)
		gt.Equal(t, stats.Count, 4)
		gt.Equal(t, stats.Units, 8)
		gt.Equal(t, stats.Revenue, 1750.0)
	})

	t.Run("ByYear", func(t *testing.T) {
		stats, err := uc.Sales(ctx, &report.SalesFilter{Year: 2024})
		gt.NoError(t, err)
		gt.Equal(t, stats.Count, 3)
		gt.Equal(t, stats.Revenue, 1600.0)
	})

	t.Run("ByMonthAndYear", func(t *testing.T) {
		stats, err := uc.Sales(ctx, &report.SalesFilter{Month: time.March, Year: 2024})
		gt.NoError(t, err)
		gt.Equal(t, stats.Count, 2)
		gt.Equal(t, stats.Revenue, 800.0)
	})

	t.Run("MonthAcrossYears", func(t *testing.T) {
		stats, err := uc.Sales(ctx, &report.SalesFilter{Month: time.March})
		gt.NoError(t, err)
		gt.Equal(t, stats.Count, 3)
	})

	t.Run("ByCustomerCaseInsensitive", func(t *testing.T) {
		stats, err := uc.Sales(ctx, &report.SalesFilter{Customer: "alpha systems"})
		gt.NoError(t, err)
		gt.Equal(t, stats.Count, 2)
		gt.Equal(t, stats.Units, 6)
	})

	t.Run("CategoriesOrderedByRevenue", func(t *testing.T) {
		stats, err := uc.Sales(ctx, &report.SalesFilter{})
		gt.NoError(t, err)
		gt.A(t, stats.Categories).Length(2)
		gt.Equal(t, stats.Categories[0].Category, "Furniture")
		gt.Equal(t, stats.Categories[0].Revenue, 950.0)
		gt.Equal(t, stats.Categories[1].Category, "Electronics")
	})
}

type fakeWarehouse struct {
	dataset string
	table   string
	sales   []*model.SaleRecord
	err     error
}

func (x *fakeWarehouse) InsertSales(ctx context.Context, dataset, table string, sales []*model.SaleRecord) error {
	x.dataset = dataset
	x.table = table
	x.sales = sales
	return x.err
}

func TestExportSales(t *testing.T) {
	ctx := context.Background()

	t.Run("ExportsAll", func(t *testing.T) {
		repo := repository.NewMemory()
		seedSales(t, repo)
		warehouse := &fakeWarehouse{}
		uc := report.New(repo, report.WithWarehouse(warehouse))

		count, err := uc.ExportSales(ctx, "analytics", "sales")
		gt.NoError(t, err)
		gt.Equal(t, count, 4)
		gt.Equal(t, warehouse.dataset, "analytics")
		gt.Equal(t, warehouse.table, "sales")
		gt.A(t, warehouse.sales).Length(4)
	})

	t.Run("EmptyStoreSkipsInsert", func(t *testing.T) {
		warehouse := &fakeWarehouse{}
		uc := report.New(repository.NewMemory(), report.WithWarehouse(warehouse))

		count, err := uc.ExportSales(ctx, "analytics", "sales")
		gt.NoError(t, err)
		gt.Equal(t, count, 0)
		gt.A(t, warehouse.sales).Length(0)
	})

	t.Run("NoWarehouseConfigured", func(t *testing.T) {
		uc := report.New(repository.NewMemory())

		_, err := uc.ExportSales(ctx, "analytics", "sales")
		gt.Error(t, err)
	})

	t.Run("InsertFailurePropagates", func(t *testing.T) {
		repo := repository.NewMemory()
		seedSales(t, repo)
		warehouse := &fakeWarehouse{err: context.DeadlineExceeded}
		uc := report.New(repo, report.WithWarehouse(warehouse))

		_, err := uc.ExportSales(ctx, "analytics", "sales")
		gt.Error(t, err)
	})
}
