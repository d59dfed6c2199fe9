package adapter

import (
	"context"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/goerr/v2"

	"github.com/agente-ai/agente/pkg/model"
)

// Warehouse streams sale records into an analytics warehouse
type Warehouse interface {
	InsertSales(ctx context.Context, dataset, table string, sales []*model.SaleRecord) error
}

// bigqueryClient implements Warehouse using BigQuery streaming inserts
type bigqueryClient struct {
	client *bigquery.Client
}

var _ Warehouse = (*bigqueryClient)(nil)

// NewBigQuery creates a new BigQuery warehouse client
func NewBigQuery(ctx context.Context, projectID string) (Warehouse, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create BigQuery client")
	}

	return &bigqueryClient{client: client}, nil
}

type saleRow struct {
	ID           string    `bigquery:"id"`
	ProductID    string    `bigquery:"product_id"`
	Quantity     int       `bigquery:"quantity"`
	PriceTotal   float64   `bigquery:"price_total"`
	SaleDate     time.Time `bigquery:"sale_date"`
	Category     string    `bigquery:"category"`
	Region       string    `bigquery:"region"`
	CustomerType string    `bigquery:"customer_type"`
	CustomerName string    `bigquery:"customer_name"`
	SellerName   string    `bigquery:"seller_name"`
}

func (bq *bigqueryClient) InsertSales(ctx context.Context, dataset, table string, sales []*model.SaleRecord) error {
	if len(sales) == 0 {
		return nil
	}

	rows := make([]*saleRow, 0, len(sales))
	for _, sale := range sales {
		rows = append(rows, &saleRow{
			ID:           string(sale.ID),
			ProductID:    string(sale.ProductID),
			Quantity:     sale.Quantity,
			PriceTotal:   sale.PriceTotal,
			SaleDate:     sale.SaleDate,
			Category:     sale.Category,
			Region:       sale.Region,
			CustomerType: sale.CustomerType,
			CustomerName: sale.CustomerName,
			SellerName:   sale.SellerName,
		})
	}

	inserter := bq.client.Dataset(dataset).Table(table).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return goerr.Wrap(err, "failed to insert sales",
			goerr.V("dataset", dataset),
			goerr.V("table", table),
			goerr.V("rows", len(rows)))
	}

	return nil
}
