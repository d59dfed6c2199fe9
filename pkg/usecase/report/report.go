// Package report aggregates inventory and sales figures and exports sale
// records to the analytics warehouse.
package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/agente-ai/agente/pkg/adapter"
	"github.com/agente-ai/agente/pkg/repository"
	"github.com/agente-ai/agente/pkg/utils/logging"
)

type UseCase struct {
	repo      repository.Repository
	warehouse adapter.Warehouse
}

type Option func(*UseCase)

// WithWarehouse enables sales export through the given warehouse
func WithWarehouse(w adapter.Warehouse) Option {
	return func(u *UseCase) {
		u.warehouse = w
	}
}

func New(repo repository.Repository, opts ...Option) *UseCase {
	u := &UseCase{repo: repo}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// InventoryStats summarizes the document catalog by access level
type InventoryStats struct {
	Total   int64
	Public  int64
	Private int64
}

// Inventory returns document counters computed inside the store
func (u *UseCase) Inventory(ctx context.Context) (*InventoryStats, error) {
	counts, err := u.repo.CountDocuments(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count documents")
	}

	return &InventoryStats{
		Total:   counts.Total,
		Public:  counts.Public,
		Private: counts.Total - counts.Public,
	}, nil
}

// SalesFilter narrows the sales aggregation. Zero values leave the
// corresponding dimension unfiltered. Month without Year matches that month
// in every year.
type SalesFilter struct {
	Month    time.Month
	Year     int
	Customer string
}

// CategoryStats aggregates the sales of one product category
type CategoryStats struct {
	Category string
	Units    int
	Revenue  float64
}

// SalesStats summarizes matching sales with a per-category breakdown ordered
// by descending revenue
type SalesStats struct {
	Count      int
	Units      int
	Revenue    float64
	Categories []CategoryStats
}

// Sales aggregates sale records matching the filter. The year bound is pushed
// into the store query; month and customer are filtered here because the
// store cannot express them.
func (u *UseCase) Sales(ctx context.Context, filter *SalesFilter) (*SalesStats, error) {
	var since, until time.Time
	if filter.Year != 0 {
		since = time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		until = since.AddDate(1, 0, 0)
	}

	sales, err := u.repo.ListSales(ctx, since, until)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list sales")
	}

	stats := &SalesStats{}
	byCategory := map[string]*CategoryStats{}

	for _, sale := range sales {
		if filter.Month != 0 && sale.SaleDate.Month() != filter.Month {
			continue
		}
		if filter.Customer != "" && !strings.EqualFold(sale.CustomerName, filter.Customer) {
			continue
		}

		stats.Count++
		stats.Units += sale.Quantity
		stats.Revenue += sale.PriceTotal

		cat, ok := byCategory[sale.Category]
		if !ok {
			cat = &CategoryStats{Category: sale.Category}
			byCategory[sale.Category] = cat
		}
		cat.Units += sale.Quantity
		cat.Revenue += sale.PriceTotal
	}

	for _, cat := range byCategory {
		stats.Categories = append(stats.Categories, *cat)
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		if stats.Categories[i].Revenue != stats.Categories[j].Revenue {
			return stats.Categories[i].Revenue > stats.Categories[j].Revenue
		}
		return stats.Categories[i].Category < stats.Categories[j].Category
	})

	return stats, nil
}

// ExportSales streams all sale records into the warehouse table. It returns
// the number of exported records.
func (u *UseCase) ExportSales(ctx context.Context, dataset, table string) (int, error) {
	if u.warehouse == nil {
		return 0, goerr.New("no warehouse configured")
	}

	sales, err := u.repo.ListSales(ctx, time.Time{}, time.Time{})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list sales")
	}
	if len(sales) == 0 {
		logging.From(ctx).Info("no sales to export")
		return 0, nil
	}

	if err := u.warehouse.InsertSales(ctx, dataset, table, sales); err != nil {
		return 0, err
	}

	logging.From(ctx).Info("exported sales",
		"count", len(sales),
		"dataset", dataset,
		"table", table)

	return len(sales), nil
}
