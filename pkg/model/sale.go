package model

import (
	"time"

	"github.com/google/uuid"
)

type SaleID string

// NewSaleID generates a new unique SaleID
func NewSaleID() SaleID {
	return SaleID(uuid.New().String())
}

// Defaults applied when a sale payload omits a field. The upstream data feeds
// are Spanish-language, so the placeholder values are too.
const (
	DefaultProductName  = "Producto Desconocido"
	DefaultCategory     = "General"
	DefaultRegion       = "Global"
	DefaultCustomerType = "Individual"
	DefaultCustomerName = "Cliente Genérico"
	DefaultSellerName   = "Vendedor Sin Asignar"
)

// SaleRecord is a transaction referencing the Document of the product sold.
// Records are created only by batch processing and are never updated.
type SaleRecord struct {
	ID           SaleID     `firestore:"id"`
	ProductID    DocumentID `firestore:"product_id"`
	Quantity     int        `firestore:"quantity"`
	PriceTotal   float64    `firestore:"price_total"`
	SaleDate     time.Time  `firestore:"sale_date"`
	Category     string     `firestore:"category"`
	Region       string     `firestore:"region"`
	CustomerType string     `firestore:"customer_type"`
	CustomerName string     `firestore:"customer_name"`
	SellerName   string     `firestore:"seller_name"`
	CreatedAt    time.Time  `firestore:"created_at"`
}
