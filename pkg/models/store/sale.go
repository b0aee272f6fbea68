package store

import (
	"time"

	"github.com/shopspring/decimal"
)

type Client struct {
	ID           int64
	CI           *string
	FirstName    string
	LastName     *string
	Phone        *string
	Email        *string
	Address      *string
	RegisteredAt *time.Time
}

// Sale is a row of ventas with its client embedded when one is linked.
type Sale struct {
	ID       int64
	ClientID *int64
	SoldAt   time.Time
	Total    decimal.Decimal
	Status   *string
	Client   *Client
}

// MedicationRef is the embedded code/name pair of a related medication.
type MedicationRef struct {
	Code string
	Name string
}

// SaleItem is a row of items_venta with its medication embedded.
type SaleItem struct {
	ID           int64
	SaleID       int64
	MedicationID int64
	Quantity     int
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
	Medication   *MedicationRef
}
