package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultReceiptType   = "FACTURA"
	DefaultReceiptSeries = "F001"
)

// Receipt is the render input for a single sale invoice
type Receipt struct {
	SaleID     int64
	IssuedAt   time.Time
	ClientName string
	Total      decimal.Decimal
	Lines      []ReceiptLine
}

type ReceiptLine struct {
	Detail    string
	UnitPrice decimal.Decimal
	Quantity  int
	Subtotal  decimal.Decimal
}

// Number is the printed receipt number, e.g. "V-000123".
func (r Receipt) Number() string {
	return fmt.Sprintf("V-%06d", r.SaleID)
}

// FileName is the download name of the rendered receipt.
func (r Receipt) FileName() string {
	return fmt.Sprintf("comprobante-%s.pdf", r.Number())
}

// StoredReceipt is a receipt persisted to blob storage.
type StoredReceipt struct {
	ID          int64
	SaleID      int64
	Type        string
	Series      string
	Number      string
	StoragePath string
	SignedURL   *string
}

// IssueRequest asks for a stored receipt of a sale.
type IssueRequest struct {
	SaleID int64
	Type   string
	Series string
	Number string
	Signed bool
}

// WithDefaults fills type, series and number the way the register expects.
func (r IssueRequest) WithDefaults() IssueRequest {
	if r.Type == "" {
		r.Type = DefaultReceiptType
	}
	if r.Series == "" {
		r.Series = DefaultReceiptSeries
	}
	if r.Number == "" {
		r.Number = fmt.Sprintf("%06d", r.SaleID)
	}
	return r
}

// ReceiptPath is the storage key of a receipt issued at the given time.
func ReceiptPath(saleID int64, at time.Time) string {
	return fmt.Sprintf("%04d/%02d/%s", at.Year(), int(at.Month()), Receipt{SaleID: saleID}.FileName())
}
