package records

import (
	"context"
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/models/store"
)

// Period is an optional time window; nil ends are open.
// From is inclusive, To is inclusive.
type Period struct {
	From *time.Time
	To   *time.Time
}

// ExpiryWindow selects medications expiring on a calendar day in
// [From, Before). Only the year, month and day of each bound are used.
type ExpiryWindow struct {
	From   time.Time
	Before time.Time
}

// Source is the read-only view of the pharmacy records used by reports
// and receipts.
type Source interface {
	ListSales(ctx context.Context, period Period) ([]store.Sale, error)
	ListSaleItems(ctx context.Context, saleIDs []int64) ([]store.SaleItem, error)
	// GetSale returns nil and no error when the sale does not exist.
	GetSale(ctx context.Context, id int64) (*store.Sale, error)
	ListMedications(ctx context.Context) ([]store.Medication, error)
	ListExpiring(ctx context.Context, window ExpiryWindow) ([]store.Medication, error)
	ListStockEntries(ctx context.Context, period Period) ([]store.StockEntry, error)
	ListStockExits(ctx context.Context, period Period) ([]store.StockExit, error)
	ListClients(ctx context.Context, period Period) ([]store.Client, error)
}
