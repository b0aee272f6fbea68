package store

import (
	"time"

	"github.com/shopspring/decimal"
)

type Medication struct {
	ID        int64
	Code      string
	Name      string
	Stock     int
	MinStock  int
	SalePrice decimal.Decimal
	ExpiresAt *time.Time
	Status    *string
}

type StockEntry struct {
	ID           int64
	MedicationID int64
	Quantity     int
	EnteredAt    time.Time
	UnitCost     decimal.Decimal
	Notes        *string
	Medication   *MedicationRef
}

type StockExit struct {
	ID           int64
	MedicationID int64
	Quantity     int
	ExitedAt     time.Time
	Reason       *string
	Medication   *MedicationRef
}
