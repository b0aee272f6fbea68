package store

import "time"

// ReportAudit is a row of the reportes table.
type ReportAudit struct {
	ID         int64
	Kind       string
	Format     string
	Start      *time.Time
	End        *time.Time
	Threshold  *float64
	Status     string
	Notes      *string
	ResultSize *int
	CreatedBy  *string
	CreatedAt  time.Time
}

// Receipt is a row of the comprobantes table.
type Receipt struct {
	ID          int64
	SaleID      int64
	Type        string
	Series      string
	Number      string
	IssuedAt    time.Time
	Payload     []byte
	StoragePath string
}
