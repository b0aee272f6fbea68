package domain

import "time"

type AuditStatus string

const (
	AuditStatusPending   AuditStatus = "PENDIENTE"
	AuditStatusGenerated AuditStatus = "GENERADO"
	AuditStatusError     AuditStatus = "ERROR"
)

// DirectDownloadNote is recorded on audits whose output was streamed to the caller.
const DirectDownloadNote = "descarga directa"

// ReportAudit is the status record kept for each generated report
type ReportAudit struct {
	ID         int64
	Kind       Kind
	Format     Format
	Start      *time.Time
	End        *time.Time
	Threshold  *float64
	Status     AuditStatus
	Notes      *string
	ResultSize *int
	CreatedBy  *string
}
