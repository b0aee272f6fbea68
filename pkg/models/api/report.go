package api

// ReportRequest is the body of POST /api/v1/reports.
type ReportRequest struct {
	Kind      string   `json:"tipoReporte"`
	StartDate string   `json:"fechaInicio,omitempty"`
	EndDate   string   `json:"fechaFin,omitempty"`
	Format    string   `json:"formato,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
	UserID    string   `json:"userId,omitempty"`
}

type ReportColumn struct {
	Key    string `json:"key"`
	Header string `json:"header"`
}

type ReportKind struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Columns []ReportColumn `json:"columns"`
}

type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}
