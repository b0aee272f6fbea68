package adapters

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/models/api"
	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
)

// DefaultReportKind is used when a request names no kind.
const DefaultReportKind = domain.KindInventory

// MapApiReportRequestToDomain validates the request body. Dates are read as
// calendar days in loc.
func MapApiReportRequestToDomain(req api.ReportRequest, loc *time.Location) (domain.ReportRequest, error) {
	if loc == nil {
		loc = time.UTC
	}

	out := domain.ReportRequest{
		Kind:        domain.Kind(strings.TrimSpace(req.Kind)),
		Threshold:   req.Threshold,
		RequestedBy: req.UserID,
	}
	if out.Kind == "" {
		out.Kind = DefaultReportKind
	}

	format, err := domain.ParseFormat(strings.ToLower(strings.TrimSpace(req.Format)))
	if err != nil {
		return domain.ReportRequest{}, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidRequest, req.Format)
	}
	out.Format = format

	if out.Range.Start, err = parseDay(req.StartDate, loc); err != nil {
		return domain.ReportRequest{}, fmt.Errorf("%w: fechaInicio %q inválida", domain.ErrInvalidRequest, req.StartDate)
	}
	if out.Range.End, err = parseDay(req.EndDate, loc); err != nil {
		return domain.ReportRequest{}, fmt.Errorf("%w: fechaFin %q inválida", domain.ErrInvalidRequest, req.EndDate)
	}
	return out, nil
}

func parseDay(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(domain.DateLayout, s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func MapDomainKindToApi(k domain.KindInfo) api.ReportKind {
	out := api.ReportKind{
		ID:      string(k.ID),
		Title:   k.Title,
		Columns: make([]api.ReportColumn, 0, len(k.Columns)),
	}
	for _, c := range k.Columns {
		out.Columns = append(out.Columns, api.ReportColumn{Key: c.Key, Header: c.Header})
	}
	return out
}

// MapApiReceiptRequestToDomain applies the register defaults; signing is on
// unless generarFirmado is false.
func MapApiReceiptRequestToDomain(req api.ReceiptRequest) (domain.IssueRequest, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(req.SaleID.String()), 10, 64)
	if err != nil || id <= 0 {
		return domain.IssueRequest{}, fmt.Errorf("%w: ventaId inválido", domain.ErrInvalidRequest)
	}

	signed := true
	if req.Signed != nil {
		signed = *req.Signed
	}
	return domain.IssueRequest{
		SaleID: id,
		Type:   req.Type,
		Series: req.Series,
		Number: req.Number,
		Signed: signed,
	}.WithDefaults(), nil
}

func MapStoredReceiptToApi(r *domain.StoredReceipt) api.ReceiptResponse {
	return api.ReceiptResponse{
		OK:          true,
		ReceiptID:   r.ID,
		StoragePath: r.StoragePath,
		SignedURL:   r.SignedURL,
	}
}
