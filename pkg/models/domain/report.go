package domain

import (
	"fmt"
	"time"
)

// Kind identifies one of the supported report categories
type Kind string

const (
	KindSalesDetailed Kind = "ventas_detallado"
	KindSalesDaily    Kind = "ventas_resumen"
	KindSalesByClient Kind = "ventas_por_cliente"
	KindInventory     Kind = "inventario_actual"
	KindMovements     Kind = "movimientos"
	KindExpiring      Kind = "por_vencer"
	KindLowStock      Kind = "stock_bajo"
	KindBelowMinimum  Kind = "minimos"
	KindClients       Kind = "clientes"
	KindStockAlerts   Kind = "alertas"
)

const (
	DateLayout = "2006-01-02"
	// UnregisteredClient is the display name used when a sale has no client.
	UnregisteredClient = "No registrado"
)

// Format is the output encoding of a report
type Format string

const (
	FormatPDF Format = "pdf"
	FormatCSV Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, "":
		return FormatPDF, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", ErrInvalidRequest, s)
	}
}

func (f Format) Extension() string {
	return string(f)
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/pdf"
}

// DateRange holds optional calendar dates. Both ends are inclusive.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Complete reports whether both ends of the range are set.
func (r DateRange) Complete() bool {
	return r.Start != nil && r.End != nil
}

// Bounds returns the comparison bounds of the range: start as given and end
// moved to 23:59:59.999 of its calendar day. Missing ends stay nil.
func (r DateRange) Bounds() (from, to *time.Time) {
	if r.Start != nil {
		s := *r.Start
		from = &s
	}
	if r.End != nil {
		e := *r.End
		e = time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, int(999*time.Millisecond), e.Location())
		to = &e
	}
	return from, to
}

// ReportRequest is a single report invocation. It is not mutated after dispatch.
type ReportRequest struct {
	Kind        Kind
	Range       DateRange
	Format      Format
	Threshold   *float64
	RequestedBy string
}

// Field is one cell of a ReportRow.
type Field struct {
	Key   string
	Value string
}

// ReportRow is an ordered set of display-ready cells.
type ReportRow []Field

func (r ReportRow) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

func (r ReportRow) Get(key string) string {
	for _, f := range r {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// ColumnSpec describes how the document renderer lays out one column.
type ColumnSpec struct {
	Key    string
	Header string
	Weight int
	Align  Align
}

// KindInfo is the public description of a registered report kind.
type KindInfo struct {
	ID      Kind
	Title   string
	Columns []ColumnSpec
}

// Table is the dispatcher output: rows plus the columns that lay them out.
type Table struct {
	Title   string
	Rows    []ReportRow
	Columns []ColumnSpec
}

// ReportFile is the encoded output of a report request.
type ReportFile struct {
	Name        string
	ContentType string
	Data        []byte
	Rows        int
}

// FileName builds the download name for a report:
// reporte-{kind}-{start}_{end}.{ext}, or a timestamp when the range is incomplete.
func FileName(req ReportRequest, now time.Time) string {
	var suffix string
	if req.Range.Complete() {
		suffix = req.Range.Start.Format(DateLayout) + "_" + req.Range.End.Format(DateLayout)
	} else {
		suffix = now.UTC().Format("2006-01-02-15-04-05")
	}
	return fmt.Sprintf("reporte-%s-%s.%s", req.Kind, suffix, req.Format.Extension())
}
