package report

import (
	"context"
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/format"
	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
	"github.com/FloresJesus/Pharmacy/pkg/models/store"
	"github.com/FloresJesus/Pharmacy/pkg/store/records"
)

// Dataset holds the records fetched for one request. Each kind fills only
// the slices it needs.
type Dataset struct {
	Sales       []store.Sale
	Items       []store.SaleItem
	Medications []store.Medication
	Expiring    []store.Medication
	Entries     []store.StockEntry
	Exits       []store.StockExit
	Clients     []store.Client
}

// Query is the selection handed to a fetch function.
type Query struct {
	Period records.Period
	Expiry records.ExpiryWindow
}

// Params are the inputs of an aggregate function besides the records.
type Params struct {
	Threshold *float64
	Formatter format.Formatter
}

type FetchFunc func(ctx context.Context, src records.Source, q Query) (Dataset, error)

type AggregateFunc func(data Dataset, p Params) []domain.ReportRow

// Variant is one report kind: how to select its records and how to turn
// them into rows.
type Variant struct {
	ID        domain.Kind
	Title     string
	Columns   []domain.ColumnSpec
	Fetch     FetchFunc
	Aggregate AggregateFunc
}

func col(key, header string, weight int) domain.ColumnSpec {
	return domain.ColumnSpec{Key: key, Header: header, Weight: weight}
}

// Variants returns the built-in report kinds.
func Variants() []Variant {
	return []Variant{
		{
			ID:    domain.KindSalesDetailed,
			Title: "Reporte de Ventas Detallado",
			Columns: []domain.ColumnSpec{
				col("venta_id", "ID", 1),
				col("fecha_venta", "Fecha", 2),
				col("cliente", "Cliente", 3),
				col("monto_total", "Total", 2),
				col("estado", "Estado", 2),
				col("items", "Items", 5),
			},
			Fetch:     fetchSalesWithItems,
			Aggregate: aggregateSalesDetailed,
		},
		{
			ID:    domain.KindSalesDaily,
			Title: "Resumen de Ventas por Día",
			Columns: []domain.ColumnSpec{
				col("fecha", "Fecha", 2),
				col("ventas", "N° Ventas", 1),
				col("total", "Total", 2),
			},
			Fetch:     fetchSales,
			Aggregate: aggregateSalesDaily,
		},
		{
			ID:    domain.KindSalesByClient,
			Title: "Ventas por Cliente",
			Columns: []domain.ColumnSpec{
				col("cliente", "Cliente", 3),
				col("ventas", "N° Ventas", 1),
				col("total", "Total", 2),
			},
			Fetch:     fetchSales,
			Aggregate: aggregateSalesByClient,
		},
		{
			ID:        domain.KindInventory,
			Title:     "Inventario Actual",
			Columns:   inventoryColumns,
			Fetch:     fetchMedications,
			Aggregate: aggregateInventory,
		},
		{
			ID:    domain.KindMovements,
			Title: "Movimientos de Inventario",
			Columns: []domain.ColumnSpec{
				col("tipo", "Tipo", 1),
				col("fecha", "Fecha", 2),
				col("medicamento", "Medicamento", 3),
				col("cantidad", "Cantidad", 1),
				col("precio_unitario", "Precio U.", 1),
				col("detalle", "Detalle", 2),
			},
			Fetch:     fetchMovements,
			Aggregate: aggregateMovements,
		},
		{
			ID:    domain.KindExpiring,
			Title: "Medicamentos por Vencer",
			Columns: []domain.ColumnSpec{
				col("id", "ID", 1),
				col("codigo", "Código", 2),
				col("nombre", "Nombre", 4),
				col("fecha_vencimiento", "Vencimiento", 2),
				col("stock", "Stock", 1),
			},
			Fetch:     fetchExpiring,
			Aggregate: aggregateExpiring,
		},
		{
			ID:        domain.KindLowStock,
			Title:     "Medicamentos con Stock Bajo",
			Columns:   lowStockColumns,
			Fetch:     fetchMedications,
			Aggregate: aggregateLowStock,
		},
		{
			ID:        domain.KindBelowMinimum,
			Title:     "Medicamentos bajo Stock Mínimo",
			Columns:   lowStockColumns,
			Fetch:     fetchMedications,
			Aggregate: aggregateLowStock,
		},
		{
			ID:    domain.KindClients,
			Title: "Directorio de Clientes",
			Columns: []domain.ColumnSpec{
				col("id", "ID", 1),
				col("ci", "CI", 2),
				col("nombre", "Nombre", 4),
				col("telefono", "Teléfono", 2),
				col("email", "Email", 3),
				col("fecha_registro", "Registro", 2),
			},
			Fetch:     fetchClients,
			Aggregate: aggregateClients,
		},
		{
			ID:    domain.KindStockAlerts,
			Title: "Alertas de Inventario",
			Columns: []domain.ColumnSpec{
				col("id", "ID", 1),
				col("codigo", "Código", 2),
				col("nombre", "Nombre", 4),
				col("stock", "Stock", 1),
				col("stock_minimo", "Mínimo", 1),
				col("fecha_vencimiento", "Vencimiento", 2),
				col("alerta", "Alerta", 3),
			},
			Fetch:     fetchAlerts,
			Aggregate: aggregateAlerts,
		},
	}
}

var inventoryColumns = []domain.ColumnSpec{
	col("id", "ID", 1),
	col("codigo", "Código", 2),
	col("nombre", "Nombre", 4),
	col("stock", "Stock", 1),
	col("stock_minimo", "Mínimo", 1),
	col("precio_venta", "Precio", 2),
	col("fecha_vencimiento", "Vencimiento", 2),
	col("estado", "Estado", 2),
}

var lowStockColumns = []domain.ColumnSpec{
	col("id", "ID", 1),
	col("codigo", "Código", 2),
	col("nombre", "Nombre", 4),
	col("stock", "Stock", 1),
	col("stock_minimo", "Mínimo", 1),
	col("precio_venta", "Precio", 2),
}

func fetchSales(ctx context.Context, src records.Source, q Query) (Dataset, error) {
	sales, err := src.ListSales(ctx, q.Period)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Sales: sales}, nil
}

func fetchSalesWithItems(ctx context.Context, src records.Source, q Query) (Dataset, error) {
	data, err := fetchSales(ctx, src, q)
	if err != nil {
		return Dataset{}, err
	}

	ids := make([]int64, 0, len(data.Sales))
	for _, s := range data.Sales {
		ids = append(ids, s.ID)
	}
	data.Items, err = src.ListSaleItems(ctx, ids)
	if err != nil {
		return Dataset{}, err
	}
	return data, nil
}

func fetchMedications(ctx context.Context, src records.Source, _ Query) (Dataset, error) {
	meds, err := src.ListMedications(ctx)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Medications: meds}, nil
}

func fetchExpiring(ctx context.Context, src records.Source, q Query) (Dataset, error) {
	meds, err := src.ListExpiring(ctx, q.Expiry)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Expiring: meds}, nil
}

func fetchMovements(ctx context.Context, src records.Source, q Query) (Dataset, error) {
	entries, err := src.ListStockEntries(ctx, q.Period)
	if err != nil {
		return Dataset{}, err
	}
	exits, err := src.ListStockExits(ctx, q.Period)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Entries: entries, Exits: exits}, nil
}

func fetchClients(ctx context.Context, src records.Source, q Query) (Dataset, error) {
	clients, err := src.ListClients(ctx, q.Period)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Clients: clients}, nil
}

func fetchAlerts(ctx context.Context, src records.Source, q Query) (Dataset, error) {
	data, err := fetchMedications(ctx, src, q)
	if err != nil {
		return Dataset{}, err
	}
	data.Expiring, err = src.ListExpiring(ctx, q.Expiry)
	if err != nil {
		return Dataset{}, err
	}
	return data, nil
}

// ExpiryWindow returns the calendar-day window used by the expiring kinds:
// the inclusive request range when complete, otherwise [today, today+days).
func ExpiryWindow(r domain.DateRange, today time.Time, days int) records.ExpiryWindow {
	if r.Complete() {
		return records.ExpiryWindow{
			From:   calendarDay(*r.Start),
			Before: calendarDay(*r.End).AddDate(0, 0, 1),
		}
	}
	from := calendarDay(today)
	return records.ExpiryWindow{From: from, Before: from.AddDate(0, 0, days)}
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
