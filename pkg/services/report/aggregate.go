package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/adapters"
	"github.com/FloresJesus/Pharmacy/pkg/format"
	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
	"github.com/FloresJesus/Pharmacy/pkg/models/store"
	"github.com/shopspring/decimal"
)

const (
	movementIn  = "ENTRADA"
	movementOut = "SALIDA"

	alertExpiring = "Por vencer"
	alertLowStock = "Stock bajo"
)

// IsLowStock selects a medication against the explicit threshold when one
// is given, and against its own reorder level otherwise.
func IsLowStock(m store.Medication, threshold *float64) bool {
	if threshold != nil {
		return float64(m.Stock) <= *threshold
	}
	return m.Stock <= m.MinStock
}

func aggregateSalesDetailed(data Dataset, p Params) []domain.ReportRow {
	items := make(map[int64][]string)
	for _, it := range data.Items {
		items[it.SaleID] = append(items[it.SaleID],
			fmt.Sprintf("%s x%d", adapters.MedicationLabel(it.Medication, it.MedicationID), it.Quantity))
	}

	rows := make([]domain.ReportRow, 0, len(data.Sales))
	for _, s := range data.Sales {
		rows = append(rows, domain.ReportRow{
			{Key: "venta_id", Value: p.Formatter.ID(s.ID)},
			{Key: "fecha_venta", Value: p.Formatter.Day(s.SoldAt)},
			{Key: "cliente", Value: adapters.ClientName(s.Client)},
			{Key: "monto_total", Value: p.Formatter.Money(s.Total)},
			{Key: "estado", Value: format.Text(s.Status)},
			{Key: "items", Value: strings.Join(items[s.ID], "\n")},
		})
	}
	return rows
}

type salesGroup struct {
	key   string
	count int
	total decimal.Decimal
}

// groupSales folds sales into groups keyed by keyOf, in first-appearance order.
func groupSales(sales []store.Sale, keyOf func(store.Sale) string) []*salesGroup {
	index := make(map[string]*salesGroup)
	var groups []*salesGroup
	for _, s := range sales {
		k := keyOf(s)
		g, ok := index[k]
		if !ok {
			g = &salesGroup{key: k}
			index[k] = g
			groups = append(groups, g)
		}
		g.count++
		g.total = g.total.Add(s.Total)
	}
	return groups
}

func aggregateSalesDaily(data Dataset, p Params) []domain.ReportRow {
	groups := groupSales(data.Sales, func(s store.Sale) string { return p.Formatter.Day(s.SoldAt) })
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].key > groups[j].key })

	rows := make([]domain.ReportRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, domain.ReportRow{
			{Key: "fecha", Value: g.key},
			{Key: "ventas", Value: p.Formatter.Int(g.count)},
			{Key: "total", Value: p.Formatter.Money(g.total)},
		})
	}
	return rows
}

func aggregateSalesByClient(data Dataset, p Params) []domain.ReportRow {
	groups := groupSales(data.Sales, func(s store.Sale) string { return adapters.ClientName(s.Client) })

	rows := make([]domain.ReportRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, domain.ReportRow{
			{Key: "cliente", Value: g.key},
			{Key: "ventas", Value: p.Formatter.Int(g.count)},
			{Key: "total", Value: p.Formatter.Money(g.total)},
		})
	}
	return rows
}

func aggregateInventory(data Dataset, p Params) []domain.ReportRow {
	rows := make([]domain.ReportRow, 0, len(data.Medications))
	for _, m := range data.Medications {
		rows = append(rows, domain.ReportRow{
			{Key: "id", Value: p.Formatter.ID(m.ID)},
			{Key: "codigo", Value: m.Code},
			{Key: "nombre", Value: m.Name},
			{Key: "stock", Value: p.Formatter.Int(m.Stock)},
			{Key: "stock_minimo", Value: p.Formatter.Int(m.MinStock)},
			{Key: "precio_venta", Value: p.Formatter.Money(m.SalePrice)},
			{Key: "fecha_vencimiento", Value: p.Formatter.Date(m.ExpiresAt)},
			{Key: "estado", Value: format.Text(m.Status)},
		})
	}
	return rows
}

type movement struct {
	at  time.Time
	row domain.ReportRow
}

func aggregateMovements(data Dataset, p Params) []domain.ReportRow {
	moves := make([]movement, 0, len(data.Entries)+len(data.Exits))
	for _, e := range data.Entries {
		moves = append(moves, movement{at: e.EnteredAt, row: domain.ReportRow{
			{Key: "tipo", Value: movementIn},
			{Key: "fecha", Value: p.Formatter.Timestamp(e.EnteredAt)},
			{Key: "medicamento", Value: adapters.MedicationLabel(e.Medication, e.MedicationID)},
			{Key: "cantidad", Value: p.Formatter.Int(e.Quantity)},
			{Key: "precio_unitario", Value: p.Formatter.Money(e.UnitCost)},
			{Key: "detalle", Value: format.Text(e.Notes)},
		}})
	}
	for _, e := range data.Exits {
		moves = append(moves, movement{at: e.ExitedAt, row: domain.ReportRow{
			{Key: "tipo", Value: movementOut},
			{Key: "fecha", Value: p.Formatter.Timestamp(e.ExitedAt)},
			{Key: "medicamento", Value: adapters.MedicationLabel(e.Medication, e.MedicationID)},
			{Key: "cantidad", Value: p.Formatter.Int(e.Quantity)},
			{Key: "precio_unitario", Value: ""},
			{Key: "detalle", Value: format.Text(e.Reason)},
		}})
	}
	sort.SliceStable(moves, func(i, j int) bool { return moves[i].at.After(moves[j].at) })

	rows := make([]domain.ReportRow, len(moves))
	for i, m := range moves {
		rows[i] = m.row
	}
	return rows
}

func aggregateExpiring(data Dataset, p Params) []domain.ReportRow {
	rows := make([]domain.ReportRow, 0, len(data.Expiring))
	for _, m := range data.Expiring {
		rows = append(rows, domain.ReportRow{
			{Key: "id", Value: p.Formatter.ID(m.ID)},
			{Key: "codigo", Value: m.Code},
			{Key: "nombre", Value: m.Name},
			{Key: "fecha_vencimiento", Value: p.Formatter.Date(m.ExpiresAt)},
			{Key: "stock", Value: p.Formatter.Int(m.Stock)},
		})
	}
	return rows
}

func aggregateLowStock(data Dataset, p Params) []domain.ReportRow {
	var rows []domain.ReportRow
	for _, m := range data.Medications {
		if !IsLowStock(m, p.Threshold) {
			continue
		}
		rows = append(rows, domain.ReportRow{
			{Key: "id", Value: p.Formatter.ID(m.ID)},
			{Key: "codigo", Value: m.Code},
			{Key: "nombre", Value: m.Name},
			{Key: "stock", Value: p.Formatter.Int(m.Stock)},
			{Key: "stock_minimo", Value: p.Formatter.Int(m.MinStock)},
			{Key: "precio_venta", Value: p.Formatter.Money(m.SalePrice)},
		})
	}
	return rows
}

func aggregateClients(data Dataset, p Params) []domain.ReportRow {
	rows := make([]domain.ReportRow, 0, len(data.Clients))
	for i := range data.Clients {
		c := &data.Clients[i]
		rows = append(rows, domain.ReportRow{
			{Key: "id", Value: p.Formatter.ID(c.ID)},
			{Key: "ci", Value: format.Text(c.CI)},
			{Key: "nombre", Value: adapters.ClientName(c)},
			{Key: "telefono", Value: format.Text(c.Phone)},
			{Key: "email", Value: format.Text(c.Email)},
			{Key: "fecha_registro", Value: p.Formatter.OptionalDay(c.RegisteredAt)},
		})
	}
	return rows
}

// aggregateAlerts lists every medication that is expiring or low on stock,
// once, in medication order. Expiring records missing from the full list
// are appended after it.
func aggregateAlerts(data Dataset, p Params) []domain.ReportRow {
	expiring := make(map[int64]bool, len(data.Expiring))
	for _, m := range data.Expiring {
		expiring[m.ID] = true
	}

	seen := make(map[int64]bool)
	var rows []domain.ReportRow
	emit := func(m store.Medication) {
		if seen[m.ID] {
			return
		}
		var labels []string
		if expiring[m.ID] {
			labels = append(labels, alertExpiring)
		}
		if IsLowStock(m, p.Threshold) {
			labels = append(labels, alertLowStock)
		}
		if len(labels) == 0 {
			return
		}
		seen[m.ID] = true
		rows = append(rows, domain.ReportRow{
			{Key: "id", Value: p.Formatter.ID(m.ID)},
			{Key: "codigo", Value: m.Code},
			{Key: "nombre", Value: m.Name},
			{Key: "stock", Value: p.Formatter.Int(m.Stock)},
			{Key: "stock_minimo", Value: p.Formatter.Int(m.MinStock)},
			{Key: "fecha_vencimiento", Value: p.Formatter.Date(m.ExpiresAt)},
			{Key: "alerta", Value: strings.Join(labels, ", ")},
		})
	}

	for _, m := range data.Medications {
		emit(m)
	}
	for _, m := range data.Expiring {
		emit(m)
	}
	return rows
}
