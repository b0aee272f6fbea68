package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/models/store"
	"github.com/FloresJesus/Pharmacy/pkg/store/records"
	"github.com/rs/zerolog"
)

const saleColumns = `
		SELECT v.id, v.cliente_id, v.fecha_venta, COALESCE(v.monto_total, 0), v.estado,
			c.id, c.ci, c.nombre, c.apellido
		FROM ventas v
		LEFT JOIN clientes c ON c.id = v.cliente_id`

const listSalesQuery = saleColumns + `
		WHERE ($1::timestamptz IS NULL OR v.fecha_venta >= $1)
			AND ($2::timestamptz IS NULL OR v.fecha_venta <= $2)
		ORDER BY v.id DESC`

const getSaleQuery = saleColumns + `
		WHERE v.id = $1`

const listSaleItemsQuery = `
		SELECT i.id, i.venta_id, i.medicamento_id, i.cantidad,
			COALESCE(i.precio_por_unidad, 0), COALESCE(i.subtotal, 0),
			m.codigo, m.nombre
		FROM items_venta i
		LEFT JOIN medicamentos m ON m.id = i.medicamento_id
		WHERE i.venta_id IN (%s)
		ORDER BY i.venta_id, i.id`

const medicationColumns = `
		SELECT id, codigo, nombre, stock, COALESCE(stock_minimo, 0), COALESCE(precio_venta, 0),
			fecha_vencimiento, estado
		FROM medicamentos`

const listMedicationsQuery = medicationColumns + `
		ORDER BY id`

const listExpiringQuery = medicationColumns + `
		WHERE fecha_vencimiento >= $1::date AND fecha_vencimiento < $2::date
		ORDER BY fecha_vencimiento, id`

const listStockEntriesQuery = `
		SELECT e.id, e.medicamento_id, e.cantidad, e.fecha_entrada,
			COALESCE(e.precio_unitario, 0), e.observaciones, m.codigo, m.nombre
		FROM entradas_inventario e
		LEFT JOIN medicamentos m ON m.id = e.medicamento_id
		WHERE ($1::timestamptz IS NULL OR e.fecha_entrada >= $1)
			AND ($2::timestamptz IS NULL OR e.fecha_entrada <= $2)
		ORDER BY e.fecha_entrada DESC`

const listStockExitsQuery = `
		SELECT s.id, s.medicamento_id, s.cantidad, s.fecha_salida, s.motivo, m.codigo, m.nombre
		FROM salidas_inventario s
		LEFT JOIN medicamentos m ON m.id = s.medicamento_id
		WHERE ($1::timestamptz IS NULL OR s.fecha_salida >= $1)
			AND ($2::timestamptz IS NULL OR s.fecha_salida <= $2)
		ORDER BY s.fecha_salida DESC`

const listClientsQuery = `
		SELECT id, ci, nombre, apellido, telefono, email, direccion, fecha_registro
		FROM clientes
		WHERE ($1::timestamptz IS NULL OR fecha_registro >= $1)
			AND ($2::timestamptz IS NULL OR fecha_registro <= $2)
		ORDER BY nombre, apellido, id`

type source struct {
	db *sql.DB
}

// NewSource returns a records.Source reading the dashboard tables.
func NewSource(db *sql.DB) (records.Source, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &source{db: db}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *source) ListSales(ctx context.Context, period records.Period) ([]store.Sale, error) {
	rows, err := s.db.QueryContext(ctx, listSalesQuery, nullableTime(period.From), nullableTime(period.To))
	if err != nil {
		return nil, fmt.Errorf("sales query failed: %w", err)
	}
	defer closeRows(ctx, rows)

	var sales []store.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, *sale)
	}
	return sales, rows.Err()
}

func (s *source) GetSale(ctx context.Context, id int64) (*store.Sale, error) {
	sale, err := scanSale(s.db.QueryRowContext(ctx, getSaleQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sale query failed: %w", err)
	}
	return sale, nil
}

func scanSale(row scanner) (*store.Sale, error) {
	var (
		sale                    store.Sale
		clientRef, clientID     sql.NullInt64
		status, ci, name, lname sql.NullString
	)
	err := row.Scan(&sale.ID, &clientRef, &sale.SoldAt, &sale.Total, &status,
		&clientID, &ci, &name, &lname)
	if err != nil {
		return nil, err
	}

	sale.ClientID = int64Ptr(clientRef)
	sale.Status = stringPtr(status)
	if clientID.Valid {
		sale.Client = &store.Client{
			ID:        clientID.Int64,
			CI:        stringPtr(ci),
			FirstName: name.String,
			LastName:  stringPtr(lname),
		}
	}
	return &sale, nil
}

func (s *source) ListSaleItems(ctx context.Context, saleIDs []int64) ([]store.SaleItem, error) {
	if len(saleIDs) == 0 {
		return nil, nil
	}

	args := make([]any, len(saleIDs))
	for i, id := range saleIDs {
		args[i] = id
	}
	query := fmt.Sprintf(listSaleItemsQuery, placeholders(len(saleIDs), 1))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sale items query failed: %w", err)
	}
	defer closeRows(ctx, rows)

	var items []store.SaleItem
	for rows.Next() {
		var (
			item       store.SaleItem
			code, name sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.SaleID, &item.MedicationID, &item.Quantity,
			&item.UnitPrice, &item.Subtotal, &code, &name); err != nil {
			return nil, fmt.Errorf("failed to scan sale item: %w", err)
		}
		item.Medication = medicationRef(code, name)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *source) ListMedications(ctx context.Context) ([]store.Medication, error) {
	return s.queryMedications(ctx, listMedicationsQuery)
}

func (s *source) ListExpiring(ctx context.Context, window records.ExpiryWindow) ([]store.Medication, error) {
	return s.queryMedications(ctx, listExpiringQuery, window.From, window.Before)
}

func (s *source) queryMedications(ctx context.Context, query string, args ...any) ([]store.Medication, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("medications query failed: %w", err)
	}
	defer closeRows(ctx, rows)

	var meds []store.Medication
	for rows.Next() {
		var (
			m       store.Medication
			expires sql.NullTime
			status  sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.Stock, &m.MinStock, &m.SalePrice,
			&expires, &status); err != nil {
			return nil, fmt.Errorf("failed to scan medication: %w", err)
		}
		m.ExpiresAt = timePtr(expires)
		m.Status = stringPtr(status)
		meds = append(meds, m)
	}
	return meds, rows.Err()
}

func (s *source) ListStockEntries(ctx context.Context, period records.Period) ([]store.StockEntry, error) {
	rows, err := s.db.QueryContext(ctx, listStockEntriesQuery, nullableTime(period.From), nullableTime(period.To))
	if err != nil {
		return nil, fmt.Errorf("stock entries query failed: %w", err)
	}
	defer closeRows(ctx, rows)

	var entries []store.StockEntry
	for rows.Next() {
		var (
			e                 store.StockEntry
			notes, code, name sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.MedicationID, &e.Quantity, &e.EnteredAt, &e.UnitCost,
			&notes, &code, &name); err != nil {
			return nil, fmt.Errorf("failed to scan stock entry: %w", err)
		}
		e.Notes = stringPtr(notes)
		e.Medication = medicationRef(code, name)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *source) ListStockExits(ctx context.Context, period records.Period) ([]store.StockExit, error) {
	rows, err := s.db.QueryContext(ctx, listStockExitsQuery, nullableTime(period.From), nullableTime(period.To))
	if err != nil {
		return nil, fmt.Errorf("stock exits query failed: %w", err)
	}
	defer closeRows(ctx, rows)

	var exits []store.StockExit
	for rows.Next() {
		var (
			e                  store.StockExit
			reason, code, name sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.MedicationID, &e.Quantity, &e.ExitedAt,
			&reason, &code, &name); err != nil {
			return nil, fmt.Errorf("failed to scan stock exit: %w", err)
		}
		e.Reason = stringPtr(reason)
		e.Medication = medicationRef(code, name)
		exits = append(exits, e)
	}
	return exits, rows.Err()
}

func (s *source) ListClients(ctx context.Context, period records.Period) ([]store.Client, error) {
	rows, err := s.db.QueryContext(ctx, listClientsQuery, nullableTime(period.From), nullableTime(period.To))
	if err != nil {
		return nil, fmt.Errorf("clients query failed: %w", err)
	}
	defer closeRows(ctx, rows)

	var clients []store.Client
	for rows.Next() {
		var (
			c                                store.Client
			ci, lname, phone, email, address sql.NullString
			registered                       sql.NullTime
		)
		if err := rows.Scan(&c.ID, &ci, &c.FirstName, &lname, &phone, &email, &address,
			&registered); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		c.CI = stringPtr(ci)
		c.LastName = stringPtr(lname)
		c.Phone = stringPtr(phone)
		c.Email = stringPtr(email)
		c.Address = stringPtr(address)
		c.RegisteredAt = timePtr(registered)
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close query rows")
	}
}

func medicationRef(code, name sql.NullString) *store.MedicationRef {
	if !code.Valid && !name.Valid {
		return nil
	}
	return &store.MedicationRef{Code: code.String, Name: name.String}
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}
