package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/FloresJesus/Pharmacy/pkg/models/store"
)

const findReceiptQuery = `
		SELECT id, venta_id, tipo, serie, numero, fecha_emision, storage_path
		FROM comprobantes
		WHERE venta_id = $1`

const insertReceiptQuery = `
		INSERT INTO comprobantes (venta_id, tipo, serie, numero, fecha_emision, datos_json, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

// ReceiptStore keeps the register of issued receipts.
type ReceiptStore interface {
	// FindBySale returns nil and no error when the sale has no receipt.
	FindBySale(ctx context.Context, saleID int64) (*store.Receipt, error)
	Insert(ctx context.Context, receipt *store.Receipt) (int64, error)
}

type receiptStore struct {
	db *sql.DB
}

func NewReceiptStore(db *sql.DB) (ReceiptStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &receiptStore{db: db}, nil
}

func (s *receiptStore) FindBySale(ctx context.Context, saleID int64) (*store.Receipt, error) {
	var r store.Receipt
	err := s.db.QueryRowContext(ctx, findReceiptQuery, saleID).
		Scan(&r.ID, &r.SaleID, &r.Type, &r.Series, &r.Number, &r.IssuedAt, &r.StoragePath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("receipt query failed: %w", err)
	}
	return &r, nil
}

func (s *receiptStore) Insert(ctx context.Context, r *store.Receipt) (int64, error) {
	var payload any
	if len(r.Payload) > 0 {
		payload = string(r.Payload)
	}

	var id int64
	err := s.db.QueryRowContext(ctx, insertReceiptQuery,
		r.SaleID, r.Type, r.Series, r.Number, r.IssuedAt, payload, r.StoragePath,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert receipt for sale %d: %w", r.SaleID, err)
	}
	return id, nil
}
