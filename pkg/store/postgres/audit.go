package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/FloresJesus/Pharmacy/pkg/models/store"
)

const insertAuditQuery = `
		INSERT INTO reportes (tipo, formato, fecha_inicio, fecha_fin, parametros, estado, notas, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

const updateAuditQuery = `
		UPDATE reportes SET estado = $1, notas = $2, resultado_size = $3
		WHERE id = $4`

// AuditStore keeps the status record of generated reports.
type AuditStore interface {
	CreateAudit(ctx context.Context, audit *store.ReportAudit) (int64, error)
	UpdateAuditStatus(ctx context.Context, id int64, status string, notes *string, size *int) error
}

type auditStore struct {
	db *sql.DB
}

func NewAuditStore(db *sql.DB) (AuditStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &auditStore{db: db}, nil
}

type auditParams struct {
	Threshold *float64 `json:"threshold,omitempty"`
}

func (s *auditStore) CreateAudit(ctx context.Context, audit *store.ReportAudit) (int64, error) {
	params, err := json.Marshal(auditParams{Threshold: audit.Threshold})
	if err != nil {
		return 0, fmt.Errorf("failed to encode report parameters: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, insertAuditQuery,
		audit.Kind,
		audit.Format,
		nullableTime(audit.Start),
		nullableTime(audit.End),
		string(params),
		audit.Status,
		nullableString(audit.Notes),
		nullableString(audit.CreatedBy),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert report audit: %w", err)
	}
	return id, nil
}

func (s *auditStore) UpdateAuditStatus(ctx context.Context, id int64, status string, notes *string, size *int) error {
	var resultSize any
	if size != nil {
		resultSize = int64(*size)
	}

	_, err := s.db.ExecContext(ctx, updateAuditQuery, status, nullableString(notes), resultSize, id)
	if err != nil {
		return fmt.Errorf("failed to update report audit %d: %w", id, err)
	}
	return nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
