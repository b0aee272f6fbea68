package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const ReportsTableSchema = `
	CREATE TABLE IF NOT EXISTS reportes (
		id BIGSERIAL PRIMARY KEY,
		tipo VARCHAR NOT NULL,
		formato VARCHAR NOT NULL,
		fecha_inicio TIMESTAMPTZ NULL,
		fecha_fin TIMESTAMPTZ NULL,
		parametros JSONB NULL,
		estado VARCHAR NOT NULL,
		notas TEXT NULL,
		resultado_size INTEGER NULL,
		created_by VARCHAR NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const ReceiptsTableSchema = `
	CREATE TABLE IF NOT EXISTS comprobantes (
		id BIGSERIAL PRIMARY KEY,
		venta_id BIGINT NOT NULL UNIQUE,
		tipo VARCHAR NOT NULL,
		serie VARCHAR NOT NULL,
		numero VARCHAR NOT NULL,
		fecha_emision TIMESTAMPTZ NOT NULL,
		datos_json JSONB NULL,
		storage_path VARCHAR NOT NULL
	);
`

var bootQueries = []string{
	ReportsTableSchema,
	ReceiptsTableSchema,
}

type Settings struct {
	DSN             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// NewDB opens a pgx-backed database/sql pool.
func NewDB(settings Settings) (*sql.DB, error) {
	if settings.DSN == "" {
		return nil, fmt.Errorf("database dsn is empty")
	}

	db, err := sql.Open("pgx", settings.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if settings.MaxOpenConns > 0 {
		db.SetMaxOpenConns(settings.MaxOpenConns)
	}
	if settings.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(settings.ConnMaxLifetime)
	}
	return db, nil
}

// Migrate creates the tables owned by the report and receipt services.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, query := range bootQueries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
