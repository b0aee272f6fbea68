package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/FloresJesus/Pharmacy/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditStore_CreateAudit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewAuditStore(db)
	require.NoError(t, err)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	threshold := 5.0
	user := "u-1"

	mock.ExpectQuery(regexp.QuoteMeta(insertAuditQuery)).
		WithArgs("stock_bajo", "pdf", start, nil, `{"threshold":5}`, "PENDIENTE", nil, "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(41)))

	id, err := s.CreateAudit(context.Background(), &store.ReportAudit{
		Kind:      "stock_bajo",
		Format:    "pdf",
		Start:     &start,
		Threshold: &threshold,
		Status:    "PENDIENTE",
		CreatedBy: &user,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(41), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditStore_UpdateAuditStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewAuditStore(db)
	require.NoError(t, err)
	ctx := context.Background()

	note := "descarga directa"
	size := 2048
	mock.ExpectExec(regexp.QuoteMeta(updateAuditQuery)).
		WithArgs("GENERADO", "descarga directa", int64(2048), int64(41)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.UpdateAuditStatus(ctx, 41, "GENERADO", &note, &size))

	boom := errors.New("db down")
	mock.ExpectExec(regexp.QuoteMeta(updateAuditQuery)).
		WithArgs("ERROR", nil, nil, int64(42)).
		WillReturnError(boom)

	err = s.UpdateAuditStatus(ctx, 42, "ERROR", nil, nil)
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s, err := NewReceiptStore(db)
	require.NoError(t, err)
	ctx := context.Background()
	issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cols := []string{"id", "venta_id", "tipo", "serie", "numero", "fecha_emision", "storage_path"}

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(findReceiptQuery)).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows(cols))

		r, err := s.FindBySale(ctx, 5)
		require.NoError(t, err)
		assert.Nil(t, r)
	})

	t.Run("existing", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(findReceiptQuery)).
			WithArgs(int64(6)).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int64(1), int64(6), "FACTURA", "F001", "000006", issued, "2024/06/comprobante-V-000006.pdf"))

		r, err := s.FindBySale(ctx, 6)
		require.NoError(t, err)
		require.NotNil(t, r)
		assert.Equal(t, "2024/06/comprobante-V-000006.pdf", r.StoragePath)
	})

	t.Run("insert", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(insertReceiptQuery)).
			WithArgs(int64(7), "FACTURA", "F001", "000007", issued, `{"sale":7}`, "2024/06/comprobante-V-000007.pdf").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))

		id, err := s.Insert(ctx, &store.Receipt{
			SaleID:      7,
			Type:        "FACTURA",
			Series:      "F001",
			Number:      "000007",
			IssuedAt:    issued,
			Payload:     []byte(`{"sale":7}`),
			StoragePath: "2024/06/comprobante-V-000007.pdf",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), id)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
