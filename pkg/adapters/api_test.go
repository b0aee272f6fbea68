package adapters

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/models/api"
	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
	"github.com/FloresJesus/Pharmacy/pkg/models/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapApiReportRequestToDomain(t *testing.T) {
	threshold := 5.0
	laPaz := time.FixedZone("BOT", -4*3600)

	tests := []struct {
		name    string
		req     api.ReportRequest
		check   func(t *testing.T, got domain.ReportRequest)
		wantErr bool
	}{
		{
			name: "defaults",
			req:  api.ReportRequest{},
			check: func(t *testing.T, got domain.ReportRequest) {
				assert.Equal(t, domain.KindInventory, got.Kind)
				assert.Equal(t, domain.FormatPDF, got.Format)
				assert.False(t, got.Range.Complete())
			},
		},
		{
			name: "full request",
			req: api.ReportRequest{
				Kind: "ventas_resumen", StartDate: "2024-01-01", EndDate: "2024-01-31",
				Format: "CSV", Threshold: &threshold, UserID: "u-9",
			},
			check: func(t *testing.T, got domain.ReportRequest) {
				assert.Equal(t, domain.KindSalesDaily, got.Kind)
				assert.Equal(t, domain.FormatCSV, got.Format)
				require.True(t, got.Range.Complete())
				assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, laPaz), *got.Range.Start)
				assert.Equal(t, "u-9", got.RequestedBy)
				assert.Equal(t, &threshold, got.Threshold)
			},
		},
		{name: "bad format", req: api.ReportRequest{Format: "xlsx"}, wantErr: true},
		{name: "bad start date", req: api.ReportRequest{StartDate: "01/02/2024"}, wantErr: true},
		{name: "bad end date", req: api.ReportRequest{EndDate: "2024-13-01"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapApiReportRequestToDomain(tt.req, laPaz)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidRequest)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestMapApiReceiptRequestToDomain(t *testing.T) {
	no := false

	tests := []struct {
		name    string
		body    string
		want    domain.IssueRequest
		wantErr bool
	}{
		{
			name: "numeric id with defaults",
			body: `{"ventaId": 123}`,
			want: domain.IssueRequest{SaleID: 123, Type: "FACTURA", Series: "F001", Number: "000123", Signed: true},
		},
		{
			name: "string id and overrides",
			body: `{"ventaId": "45", "tipo": "BOLETA", "serie": "B002", "numero": "9", "generarFirmado": false}`,
			want: domain.IssueRequest{SaleID: 45, Type: "BOLETA", Series: "B002", Number: "9", Signed: no},
		},
		{name: "missing id", body: `{}`, wantErr: true},
		{name: "zero id", body: `{"ventaId": 0}`, wantErr: true},
		{name: "fractional id", body: `{"ventaId": 1.5}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req api.ReceiptRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			got, err := MapApiReceiptRequestToDomain(req)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapStoreSaleToDomainReceipt(t *testing.T) {
	sale := &store.Sale{ID: 3, Total: decimal.NewFromInt(20)}
	items := []store.SaleItem{
		{MedicationID: 8, Quantity: 2, UnitPrice: decimal.NewFromInt(10), Subtotal: decimal.NewFromInt(20)},
	}

	rc := MapStoreSaleToDomainReceipt(sale, items)

	assert.Equal(t, domain.UnregisteredClient, rc.ClientName)
	assert.Equal(t, "V-000003", rc.Number())
	require.Len(t, rc.Lines, 1)
	assert.Equal(t, "#8", rc.Lines[0].Detail)
}

func TestNewPendingAudit(t *testing.T) {
	a := MapDomainAuditToStore(NewPendingAudit(domain.ReportRequest{Kind: domain.KindClients, Format: domain.FormatCSV}))

	assert.Equal(t, "clientes", a.Kind)
	assert.Equal(t, "csv", a.Format)
	assert.Equal(t, "PENDIENTE", a.Status)
	assert.Nil(t, a.CreatedBy)
}
