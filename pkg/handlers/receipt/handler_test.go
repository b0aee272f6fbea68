package receipt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/FloresJesus/Pharmacy/pkg/models/api"
	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReceiptService struct {
	mock.Mock
}

func (m *mockReceiptService) Issue(ctx context.Context, req domain.IssueRequest) (*domain.StoredReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredReceipt), args.Error(1)
}

func (m *mockReceiptService) Render(ctx context.Context, saleID int64) ([]byte, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func TestIssue(t *testing.T) {
	signed := "https://bucket/2024/03/comprobante-V-000123.pdf?X-Amz-Signature=abc"

	tests := []struct {
		name           string
		body           string
		setupMock      func(*mockReceiptService)
		expectedStatus int
		expected       any
	}{
		{
			name: "issued with defaults",
			body: `{"ventaId": 123}`,
			setupMock: func(m *mockReceiptService) {
				m.On("Issue", mock.Anything, domain.IssueRequest{
					SaleID: 123, Type: "FACTURA", Series: "F001", Number: "000123", Signed: true,
				}).Return(&domain.StoredReceipt{
					ID: 55, SaleID: 123, StoragePath: "2024/03/comprobante-V-000123.pdf", SignedURL: &signed,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.ReceiptResponse{
				OK: true, ReceiptID: 55, StoragePath: "2024/03/comprobante-V-000123.pdf", SignedURL: &signed,
			},
		},
		{
			name:           "invalid sale id",
			body:           `{"ventaId": -4}`,
			setupMock:      func(*mockReceiptService) {},
			expectedStatus: http.StatusBadRequest,
			expected:       api.ErrorResponse{OK: false, Error: "invalid request: ventaId inválido"},
		},
		{
			name: "sale not found",
			body: `{"ventaId": 9}`,
			setupMock: func(m *mockReceiptService) {
				m.On("Issue", mock.Anything, mock.Anything).Return(nil, domain.ErrSaleNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expected:       api.ErrorResponse{OK: false, Error: "Venta no encontrada"},
		},
		{
			name: "storage failure",
			body: `{"ventaId": 9, "generarFirmado": false}`,
			setupMock: func(m *mockReceiptService) {
				m.On("Issue", mock.Anything, mock.MatchedBy(func(r domain.IssueRequest) bool { return !r.Signed })).
					Return(nil, errors.New("failed to upload receipt: bucket missing"))
			},
			expectedStatus: http.StatusInternalServerError,
			expected:       api.ErrorResponse{OK: false, Error: "failed to upload receipt: bucket missing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockReceiptService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/receipts", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			NewHandler(svc).Issue(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			switch want := tt.expected.(type) {
			case api.ReceiptResponse:
				var got api.ReceiptResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, want, got)
			case api.ErrorResponse:
				var got api.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, want, got)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestDownload(t *testing.T) {
	tests := []struct {
		name           string
		saleID         string
		setupMock      func(*mockReceiptService)
		expectedStatus int
		expectedName   string
	}{
		{
			name:   "pdf",
			saleID: "123",
			setupMock: func(m *mockReceiptService) {
				m.On("Render", mock.Anything, int64(123)).Return([]byte("%PDF-1.3"), nil)
			},
			expectedStatus: http.StatusOK,
			expectedName:   `attachment; filename="comprobante-V-000123.pdf"`,
		},
		{
			name:           "bad id",
			saleID:         "x1",
			setupMock:      func(*mockReceiptService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "missing sale",
			saleID: "77",
			setupMock: func(m *mockReceiptService) {
				m.On("Render", mock.Anything, int64(77)).Return(nil, domain.ErrSaleNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockReceiptService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/receipts/"+tt.saleID+"/pdf", nil)
			rec := httptest.NewRecorder()

			ctx := chi.NewRouteContext()
			ctx.URLParams.Add("saleID", tt.saleID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))

			NewHandler(svc).Download(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedName, rec.Header().Get("Content-Disposition"))
			svc.AssertExpectations(t)
		})
	}
}
