package receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/FloresJesus/Pharmacy/pkg/document"
	receiptpdf "github.com/FloresJesus/Pharmacy/pkg/export/receipt"
	"github.com/FloresJesus/Pharmacy/pkg/models/domain"
	"github.com/FloresJesus/Pharmacy/pkg/models/store"
	"github.com/FloresJesus/Pharmacy/pkg/store/records"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)

type mockSource struct {
	records.Source
	mock.Mock
}

func (m *mockSource) GetSale(ctx context.Context, id int64) (*store.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Sale), args.Error(1)
}

func (m *mockSource) ListSaleItems(ctx context.Context, saleIDs []int64) ([]store.SaleItem, error) {
	args := m.Called(ctx, saleIDs)
	return args.Get(0).([]store.SaleItem), args.Error(1)
}

type mockReceiptStore struct {
	mock.Mock
}

func (m *mockReceiptStore) FindBySale(ctx context.Context, saleID int64) (*store.Receipt, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Receipt), args.Error(1)
}

func (m *mockReceiptStore) Insert(ctx context.Context, r *store.Receipt) (int64, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(int64), args.Error(1)
}

type mockBlobStore struct {
	mock.Mock
}

func (m *mockBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *mockBlobStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

type mockURLCache struct {
	mock.Mock
}

func (m *mockURLCache) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockURLCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

type fixture struct {
	source   *mockSource
	receipts *mockReceiptStore
	blobs    *mockBlobStore
	urls     *mockURLCache
	svc      *DefaultService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	metrics, err := document.DefaultMetrics()
	require.NoError(t, err)

	f := &fixture{
		source:   new(mockSource),
		receipts: new(mockReceiptStore),
		blobs:    new(mockBlobStore),
		urls:     new(mockURLCache),
	}
	f.svc, err = NewService(Dependencies{
		Source:   f.source,
		Receipts: f.receipts,
		Blobs:    f.blobs,
		Renderer: receiptpdf.NewRenderer(metrics),
	}, WithURLCache(f.urls), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return f
}

func testSale() *store.Sale {
	last := "Quispe"
	return &store.Sale{
		ID:     123,
		SoldAt: time.Date(2024, 3, 8, 10, 0, 0, 0, time.UTC),
		Total:  decimal.RequireFromString("31.50"),
		Client: &store.Client{ID: 4, FirstName: "Rosa", LastName: &last},
	}
}

func testItems() []store.SaleItem {
	return []store.SaleItem{
		{ID: 1, SaleID: 123, MedicationID: 9, Quantity: 3, UnitPrice: decimal.RequireFromString("10.50"),
			Subtotal: decimal.RequireFromString("31.50"), Medication: &store.MedicationRef{Code: "AMX500", Name: "Amoxicilina"}},
	}
}

func TestNewService_RequiresSourceAndRenderer(t *testing.T) {
	_, err := NewService(Dependencies{})
	assert.Error(t, err)
}

func TestIssue_NewReceipt(t *testing.T) {
	f := newFixture(t)
	f.receipts.On("FindBySale", mock.Anything, int64(123)).Return(nil, nil)
	f.source.On("GetSale", mock.Anything, int64(123)).Return(testSale(), nil)
	f.source.On("ListSaleItems", mock.Anything, []int64{123}).Return(testItems(), nil)
	f.blobs.On("Put", mock.Anything, "2024/03/comprobante-V-000123.pdf",
		mock.MatchedBy(func(b []byte) bool { return bytes.HasPrefix(b, []byte("%PDF-")) }), "application/pdf").Return(nil)

	var inserted *store.Receipt
	f.receipts.On("Insert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		inserted = args.Get(1).(*store.Receipt)
	}).Return(int64(55), nil)
	f.urls.On("Get", mock.Anything, "receipt:2024/03/comprobante-V-000123.pdf").Return("", false, nil)
	f.blobs.On("SignedURL", mock.Anything, "2024/03/comprobante-V-000123.pdf", time.Hour).Return("https://bucket/signed", nil)
	f.urls.On("Set", mock.Anything, "receipt:2024/03/comprobante-V-000123.pdf", "https://bucket/signed", 50*time.Minute).Return(nil)

	got, err := f.svc.Issue(context.Background(), domain.IssueRequest{SaleID: 123, Signed: true})

	require.NoError(t, err)
	assert.Equal(t, int64(55), got.ID)
	assert.Equal(t, "FACTURA", got.Type)
	assert.Equal(t, "F001", got.Series)
	assert.Equal(t, "000123", got.Number)
	assert.Equal(t, "2024/03/comprobante-V-000123.pdf", got.StoragePath)
	require.NotNil(t, got.SignedURL)
	assert.Equal(t, "https://bucket/signed", *got.SignedURL)

	require.NotNil(t, inserted)
	assert.Equal(t, fixedNow, inserted.IssuedAt)
	var snapshot map[string]any
	require.NoError(t, json.Unmarshal(inserted.Payload, &snapshot))
	assert.Contains(t, snapshot, "venta")
	assert.Len(t, snapshot["items"], 1)

	f.blobs.AssertExpectations(t)
	f.receipts.AssertExpectations(t)
	f.urls.AssertExpectations(t)
}

func TestIssue_ExistingReceiptIsReused(t *testing.T) {
	f := newFixture(t)
	f.receipts.On("FindBySale", mock.Anything, int64(123)).Return(&store.Receipt{
		ID: 9, SaleID: 123, Type: "BOLETA", Series: "B001", Number: "000123",
		StoragePath: "2024/02/comprobante-V-000123.pdf",
	}, nil)
	f.urls.On("Get", mock.Anything, "receipt:2024/02/comprobante-V-000123.pdf").Return("https://cached", true, nil)

	got, err := f.svc.Issue(context.Background(), domain.IssueRequest{SaleID: 123, Signed: true})

	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, "BOLETA", got.Type)
	assert.Equal(t, "https://cached", *got.SignedURL)
	f.source.AssertNotCalled(t, "GetSale", mock.Anything, mock.Anything)
	f.blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.blobs.AssertNotCalled(t, "SignedURL", mock.Anything, mock.Anything, mock.Anything)
}

func TestIssue_SignFailureStillReturnsReceipt(t *testing.T) {
	f := newFixture(t)
	f.receipts.On("FindBySale", mock.Anything, int64(123)).Return(&store.Receipt{ID: 9, SaleID: 123, StoragePath: "p.pdf"}, nil)
	f.urls.On("Get", mock.Anything, "receipt:p.pdf").Return("", false, errors.New("redis down"))
	f.blobs.On("SignedURL", mock.Anything, "p.pdf", time.Hour).Return("", errors.New("access denied"))

	got, err := f.svc.Issue(context.Background(), domain.IssueRequest{SaleID: 123, Signed: true})

	require.NoError(t, err)
	assert.Nil(t, got.SignedURL)
	assert.Equal(t, "p.pdf", got.StoragePath)
}

func TestIssue_Unsigned(t *testing.T) {
	f := newFixture(t)
	f.receipts.On("FindBySale", mock.Anything, int64(123)).Return(&store.Receipt{ID: 9, SaleID: 123, StoragePath: "p.pdf"}, nil)

	got, err := f.svc.Issue(context.Background(), domain.IssueRequest{SaleID: 123})

	require.NoError(t, err)
	assert.Nil(t, got.SignedURL)
	f.urls.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestIssue_SaleNotFound(t *testing.T) {
	f := newFixture(t)
	f.receipts.On("FindBySale", mock.Anything, int64(404)).Return(nil, nil)
	f.source.On("GetSale", mock.Anything, int64(404)).Return(nil, nil)

	got, err := f.svc.Issue(context.Background(), domain.IssueRequest{SaleID: 404})

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
}

func TestIssue_UploadFailure(t *testing.T) {
	f := newFixture(t)
	f.receipts.On("FindBySale", mock.Anything, int64(123)).Return(nil, nil)
	f.source.On("GetSale", mock.Anything, int64(123)).Return(testSale(), nil)
	f.source.On("ListSaleItems", mock.Anything, []int64{123}).Return(testItems(), nil)
	f.blobs.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket missing"))

	got, err := f.svc.Issue(context.Background(), domain.IssueRequest{SaleID: 123})

	assert.Nil(t, got)
	assert.ErrorContains(t, err, "bucket missing")
	f.receipts.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestIssue_InsertConflictReturnsConcurrentReceipt(t *testing.T) {
	f := newFixture(t)
	f.receipts.On("FindBySale", mock.Anything, int64(123)).Return(nil, nil).Once()
	f.source.On("GetSale", mock.Anything, int64(123)).Return(testSale(), nil)
	f.source.On("ListSaleItems", mock.Anything, []int64{123}).Return(testItems(), nil)
	f.blobs.On("Put", mock.Anything, "2024/03/comprobante-V-000123.pdf", mock.Anything, "application/pdf").Return(nil)
	f.receipts.On("Insert", mock.Anything, mock.Anything).
		Return(int64(0), errors.New("duplicate key value violates unique constraint")).Once()
	f.receipts.On("FindBySale", mock.Anything, int64(123)).Return(&store.Receipt{
		ID: 77, SaleID: 123, Type: "FACTURA", Series: "F001", Number: "000123",
		StoragePath: "2024/03/comprobante-V-000123.pdf",
	}, nil).Once()

	got, err := f.svc.Issue(context.Background(), domain.IssueRequest{SaleID: 123})

	require.NoError(t, err)
	assert.Equal(t, int64(77), got.ID)
	assert.Equal(t, "2024/03/comprobante-V-000123.pdf", got.StoragePath)
	assert.Nil(t, got.SignedURL)
	f.receipts.AssertNumberOfCalls(t, "FindBySale", 2)
}

func TestIssue_InsertFailure(t *testing.T) {
	f := newFixture(t)
	f.receipts.On("FindBySale", mock.Anything, int64(123)).Return(nil, nil)
	f.source.On("GetSale", mock.Anything, int64(123)).Return(testSale(), nil)
	f.source.On("ListSaleItems", mock.Anything, []int64{123}).Return(testItems(), nil)
	f.blobs.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.receipts.On("Insert", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection reset"))

	got, err := f.svc.Issue(context.Background(), domain.IssueRequest{SaleID: 123})

	assert.Nil(t, got)
	assert.ErrorContains(t, err, "connection reset")
	f.receipts.AssertNumberOfCalls(t, "FindBySale", 2)
}

func TestIssue_StorageNotConfigured(t *testing.T) {
	metrics, err := document.DefaultMetrics()
	require.NoError(t, err)
	svc, err := NewService(Dependencies{Source: new(mockSource), Renderer: receiptpdf.NewRenderer(metrics)})
	require.NoError(t, err)

	_, err = svc.Issue(context.Background(), domain.IssueRequest{SaleID: 1})
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	f := newFixture(t)
	f.source.On("GetSale", mock.Anything, int64(123)).Return(testSale(), nil)
	f.source.On("ListSaleItems", mock.Anything, []int64{123}).Return(testItems(), nil)

	data, err := f.svc.Render(context.Background(), 123)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	f.blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRender_SourceFailure(t *testing.T) {
	f := newFixture(t)
	f.source.On("GetSale", mock.Anything, int64(5)).Return(nil, errors.New("timeout"))

	_, err := f.svc.Render(context.Background(), 5)

	assert.ErrorIs(t, err, domain.ErrSourceFetch)
}
