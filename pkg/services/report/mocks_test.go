package report

import (
	"context"

	"github.com/FloresJesus/Pharmacy/pkg/models/store"
	"github.com/FloresJesus/Pharmacy/pkg/store/records"
	"github.com/stretchr/testify/mock"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) ListSales(ctx context.Context, period records.Period) ([]store.Sale, error) {
	args := m.Called(ctx, period)
	return args.Get(0).([]store.Sale), args.Error(1)
}

func (m *mockSource) ListSaleItems(ctx context.Context, saleIDs []int64) ([]store.SaleItem, error) {
	args := m.Called(ctx, saleIDs)
	return args.Get(0).([]store.SaleItem), args.Error(1)
}

func (m *mockSource) GetSale(ctx context.Context, id int64) (*store.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Sale), args.Error(1)
}

func (m *mockSource) ListMedications(ctx context.Context) ([]store.Medication, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.Medication), args.Error(1)
}

func (m *mockSource) ListExpiring(ctx context.Context, window records.ExpiryWindow) ([]store.Medication, error) {
	args := m.Called(ctx, window)
	return args.Get(0).([]store.Medication), args.Error(1)
}

func (m *mockSource) ListStockEntries(ctx context.Context, period records.Period) ([]store.StockEntry, error) {
	args := m.Called(ctx, period)
	return args.Get(0).([]store.StockEntry), args.Error(1)
}

func (m *mockSource) ListStockExits(ctx context.Context, period records.Period) ([]store.StockExit, error) {
	args := m.Called(ctx, period)
	return args.Get(0).([]store.StockExit), args.Error(1)
}

func (m *mockSource) ListClients(ctx context.Context, period records.Period) ([]store.Client, error) {
	args := m.Called(ctx, period)
	return args.Get(0).([]store.Client), args.Error(1)
}

type mockAuditStore struct {
	mock.Mock
}

func (m *mockAuditStore) CreateAudit(ctx context.Context, audit *store.ReportAudit) (int64, error) {
	args := m.Called(ctx, audit)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAuditStore) UpdateAuditStatus(ctx context.Context, id int64, status string, notes *string, size *int) error {
	args := m.Called(ctx, id, status, notes, size)
	return args.Error(0)
}
