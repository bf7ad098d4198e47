package trade

import (
	"context"

	"github.com/eyedist/backend/internal/domain/catalog"
	"github.com/eyedist/backend/internal/domain/partner"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/domain/trade"
	"github.com/eyedist/backend/internal/infrastructure/printing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *trade.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *trade.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*trade.Order, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*trade.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) ExistsByOrderNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context) (map[trade.OrderStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[trade.OrderStatus]int64), args.Error(1)
}

func (m *MockOrderRepository) SumTotal(ctx context.Context, status trade.OrderStatus) (decimal.Decimal, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockProductRepository only answers FindByIDs
type MockProductRepository struct {
	catalog.ProductRepository
	mock.Mock
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

// MockPartyRepository answers Exists and FindByID
type MockPartyRepository struct {
	partner.PartyRepository
	mock.Mock
}

func (m *MockPartyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPartyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Party, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Party), args.Error(1)
}

// MockDistributorRepository answers Exists and FindByID
type MockDistributorRepository struct {
	partner.DistributorRepository
	mock.Mock
}

func (m *MockDistributorRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDistributorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Distributor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Distributor), args.Error(1)
}

// MockSalesmanRepository answers Exists and FindByID
type MockSalesmanRepository struct {
	partner.SalesmanRepository
	mock.Mock
}

func (m *MockSalesmanRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSalesmanRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Salesman, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Salesman), args.Error(1)
}

// MockInvoiceRenderer is a mock InvoiceRenderer
type MockInvoiceRenderer struct {
	mock.Mock
}

func (m *MockInvoiceRenderer) Print(ctx context.Context, inv *printing.Invoice) ([]byte, error) {
	args := m.Called(ctx, inv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}
