package partner

import (
	"context"

	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/eyedist/backend/internal/domain/partner"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPartyRepository is a mock implementation of partner.PartyRepository
type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) Create(ctx context.Context, p *partner.Party) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPartyRepository) Update(ctx context.Context, p *partner.Party) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPartyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPartyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Party, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Party), args.Error(1)
}

func (m *MockPartyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Party, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*partner.Party), args.Get(1).(int64), args.Error(2)
}

func (m *MockPartyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPartyRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockDistributorRepository is a mock implementation of partner.DistributorRepository
type MockDistributorRepository struct {
	mock.Mock
}

func (m *MockDistributorRepository) Create(ctx context.Context, d *partner.Distributor) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDistributorRepository) Update(ctx context.Context, d *partner.Distributor) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDistributorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDistributorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Distributor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Distributor), args.Error(1)
}

func (m *MockDistributorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Distributor, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*partner.Distributor), args.Get(1).(int64), args.Error(2)
}

func (m *MockDistributorRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDistributorRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSalesmanRepository is a mock implementation of partner.SalesmanRepository
type MockSalesmanRepository struct {
	mock.Mock
}

func (m *MockSalesmanRepository) Create(ctx context.Context, s *partner.Salesman) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSalesmanRepository) Update(ctx context.Context, s *partner.Salesman) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSalesmanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSalesmanRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Salesman, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Salesman), args.Error(1)
}

func (m *MockSalesmanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Salesman, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*partner.Salesman), args.Get(1).(int64), args.Error(2)
}

func (m *MockSalesmanRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSalesmanRepository) ExistsByEmployeeCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSalesmanRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockLocationResolver is a mock LocationResolver
type MockLocationResolver struct {
	mock.Mock
}

func (m *MockLocationResolver) Resolve(ctx context.Context, loc geography.Location) (geography.Location, []string, error) {
	args := m.Called(ctx, loc)
	var dropped []string
	if v := args.Get(1); v != nil {
		dropped = v.([]string)
	}
	return args.Get(0).(geography.Location), dropped, args.Error(2)
}

// MockUserFinder is a mock UserFinder
type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}
