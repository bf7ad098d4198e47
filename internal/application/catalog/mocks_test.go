package catalog

import (
	"context"
	"io"

	"github.com/eyedist/backend/internal/domain/catalog"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAttributeRepository is a mock implementation of catalog.AttributeRepository
type MockAttributeRepository struct {
	mock.Mock
}

func (m *MockAttributeRepository) Create(ctx context.Context, a *catalog.Attribute) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAttributeRepository) Update(ctx context.Context, a *catalog.Attribute) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAttributeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAttributeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Attribute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Attribute), args.Error(1)
}

func (m *MockAttributeRepository) FindByKind(ctx context.Context, kind catalog.AttributeKind, activeOnly bool) ([]*catalog.Attribute, error) {
	args := m.Called(ctx, kind, activeOnly)
	return args.Get(0).([]*catalog.Attribute), args.Error(1)
}

func (m *MockAttributeRepository) FindAll(ctx context.Context, activeOnly bool) ([]*catalog.Attribute, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]*catalog.Attribute), args.Error(1)
}

func (m *MockAttributeRepository) ExistsByName(ctx context.Context, kind catalog.AttributeKind, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, kind, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttributeRepository) CountUsage(ctx context.Context, a *catalog.Attribute) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ExistsByModelNumber(ctx context.Context, model string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, model, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductIndex is a mock implementation of catalog.ProductIndex
type MockProductIndex struct {
	mock.Mock
}

func (m *MockProductIndex) Index(ctx context.Context, p *catalog.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductIndex) Remove(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductIndex) Search(ctx context.Context, query string, from, size int) ([]catalog.SearchHit, int64, error) {
	args := m.Called(ctx, query, from, size)
	return args.Get(0).([]catalog.SearchHit), args.Get(1).(int64), args.Error(2)
}

// MockImageStore is a mock ImageStore
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(ctx context.Context, folder string, r io.Reader, size int64) (string, error) {
	args := m.Called(ctx, folder, r, size)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockImageStore) URL(_ context.Context, key string) string {
	if key == "" {
		return ""
	}
	return "/" + key
}
