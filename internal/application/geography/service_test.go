package geography

import (
	"context"
	"testing"

	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRegionRepository is a mock implementation of geography.Repository
type MockRegionRepository struct {
	mock.Mock
}

func (m *MockRegionRepository) Create(ctx context.Context, r *geography.Region) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRegionRepository) Update(ctx context.Context, r *geography.Region) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRegionRepository) Delete(ctx context.Context, level geography.Level, id uuid.UUID) error {
	return m.Called(ctx, level, id).Error(0)
}

func (m *MockRegionRepository) FindByID(ctx context.Context, level geography.Level, id uuid.UUID) (*geography.Region, error) {
	args := m.Called(ctx, level, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geography.Region), args.Error(1)
}

func (m *MockRegionRepository) FindAll(ctx context.Context, level geography.Level, filter shared.Filter) ([]*geography.Region, int64, error) {
	args := m.Called(ctx, level, filter)
	return args.Get(0).([]*geography.Region), args.Get(1).(int64), args.Error(2)
}

func (m *MockRegionRepository) FindChildren(ctx context.Context, parentLevel geography.Level, parentID uuid.UUID) ([]*geography.Region, error) {
	args := m.Called(ctx, parentLevel, parentID)
	return args.Get(0).([]*geography.Region), args.Error(1)
}

func (m *MockRegionRepository) CountChildren(ctx context.Context, level geography.Level, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, level, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRegionRepository) ExistsByName(ctx context.Context, level geography.Level, parentID *uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, level, parentID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func newCountry(t *testing.T) *geography.Region {
	r, err := geography.NewRegion(geography.LevelCountry, nil, "India", "IN")
	require.NoError(t, err)
	return r
}

func TestRegionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("state under existing country", func(t *testing.T) {
		repo := new(MockRegionRepository)
		svc := NewRegionService(repo, cache.NewInMemoryRegionCache(0))
		india := newCountry(t)

		repo.On("FindByID", ctx, geography.LevelCountry, india.ID).Return(india, nil)
		repo.On("ExistsByName", ctx, geography.LevelState, &india.ID, "Tamil Nadu", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*geography.Region")).Return(nil)

		resp, err := svc.Create(ctx, geography.LevelState, CreateRegionRequest{ParentID: &india.ID, Name: "tamil  nadu", Code: "tn"})
		require.NoError(t, err)
		assert.Equal(t, "Tamil Nadu", resp.Name)
		assert.Equal(t, "TN", resp.Code)
		assert.Equal(t, "state", resp.Level)
	})

	t.Run("unknown parent", func(t *testing.T) {
		repo := new(MockRegionRepository)
		svc := NewRegionService(repo, nil)
		parent := uuid.New()
		repo.On("FindByID", ctx, geography.LevelState, parent).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, geography.LevelCity, CreateRegionRequest{ParentID: &parent, Name: "Chennai"})
		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "INVALID_PARENT", de.Code)
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := new(MockRegionRepository)
		svc := NewRegionService(repo, nil)
		repo.On("ExistsByName", ctx, geography.LevelCountry, (*uuid.UUID)(nil), "India", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.Create(ctx, geography.LevelCountry, CreateRegionRequest{Name: "india", Code: "IN"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestRegionService_Children_CachesUntilWrite(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRegionRepository)
	svc := NewRegionService(repo, cache.NewInMemoryRegionCache(0))
	india := newCountry(t)
	mh, err := geography.NewRegion(geography.LevelState, &india.ID, "Maharashtra", "MH")
	require.NoError(t, err)

	repo.On("FindByID", ctx, geography.LevelCountry, india.ID).Return(india, nil)
	repo.On("FindChildren", ctx, geography.LevelCountry, india.ID).Return([]*geography.Region{mh}, nil)

	for range 3 {
		states, err := svc.Children(ctx, geography.LevelCountry, india.ID)
		require.NoError(t, err)
		require.Len(t, states, 1)
		assert.Equal(t, "Maharashtra", states[0].Name)
	}
	repo.AssertNumberOfCalls(t, "FindChildren", 1)

	repo.On("ExistsByName", ctx, geography.LevelCountry, (*uuid.UUID)(nil), "India", &india.ID).Return(false, nil)
	repo.On("Update", ctx, india).Return(nil)
	code := "IND"
	_, err = svc.Update(ctx, geography.LevelCountry, india.ID, UpdateRegionRequest{Code: &code})
	require.NoError(t, err)

	_, err = svc.Children(ctx, geography.LevelCountry, india.ID)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "FindChildren", 2)
}

func TestRegionService_Children_WriteDuringReadIsNotCached(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRegionRepository)
	regionCache := cache.NewInMemoryRegionCache(0)
	svc := NewRegionService(repo, regionCache)
	india := newCountry(t)
	bombay, err := geography.NewRegion(geography.LevelState, &india.ID, "Bombay State", "BS")
	require.NoError(t, err)
	mh, err := geography.NewRegion(geography.LevelState, &india.ID, "Maharashtra", "MH")
	require.NoError(t, err)

	repo.On("FindByID", ctx, geography.LevelCountry, india.ID).Return(india, nil)
	repo.On("FindChildren", ctx, geography.LevelCountry, india.ID).
		Run(func(mock.Arguments) { require.NoError(t, regionCache.Invalidate(ctx)) }).
		Return([]*geography.Region{bombay}, nil).Once()
	repo.On("FindChildren", ctx, geography.LevelCountry, india.ID).
		Return([]*geography.Region{mh}, nil).Once()

	states, err := svc.Children(ctx, geography.LevelCountry, india.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bombay State", states[0].Name)

	states, err = svc.Children(ctx, geography.LevelCountry, india.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maharashtra", states[0].Name)
	repo.AssertNumberOfCalls(t, "FindChildren", 2)
}

func TestRegionService_Children_Errors(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRegionRepository)
	svc := NewRegionService(repo, nil)

	_, err := svc.Children(ctx, geography.LevelZone, uuid.New())
	assert.Error(t, err)

	missing := uuid.New()
	repo.On("FindByID", ctx, geography.LevelState, missing).Return(nil, shared.ErrNotFound)
	_, err = svc.Children(ctx, geography.LevelState, missing)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRegionService_Delete(t *testing.T) {
	ctx := context.Background()
	india := newCountry(t)

	t.Run("refuses while children exist", func(t *testing.T) {
		repo := new(MockRegionRepository)
		svc := NewRegionService(repo, nil)
		repo.On("FindByID", ctx, geography.LevelCountry, india.ID).Return(india, nil)
		repo.On("CountChildren", ctx, geography.LevelCountry, india.ID).Return(int64(2), nil)

		err := svc.Delete(ctx, geography.LevelCountry, india.ID)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zone has no children to count", func(t *testing.T) {
		repo := new(MockRegionRepository)
		svc := NewRegionService(repo, nil)
		zoneID := uuid.New()
		zone := &geography.Region{Level: geography.LevelZone}
		repo.On("FindByID", ctx, geography.LevelZone, zoneID).Return(zone, nil)
		repo.On("Delete", ctx, geography.LevelZone, zoneID).Return(nil)

		require.NoError(t, svc.Delete(ctx, geography.LevelZone, zoneID))
		repo.AssertNotCalled(t, "CountChildren", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRegionService_List_DefaultsToNameOrder(t *testing.T) {
	repo := new(MockRegionRepository)
	svc := NewRegionService(repo, nil)
	parent := uuid.New()

	repo.On("FindAll", mock.Anything, geography.LevelCity, mock.MatchedBy(func(f shared.Filter) bool {
		return f.OrderBy == "name" && f.Filters["parent_id"] == parent
	})).Return([]*geography.Region{}, int64(0), nil)

	items, total, err := svc.List(context.Background(), geography.LevelCity, RegionListFilter{ParentID: parent.String()})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
}
