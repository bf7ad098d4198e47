package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/calendar"
	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, e *calendar.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEventRepository) Update(ctx context.Context, e *calendar.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*calendar.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.Event), args.Error(1)
}

func (m *MockEventRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*calendar.Event, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*calendar.Event), args.Get(1).(int64), args.Error(2)
}

func (m *MockEventRepository) CountUpcoming(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockRegionFinder struct {
	mock.Mock
}

func (m *MockRegionFinder) FindByID(ctx context.Context, level geography.Level, id uuid.UUID) (*geography.Region, error) {
	args := m.Called(ctx, level, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geography.Region), args.Error(1)
}

func salesman() application.Actor {
	return application.NewActor(uuid.New(), identity.RoleSalesman)
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("single day event in a known city", func(t *testing.T) {
		events, regions := new(MockEventRepository), new(MockRegionFinder)
		svc := NewEventService(events, regions)
		stateID := uuid.New()
		city, err := geography.NewRegion(geography.LevelCity, &stateID, "Mumbai", "")
		require.NoError(t, err)
		regions.On("FindByID", ctx, geography.LevelCity, city.ID).Return(city, nil)
		events.On("Create", ctx, mock.AnythingOfType("*calendar.Event")).Return(nil)

		resp, err := svc.Create(ctx, salesman(), CreateEventRequest{
			Title:     "Optical Fair",
			Type:      "exhibition",
			StartDate: "2026-11-20",
			Venue:     "NESCO",
			CityID:    &city.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "2026-11-20", resp.EndDate)
		assert.Equal(t, &city.ID, resp.CityID)
		assert.Empty(t, resp.DroppedReferences)
	})

	t.Run("unknown city is dropped", func(t *testing.T) {
		events, regions := new(MockEventRepository), new(MockRegionFinder)
		svc := NewEventService(events, regions)
		cityID := uuid.New()
		regions.On("FindByID", ctx, geography.LevelCity, cityID).Return(nil, shared.ErrNotFound)
		events.On("Create", ctx, mock.MatchedBy(func(e *calendar.Event) bool { return e.CityID == nil })).Return(nil)

		resp, err := svc.Create(ctx, salesman(), CreateEventRequest{
			Title: "Dealer meet", StartDate: "2026-11-20", CityID: &cityID,
		})
		require.NoError(t, err)
		assert.Equal(t, "other", resp.Type)
		assert.Equal(t, []string{"city_id"}, resp.DroppedReferences)
	})

	t.Run("city removed before insert is retried without it", func(t *testing.T) {
		events, regions := new(MockEventRepository), new(MockRegionFinder)
		svc := NewEventService(events, regions)
		stateID := uuid.New()
		city, err := geography.NewRegion(geography.LevelCity, &stateID, "Pune", "")
		require.NoError(t, err)
		regions.On("FindByID", ctx, geography.LevelCity, city.ID).Return(city, nil)
		events.On("Create", ctx, mock.Anything).Return(&shared.ReferenceError{Field: "city_id"}).Once()
		events.On("Create", ctx, mock.Anything).Return(nil).Once()

		resp, err := svc.Create(ctx, salesman(), CreateEventRequest{
			Title: "Training", StartDate: "2026-11-20", CityID: &city.ID,
		})
		require.NoError(t, err)
		assert.Nil(t, resp.CityID)
		assert.Equal(t, []string{"city_id"}, resp.DroppedReferences)
	})

	t.Run("end before start", func(t *testing.T) {
		svc := NewEventService(new(MockEventRepository), new(MockRegionFinder))
		_, err := svc.Create(ctx, salesman(), CreateEventRequest{
			Title: "Launch", StartDate: "2026-11-20", EndDate: "2026-11-19",
		})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_DATE", de.Code)
	})
}

func TestEventService_Update(t *testing.T) {
	ctx := context.Background()
	events, regions := new(MockEventRepository), new(MockRegionFinder)
	svc := NewEventService(events, regions)
	owner := salesman()
	cityID := uuid.New()
	event, err := calendar.NewEvent(owner.UserID, "Launch", calendar.EventTypeLaunch, mustDate(t, "2026-12-01"), mustDate(t, "2026-12-02"))
	require.NoError(t, err)
	require.NoError(t, event.SetVenue("Hall A", &cityID))
	events.On("FindByID", ctx, event.ID).Return(event, nil)
	events.On("Update", ctx, event).Return(nil)

	_, err = svc.Update(ctx, salesman(), event.ID, UpdateEventRequest{})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	end := "2026-12-05"
	req := UpdateEventRequest{EndDate: &end}
	req.CityID.Set = true
	resp, err := svc.Update(ctx, owner, event.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "2026-12-01", resp.StartDate)
	assert.Equal(t, "2026-12-05", resp.EndDate)
	assert.Nil(t, resp.CityID)
	assert.Equal(t, "Hall A", resp.Venue)
	regions.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestEventService_List(t *testing.T) {
	ctx := context.Background()
	events := new(MockEventRepository)
	svc := NewEventService(events, new(MockRegionFinder))

	events.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		_, hasFrom := f.Filters["from_date"]
		return f.OrderBy == "start_date" && f.OrderDir == "asc" && hasFrom &&
			f.Filters["type"] == calendar.EventTypeMeeting
	})).Return([]*calendar.Event{}, int64(0), nil)

	_, _, err := svc.List(ctx, salesman(), EventListFilter{
		DateRangeQuery: application.DateRangeQuery{FromDate: "2026-11-01"},
		Type:           "meeting",
	})
	require.NoError(t, err)
	events.AssertExpectations(t)
}

func mustDate(t *testing.T, s string) time.Time {
	d, err := parseDate(s)
	require.NoError(t, err)
	return d
}
