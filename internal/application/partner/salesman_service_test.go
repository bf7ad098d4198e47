package partner

import (
	"context"
	"testing"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/eyedist/backend/internal/domain/partner"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSalesmanService_Create(t *testing.T) {
	admin := application.NewActor(uuid.New(), identity.RoleAdmin)

	t.Run("unknown account is dropped", func(t *testing.T) {
		salesmen, users := new(MockSalesmanRepository), new(MockUserFinder)
		svc := NewSalesmanService(salesmen, users, new(MockLocationResolver))
		accountID := uuid.New()

		salesmen.On("ExistsByEmployeeCode", mock.Anything, "EMP-007", (*uuid.UUID)(nil)).Return(false, nil)
		users.On("FindByID", mock.Anything, accountID).Return(nil, shared.ErrNotFound)
		salesmen.On("Create", mock.Anything, mock.AnythingOfType("*partner.Salesman")).Return(nil)

		resp, err := svc.Create(context.Background(), admin, CreateSalesmanRequest{
			Name: "Ravi Kumar", EmployeeCode: "emp-007", AccountID: &accountID,
		})
		require.NoError(t, err)
		assert.Equal(t, "EMP-007", resp.EmployeeCode)
		assert.Nil(t, resp.AccountID)
		assert.Equal(t, []string{"account_id"}, resp.DroppedReferences)
	})

	t.Run("duplicate employee code", func(t *testing.T) {
		salesmen := new(MockSalesmanRepository)
		svc := NewSalesmanService(salesmen, new(MockUserFinder), new(MockLocationResolver))
		salesmen.On("ExistsByEmployeeCode", mock.Anything, "EMP-007", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.Create(context.Background(), admin, CreateSalesmanRequest{Name: "Ravi", EmployeeCode: "EMP-007"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		salesmen.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("zone rejected by the database is cleared", func(t *testing.T) {
		salesmen := new(MockSalesmanRepository)
		resolver := new(MockLocationResolver)
		svc := NewSalesmanService(salesmen, new(MockUserFinder), resolver)
		zone := uuid.New()

		resolver.On("Resolve", mock.Anything, mock.Anything).Return(
			application.LocationInput{ZoneID: application.OptionalID{Set: true, ID: &zone}}.Location(), nil, nil)
		salesmen.On("ExistsByEmployeeCode", mock.Anything, "S1", (*uuid.UUID)(nil)).Return(false, nil)
		salesmen.On("Create", mock.Anything, mock.Anything).Return(&shared.ReferenceError{Field: "zone_id"}).Once()
		salesmen.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		resp, err := svc.Create(context.Background(), admin, CreateSalesmanRequest{
			Name: "Ravi", EmployeeCode: "s1",
			LocationInput: application.LocationInput{ZoneID: application.OptionalID{Set: true, ID: &zone}},
		})
		require.NoError(t, err)
		assert.Nil(t, resp.ZoneID)
		assert.Equal(t, []string{"zone_id"}, resp.DroppedReferences)
	})
}

func TestSalesmanService_Update_EmployeeCodeUniqueness(t *testing.T) {
	salesmen := new(MockSalesmanRepository)
	svc := NewSalesmanService(salesmen, new(MockUserFinder), new(MockLocationResolver))
	owner := uuid.New()
	sm, err := partner.NewSalesman(owner, "Ravi", "S1")
	require.NoError(t, err)

	salesmen.On("FindByID", mock.Anything, sm.ID).Return(sm, nil)
	salesmen.On("ExistsByEmployeeCode", mock.Anything, "S2", &sm.ID).Return(true, nil)

	code := "s2"
	_, err = svc.Update(context.Background(), application.NewActor(owner, identity.RoleSalesman), sm.ID, UpdateSalesmanRequest{EmployeeCode: &code})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	salesmen.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDistributorService_CreateAndUpdate(t *testing.T) {
	distributors := new(MockDistributorRepository)
	svc := NewDistributorService(distributors, new(MockLocationResolver))
	publisher := &recordingPublisher{}
	svc.SetEventPublisher(publisher)
	actor := application.NewActor(uuid.New(), identity.RoleDistributor)

	distributors.On("Create", mock.Anything, mock.AnythingOfType("*partner.Distributor")).Return(nil)
	rate := decimal.RequireFromString("7.5")
	resp, err := svc.Create(context.Background(), actor, CreateDistributorRequest{Name: "North Optics", CommissionRate: &rate})
	require.NoError(t, err)
	assert.True(t, rate.Equal(resp.CommissionRate))
	require.Len(t, publisher.events, 1)
	assert.Equal(t, partner.EventTypeDistributorCreated, publisher.events[0].EventType())

	d, err := partner.NewDistributor(actor.UserID, "North Optics")
	require.NoError(t, err)
	distributors.On("FindByID", mock.Anything, d.ID).Return(d, nil)

	tooHigh := decimal.NewFromInt(150)
	_, err = svc.Update(context.Background(), actor, d.ID, UpdateDistributorRequest{CommissionRate: &tooHigh})
	assert.Error(t, err)
	distributors.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	distributors.On("Update", mock.Anything, d).Return(shared.ErrConcurrencyConflict)
	inactive := false
	_, err = svc.Update(context.Background(), actor, d.ID, UpdateDistributorRequest{Active: &inactive})
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}
