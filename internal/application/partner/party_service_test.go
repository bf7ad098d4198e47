package partner

import (
	"context"
	"testing"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/eyedist/backend/internal/domain/partner"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type partyFixture struct {
	parties      *MockPartyRepository
	distributors *MockDistributorRepository
	salesmen     *MockSalesmanRepository
	resolver     *MockLocationResolver
	publisher    *recordingPublisher
	svc          *PartyService
}

func newPartyFixture() *partyFixture {
	f := &partyFixture{
		parties:      new(MockPartyRepository),
		distributors: new(MockDistributorRepository),
		salesmen:     new(MockSalesmanRepository),
		resolver:     new(MockLocationResolver),
		publisher:    &recordingPublisher{},
	}
	f.svc = NewPartyService(f.parties, f.distributors, f.salesmen, f.resolver)
	f.svc.SetEventPublisher(f.publisher)
	return f
}

func id() *uuid.UUID {
	v := uuid.New()
	return &v
}

func TestPartyService_Create_Success(t *testing.T) {
	f := newPartyFixture()
	actor := application.NewActor(uuid.New(), identity.RoleSalesman)
	country, state := id(), id()
	distributorID := id()
	limit := decimal.NewFromInt(50000)

	loc := geography.Location{CountryID: country, StateID: state}
	f.resolver.On("Resolve", mock.Anything, loc).Return(loc, nil, nil)
	f.distributors.On("Exists", mock.Anything, *distributorID).Return(true, nil)
	f.parties.On("Create", mock.Anything, mock.AnythingOfType("*partner.Party")).Return(nil)

	req := CreatePartyRequest{
		Name:          "Vision Opticals",
		Type:          "retail",
		ContactInput:  ContactInput{Phone: "+91 98200 12345", Email: "Shop@Vision.in"},
		LocationInput: application.LocationInput{CountryID: application.OptionalID{Set: true, ID: country}, StateID: application.OptionalID{Set: true, ID: state}},
		DistributorID: distributorID,
		CreditLimit:   &limit,
	}
	resp, err := f.svc.Create(context.Background(), actor, req)

	require.NoError(t, err)
	assert.Equal(t, actor.UserID, resp.UserID)
	assert.Equal(t, "shop@vision.in", resp.Email)
	assert.Equal(t, distributorID, resp.DistributorID)
	assert.Equal(t, state, resp.StateID)
	assert.True(t, limit.Equal(resp.CreditLimit))
	assert.Empty(t, resp.DroppedReferences)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, partner.EventTypePartyCreated, f.publisher.events[0].EventType())
	f.parties.AssertExpectations(t)
}

func TestPartyService_Create_UnknownOwnerIsNotRetried(t *testing.T) {
	f := newPartyFixture()
	admin := application.NewActor(uuid.New(), identity.RoleAdmin)
	f.parties.On("Create", mock.Anything, mock.AnythingOfType("*partner.Party")).
		Return(&shared.ReferenceError{Field: "user_id"}).Once()

	_, err := f.svc.Create(context.Background(), admin, CreatePartyRequest{
		Name:    "Vision Opticals",
		Type:    "retail",
		OwnerID: id(),
	})

	require.ErrorIs(t, err, shared.ErrInvalidReference)
	refErr, ok := shared.AsReferenceError(err)
	require.True(t, ok)
	assert.Equal(t, "user_id", refErr.Field)
	f.parties.AssertNumberOfCalls(t, "Create", 1)
	assert.Empty(t, f.publisher.events)
}

func TestPartyService_Create_DropsMissingReferences(t *testing.T) {
	f := newPartyFixture()
	actor := application.NewActor(uuid.New(), identity.RoleSalesman)
	country, state := id(), id()
	distributorID, salesmanID := id(), id()

	requested := geography.Location{CountryID: country, StateID: state}
	f.resolver.On("Resolve", mock.Anything, requested).
		Return(geography.Location{CountryID: country}, []string{"state_id"}, nil)
	f.distributors.On("Exists", mock.Anything, *distributorID).Return(false, nil)
	f.salesmen.On("Exists", mock.Anything, *salesmanID).Return(true, nil)
	f.parties.On("Create", mock.Anything, mock.AnythingOfType("*partner.Party")).Return(nil)

	resp, err := f.svc.Create(context.Background(), actor, CreatePartyRequest{
		Name:          "Clear Sight",
		LocationInput: application.LocationInput{CountryID: application.OptionalID{Set: true, ID: country}, StateID: application.OptionalID{Set: true, ID: state}},
		DistributorID: distributorID,
		SalesmanID:    salesmanID,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"state_id", "distributor_id"}, resp.DroppedReferences)
	assert.Nil(t, resp.StateID)
	assert.Nil(t, resp.DistributorID)
	assert.Equal(t, salesmanID, resp.SalesmanID)
}

func TestPartyService_Create_RetriesOnForeignKeyViolation(t *testing.T) {
	f := newPartyFixture()
	actor := application.NewActor(uuid.New(), identity.RoleManager)
	salesmanID := id()

	f.salesmen.On("Exists", mock.Anything, *salesmanID).Return(true, nil)
	// the salesman disappears between the check and the insert
	f.parties.On("Create", mock.Anything, mock.MatchedBy(func(p *partner.Party) bool { return p.SalesmanID != nil })).
		Return(&shared.ReferenceError{Field: "salesman_id"}).Once()
	f.parties.On("Create", mock.Anything, mock.MatchedBy(func(p *partner.Party) bool { return p.SalesmanID == nil })).
		Return(nil).Once()

	resp, err := f.svc.Create(context.Background(), actor, CreatePartyRequest{Name: "Lens Hub", SalesmanID: salesmanID})

	require.NoError(t, err)
	assert.Nil(t, resp.SalesmanID)
	assert.Equal(t, []string{"salesman_id"}, resp.DroppedReferences)
	f.parties.AssertNumberOfCalls(t, "Create", 2)
	f.resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestPartyService_Create_OnBehalfOfAnotherUser(t *testing.T) {
	other := uuid.New()

	t.Run("salesman cannot", func(t *testing.T) {
		f := newPartyFixture()
		_, err := f.svc.Create(context.Background(), application.NewActor(uuid.New(), identity.RoleSalesman),
			CreatePartyRequest{Name: "X", OwnerID: &other})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("admin can", func(t *testing.T) {
		f := newPartyFixture()
		f.parties.On("Create", mock.Anything, mock.Anything).Return(nil)
		resp, err := f.svc.Create(context.Background(), application.NewActor(uuid.New(), identity.RoleAdmin),
			CreatePartyRequest{Name: "X", OwnerID: &other})
		require.NoError(t, err)
		assert.Equal(t, other, resp.UserID)
	})
}

func TestPartyService_Create_InvalidInput(t *testing.T) {
	f := newPartyFixture()
	actor := application.NewActor(uuid.New(), identity.RoleAdmin)

	_, err := f.svc.Create(context.Background(), actor, CreatePartyRequest{Name: "X", GSTNumber: "bad"})
	require.Error(t, err)
	de, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "INVALID_GST_NUMBER", de.Code)
	f.parties.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPartyService_GetByID_HidesOtherUsersRows(t *testing.T) {
	f := newPartyFixture()
	owner := uuid.New()
	p, err := partner.NewParty(owner, "Vision", partner.PartyTypeRetail)
	require.NoError(t, err)
	f.parties.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	_, err = f.svc.GetByID(context.Background(), application.NewActor(uuid.New(), identity.RoleDistributor), p.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	resp, err := f.svc.GetByID(context.Background(), application.NewActor(owner, identity.RoleDistributor), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, resp.ID)
}

func TestPartyService_List_BuildsFilter(t *testing.T) {
	f := newPartyFixture()
	city := uuid.New()
	active := true

	f.parties.On("FindAll", mock.Anything, mock.MatchedBy(func(fl shared.Filter) bool {
		return fl.Page == 2 && fl.Filters["city_id"] == city && fl.Filters["active"] == true &&
			fl.Filters["type"] == "institutional"
	})).Return([]*partner.Party{}, int64(21), nil)

	filter := PartyListFilter{
		ListQuery:     application.ListQuery{Page: 2},
		LocationQuery: application.LocationQuery{CityID: city.String()},
		Type:          "institutional",
		Active:        &active,
	}
	items, total, err := f.svc.List(context.Background(), application.NewActor(uuid.New(), identity.RoleAdmin), filter)

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(21), total)
}

func TestPartyService_Update_CascadesLocation(t *testing.T) {
	f := newPartyFixture()
	owner := uuid.New()
	country, state, city := id(), id(), id()
	p, err := partner.NewParty(owner, "Vision", partner.PartyTypeRetail)
	require.NoError(t, err)
	p.SetLocation(geography.Location{CountryID: country, StateID: state, CityID: city})

	newState := id()
	expected := geography.Location{CountryID: country, StateID: newState}
	f.parties.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	f.resolver.On("Resolve", mock.Anything, expected).Return(expected, nil, nil)
	f.parties.On("Update", mock.Anything, p).Return(nil)

	name := "Vision Opticals"
	resp, err := f.svc.Update(context.Background(), application.NewActor(owner, identity.RoleSalesman), p.ID, UpdatePartyRequest{
		Name:          &name,
		LocationInput: application.LocationInput{StateID: application.OptionalID{Set: true, ID: newState}},
	})

	require.NoError(t, err)
	assert.Equal(t, "Vision Opticals", resp.Name)
	assert.Equal(t, newState, resp.StateID)
	assert.Nil(t, resp.CityID)
	f.resolver.AssertExpectations(t)
}

func TestPartyService_Update_ClearsDistributor(t *testing.T) {
	f := newPartyFixture()
	owner := uuid.New()
	p, err := partner.NewParty(owner, "Vision", partner.PartyTypeRetail)
	require.NoError(t, err)
	p.AssignDistributor(id())

	f.parties.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	f.parties.On("Update", mock.Anything, p).Return(nil)

	resp, err := f.svc.Update(context.Background(), application.NewActor(owner, identity.RoleSalesman), p.ID, UpdatePartyRequest{
		DistributorID: application.OptionalID{Set: true},
	})

	require.NoError(t, err)
	assert.Nil(t, resp.DistributorID)
	f.distributors.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestPartyService_Delete(t *testing.T) {
	f := newPartyFixture()
	owner := uuid.New()
	p, err := partner.NewParty(owner, "Vision", partner.PartyTypeRetail)
	require.NoError(t, err)
	f.parties.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	f.parties.On("Delete", mock.Anything, p.ID).Return(shared.ErrInUse).Once()

	err = f.svc.Delete(context.Background(), application.NewActor(owner, identity.RoleStaff), p.ID)
	assert.ErrorIs(t, err, shared.ErrInUse)

	err = f.svc.Delete(context.Background(), application.NewActor(uuid.New(), identity.RoleStaff), p.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.parties.AssertNumberOfCalls(t, "Delete", 1)
}
