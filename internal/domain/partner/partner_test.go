package partner

import (
	"testing"

	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idPtr() *uuid.UUID {
	id := uuid.New()
	return &id
}

func TestNewParty(t *testing.T) {
	owner := uuid.New()

	t.Run("defaults to retail and active", func(t *testing.T) {
		p, err := NewParty(owner, "  Vision Opticals ", "")
		require.NoError(t, err)
		assert.Equal(t, "Vision Opticals", p.Name)
		assert.Equal(t, PartyTypeRetail, p.Type)
		assert.True(t, p.Active)
		assert.Equal(t, owner, p.UserID)
		assert.Len(t, p.GetDomainEvents(), 1)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewParty(owner, "Vision", PartyType("wholesale"))
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewParty(owner, " ", PartyTypeRetail)
		assert.Error(t, err)
	})
}

func TestParty_Setters(t *testing.T) {
	p, err := NewParty(uuid.New(), "City Eye Hospital", PartyTypeInstitutional)
	require.NoError(t, err)

	require.NoError(t, p.SetContact(Contact{ContactPerson: "Dr. Rao", Email: "RAO@CITYEYE.IN", Phone: "+91 22 4000 1000"}))
	assert.Equal(t, "rao@cityeye.in", p.Contact.Email)

	assert.Error(t, p.SetContact(Contact{Email: "bad"}))
	assert.Error(t, p.SetCreditLimit(decimal.NewFromInt(-1)))
	require.NoError(t, p.SetCreditLimit(decimal.NewFromInt(50000)))

	nilID := uuid.Nil
	p.AssignDistributor(&nilID)
	assert.Nil(t, p.DistributorID)
}

func TestParty_ClearReference(t *testing.T) {
	p, err := NewParty(uuid.New(), "Vision", PartyTypeRetail)
	require.NoError(t, err)
	p.AssignDistributor(idPtr())
	p.AssignSalesman(idPtr())
	p.SetLocation(geography.Location{CountryID: idPtr(), StateID: idPtr(), CityID: idPtr()})

	assert.Equal(t, []string{"distributor_id"}, p.ClearReference("distributor_id"))
	assert.Nil(t, p.DistributorID)
	assert.Empty(t, p.ClearReference("distributor_id"))

	assert.Equal(t, []string{"state_id", "city_id"}, p.ClearReference("state_id"))
	assert.NotNil(t, p.Location.CountryID)
	assert.Nil(t, p.Location.CityID)

	assert.Empty(t, p.ClearReference("user_id"))
	assert.NotNil(t, p.SalesmanID)
}

func TestDistributor(t *testing.T) {
	d, err := NewDistributor(uuid.New(), "North Optics Pvt Ltd")
	require.NoError(t, err)

	assert.Error(t, d.SetCommissionRate(decimal.NewFromInt(101)))
	assert.Error(t, d.SetCommissionRate(decimal.NewFromInt(-5)))
	require.NoError(t, d.SetCommissionRate(decimal.RequireFromString("7.5")))

	require.NoError(t, d.SetGSTNumber("27aapfu0939f1zv"))
	assert.Equal(t, "27AAPFU0939F1ZV", d.GSTNumber)

	d.SetLocation(geography.Location{CountryID: idPtr()})
	assert.Equal(t, []string{"country_id"}, d.ClearReference("country_id"))
	assert.True(t, d.Location.IsEmpty())
}

func TestSalesman(t *testing.T) {
	s, err := NewSalesman(uuid.New(), "Arjun", " emp-007 ")
	require.NoError(t, err)
	assert.Equal(t, "EMP-007", s.EmployeeCode)

	_, err = NewSalesman(uuid.New(), "Arjun", "")
	assert.Error(t, err)

	s.LinkAccount(idPtr())
	assert.Equal(t, []string{"account_id"}, s.ClearReference("account_id"))
	assert.Nil(t, s.AccountID)
}
