package geography

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func TestLocation_WithClearsDownstream(t *testing.T) {
	loc := Location{
		CountryID: ptr(uuid.New()),
		StateID:   ptr(uuid.New()),
		CityID:    ptr(uuid.New()),
		ZoneID:    ptr(uuid.New()),
	}

	t.Run("same country keeps everything", func(t *testing.T) {
		same := loc.With(LevelCountry, ptr(*loc.CountryID))
		assert.Equal(t, loc, same)
	})

	t.Run("new country clears state city zone", func(t *testing.T) {
		next := loc.With(LevelCountry, ptr(uuid.New()))
		assert.NotNil(t, next.CountryID)
		assert.Nil(t, next.StateID)
		assert.Nil(t, next.CityID)
		assert.Nil(t, next.ZoneID)
	})

	t.Run("new city only clears zone", func(t *testing.T) {
		next := loc.With(LevelCity, ptr(uuid.New()))
		assert.Equal(t, loc.CountryID, next.CountryID)
		assert.Equal(t, loc.StateID, next.StateID)
		assert.Nil(t, next.ZoneID)
	})

	t.Run("clearing state clears below", func(t *testing.T) {
		next := loc.With(LevelState, nil)
		assert.NotNil(t, next.CountryID)
		assert.Nil(t, next.StateID)
		assert.Nil(t, next.CityID)
	})

	t.Run("nil uuid counts as cleared", func(t *testing.T) {
		next := loc.With(LevelZone, ptr(uuid.Nil))
		assert.Nil(t, next.ZoneID)
	})
}

func TestLocation_Apply(t *testing.T) {
	loc := Location{CountryID: ptr(uuid.New()), StateID: ptr(uuid.New()), CityID: ptr(uuid.New())}
	newCountry, newState := uuid.New(), uuid.New()

	next := loc.Apply(LocationChange{
		Country: IDChange{Set: true, ID: &newCountry},
		State:   IDChange{Set: true, ID: &newState},
	})

	assert.Equal(t, newCountry, *next.CountryID)
	assert.Equal(t, newState, *next.StateID)
	assert.Nil(t, next.CityID)

	untouched := loc.Apply(LocationChange{})
	assert.Equal(t, loc, untouched)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, LevelCountry, LevelState.Parent())
	assert.Equal(t, Level(""), LevelCountry.Parent())
	assert.Equal(t, LevelZone, LevelCity.Child())
	assert.Equal(t, "zone_id", LevelZone.Field())
	assert.False(t, Level("planet").IsValid())
}

func TestNewRegion(t *testing.T) {
	country, err := NewRegion(LevelCountry, nil, "  india ", "in")
	assert.NoError(t, err)
	assert.Equal(t, "India", country.Name)
	assert.Equal(t, "IN", country.Code)

	_, err = NewRegion(LevelCountry, nil, "India", "")
	assert.Error(t, err)

	_, err = NewRegion(LevelState, nil, "Maharashtra", "")
	assert.Error(t, err)

	state, err := NewRegion(LevelState, &country.ID, "maharashtra", "mh")
	assert.NoError(t, err)
	assert.Equal(t, country.ID, *state.ParentID)

	city, err := NewRegion(LevelCity, &state.ID, "navi   mumbai", "")
	assert.NoError(t, err)
	assert.Equal(t, "Navi Mumbai", city.Name)
}

func TestLocation_ClearField(t *testing.T) {
	loc := Location{CountryID: ptr(uuid.New()), StateID: ptr(uuid.New()), CityID: ptr(uuid.New())}

	next, cleared := loc.ClearField("state_id")
	assert.Equal(t, []string{"state_id", "city_id"}, cleared)
	assert.NotNil(t, next.CountryID)
	assert.Nil(t, next.StateID)
	assert.Nil(t, next.CityID)

	same, cleared := loc.ClearField("distributor_id")
	assert.Empty(t, cleared)
	assert.Equal(t, loc, same)
}
