package calendar

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	start := time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)

	e, err := NewEvent(uuid.New(), "Optical Fair", EventTypeExhibition, start, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, start, e.EndDate)

	_, err = NewEvent(uuid.New(), "Optical Fair", EventTypeExhibition, start, start.AddDate(0, 0, -1))
	assert.Error(t, err)

	_, err = NewEvent(uuid.New(), "", EventTypeMeeting, start, start)
	assert.Error(t, err)

	e, err = NewEvent(uuid.New(), "Sync", "", start, start)
	require.NoError(t, err)
	assert.Equal(t, EventTypeOther, e.Type)
}

func TestEvent_IsUpcoming(t *testing.T) {
	start := time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)
	e, err := NewEvent(uuid.New(), "Launch", EventTypeLaunch, start, start.AddDate(0, 0, 2))
	require.NoError(t, err)

	assert.True(t, e.IsUpcoming(start.AddDate(0, 0, 1)))
	assert.False(t, e.IsUpcoming(start.AddDate(0, 0, 3)))
}

func TestParseEventType(t *testing.T) {
	et, err := ParseEventType("Training")
	require.NoError(t, err)
	assert.Equal(t, EventTypeTraining, et)

	_, err = ParseEventType("party")
	assert.Error(t, err)
}

func TestEvent_SetVenue(t *testing.T) {
	e, err := NewEvent(uuid.New(), "Meet", EventTypeMeeting, time.Now(), time.Time{})
	require.NoError(t, err)

	nilID := uuid.Nil
	require.NoError(t, e.SetVenue("Hall 3", &nilID))
	assert.Nil(t, e.CityID)
	assert.Equal(t, "Hall 3", e.Venue)
}
