package models

import (
	"time"

	"github.com/eyedist/backend/internal/domain/calendar"
	"github.com/google/uuid"
)

// EventModel is the persistence model for calendar.Event
type EventModel struct {
	OwnedModel
	Title       string             `gorm:"type:varchar(200);not null"`
	Description string             `gorm:"type:text"`
	Type        calendar.EventType `gorm:"type:varchar(20);not null;default:'other'"`
	StartDate   time.Time          `gorm:"not null;index"`
	EndDate     time.Time          `gorm:"not null"`
	Venue       string             `gorm:"type:varchar(200)"`
	CityID      *uuid.UUID         `gorm:"type:char(36);index"`
}

func (EventModel) TableName() string { return "events" }

func (m *EventModel) ToDomain() *calendar.Event {
	return &calendar.Event{
		OwnedAggregateRoot: m.toOwned(),
		Title:              m.Title,
		Description:        m.Description,
		Type:               m.Type,
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		Venue:              m.Venue,
		CityID:             m.CityID,
	}
}

func EventModelFromDomain(e *calendar.Event) *EventModel {
	m := &EventModel{
		Title:       e.Title,
		Description: e.Description,
		Type:        e.Type,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Venue:       e.Venue,
		CityID:      e.CityID,
	}
	m.fromOwned(e.OwnedAggregateRoot)
	return m
}
