package models

import (
	"time"

	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for all models.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (m *BaseModel) toEntity() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

func (m *BaseModel) fromEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel extends BaseModel with version for optimistic locking.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// SetVersion sets the version an update will write
func (m *AggregateModel) SetVersion(v int) { m.Version = v }

func (m *AggregateModel) toAggregate() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{BaseEntity: m.toEntity(), Version: m.Version}
}

func (m *AggregateModel) fromAggregate(a shared.BaseAggregateRoot) {
	m.fromEntity(a.BaseEntity)
	m.Version = a.Version
}

// OwnedModel is an aggregate that belongs to the user who created it.
// user_id is the column the visibility filter narrows on.
type OwnedModel struct {
	AggregateModel
	UserID uuid.UUID `gorm:"type:char(36);not null;index"`
}

func (m *OwnedModel) toOwned() shared.OwnedAggregateRoot {
	return shared.OwnedAggregateRoot{BaseAggregateRoot: m.toAggregate(), UserID: m.UserID}
}

func (m *OwnedModel) fromOwned(o shared.OwnedAggregateRoot) {
	m.fromAggregate(o.BaseAggregateRoot)
	m.UserID = o.UserID
}

// LocationColumns is the embedded country/state/city/zone reference set.
type LocationColumns struct {
	CountryID *uuid.UUID `gorm:"type:char(36);index"`
	StateID   *uuid.UUID `gorm:"type:char(36);index"`
	CityID    *uuid.UUID `gorm:"type:char(36);index"`
	ZoneID    *uuid.UUID `gorm:"type:char(36);index"`
}

func (c LocationColumns) toDomain() geography.Location {
	return geography.Location{CountryID: c.CountryID, StateID: c.StateID, CityID: c.CityID, ZoneID: c.ZoneID}
}

func locationColumns(l geography.Location) LocationColumns {
	return LocationColumns{CountryID: l.CountryID, StateID: l.StateID, CityID: l.CityID, ZoneID: l.ZoneID}
}

// ContactColumns is the embedded contact block shared by partner tables.
type ContactColumns struct {
	ContactPerson string `gorm:"type:varchar(100)"`
	Phone         string `gorm:"type:varchar(30)"`
	Email         string `gorm:"type:varchar(200)"`
	Address       string `gorm:"type:text"`
}
