package models

import (
	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/google/uuid"
)

// Each geography level has its own table whose parent column is named after
// the parent level (states.country_id, cities.state_id, zones.city_id).

// RegionColumns are shared by every geography table
type RegionColumns struct {
	AggregateModel
	Name string `gorm:"type:varchar(100);not null"`
	Code string `gorm:"type:varchar(10)"`
}

func (c *RegionColumns) region(level geography.Level, parent *uuid.UUID) *geography.Region {
	return &geography.Region{
		BaseAggregateRoot: c.toAggregate(),
		Level:             level,
		ParentID:          parent,
		Name:              c.Name,
		Code:              c.Code,
	}
}

func regionColumnsFrom(r *geography.Region) RegionColumns {
	c := RegionColumns{Name: r.Name, Code: r.Code}
	c.fromAggregate(r.BaseAggregateRoot)
	return c
}

type CountryModel struct {
	RegionColumns
}

func (CountryModel) TableName() string { return "countries" }

func (m *CountryModel) ToDomain() *geography.Region {
	return m.region(geography.LevelCountry, nil)
}

type StateModel struct {
	RegionColumns
	CountryID uuid.UUID `gorm:"type:char(36);not null;index"`
}

func (StateModel) TableName() string { return "states" }

func (m *StateModel) ToDomain() *geography.Region {
	id := m.CountryID
	return m.region(geography.LevelState, &id)
}

type CityModel struct {
	RegionColumns
	StateID uuid.UUID `gorm:"type:char(36);not null;index"`
}

func (CityModel) TableName() string { return "cities" }

func (m *CityModel) ToDomain() *geography.Region {
	id := m.StateID
	return m.region(geography.LevelCity, &id)
}

type ZoneModel struct {
	RegionColumns
	CityID uuid.UUID `gorm:"type:char(36);not null;index"`
}

func (ZoneModel) TableName() string { return "zones" }

func (m *ZoneModel) ToDomain() *geography.Region {
	id := m.CityID
	return m.region(geography.LevelZone, &id)
}

// RegionRecord is implemented by the four per-level models
type RegionRecord interface {
	ToDomain() *geography.Region
	TableName() string
	SetVersion(v int)
}

// RegionTable returns the table name backing a level
func RegionTable(level geography.Level) string {
	switch level {
	case geography.LevelState:
		return "states"
	case geography.LevelCity:
		return "cities"
	case geography.LevelZone:
		return "zones"
	}
	return "countries"
}

// ParentColumn returns the column holding the parent id for a level, or ""
// for countries.
func ParentColumn(level geography.Level) string {
	if p := level.Parent(); p != "" {
		return p.Field()
	}
	return ""
}

// NewRegionRecord returns an empty record for scanning a single row
func NewRegionRecord(level geography.Level) RegionRecord {
	switch level {
	case geography.LevelState:
		return &StateModel{}
	case geography.LevelCity:
		return &CityModel{}
	case geography.LevelZone:
		return &ZoneModel{}
	}
	return &CountryModel{}
}

// RegionRecordFromDomain builds the level-specific record for r
func RegionRecordFromDomain(r *geography.Region) RegionRecord {
	cols := regionColumnsFrom(r)
	var parent uuid.UUID
	if r.ParentID != nil {
		parent = *r.ParentID
	}
	switch r.Level {
	case geography.LevelState:
		return &StateModel{RegionColumns: cols, CountryID: parent}
	case geography.LevelCity:
		return &CityModel{RegionColumns: cols, StateID: parent}
	case geography.LevelZone:
		return &ZoneModel{RegionColumns: cols, CityID: parent}
	}
	return &CountryModel{RegionColumns: cols}
}

// RegionList is a scan destination for many rows of one level
type RegionList interface {
	Dest() any
	ToDomain() []*geography.Region
}

type regionList[T any, PT interface {
	*T
	RegionRecord
}] struct {
	rows []T
}

func (l *regionList[T, PT]) Dest() any { return &l.rows }

func (l *regionList[T, PT]) ToDomain() []*geography.Region {
	out := make([]*geography.Region, len(l.rows))
	for i := range l.rows {
		out[i] = PT(&l.rows[i]).ToDomain()
	}
	return out
}

// NewRegionList returns an empty list for scanning rows of level
func NewRegionList(level geography.Level) RegionList {
	switch level {
	case geography.LevelState:
		return &regionList[StateModel, *StateModel]{}
	case geography.LevelCity:
		return &regionList[CityModel, *CityModel]{}
	case geography.LevelZone:
		return &regionList[ZoneModel, *ZoneModel]{}
	}
	return &regionList[CountryModel, *CountryModel]{}
}

// AllRegionModels lists the geography models for AutoMigrate
func AllRegionModels() []any {
	return []any{&CountryModel{}, &StateModel{}, &CityModel{}, &ZoneModel{}}
}
