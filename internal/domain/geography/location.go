package geography

import (
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Location is an optional position in the hierarchy. Each id may be nil.
type Location struct {
	CountryID *uuid.UUID
	StateID   *uuid.UUID
	CityID    *uuid.UUID
	ZoneID    *uuid.UUID
}

// Get returns the id stored for level
func (l Location) Get(level Level) *uuid.UUID {
	switch level {
	case LevelCountry:
		return l.CountryID
	case LevelState:
		return l.StateID
	case LevelCity:
		return l.CityID
	case LevelZone:
		return l.ZoneID
	}
	return nil
}

func (l *Location) set(level Level, id *uuid.UUID) {
	if id != nil && *id == uuid.Nil {
		id = nil
	}
	switch level {
	case LevelCountry:
		l.CountryID = id
	case LevelState:
		l.StateID = id
	case LevelCity:
		l.CityID = id
	case LevelZone:
		l.ZoneID = id
	}
}

// clearBelow nils every level under level
func (l *Location) clearBelow(level Level) {
	for c := level.Child(); c != ""; c = c.Child() {
		l.set(c, nil)
	}
}

// With selects id at level. When the selection actually changes every
// downstream selection is cleared.
func (l Location) With(level Level, id *uuid.UUID) Location {
	if id != nil && *id == uuid.Nil {
		id = nil
	}
	if shared.UUIDPtrEqual(l.Get(level), id) {
		return l
	}
	l.set(level, id)
	l.clearBelow(level)
	return l
}

// IDChange is a possibly-absent edit of one level. Set=false leaves it alone;
// Set=true with a nil ID clears it.
type IDChange struct {
	Set bool
	ID  *uuid.UUID
}

// LocationChange is a partial edit of a Location
type LocationChange struct {
	Country IDChange
	State   IDChange
	City    IDChange
	Zone    IDChange
}

func (c LocationChange) get(level Level) IDChange {
	switch level {
	case LevelCountry:
		return c.Country
	case LevelState:
		return c.State
	case LevelCity:
		return c.City
	}
	return c.Zone
}

// Apply applies the change top-down so a new country clears the old
// state/city/zone unless the same request also picks new ones.
func (l Location) Apply(c LocationChange) Location {
	for _, level := range Levels {
		if ch := c.get(level); ch.Set {
			l = l.With(level, ch.ID)
		}
	}
	return l
}

// IsEmpty reports whether no level is selected
func (l Location) IsEmpty() bool {
	return l.CountryID == nil && l.StateID == nil && l.CityID == nil && l.ZoneID == nil
}

// LevelForField maps a column name such as "city_id" back to its level
func LevelForField(field string) (Level, bool) {
	for _, level := range Levels {
		if level.Field() == field {
			return level, true
		}
	}
	return "", false
}

// ClearField nils the level named by field and everything below it.
// It returns the fields that were actually cleared.
func (l Location) ClearField(field string) (Location, []string) {
	level, ok := LevelForField(field)
	if !ok {
		return l, nil
	}
	var cleared []string
	for c := level; c != ""; c = c.Child() {
		if l.Get(c) != nil {
			cleared = append(cleared, c.Field())
		}
	}
	l.set(level, nil)
	l.clearBelow(level)
	return l, cleared
}
