package geography

import (
	"strings"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Level is one tier of the country → state → city → zone hierarchy
type Level string

const (
	LevelCountry Level = "country"
	LevelState   Level = "state"
	LevelCity    Level = "city"
	LevelZone    Level = "zone"
)

// Levels in top-down order
var Levels = []Level{LevelCountry, LevelState, LevelCity, LevelZone}

func (l Level) IsValid() bool {
	switch l {
	case LevelCountry, LevelState, LevelCity, LevelZone:
		return true
	}
	return false
}

// Parent returns the level above, or "" for country
func (l Level) Parent() Level {
	switch l {
	case LevelState:
		return LevelCountry
	case LevelCity:
		return LevelState
	case LevelZone:
		return LevelCity
	}
	return ""
}

// Child returns the level below, or "" for zone
func (l Level) Child() Level {
	switch l {
	case LevelCountry:
		return LevelState
	case LevelState:
		return LevelCity
	case LevelCity:
		return LevelZone
	}
	return ""
}

// Field is the foreign-key column other tables use to point at this level
func (l Level) Field() string {
	return string(l) + "_id"
}

func (l Level) String() string { return string(l) }

// NormalizeName collapses whitespace and title-cases a place name
func NormalizeName(name string) string {
	return cases.Title(language.Und).String(strings.Join(strings.Fields(name), " "))
}

// Region is a country, state, city or zone. Only countries have no parent.
type Region struct {
	shared.BaseAggregateRoot
	Level    Level
	ParentID *uuid.UUID
	Name     string
	Code     string
}

// NewRegion creates a region at level under parentID (nil for countries)
func NewRegion(level Level, parentID *uuid.UUID, name, code string) (*Region, error) {
	if !level.IsValid() {
		return nil, shared.NewDomainError("INVALID_LEVEL", "Unknown geography level")
	}
	if level == LevelCountry && parentID != nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "A country cannot have a parent")
	}
	if level != LevelCountry && (parentID == nil || *parentID == uuid.Nil) {
		return nil, shared.NewDomainError("INVALID_PARENT", "A "+string(level)+" requires a "+string(level.Parent()))
	}

	r := &Region{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Level:             level,
		ParentID:          parentID,
	}
	if err := r.Rename(name, code); err != nil {
		return nil, err
	}
	return r, nil
}

// Rename sets name and code
func (r *Region) Rename(name, code string) error {
	name, err := shared.RequireText("INVALID_NAME", "Name", name, 100)
	if err != nil {
		return err
	}
	code, err = shared.OptionalText("INVALID_CODE", "Code", strings.ToUpper(code), 10)
	if err != nil {
		return err
	}
	if r.Level == LevelCountry && code == "" {
		return shared.NewDomainError("INVALID_CODE", "Country code cannot be empty")
	}
	r.Name = NormalizeName(name)
	r.Code = code
	r.Touch()
	return nil
}
