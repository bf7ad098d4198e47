package application

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OptionalID tells "field absent" apart from "field set to null" in a JSON
// body. Absent leaves the stored value alone, null or "" clears it.
type OptionalID struct {
	Set bool
	ID  *uuid.UUID
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.ID = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("id must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", s, err)
	}
	if id != uuid.Nil {
		o.ID = &id
	}
	return nil
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if o.ID == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.ID.String())
}

// Change converts the value into a geography edit
func (o OptionalID) Change() geography.IDChange {
	return geography.IDChange{Set: o.Set, ID: o.ID}
}

// Apply returns the new value for current: unchanged when absent
func (o OptionalID) Apply(current *uuid.UUID) *uuid.UUID {
	if !o.Set {
		return current
	}
	return o.ID
}

// LocationInput is the location part of create and update requests
type LocationInput struct {
	CountryID OptionalID `json:"country_id" swaggertype:"string" format:"uuid"`
	StateID   OptionalID `json:"state_id" swaggertype:"string" format:"uuid"`
	CityID    OptionalID `json:"city_id" swaggertype:"string" format:"uuid"`
	ZoneID    OptionalID `json:"zone_id" swaggertype:"string" format:"uuid"`
}

func (in LocationInput) Change() geography.LocationChange {
	return geography.LocationChange{
		Country: in.CountryID.Change(),
		State:   in.StateID.Change(),
		City:    in.CityID.Change(),
		Zone:    in.ZoneID.Change(),
	}
}

// Changed reports whether the request touches any level
func (in LocationInput) Changed() bool {
	return in.CountryID.Set || in.StateID.Set || in.CityID.Set || in.ZoneID.Set
}

// Location builds a fresh location from the request
func (in LocationInput) Location() geography.Location {
	return geography.Location{}.Apply(in.Change())
}

// LocationResponse is the location part of API responses
type LocationResponse struct {
	CountryID *uuid.UUID `json:"country_id"`
	StateID   *uuid.UUID `json:"state_id"`
	CityID    *uuid.UUID `json:"city_id"`
	ZoneID    *uuid.UUID `json:"zone_id"`
}

func ToLocationResponse(l geography.Location) LocationResponse {
	return LocationResponse{
		CountryID: l.CountryID,
		StateID:   l.StateID,
		CityID:    l.CityID,
		ZoneID:    l.ZoneID,
	}
}

// ListQuery carries the paging and sorting parameters every list endpoint accepts
type ListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"omitempty,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,max=50"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// Filter converts the query into a normalized domain filter
func (q ListQuery) Filter() shared.Filter {
	return shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		Search:   q.Search,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}.Normalize()
}

// LocationQuery narrows a list to one branch of the geography tree
type LocationQuery struct {
	CountryID string `form:"country_id" binding:"omitempty,uuid"`
	StateID   string `form:"state_id" binding:"omitempty,uuid"`
	CityID    string `form:"city_id" binding:"omitempty,uuid"`
	ZoneID    string `form:"zone_id" binding:"omitempty,uuid"`
}

// ApplyTo copies the set ids into filters under their column names
func (q LocationQuery) ApplyTo(filters map[string]any) {
	SetUUIDFilter(filters, "country_id", q.CountryID)
	SetUUIDFilter(filters, "state_id", q.StateID)
	SetUUIDFilter(filters, "city_id", q.CityID)
	SetUUIDFilter(filters, "zone_id", q.ZoneID)
}

// SetUUIDFilter stores raw under key when it parses as a non-nil uuid
func SetUUIDFilter(filters map[string]any, key, raw string) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return
	}
	filters[key] = id
}

// DateRangeQuery limits a list to an inclusive day range
type DateRangeQuery struct {
	FromDate string `form:"from_date" binding:"omitempty,datetime=2006-01-02"`
	ToDate   string `form:"to_date" binding:"omitempty,datetime=2006-01-02"`
}

// ApplyTo stores the parsed days as from_date and to_date
func (q DateRangeQuery) ApplyTo(filters map[string]any) error {
	from, err := parseDay(q.FromDate)
	if err != nil {
		return err
	}
	to, err := parseDay(q.ToDate)
	if err != nil {
		return err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return shared.NewDomainError("INVALID_DATE_RANGE", "to_date cannot be before from_date")
	}
	if !from.IsZero() {
		filters["from_date"] = from
	}
	if !to.IsZero() {
		filters["to_date"] = to
	}
	return nil
}

func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", s))
	}
	return t, nil
}
