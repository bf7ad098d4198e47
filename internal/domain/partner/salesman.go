package partner

import (
	"strings"

	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Salesman is field sales personnel; the zone in Location is the territory
type Salesman struct {
	shared.OwnedAggregateRoot
	Name         string
	EmployeeCode string
	Contact      Contact
	Location     geography.Location
	AccountID    *uuid.UUID // login user, when the salesman has one
	Active       bool
}

// NewSalesman creates an active salesman owned by userID
func NewSalesman(userID uuid.UUID, name, employeeCode string) (*Salesman, error) {
	s := &Salesman{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		Active:             true,
	}
	if err := s.Rename(name); err != nil {
		return nil, err
	}
	if err := s.SetEmployeeCode(employeeCode); err != nil {
		return nil, err
	}
	s.AddDomainEvent(NewSalesmanCreatedEvent(s))
	return s, nil
}

func (s *Salesman) Rename(name string) error {
	name, err := shared.RequireText("INVALID_NAME", "Salesman name", name, 200)
	if err != nil {
		return err
	}
	s.Name = name
	s.Touch()
	return nil
}

// SetEmployeeCode stores the code upper-cased
func (s *Salesman) SetEmployeeCode(code string) error {
	code, err := shared.RequireText("INVALID_EMPLOYEE_CODE", "Employee code", strings.ToUpper(code), 50)
	if err != nil {
		return err
	}
	s.EmployeeCode = code
	s.Touch()
	return nil
}

func (s *Salesman) SetContact(c Contact) error {
	c, err := NormalizeContact(c)
	if err != nil {
		return err
	}
	s.Contact = c
	s.Touch()
	return nil
}

func (s *Salesman) SetLocation(loc geography.Location) {
	s.Location = loc
	s.Touch()
}

// LinkAccount ties the salesman to a login user (nil unlinks)
func (s *Salesman) LinkAccount(userID *uuid.UUID) {
	s.AccountID = normalizeID(userID)
	s.Touch()
}

func (s *Salesman) SetActive(active bool) {
	s.Active = active
	s.Touch()
}

// ClearReference implements shared.ReferenceClearer
func (s *Salesman) ClearReference(field string) []string {
	if field == "account_id" {
		if s.AccountID == nil {
			return nil
		}
		s.AccountID = nil
		return []string{field}
	}
	var cleared []string
	s.Location, cleared = s.Location.ClearField(field)
	return cleared
}
