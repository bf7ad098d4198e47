package partner

import (
	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartyType distinguishes retail shops from institutional buyers
type PartyType string

const (
	PartyTypeRetail        PartyType = "retail"
	PartyTypeInstitutional PartyType = "institutional"
)

func (t PartyType) IsValid() bool {
	return t == PartyTypeRetail || t == PartyTypeInstitutional
}

// Party is a retail or institutional customer account
type Party struct {
	shared.OwnedAggregateRoot
	Name          string
	Type          PartyType
	Contact       Contact
	GSTNumber     string
	Location      geography.Location
	DistributorID *uuid.UUID
	SalesmanID    *uuid.UUID
	CreditLimit   decimal.Decimal
	Active        bool
}

// NewParty creates an active party owned by userID
func NewParty(userID uuid.UUID, name string, partyType PartyType) (*Party, error) {
	p := &Party{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		CreditLimit:        decimal.Zero,
		Active:             true,
	}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.SetType(partyType); err != nil {
		return nil, err
	}
	p.AddDomainEvent(NewPartyCreatedEvent(p))
	return p, nil
}

func (p *Party) Rename(name string) error {
	name, err := shared.RequireText("INVALID_NAME", "Party name", name, 200)
	if err != nil {
		return err
	}
	p.Name = name
	p.Touch()
	return nil
}

func (p *Party) SetType(t PartyType) error {
	if t == "" {
		t = PartyTypeRetail
	}
	if !t.IsValid() {
		return shared.NewDomainError("INVALID_PARTY_TYPE", "Party type must be retail or institutional")
	}
	p.Type = t
	p.Touch()
	return nil
}

func (p *Party) SetContact(c Contact) error {
	c, err := NormalizeContact(c)
	if err != nil {
		return err
	}
	p.Contact = c
	p.Touch()
	return nil
}

func (p *Party) SetGSTNumber(gst string) error {
	gst, err := shared.NormalizeGSTNumber(gst)
	if err != nil {
		return err
	}
	p.GSTNumber = gst
	p.Touch()
	return nil
}

func (p *Party) SetLocation(loc geography.Location) {
	p.Location = loc
	p.Touch()
}

// AssignDistributor links the party to the distributor that serves it
func (p *Party) AssignDistributor(id *uuid.UUID) {
	p.DistributorID = normalizeID(id)
	p.Touch()
}

// AssignSalesman links the party to its field salesman
func (p *Party) AssignSalesman(id *uuid.UUID) {
	p.SalesmanID = normalizeID(id)
	p.Touch()
}

func (p *Party) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}
	p.CreditLimit = limit
	p.Touch()
	return nil
}

func (p *Party) SetActive(active bool) {
	p.Active = active
	p.Touch()
}

// ClearReference implements shared.ReferenceClearer
func (p *Party) ClearReference(field string) []string {
	switch field {
	case "distributor_id":
		if p.DistributorID == nil {
			return nil
		}
		p.DistributorID = nil
		return []string{field}
	case "salesman_id":
		if p.SalesmanID == nil {
			return nil
		}
		p.SalesmanID = nil
		return []string{field}
	}
	var cleared []string
	p.Location, cleared = p.Location.ClearField(field)
	return cleared
}

func normalizeID(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	v := *id
	return &v
}
