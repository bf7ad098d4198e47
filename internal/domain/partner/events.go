package partner

import (
	"github.com/eyedist/backend/internal/domain/shared"
)

const (
	AggregateTypeParty       = "Party"
	AggregateTypeDistributor = "Distributor"
	AggregateTypeSalesman    = "Salesman"

	EventTypePartyCreated       = "PartyCreated"
	EventTypeDistributorCreated = "DistributorCreated"
	EventTypeSalesmanCreated    = "SalesmanCreated"
)

// PartyCreatedEvent is published when a party is created
type PartyCreatedEvent struct {
	shared.BaseDomainEvent
	Name string    `json:"name"`
	Type PartyType `json:"type"`
}

func NewPartyCreatedEvent(p *Party) *PartyCreatedEvent {
	return &PartyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePartyCreated, AggregateTypeParty, p.ID, p.UserID),
		Name:            p.Name,
		Type:            p.Type,
	}
}

// DistributorCreatedEvent is published when a distributor is created
type DistributorCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

func NewDistributorCreatedEvent(d *Distributor) *DistributorCreatedEvent {
	return &DistributorCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDistributorCreated, AggregateTypeDistributor, d.ID, d.UserID),
		Name:            d.Name,
	}
}

// SalesmanCreatedEvent is published when a salesman is created
type SalesmanCreatedEvent struct {
	shared.BaseDomainEvent
	Name         string `json:"name"`
	EmployeeCode string `json:"employee_code"`
}

func NewSalesmanCreatedEvent(s *Salesman) *SalesmanCreatedEvent {
	return &SalesmanCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesmanCreated, AggregateTypeSalesman, s.ID, s.UserID),
		Name:            s.Name,
		EmployeeCode:    s.EmployeeCode,
	}
}
