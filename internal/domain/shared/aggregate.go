package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version      int
	domainEvents []DomainEvent
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent adds a domain event to be published
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns all pending domain events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		Version:      1,
		domainEvents: make([]DomainEvent, 0),
	}
}

// OwnedAggregateRoot is an aggregate that belongs to the user who created it.
// Non-privileged roles only ever see rows whose UserID matches their own.
type OwnedAggregateRoot struct {
	BaseAggregateRoot
	UserID uuid.UUID
}

// NewOwnedAggregateRoot creates an aggregate owned by userID
func NewOwnedAggregateRoot(userID uuid.UUID) OwnedAggregateRoot {
	return OwnedAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		UserID:            userID,
	}
}

// OwnedBy reports whether the aggregate belongs to userID
func (o *OwnedAggregateRoot) OwnedBy(userID uuid.UUID) bool {
	return o.UserID == userID
}

// ReferenceClearer is implemented by aggregates whose optional foreign keys
// may be nulled after the database rejects them. ClearReference returns the
// fields it actually cleared; an empty result means the field is not optional.
type ReferenceClearer interface {
	ClearReference(field string) []string
}
