package identity

import (
	"github.com/eyedist/backend/internal/domain/shared"
)

const AggregateTypeUser = "User"

const (
	EventTypeUserCreated     = "UserCreated"
	EventTypeUserRoleChanged = "UserRoleChanged"
	EventTypeUserDeactivated = "UserDeactivated"
)

// UserCreatedEvent is published when a user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func NewUserCreatedEvent(u *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, u.ID, u.ID),
		Email:           u.Email,
		Role:            u.Role,
	}
}

// UserRoleChangedEvent is published when a user's role changes
type UserRoleChangedEvent struct {
	shared.BaseDomainEvent
	OldRole Role `json:"old_role"`
	NewRole Role `json:"new_role"`
}

func NewUserRoleChangedEvent(u *User, old Role) *UserRoleChangedEvent {
	return &UserRoleChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRoleChanged, AggregateTypeUser, u.ID, u.ID),
		OldRole:         old,
		NewRole:         u.Role,
	}
}

// UserDeactivatedEvent is published when a user is deactivated
type UserDeactivatedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

func NewUserDeactivatedEvent(u *User) *UserDeactivatedEvent {
	return &UserDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserDeactivated, AggregateTypeUser, u.ID, u.ID),
		Email:           u.Email,
	}
}
