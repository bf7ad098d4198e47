// Package application holds helpers shared by the per-module application
// services: the calling user, event publishing, reference recovery and
// request types common to several modules.
package application

import (
	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Actor is the authenticated user a service call runs on behalf of
type Actor struct {
	UserID uuid.UUID
	Role   identity.Role
}

func NewActor(userID uuid.UUID, role identity.Role) Actor {
	return Actor{UserID: userID, Role: role}
}

// SeesAll reports whether the actor bypasses the per-owner visibility filter
func (a Actor) SeesAll() bool {
	return a.Role.SeesAll()
}

// CanAccess reports whether the actor may read or change a row owned by ownerID
func (a Actor) CanAccess(ownerID uuid.UUID) bool {
	return a.SeesAll() || (a.UserID != uuid.Nil && a.UserID == ownerID)
}

// OwnerFor picks the owner of a new row. Admins and managers may create
// rows on behalf of another user; everyone else always owns what they create.
func (a Actor) OwnerFor(requested *uuid.UUID) (uuid.UUID, error) {
	if requested == nil || *requested == uuid.Nil || *requested == a.UserID {
		return a.UserID, nil
	}
	if !a.SeesAll() {
		return uuid.Nil, shared.NewDomainError("FORBIDDEN", "Only admins and managers can create records for other users")
	}
	return *requested, nil
}
