package partner

import (
	"context"
	"errors"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LocationResolver cleans a client-supplied location
type LocationResolver interface {
	Resolve(ctx context.Context, loc geography.Location) (geography.Location, []string, error)
}

// UserFinder loads login accounts a salesman can be linked to
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error)
}

// verifyReference drops id when exists reports it missing
func verifyReference(ctx context.Context, id *uuid.UUID, field string, exists func(context.Context, uuid.UUID) (bool, error)) (*uuid.UUID, []string, error) {
	if id == nil || *id == uuid.Nil {
		return nil, nil, nil
	}
	ok, err := exists(ctx, *id)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, []string{field}, nil
	}
	return id, nil, nil
}

func resolveLocation(ctx context.Context, r LocationResolver, loc geography.Location) (geography.Location, []string, error) {
	if loc.IsEmpty() {
		return loc, nil, nil
	}
	return r.Resolve(ctx, loc)
}

// visible hides rows the actor may not see behind ErrNotFound
func visible(actor application.Actor, ownerID uuid.UUID) error {
	if !actor.CanAccess(ownerID) {
		return shared.ErrNotFound
	}
	return nil
}

func userExists(users UserFinder) func(context.Context, uuid.UUID) (bool, error) {
	return func(ctx context.Context, id uuid.UUID) (bool, error) {
		_, err := users.FindByID(ctx, id)
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return err == nil, err
	}
}
