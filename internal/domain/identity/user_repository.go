package identity

import (
	"context"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// Update saves changes, failing with ErrConcurrencyConflict on a stale version
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// FindAll supports filters "role" and "active"
	FindAll(ctx context.Context, filter shared.Filter) ([]*User, int64, error)
	CountByRole(ctx context.Context, role Role) (int64, error)
}
