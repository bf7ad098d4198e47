package geography

import (
	"context"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository persists regions. Each level lives in its own table.
type Repository interface {
	Create(ctx context.Context, region *Region) error
	Update(ctx context.Context, region *Region) error
	Delete(ctx context.Context, level Level, id uuid.UUID) error
	FindByID(ctx context.Context, level Level, id uuid.UUID) (*Region, error)
	// FindAll lists one level; filter "parent_id" narrows to one parent
	FindAll(ctx context.Context, level Level, filter shared.Filter) ([]*Region, int64, error)
	// FindChildren lists every region directly under parentID, ordered by name
	FindChildren(ctx context.Context, parentLevel Level, parentID uuid.UUID) ([]*Region, error)
	CountChildren(ctx context.Context, level Level, id uuid.UUID) (int64, error)
	ExistsByName(ctx context.Context, level Level, parentID *uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
}
