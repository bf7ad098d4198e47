package partner

import (
	"context"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Read methods on these repositories apply the caller's visibility scope
// carried in ctx; Exists ignores it so references to other users' rows
// still validate.

// PartyRepository persists parties
type PartyRepository interface {
	Create(ctx context.Context, party *Party) error
	Update(ctx context.Context, party *Party) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Party, error)
	// FindAll supports filters country_id, state_id, city_id, zone_id,
	// distributor_id, salesman_id, type, active
	FindAll(ctx context.Context, filter shared.Filter) ([]*Party, int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// DistributorRepository persists distributors
type DistributorRepository interface {
	Create(ctx context.Context, distributor *Distributor) error
	Update(ctx context.Context, distributor *Distributor) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Distributor, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Distributor, int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// SalesmanRepository persists salesmen
type SalesmanRepository interface {
	Create(ctx context.Context, salesman *Salesman) error
	Update(ctx context.Context, salesman *Salesman) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Salesman, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Salesman, int64, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByEmployeeCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
}
