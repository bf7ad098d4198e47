package catalog

import (
	"context"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AttributeRepository persists lookup values
type AttributeRepository interface {
	Create(ctx context.Context, attr *Attribute) error
	Update(ctx context.Context, attr *Attribute) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Attribute, error)
	FindByKind(ctx context.Context, kind AttributeKind, activeOnly bool) ([]*Attribute, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*Attribute, error)
	ExistsByName(ctx context.Context, kind AttributeKind, name string, excludeID *uuid.UUID) (bool, error)
	// CountUsage counts products referencing the attribute
	CountUsage(ctx context.Context, attr *Attribute) (int64, error)
}

// ProductRepository persists products
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)
	// FindAll supports filters active and <kind>_id for every attribute kind
	FindAll(ctx context.Context, filter shared.Filter) ([]*Product, int64, error)
	ExistsByModelNumber(ctx context.Context, model string, excludeID *uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// SearchHit is one full-text match
type SearchHit struct {
	ID    uuid.UUID
	Score float64
}

// ProductIndex is a full-text index over the catalogue
type ProductIndex interface {
	Index(ctx context.Context, product *Product) error
	Remove(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, from, size int) ([]SearchHit, int64, error)
}
