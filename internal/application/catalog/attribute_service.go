package catalog

import (
	"context"

	"github.com/eyedist/backend/internal/domain/catalog"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// AttributeService manages the product lookup tables
type AttributeService struct {
	attributes catalog.AttributeRepository
}

func NewAttributeService(attributes catalog.AttributeRepository) *AttributeService {
	return &AttributeService{attributes: attributes}
}

func (s *AttributeService) Create(ctx context.Context, kind catalog.AttributeKind, req CreateAttributeRequest) (*AttributeResponse, error) {
	attr, err := catalog.NewAttribute(kind, req.Name, req.Code)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, attr, nil); err != nil {
		return nil, err
	}
	if err := s.attributes.Create(ctx, attr); err != nil {
		return nil, err
	}
	resp := ToAttributeResponse(attr)
	return &resp, nil
}

func (s *AttributeService) GetByID(ctx context.Context, kind catalog.AttributeKind, id uuid.UUID) (*AttributeResponse, error) {
	attr, err := s.load(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	resp := ToAttributeResponse(attr)
	return &resp, nil
}

// List returns every value of one kind, ordered by name
func (s *AttributeService) List(ctx context.Context, kind catalog.AttributeKind, activeOnly bool) ([]AttributeResponse, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_ATTRIBUTE_KIND", "Unknown attribute kind")
	}
	attrs, err := s.attributes.FindByKind(ctx, kind, activeOnly)
	if err != nil {
		return nil, err
	}
	return lo.Map(attrs, func(a *catalog.Attribute, _ int) AttributeResponse { return ToAttributeResponse(a) }), nil
}

// ListAll groups every value by kind for the product form dropdowns. Every
// kind is present, empty ones as empty lists.
func (s *AttributeService) ListAll(ctx context.Context, activeOnly bool) (map[string][]AttributeResponse, error) {
	attrs, err := s.attributes.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]AttributeResponse, len(catalog.AttributeKinds))
	for _, kind := range catalog.AttributeKinds {
		out[string(kind)] = []AttributeResponse{}
	}
	for _, a := range attrs {
		out[string(a.Kind)] = append(out[string(a.Kind)], ToAttributeResponse(a))
	}
	return out, nil
}

func (s *AttributeService) Update(ctx context.Context, kind catalog.AttributeKind, id uuid.UUID, req UpdateAttributeRequest) (*AttributeResponse, error) {
	attr, err := s.load(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	name, code := attr.Name, attr.Code
	if req.Name != nil {
		name = *req.Name
	}
	if req.Code != nil {
		code = *req.Code
	}
	if err := attr.Update(name, code); err != nil {
		return nil, err
	}
	if req.Active != nil {
		attr.SetActive(*req.Active)
	}
	if err := s.ensureUniqueName(ctx, attr, &attr.ID); err != nil {
		return nil, err
	}
	if err := s.attributes.Update(ctx, attr); err != nil {
		return nil, err
	}
	resp := ToAttributeResponse(attr)
	return &resp, nil
}

// Delete removes a value no product uses; deactivate it otherwise
func (s *AttributeService) Delete(ctx context.Context, kind catalog.AttributeKind, id uuid.UUID) error {
	attr, err := s.load(ctx, kind, id)
	if err != nil {
		return err
	}
	n, err := s.attributes.CountUsage(ctx, attr)
	if err != nil {
		return err
	}
	if n > 0 {
		return shared.NewDomainError("IN_USE", "Attribute is used by products; deactivate it instead")
	}
	return s.attributes.Delete(ctx, id)
}

// load finds the attribute and checks it belongs to kind
func (s *AttributeService) load(ctx context.Context, kind catalog.AttributeKind, id uuid.UUID) (*catalog.Attribute, error) {
	attr, err := s.attributes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if attr.Kind != kind {
		return nil, shared.ErrNotFound
	}
	return attr, nil
}

func (s *AttributeService) ensureUniqueName(ctx context.Context, attr *catalog.Attribute, excludeID *uuid.UUID) error {
	taken, err := s.attributes.ExistsByName(ctx, attr.Kind, attr.Name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError("ALREADY_EXISTS", "A "+string(attr.Kind)+" with this name already exists")
	}
	return nil
}
