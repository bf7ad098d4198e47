package partner

import (
	"context"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/partner"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DistributorService handles distributor operations
type DistributorService struct {
	distributors partner.DistributorRepository
	locations    LocationResolver
	publisher    shared.EventPublisher
}

func NewDistributorService(distributors partner.DistributorRepository, locations LocationResolver) *DistributorService {
	return &DistributorService{distributors: distributors, locations: locations}
}

func (s *DistributorService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Create creates a distributor, dropping location ids that do not resolve
func (s *DistributorService) Create(ctx context.Context, actor application.Actor, req CreateDistributorRequest) (*DistributorResponse, error) {
	owner, err := actor.OwnerFor(req.OwnerID)
	if err != nil {
		return nil, err
	}
	d, err := partner.NewDistributor(owner, req.Name)
	if err != nil {
		return nil, err
	}
	if err := d.SetContact(req.ContactInput.toDomain()); err != nil {
		return nil, err
	}
	if err := d.SetGSTNumber(req.GSTNumber); err != nil {
		return nil, err
	}
	if req.CommissionRate != nil {
		if err := d.SetCommissionRate(*req.CommissionRate); err != nil {
			return nil, err
		}
	}

	loc, dropped, err := resolveLocation(ctx, s.locations, req.Location())
	if err != nil {
		return nil, err
	}
	d.SetLocation(loc)

	more, err := application.WriteWithRecovery(ctx, d, func(ctx context.Context) error {
		return s.distributors.Create(ctx, d)
	})
	if err != nil {
		return nil, err
	}

	application.PublishEvents(ctx, s.publisher, d)

	resp := ToDistributorResponse(d)
	resp.DroppedReferences = application.MergeDropped(dropped, more...)
	return &resp, nil
}

func (s *DistributorService) GetByID(ctx context.Context, actor application.Actor, id uuid.UUID) (*DistributorResponse, error) {
	d, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := ToDistributorResponse(d)
	return &resp, nil
}

func (s *DistributorService) List(ctx context.Context, actor application.Actor, filter DistributorListFilter) ([]DistributorResponse, int64, error) {
	f := filter.Filter()
	filter.ApplyTo(f.Filters)
	if filter.Active != nil {
		f.Filters["active"] = *filter.Active
	}

	rows, total, err := s.distributors.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]DistributorResponse, len(rows))
	for i, d := range rows {
		out[i] = ToDistributorResponse(d)
	}
	return out, total, nil
}

func (s *DistributorService) Update(ctx context.Context, actor application.Actor, id uuid.UUID, req UpdateDistributorRequest) (*DistributorResponse, error) {
	d, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := d.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.GSTNumber != nil {
		if err := d.SetGSTNumber(*req.GSTNumber); err != nil {
			return nil, err
		}
	}
	if req.ContactUpdate.changed() {
		if err := d.SetContact(req.ContactUpdate.apply(d.Contact)); err != nil {
			return nil, err
		}
	}
	if req.CommissionRate != nil {
		if err := d.SetCommissionRate(*req.CommissionRate); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		d.SetActive(*req.Active)
	}

	var dropped []string
	if req.LocationInput.Changed() {
		loc, cleared, err := resolveLocation(ctx, s.locations, d.Location.Apply(req.LocationInput.Change()))
		if err != nil {
			return nil, err
		}
		d.SetLocation(loc)
		dropped = cleared
	}

	more, err := application.WriteWithRecovery(ctx, d, func(ctx context.Context) error {
		return s.distributors.Update(ctx, d)
	})
	if err != nil {
		return nil, err
	}

	resp := ToDistributorResponse(d)
	resp.DroppedReferences = application.MergeDropped(dropped, more...)
	return &resp, nil
}

func (s *DistributorService) Delete(ctx context.Context, actor application.Actor, id uuid.UUID) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	return s.distributors.Delete(ctx, id)
}

func (s *DistributorService) load(ctx context.Context, actor application.Actor, id uuid.UUID) (*partner.Distributor, error) {
	d, err := s.distributors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := visible(actor, d.UserID); err != nil {
		return nil, err
	}
	return d, nil
}
