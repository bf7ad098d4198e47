package partner

import (
	"context"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/partner"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PartyService handles party (customer account) operations
type PartyService struct {
	parties      partner.PartyRepository
	distributors partner.DistributorRepository
	salesmen     partner.SalesmanRepository
	locations    LocationResolver
	publisher    shared.EventPublisher
}

// NewPartyService creates a new PartyService
func NewPartyService(
	parties partner.PartyRepository,
	distributors partner.DistributorRepository,
	salesmen partner.SalesmanRepository,
	locations LocationResolver,
) *PartyService {
	return &PartyService{
		parties:      parties,
		distributors: distributors,
		salesmen:     salesmen,
		locations:    locations,
	}
}

// SetEventPublisher sets the publisher for domain events
func (s *PartyService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Create creates a party. Location, distributor and salesman ids that do
// not exist are stored as null and listed in DroppedReferences.
func (s *PartyService) Create(ctx context.Context, actor application.Actor, req CreatePartyRequest) (*PartyResponse, error) {
	owner, err := actor.OwnerFor(req.OwnerID)
	if err != nil {
		return nil, err
	}
	party, err := partner.NewParty(owner, req.Name, partner.PartyType(req.Type))
	if err != nil {
		return nil, err
	}
	if err := party.SetContact(req.ContactInput.toDomain()); err != nil {
		return nil, err
	}
	if err := party.SetGSTNumber(req.GSTNumber); err != nil {
		return nil, err
	}
	if req.CreditLimit != nil {
		if err := party.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}

	loc, dropped, err := resolveLocation(ctx, s.locations, req.Location())
	if err != nil {
		return nil, err
	}
	party.SetLocation(loc)

	distributorID, d, err := verifyReference(ctx, req.DistributorID, "distributor_id", s.distributors.Exists)
	if err != nil {
		return nil, err
	}
	party.AssignDistributor(distributorID)
	dropped = append(dropped, d...)

	salesmanID, d, err := verifyReference(ctx, req.SalesmanID, "salesman_id", s.salesmen.Exists)
	if err != nil {
		return nil, err
	}
	party.AssignSalesman(salesmanID)
	dropped = append(dropped, d...)

	more, err := application.WriteWithRecovery(ctx, party, func(ctx context.Context) error {
		return s.parties.Create(ctx, party)
	})
	if err != nil {
		return nil, err
	}
	dropped = application.MergeDropped(dropped, more...)
	if len(dropped) > 0 {
		logger.L(ctx).Info("Party created without invalid references",
			zap.String("party_id", party.ID.String()),
			zap.Strings("dropped", dropped))
	}

	application.PublishEvents(ctx, s.publisher, party)

	resp := ToPartyResponse(party)
	resp.DroppedReferences = dropped
	return &resp, nil
}

// GetByID retrieves a party visible to the actor
func (s *PartyService) GetByID(ctx context.Context, actor application.Actor, id uuid.UUID) (*PartyResponse, error) {
	party, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := ToPartyResponse(party)
	return &resp, nil
}

// List retrieves the parties visible to the actor
func (s *PartyService) List(ctx context.Context, actor application.Actor, filter PartyListFilter) ([]PartyResponse, int64, error) {
	f := filter.Filter()
	filter.ApplyTo(f.Filters)
	if filter.Type != "" {
		f.Filters["type"] = filter.Type
	}
	if filter.Active != nil {
		f.Filters["active"] = *filter.Active
	}
	application.SetUUIDFilter(f.Filters, "distributor_id", filter.DistributorID)
	application.SetUUIDFilter(f.Filters, "salesman_id", filter.SalesmanID)

	parties, total, err := s.parties.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]PartyResponse, len(parties))
	for i, p := range parties {
		out[i] = ToPartyResponse(p)
	}
	return out, total, nil
}

// Update applies a partial update. A changed location level clears the
// levels below it unless the request sets them too.
func (s *PartyService) Update(ctx context.Context, actor application.Actor, id uuid.UUID, req UpdatePartyRequest) (*PartyResponse, error) {
	party, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := party.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Type != nil {
		if err := party.SetType(partner.PartyType(*req.Type)); err != nil {
			return nil, err
		}
	}
	if req.GSTNumber != nil {
		if err := party.SetGSTNumber(*req.GSTNumber); err != nil {
			return nil, err
		}
	}
	if req.ContactUpdate.changed() {
		if err := party.SetContact(req.ContactUpdate.apply(party.Contact)); err != nil {
			return nil, err
		}
	}
	if req.CreditLimit != nil {
		if err := party.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		party.SetActive(*req.Active)
	}

	var dropped []string
	if req.LocationInput.Changed() {
		loc, d, err := resolveLocation(ctx, s.locations, party.Location.Apply(req.LocationInput.Change()))
		if err != nil {
			return nil, err
		}
		party.SetLocation(loc)
		dropped = append(dropped, d...)
	}
	if req.DistributorID.Set {
		distributorID, d, err := verifyReference(ctx, req.DistributorID.ID, "distributor_id", s.distributors.Exists)
		if err != nil {
			return nil, err
		}
		party.AssignDistributor(distributorID)
		dropped = append(dropped, d...)
	}
	if req.SalesmanID.Set {
		salesmanID, d, err := verifyReference(ctx, req.SalesmanID.ID, "salesman_id", s.salesmen.Exists)
		if err != nil {
			return nil, err
		}
		party.AssignSalesman(salesmanID)
		dropped = append(dropped, d...)
	}

	more, err := application.WriteWithRecovery(ctx, party, func(ctx context.Context) error {
		return s.parties.Update(ctx, party)
	})
	if err != nil {
		return nil, err
	}

	resp := ToPartyResponse(party)
	resp.DroppedReferences = application.MergeDropped(dropped, more...)
	return &resp, nil
}

// Delete removes a party the actor can see
func (s *PartyService) Delete(ctx context.Context, actor application.Actor, id uuid.UUID) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	return s.parties.Delete(ctx, id)
}

func (s *PartyService) load(ctx context.Context, actor application.Actor, id uuid.UUID) (*partner.Party, error) {
	party, err := s.parties.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := visible(actor, party.UserID); err != nil {
		return nil, err
	}
	return party, nil
}
