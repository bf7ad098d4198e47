package partner

import (
	"context"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/partner"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SalesmanService handles salesman operations
type SalesmanService struct {
	salesmen  partner.SalesmanRepository
	users     UserFinder
	locations LocationResolver
	publisher shared.EventPublisher
}

func NewSalesmanService(salesmen partner.SalesmanRepository, users UserFinder, locations LocationResolver) *SalesmanService {
	return &SalesmanService{salesmen: salesmen, users: users, locations: locations}
}

func (s *SalesmanService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Create creates a salesman. The employee code must be unique; an unknown
// account id or location id is dropped.
func (s *SalesmanService) Create(ctx context.Context, actor application.Actor, req CreateSalesmanRequest) (*SalesmanResponse, error) {
	owner, err := actor.OwnerFor(req.OwnerID)
	if err != nil {
		return nil, err
	}
	sm, err := partner.NewSalesman(owner, req.Name, req.EmployeeCode)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueCode(ctx, sm.EmployeeCode, nil); err != nil {
		return nil, err
	}
	if err := sm.SetContact(req.ContactInput.toDomain()); err != nil {
		return nil, err
	}

	loc, dropped, err := resolveLocation(ctx, s.locations, req.Location())
	if err != nil {
		return nil, err
	}
	sm.SetLocation(loc)

	accountID, d, err := verifyReference(ctx, req.AccountID, "account_id", userExists(s.users))
	if err != nil {
		return nil, err
	}
	sm.LinkAccount(accountID)
	dropped = append(dropped, d...)

	more, err := application.WriteWithRecovery(ctx, sm, func(ctx context.Context) error {
		return s.salesmen.Create(ctx, sm)
	})
	if err != nil {
		return nil, err
	}

	application.PublishEvents(ctx, s.publisher, sm)

	resp := ToSalesmanResponse(sm)
	resp.DroppedReferences = application.MergeDropped(dropped, more...)
	return &resp, nil
}

func (s *SalesmanService) GetByID(ctx context.Context, actor application.Actor, id uuid.UUID) (*SalesmanResponse, error) {
	sm, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := ToSalesmanResponse(sm)
	return &resp, nil
}

func (s *SalesmanService) List(ctx context.Context, actor application.Actor, filter SalesmanListFilter) ([]SalesmanResponse, int64, error) {
	f := filter.Filter()
	filter.ApplyTo(f.Filters)
	if filter.Active != nil {
		f.Filters["active"] = *filter.Active
	}

	rows, total, err := s.salesmen.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]SalesmanResponse, len(rows))
	for i, sm := range rows {
		out[i] = ToSalesmanResponse(sm)
	}
	return out, total, nil
}

func (s *SalesmanService) Update(ctx context.Context, actor application.Actor, id uuid.UUID, req UpdateSalesmanRequest) (*SalesmanResponse, error) {
	sm, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := sm.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.EmployeeCode != nil {
		if err := sm.SetEmployeeCode(*req.EmployeeCode); err != nil {
			return nil, err
		}
		if err := s.ensureUniqueCode(ctx, sm.EmployeeCode, &sm.ID); err != nil {
			return nil, err
		}
	}
	if req.ContactUpdate.changed() {
		if err := sm.SetContact(req.ContactUpdate.apply(sm.Contact)); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		sm.SetActive(*req.Active)
	}

	var dropped []string
	if req.LocationInput.Changed() {
		loc, d, err := resolveLocation(ctx, s.locations, sm.Location.Apply(req.LocationInput.Change()))
		if err != nil {
			return nil, err
		}
		sm.SetLocation(loc)
		dropped = append(dropped, d...)
	}
	if req.AccountID.Set {
		accountID, d, err := verifyReference(ctx, req.AccountID.ID, "account_id", userExists(s.users))
		if err != nil {
			return nil, err
		}
		sm.LinkAccount(accountID)
		dropped = append(dropped, d...)
	}

	more, err := application.WriteWithRecovery(ctx, sm, func(ctx context.Context) error {
		return s.salesmen.Update(ctx, sm)
	})
	if err != nil {
		return nil, err
	}

	resp := ToSalesmanResponse(sm)
	resp.DroppedReferences = application.MergeDropped(dropped, more...)
	return &resp, nil
}

func (s *SalesmanService) Delete(ctx context.Context, actor application.Actor, id uuid.UUID) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	return s.salesmen.Delete(ctx, id)
}

func (s *SalesmanService) ensureUniqueCode(ctx context.Context, code string, excludeID *uuid.UUID) error {
	taken, err := s.salesmen.ExistsByEmployeeCode(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError("ALREADY_EXISTS", "Salesman with this employee code already exists")
	}
	return nil
}

func (s *SalesmanService) load(ctx context.Context, actor application.Actor, id uuid.UUID) (*partner.Salesman, error) {
	sm, err := s.salesmen.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := visible(actor, sm.UserID); err != nil {
		return nil, err
	}
	return sm, nil
}
