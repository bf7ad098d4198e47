package geography

import (
	"context"
	"errors"

	"github.com/eyedist/backend/internal/application"
	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/cache"
	"github.com/eyedist/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegionService manages the country → state → city → zone tree. Child
// lists are served cache-aside; every write drops the whole cache.
type RegionService struct {
	regions geography.Repository
	cache   cache.RegionCache
}

func NewRegionService(regions geography.Repository, regionCache cache.RegionCache) *RegionService {
	if regionCache == nil {
		regionCache = cache.NewInMemoryRegionCache(0)
	}
	return &RegionService{regions: regions, cache: regionCache}
}

// Create adds a region under its parent. Names are unique within a parent.
func (s *RegionService) Create(ctx context.Context, level geography.Level, req CreateRegionRequest) (*RegionResponse, error) {
	region, err := geography.NewRegion(level, req.ParentID, req.Name, req.Code)
	if err != nil {
		return nil, err
	}
	if level != geography.LevelCountry {
		if _, err := s.regions.FindByID(ctx, level.Parent(), *req.ParentID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent "+level.Parent().String()+" not found")
			}
			return nil, err
		}
	}
	if err := s.ensureUniqueName(ctx, region, nil); err != nil {
		return nil, err
	}
	if err := s.regions.Create(ctx, region); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	resp := ToRegionResponse(region)
	return &resp, nil
}

func (s *RegionService) GetByID(ctx context.Context, level geography.Level, id uuid.UUID) (*RegionResponse, error) {
	region, err := s.regions.FindByID(ctx, level, id)
	if err != nil {
		return nil, err
	}
	resp := ToRegionResponse(region)
	return &resp, nil
}

// List pages through one level, optionally under a single parent
func (s *RegionService) List(ctx context.Context, level geography.Level, filter RegionListFilter) ([]RegionResponse, int64, error) {
	f := filter.Filter()
	if f.OrderBy == "" {
		f.OrderBy = "name"
		f.OrderDir = "asc"
	}
	application.SetUUIDFilter(f.Filters, "parent_id", filter.ParentID)

	regions, total, err := s.regions.FindAll(ctx, level, f)
	if err != nil {
		return nil, 0, err
	}
	return toRegionResponses(regions), total, nil
}

// Children lists the regions directly under a parent: the states of a
// country, the cities of a state or the zones of a city.
func (s *RegionService) Children(ctx context.Context, parentLevel geography.Level, parentID uuid.UUID) ([]RegionResponse, error) {
	childLevel := parentLevel.Child()
	if childLevel == "" {
		return nil, shared.NewDomainError("INVALID_LEVEL", "Zones have no children")
	}
	cached, gen, ok := s.cache.Children(ctx, childLevel, parentID)
	if ok {
		return toRegionResponses(cached), nil
	}

	if _, err := s.regions.FindByID(ctx, parentLevel, parentID); err != nil {
		return nil, err
	}
	children, err := s.regions.FindChildren(ctx, parentLevel, parentID)
	if err != nil {
		return nil, err
	}
	s.cache.SetChildren(ctx, gen, childLevel, parentID, children)
	return toRegionResponses(children), nil
}

func (s *RegionService) Update(ctx context.Context, level geography.Level, id uuid.UUID, req UpdateRegionRequest) (*RegionResponse, error) {
	region, err := s.regions.FindByID(ctx, level, id)
	if err != nil {
		return nil, err
	}
	name, code := region.Name, region.Code
	if req.Name != nil {
		name = *req.Name
	}
	if req.Code != nil {
		code = *req.Code
	}
	if err := region.Rename(name, code); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, region, &region.ID); err != nil {
		return nil, err
	}
	if err := s.regions.Update(ctx, region); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	resp := ToRegionResponse(region)
	return &resp, nil
}

// Delete removes a region that has no children. Regions still referenced
// by partners fail with ErrInUse from the database.
func (s *RegionService) Delete(ctx context.Context, level geography.Level, id uuid.UUID) error {
	if _, err := s.regions.FindByID(ctx, level, id); err != nil {
		return err
	}
	if child := level.Child(); child != "" {
		n, err := s.regions.CountChildren(ctx, level, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return shared.NewDomainError("INVALID_STATE", "Cannot delete a "+level.String()+" that still has "+child.String()+" entries")
		}
	}
	if err := s.regions.Delete(ctx, level, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *RegionService) ensureUniqueName(ctx context.Context, region *geography.Region, excludeID *uuid.UUID) error {
	taken, err := s.regions.ExistsByName(ctx, region.Level, region.ParentID, region.Name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError("ALREADY_EXISTS", "A "+region.Level.String()+" with this name already exists")
	}
	return nil
}

func (s *RegionService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.L(ctx).Warn("Failed to invalidate geography cache", zap.Error(err))
	}
}
