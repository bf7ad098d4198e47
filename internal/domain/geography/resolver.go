package geography

import (
	"context"
	"errors"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// RegionFinder loads a single region
type RegionFinder interface {
	FindByID(ctx context.Context, level Level, id uuid.UUID) (*Region, error)
}

// Resolver turns a client-supplied Location into one that only references
// existing regions forming a single chain.
type Resolver struct {
	regions RegionFinder
}

func NewResolver(regions RegionFinder) *Resolver {
	return &Resolver{regions: regions}
}

// Resolve walks country to zone. An id that does not exist, or that does
// not sit under the selection above it, is dropped together with every
// level below it. Parents the client left empty are filled from the
// deepest surviving selection. The returned slice names every dropped
// field, e.g. "state_id".
func (r *Resolver) Resolve(ctx context.Context, loc Location) (Location, []string, error) {
	var dropped []string
	loaded := make(map[Level]*Region, len(Levels))

	for _, level := range Levels {
		id := loc.Get(level)
		if id == nil {
			continue
		}
		region, err := r.find(ctx, level, *id)
		if err != nil {
			return loc, nil, err
		}
		if region == nil {
			var cleared []string
			loc, cleared = loc.ClearField(level.Field())
			dropped = append(dropped, cleared...)
			break
		}
		loaded[level] = region
	}

	// Back-fill parents bottom-up.
	for i := len(Levels) - 1; i > 0; i-- {
		level := Levels[i]
		child, ok := loaded[level]
		if !ok || child.ParentID == nil {
			continue
		}
		parentLevel := level.Parent()
		if loc.Get(parentLevel) != nil {
			continue
		}
		parent, err := r.find(ctx, parentLevel, *child.ParentID)
		if err != nil {
			return loc, nil, err
		}
		if parent == nil {
			continue
		}
		loaded[parentLevel] = parent
		loc.set(parentLevel, &parent.ID)
	}

	// Upstream wins: a mismatched child is dropped with its subtree.
	for _, level := range Levels[1:] {
		child, ok := loaded[level]
		if !ok || loc.Get(level) == nil {
			continue
		}
		parentID := loc.Get(level.Parent())
		if parentID == nil || shared.UUIDPtrEqual(child.ParentID, parentID) {
			continue
		}
		var cleared []string
		loc, cleared = loc.ClearField(level.Field())
		dropped = append(dropped, cleared...)
	}

	return loc, lo.Uniq(dropped), nil
}

func (r *Resolver) find(ctx context.Context, level Level, id uuid.UUID) (*Region, error) {
	region, err := r.regions.FindByID(ctx, level, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return region, nil
}
