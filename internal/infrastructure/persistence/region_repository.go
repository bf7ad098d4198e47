package persistence

import (
	"context"

	"github.com/eyedist/backend/internal/domain/geography"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRegionRepository implements geography.Repository over the countries,
// states, cities and zones tables.
type GormRegionRepository struct {
	db *gorm.DB
}

// NewGormRegionRepository creates a new GormRegionRepository
func NewGormRegionRepository(db *gorm.DB) *GormRegionRepository {
	return &GormRegionRepository{db: db}
}

func (r *GormRegionRepository) Create(ctx context.Context, region *geography.Region) error {
	return translateError(r.db.WithContext(ctx).Create(models.RegionRecordFromDomain(region)).Error)
}

func (r *GormRegionRepository) Update(ctx context.Context, region *geography.Region) error {
	rec := models.RegionRecordFromDomain(region)
	rec.SetVersion(region.Version + 1)
	if err := updateVersioned(ctx, r.db, rec, region.ID, region.Version); err != nil {
		return err
	}
	region.IncrementVersion()
	return nil
}

func (r *GormRegionRepository) Delete(ctx context.Context, level geography.Level, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), models.NewRegionRecord(level), id)
}

func (r *GormRegionRepository) FindByID(ctx context.Context, level geography.Level, id uuid.UUID) (*geography.Region, error) {
	rec := models.NewRegionRecord(level)
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(rec).Error; err != nil {
		return nil, translateError(err)
	}
	return rec.ToDomain(), nil
}

// FindAll lists one level. Supported filters: parent_id.
func (r *GormRegionRepository) FindAll(ctx context.Context, level geography.Level, filter shared.Filter) ([]*geography.Region, int64, error) {
	filter = filter.Normalize()
	table := models.RegionTable(level)
	q := r.db.WithContext(ctx).Model(models.NewRegionRecord(level))
	q = search(q, filter.Search, table+".name", table+".code")
	if col := models.ParentColumn(level); col != "" {
		q = whereUUID(q, filter.Filters, "parent_id", table+"."+col)
	}

	list := models.NewRegionList(level)
	total, err := findPage(q, func(db *gorm.DB) *gorm.DB {
		return page(db, table, filter, regionSortFields, "name")
	}, list.Dest())
	if err != nil {
		return nil, 0, err
	}
	return list.ToDomain(), total, nil
}

// FindChildren returns every child of parentID ordered by name
func (r *GormRegionRepository) FindChildren(ctx context.Context, parentLevel geography.Level, parentID uuid.UUID) ([]*geography.Region, error) {
	child := parentLevel.Child()
	if child == "" {
		return []*geography.Region{}, nil
	}
	list := models.NewRegionList(child)
	err := r.db.WithContext(ctx).
		Table(models.RegionTable(child)).
		Where(models.ParentColumn(child)+" = ?", parentID).
		Order("name ASC").
		Find(list.Dest()).Error
	if err != nil {
		return nil, err
	}
	return list.ToDomain(), nil
}

// CountChildren counts rows one level below id
func (r *GormRegionRepository) CountChildren(ctx context.Context, level geography.Level, id uuid.UUID) (int64, error) {
	child := level.Child()
	if child == "" {
		return 0, nil
	}
	var n int64
	err := r.db.WithContext(ctx).
		Table(models.RegionTable(child)).
		Where(models.ParentColumn(child)+" = ?", id).
		Count(&n).Error
	return n, err
}

// ExistsByName checks name uniqueness among siblings, case-insensitively
func (r *GormRegionRepository) ExistsByName(ctx context.Context, level geography.Level, parentID *uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Table(models.RegionTable(level)).Where("LOWER(name) = LOWER(?)", name)
	if col := models.ParentColumn(level); col != "" && parentID != nil {
		q = q.Where(col+" = ?", *parentID)
	}
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	err := q.Limit(1).Count(&n).Error
	return n > 0, err
}
