package persistence

import (
	"context"
	"strings"

	"github.com/eyedist/backend/internal/domain/catalog"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttributeRepository implements catalog.AttributeRepository
type GormAttributeRepository struct {
	db *gorm.DB
}

func NewGormAttributeRepository(db *gorm.DB) *GormAttributeRepository {
	return &GormAttributeRepository{db: db}
}

func (r *GormAttributeRepository) Create(ctx context.Context, attr *catalog.Attribute) error {
	return translateError(r.db.WithContext(ctx).Create(models.AttributeModelFromDomain(attr)).Error)
}

func (r *GormAttributeRepository) Update(ctx context.Context, attr *catalog.Attribute) error {
	m := models.AttributeModelFromDomain(attr)
	m.Version = attr.Version + 1
	if err := updateVersioned(ctx, r.db, m, attr.ID, attr.Version); err != nil {
		return err
	}
	attr.IncrementVersion()
	return nil
}

func (r *GormAttributeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.AttributeModel{}, id)
}

func (r *GormAttributeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Attribute, error) {
	var m models.AttributeModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

func (r *GormAttributeRepository) FindByKind(ctx context.Context, kind catalog.AttributeKind, activeOnly bool) ([]*catalog.Attribute, error) {
	return r.find(r.db.WithContext(ctx).Where("kind = ?", kind), activeOnly)
}

func (r *GormAttributeRepository) FindAll(ctx context.Context, activeOnly bool) ([]*catalog.Attribute, error) {
	return r.find(r.db.WithContext(ctx), activeOnly)
}

func (r *GormAttributeRepository) find(q *gorm.DB, activeOnly bool) ([]*catalog.Attribute, error) {
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var rows []models.AttributeModel
	if err := q.Order("kind ASC, name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*catalog.Attribute, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func (r *GormAttributeRepository) ExistsByName(ctx context.Context, kind catalog.AttributeKind, name string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.AttributeModel{}).
		Where("kind = ? AND LOWER(name) = ?", kind, strings.ToLower(strings.TrimSpace(name)))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	err := q.Limit(1).Count(&n).Error
	return n > 0, err
}

// CountUsage counts products pointing at attr through its kind's column
func (r *GormAttributeRepository) CountUsage(ctx context.Context, attr *catalog.Attribute) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where(attr.Kind.Field()+" = ?", attr.ID).
		Count(&n).Error
	return n, err
}

// GormProductRepository implements catalog.ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	return translateError(r.db.WithContext(ctx).Create(models.ProductModelFromDomain(p)).Error)
}

func (r *GormProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	m := models.ProductModelFromDomain(p)
	m.Version = p.Version + 1
	if err := updateVersioned(ctx, r.db, m, p.ID, p.Version); err != nil {
		return err
	}
	p.IncrementVersion()
	return nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.ProductModel{}, id)
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindByIDs returns the products found, in no particular order
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return []*catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*catalog.Product, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// FindAll supported filters: active, ids ([]uuid.UUID), and one
// <kind>_id per attribute kind.
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Product, int64, error) {
	filter = filter.Normalize()
	q := r.db.WithContext(ctx).Model(&models.ProductModel{})
	q = search(q, filter.Search, "products.name", "products.model_number", "products.description")
	q = whereBool(q, filter.Filters, "active", "products.active")
	if ids, ok := filter.Filters["ids"].([]uuid.UUID); ok {
		q = q.Where("products.id IN ?", ids)
	}
	for _, kind := range catalog.AttributeKinds {
		q = whereUUID(q, filter.Filters, kind.Field(), "products."+kind.Field())
	}

	var rows []models.ProductModel
	total, err := findPage(q, func(db *gorm.DB) *gorm.DB {
		return page(db, "products", filter, productSortFields, "created_at")
	}, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*catalog.Product, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, total, nil
}

func (r *GormProductRepository) ExistsByModelNumber(ctx context.Context, model string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("model_number = ?", strings.ToUpper(strings.TrimSpace(model)))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	err := q.Limit(1).Count(&n).Error
	return n > 0, err
}

func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("active = ?", true).Count(&n).Error
	return n, err
}
