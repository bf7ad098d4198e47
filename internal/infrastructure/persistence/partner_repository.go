package persistence

import (
	"context"
	"strings"

	"github.com/eyedist/backend/internal/domain/partner"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/persistence/datascope"
	"github.com/eyedist/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reads, deletes and counts on partner tables are narrowed by the caller's
// datascope. Exists ignores visibility: it answers whether a reference is
// valid, not whether the caller may open the row.

// GormPartyRepository implements partner.PartyRepository
type GormPartyRepository struct {
	db *gorm.DB
}

func NewGormPartyRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db}
}

func (r *GormPartyRepository) Create(ctx context.Context, party *partner.Party) error {
	return translateError(r.db.WithContext(ctx).Create(models.PartyModelFromDomain(party)).Error)
}

func (r *GormPartyRepository) Update(ctx context.Context, party *partner.Party) error {
	m := models.PartyModelFromDomain(party)
	m.Version = party.Version + 1
	if err := updateVersioned(ctx, r.db, m, party.ID, party.Version); err != nil {
		return err
	}
	party.IncrementVersion()
	return nil
}

func (r *GormPartyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx).Scopes(datascope.For(ctx, "parties")), &models.PartyModel{}, id)
}

func (r *GormPartyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Party, error) {
	var m models.PartyModel
	err := r.db.WithContext(ctx).Scopes(datascope.For(ctx, "parties")).
		First(&m, "parties.id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindAll supported filters: type, active, distributor_id, salesman_id and
// the location ids.
func (r *GormPartyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Party, int64, error) {
	filter = filter.Normalize()
	q := r.db.WithContext(ctx).Model(&models.PartyModel{}).Scopes(datascope.For(ctx, "parties"))
	q = search(q, filter.Search, "parties.name", "parties.contact_person", "parties.phone", "parties.gst_number")
	q = whereString(q, filter.Filters, "type", "parties.type")
	q = whereBool(q, filter.Filters, "active", "parties.active")
	q = whereUUID(q, filter.Filters, "distributor_id", "parties.distributor_id")
	q = whereUUID(q, filter.Filters, "salesman_id", "parties.salesman_id")
	q = whereLocation(q, filter.Filters, "parties")

	var rows []models.PartyModel
	total, err := findPage(q, func(db *gorm.DB) *gorm.DB {
		return page(db, "parties", filter, partySortFields, "created_at")
	}, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*partner.Party, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, total, nil
}

func (r *GormPartyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.PartyModel{}, "id = ?", id)
}

func (r *GormPartyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.PartyModel{}).Scopes(datascope.For(ctx, "parties")).Count(&n).Error
	return n, err
}

// GormDistributorRepository implements partner.DistributorRepository
type GormDistributorRepository struct {
	db *gorm.DB
}

func NewGormDistributorRepository(db *gorm.DB) *GormDistributorRepository {
	return &GormDistributorRepository{db: db}
}

func (r *GormDistributorRepository) Create(ctx context.Context, d *partner.Distributor) error {
	return translateError(r.db.WithContext(ctx).Create(models.DistributorModelFromDomain(d)).Error)
}

func (r *GormDistributorRepository) Update(ctx context.Context, d *partner.Distributor) error {
	m := models.DistributorModelFromDomain(d)
	m.Version = d.Version + 1
	if err := updateVersioned(ctx, r.db, m, d.ID, d.Version); err != nil {
		return err
	}
	d.IncrementVersion()
	return nil
}

func (r *GormDistributorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx).Scopes(datascope.For(ctx, "distributors")), &models.DistributorModel{}, id)
}

func (r *GormDistributorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Distributor, error) {
	var m models.DistributorModel
	err := r.db.WithContext(ctx).Scopes(datascope.For(ctx, "distributors")).
		First(&m, "distributors.id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindAll supported filters: active and the location ids.
func (r *GormDistributorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Distributor, int64, error) {
	filter = filter.Normalize()
	q := r.db.WithContext(ctx).Model(&models.DistributorModel{}).Scopes(datascope.For(ctx, "distributors"))
	q = search(q, filter.Search, "distributors.name", "distributors.contact_person", "distributors.phone", "distributors.gst_number")
	q = whereBool(q, filter.Filters, "active", "distributors.active")
	q = whereLocation(q, filter.Filters, "distributors")

	var rows []models.DistributorModel
	total, err := findPage(q, func(db *gorm.DB) *gorm.DB {
		return page(db, "distributors", filter, distributorSortFields, "created_at")
	}, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*partner.Distributor, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, total, nil
}

func (r *GormDistributorRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.DistributorModel{}, "id = ?", id)
}

func (r *GormDistributorRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.DistributorModel{}).Scopes(datascope.For(ctx, "distributors")).Count(&n).Error
	return n, err
}

// GormSalesmanRepository implements partner.SalesmanRepository
type GormSalesmanRepository struct {
	db *gorm.DB
}

func NewGormSalesmanRepository(db *gorm.DB) *GormSalesmanRepository {
	return &GormSalesmanRepository{db: db}
}

func (r *GormSalesmanRepository) Create(ctx context.Context, s *partner.Salesman) error {
	return translateError(r.db.WithContext(ctx).Create(models.SalesmanModelFromDomain(s)).Error)
}

func (r *GormSalesmanRepository) Update(ctx context.Context, s *partner.Salesman) error {
	m := models.SalesmanModelFromDomain(s)
	m.Version = s.Version + 1
	if err := updateVersioned(ctx, r.db, m, s.ID, s.Version); err != nil {
		return err
	}
	s.IncrementVersion()
	return nil
}

func (r *GormSalesmanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx).Scopes(datascope.For(ctx, "salesmen")), &models.SalesmanModel{}, id)
}

func (r *GormSalesmanRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Salesman, error) {
	var m models.SalesmanModel
	err := r.db.WithContext(ctx).Scopes(datascope.For(ctx, "salesmen")).
		First(&m, "salesmen.id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindAll supported filters: active, account_id and the location ids.
func (r *GormSalesmanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.Salesman, int64, error) {
	filter = filter.Normalize()
	q := r.db.WithContext(ctx).Model(&models.SalesmanModel{}).Scopes(datascope.For(ctx, "salesmen"))
	q = search(q, filter.Search, "salesmen.name", "salesmen.employee_code", "salesmen.phone")
	q = whereBool(q, filter.Filters, "active", "salesmen.active")
	q = whereUUID(q, filter.Filters, "account_id", "salesmen.account_id")
	q = whereLocation(q, filter.Filters, "salesmen")

	var rows []models.SalesmanModel
	total, err := findPage(q, func(db *gorm.DB) *gorm.DB {
		return page(db, "salesmen", filter, salesmanSortFields, "created_at")
	}, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*partner.Salesman, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, total, nil
}

func (r *GormSalesmanRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.SalesmanModel{}, "id = ?", id)
}

func (r *GormSalesmanRepository) ExistsByEmployeeCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.SalesmanModel{}).Where("employee_code = ?", strings.ToUpper(strings.TrimSpace(code)))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	err := q.Limit(1).Count(&n).Error
	return n > 0, err
}

func (r *GormSalesmanRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.SalesmanModel{}).Scopes(datascope.For(ctx, "salesmen")).Count(&n).Error
	return n, err
}
