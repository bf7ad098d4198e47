package persistence

import (
	"context"
	"time"

	"github.com/eyedist/backend/internal/domain/calendar"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/persistence/datascope"
	"github.com/eyedist/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEventRepository implements calendar.EventRepository
type GormEventRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db, now: time.Now}
}

func (r *GormEventRepository) Create(ctx context.Context, e *calendar.Event) error {
	return translateError(r.db.WithContext(ctx).Create(models.EventModelFromDomain(e)).Error)
}

func (r *GormEventRepository) Update(ctx context.Context, e *calendar.Event) error {
	m := models.EventModelFromDomain(e)
	m.Version = e.Version + 1
	if err := updateVersioned(ctx, r.db, m, e.ID, e.Version); err != nil {
		return err
	}
	e.IncrementVersion()
	return nil
}

func (r *GormEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx).Scopes(datascope.For(ctx, "events")), &models.EventModel{}, id)
}

func (r *GormEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*calendar.Event, error) {
	var m models.EventModel
	err := r.db.WithContext(ctx).Scopes(datascope.For(ctx, "events")).
		First(&m, "events.id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindAll supported filters: type, city_id, from_date, to_date. The date
// range matches events overlapping it.
func (r *GormEventRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*calendar.Event, int64, error) {
	filter = filter.Normalize()
	q := r.db.WithContext(ctx).Model(&models.EventModel{}).Scopes(datascope.For(ctx, "events"))
	q = search(q, filter.Search, "events.title", "events.venue")
	q = whereString(q, filter.Filters, "type", "events.type")
	q = whereUUID(q, filter.Filters, "city_id", "events.city_id")
	if from, ok := filter.Filters["from_date"].(time.Time); ok && !from.IsZero() {
		q = q.Where("events.end_date >= ?", from)
	}
	if to, ok := filter.Filters["to_date"].(time.Time); ok && !to.IsZero() {
		q = q.Where("events.start_date < ?", to.AddDate(0, 0, 1))
	}

	var rows []models.EventModel
	total, err := findPage(q, func(db *gorm.DB) *gorm.DB {
		return page(db, "events", filter, eventSortFields, "start_date")
	}, &rows)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*calendar.Event, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, total, nil
}

// CountUpcoming counts visible events that have not ended yet
func (r *GormEventRepository) CountUpcoming(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.EventModel{}).
		Scopes(datascope.For(ctx, "events")).
		Where("end_date >= ?", r.now()).
		Count(&n).Error
	return n, err
}
