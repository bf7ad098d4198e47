package persistence

import (
	"context"
	"strings"

	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	return translateError(r.db.WithContext(ctx).Create(models.UserModelFromDomain(user)).Error)
}

// Update saves user with an optimistic version check
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	m := models.UserModelFromDomain(user)
	m.Version = user.Version + 1
	if err := updateVersioned(ctx, r.db, m, user.ID, user.Version); err != nil {
		return err
	}
	user.IncrementVersion()
	return nil
}

// Delete deletes a user by ID
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.UserModel{}, id)
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var m models.UserModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// FindByEmail finds a user by email, case-insensitively
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var m models.UserModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return m.ToDomain(), nil
}

// ExistsByEmail checks whether the email is taken
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.db, &models.UserModel{}, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

// FindAll lists users. Supported filters: role, active.
func (r *GormUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*identity.User, int64, error) {
	filter = filter.Normalize()
	q := r.db.WithContext(ctx).Model(&models.UserModel{})
	q = search(q, filter.Search, "users.name", "users.email", "users.phone")
	q = whereString(q, filter.Filters, "role", "users.role")
	q = whereBool(q, filter.Filters, "active", "users.active")

	var rows []models.UserModel
	total, err := findPage(q, func(db *gorm.DB) *gorm.DB {
		return page(db, "users", filter, userSortFields, "created_at")
	}, &rows)
	if err != nil {
		return nil, 0, err
	}

	users := make([]*identity.User, len(rows))
	for i := range rows {
		users[i] = rows[i].ToDomain()
	}
	return users, total, nil
}

// CountByRole counts active users with role
func (r *GormUserRepository) CountByRole(ctx context.Context, role identity.Role) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("role = ? AND active = ?", role, true).
		Count(&n).Error
	return n, err
}
