package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return gormDB, mock, mockDB
}

func TestUpdateVersioned(t *testing.T) {
	u, err := identity.NewUser("Ravi", "ravi@example.com", "secret123", identity.RoleStaff)
	require.NoError(t, err)

	t.Run("stale version", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "users" SET .* WHERE version = .* AND "users"."id" = .*`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE id = .*`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := NewGormUserRepository(db).Update(context.Background(), u)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Equal(t, 1, u.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("row gone", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := NewGormUserRepository(db).Update(context.Background(), u)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("success bumps version", func(t *testing.T) {
		db, mock, mockDB := setupMockDB(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "users" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewGormUserRepository(db).Update(context.Background(), u))
		assert.Equal(t, 2, u.Version)
	})
}
