package datascope

import (
	"context"
	"testing"

	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type ownedRow struct {
	ID     int
	UserID string
}

func (ownedRow) TableName() string { return "owned_rows" }

func setupDB(t *testing.T) (*gorm.DB, uuid.UUID, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ownedRow{}))

	alice, bob := uuid.New(), uuid.New()
	rows := []ownedRow{
		{ID: 1, UserID: alice.String()},
		{ID: 2, UserID: alice.String()},
		{ID: 3, UserID: bob.String()},
	}
	require.NoError(t, db.Create(&rows).Error)
	return db, alice, bob
}

func count(t *testing.T, ctx context.Context, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Model(&ownedRow{}).Scopes(For(ctx, "owned_rows")).Count(&n).Error)
	return n
}

func TestApply(t *testing.T) {
	db, alice, bob := setupDB(t)

	t.Run("restricted user sees own rows", func(t *testing.T) {
		ctx := WithScope(context.Background(), ForUser(alice, identity.RoleSalesman))
		assert.Equal(t, int64(2), count(t, ctx, db))

		ctx = WithScope(context.Background(), ForUser(bob, identity.RoleDistributor))
		assert.Equal(t, int64(1), count(t, ctx, db))
	})

	t.Run("admin and manager see everything", func(t *testing.T) {
		for _, role := range []identity.Role{identity.RoleAdmin, identity.RoleManager} {
			ctx := WithScope(context.Background(), ForUser(bob, role))
			assert.Equal(t, int64(3), count(t, ctx, db), role)
		}
	})

	t.Run("missing scope matches nothing", func(t *testing.T) {
		assert.Zero(t, count(t, context.Background(), db))
	})

	t.Run("nil user matches nothing", func(t *testing.T) {
		ctx := WithScope(context.Background(), Scope{})
		assert.Zero(t, count(t, ctx, db))
	})

	t.Run("unrestricted scope for system tasks", func(t *testing.T) {
		ctx := WithScope(context.Background(), Unrestricted)
		assert.Equal(t, int64(3), count(t, ctx, db))
	})
}

func TestScope_Permits(t *testing.T) {
	owner := uuid.New()
	assert.True(t, Scope{UserID: owner}.Permits(owner))
	assert.False(t, Scope{UserID: uuid.New()}.Permits(owner))
	assert.False(t, Scope{}.Permits(uuid.Nil))
	assert.True(t, Unrestricted.Permits(owner))
}
