// Package datascope narrows GORM queries to the rows a caller may see.
//
// Admins and managers see every row. Everyone else sees only rows whose
// user_id is their own. The HTTP layer stores a Scope in the request context
// and repositories apply it:
//
//	db = datascope.Apply(ctx, db, "parties")
//	db.Find(&parties) // WHERE parties.user_id = ? for restricted callers
//
// A context without a Scope matches nothing, so a handler that forgets the
// middleware fails closed.
package datascope

import (
	"context"

	"github.com/eyedist/backend/internal/domain/identity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type contextKey struct{}

// Scope describes what the current caller can see
type Scope struct {
	UserID uuid.UUID
	All    bool
}

// Unrestricted is the scope for background jobs and system tasks
var Unrestricted = Scope{All: true}

// ForUser builds the scope for an authenticated user
func ForUser(userID uuid.UUID, role identity.Role) Scope {
	return Scope{UserID: userID, All: role.SeesAll()}
}

// WithScope stores s in ctx
func WithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the scope stored in ctx
func FromContext(ctx context.Context) (Scope, bool) {
	s, ok := ctx.Value(contextKey{}).(Scope)
	return s, ok
}

// Permits reports whether a row owned by ownerID is visible
func (s Scope) Permits(ownerID uuid.UUID) bool {
	return s.All || (s.UserID != uuid.Nil && s.UserID == ownerID)
}

// Apply adds the visibility condition for table to db
func Apply(ctx context.Context, db *gorm.DB, table string) *gorm.DB {
	s, ok := FromContext(ctx)
	switch {
	case !ok:
		return db.Where("1 = 0")
	case s.All:
		return db
	case s.UserID == uuid.Nil:
		return db.Where("1 = 0")
	}
	return db.Where(table+".user_id = ?", s.UserID)
}

// For returns Apply as a GORM scope function, for use with db.Scopes
func For(ctx context.Context, table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return Apply(ctx, db, table)
	}
}
