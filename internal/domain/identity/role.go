package identity

import (
	"strings"

	"github.com/eyedist/backend/internal/domain/shared"
)

// Role is the single role a user holds
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleManager     Role = "manager"
	RoleSalesman    Role = "salesman"
	RoleDistributor Role = "distributor"
	RoleStaff       Role = "staff"
)

// AllRoles lists every valid role
var AllRoles = []Role{RoleAdmin, RoleManager, RoleSalesman, RoleDistributor, RoleStaff}

// ParseRole validates a role name case-insensitively
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", shared.NewDomainError("INVALID_ROLE", "Role must be one of admin, manager, salesman, distributor, staff")
	}
	return r, nil
}

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSalesman, RoleDistributor, RoleStaff:
		return true
	}
	return false
}

// SeesAll reports whether the role bypasses the per-user row filter.
func (r Role) SeesAll() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanReview reports whether the role may approve or reject expenses
// and manage shared reference data (products, geography, lookups).
func (r Role) CanReview() bool {
	return r.SeesAll()
}

func (r Role) String() string {
	return string(r)
}
