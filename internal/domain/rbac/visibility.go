package rbac

import (
	"github.com/google/uuid"

	"fenix/internal/domain/entity"
)

// VisibilityKind enumerates the closed set of user-listing scopes.
type VisibilityKind int

const (
	// VisibilityNone yields the empty set (unauthenticated requester).
	VisibilityNone VisibilityKind = iota
	// VisibilityAll yields every user record (super_admin).
	VisibilityAll
	// VisibilityExcludeSuperAdmins yields everyone except super_admins (admin).
	VisibilityExcludeSuperAdmins
	// VisibilitySelfOnly yields only the requester's own record (user).
	VisibilitySelfOnly
)

// Visibility describes which user records a requester may see. The
// persistence layer translates it into query predicates that are applied
// BEFORE any search or status narrowing, so pagination and crafted filter
// parameters can never leak out-of-scope rows.
type Visibility struct {
	Kind   VisibilityKind
	SelfID uuid.UUID // set when Kind is VisibilitySelfOnly
}

// VisibleScope returns the visibility of requester over the user collection.
func VisibleScope(requester *entity.User) Visibility {
	switch {
	case requester == nil:
		return Visibility{Kind: VisibilityNone}
	case IsSuperAdmin(requester):
		return Visibility{Kind: VisibilityAll}
	case IsAdmin(requester):
		return Visibility{Kind: VisibilityExcludeSuperAdmins}
	default:
		return Visibility{Kind: VisibilitySelfOnly, SelfID: requester.ID}
	}
}

// Allows reports whether a single user record falls inside the scope.
// The repository applies the same rule at query level; this form exists for
// point checks on already-loaded records.
func (v Visibility) Allows(target *entity.User) bool {
	if target == nil {
		return false
	}
	switch v.Kind {
	case VisibilityAll:
		return true
	case VisibilityExcludeSuperAdmins:
		return target.Role != entity.RoleSuperAdmin
	case VisibilitySelfOnly:
		return target.ID == v.SelfID
	default:
		return false
	}
}
