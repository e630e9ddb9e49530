// Package rbac implements the role-based access policy of the platform as
// pure, stateless predicates over (requester, target) pairs. Keeping the
// rules here, away from handlers and repositories, makes the policy
// independently testable and auditable.
//
// A nil requester or target always means "unauthenticated / absent" and is
// denied everything.
package rbac

import "fenix/internal/domain/entity"

// IsSuperAdmin reports whether the user holds the super_admin role.
func IsSuperAdmin(u *entity.User) bool {
	return u != nil && u.Role == entity.RoleSuperAdmin
}

// IsAdmin reports whether the user holds the admin role.
func IsAdmin(u *entity.User) bool {
	return u != nil && u.Role == entity.RoleAdmin
}

// IsUser reports whether the user holds the plain user role.
func IsUser(u *entity.User) bool {
	return u != nil && u.Role == entity.RoleUser
}

// CanManageUsers reports whether the user may access user management.
// Only super_admin and admin qualify.
func CanManageUsers(u *entity.User) bool {
	return IsSuperAdmin(u) || IsAdmin(u)
}

// CanEdit reports whether requester may edit target.
//
// Rules, in precedence order:
//  1. nil requester or target: denied.
//  2. self-edit: always allowed (callers restrict which fields).
//  3. super_admin: may edit anyone, including other super_admins.
//  4. admin: may edit anyone except super_admins.
//  5. user: may edit nobody else.
func CanEdit(requester, target *entity.User) bool {
	if requester == nil || target == nil {
		return false
	}
	if requester.ID == target.ID {
		return true
	}
	if IsSuperAdmin(requester) {
		return true
	}
	if IsAdmin(requester) {
		return !IsSuperAdmin(target)
	}

	return false
}

// CanDelete reports whether requester may delete target. Same precedence as
// CanEdit except self-delete is always denied, even for super_admins.
func CanDelete(requester, target *entity.User) bool {
	if requester == nil || target == nil {
		return false
	}
	if requester.ID == target.ID {
		return false
	}
	if IsSuperAdmin(requester) {
		return true
	}
	if IsAdmin(requester) {
		return !IsSuperAdmin(target)
	}

	return false
}

// CanAssignRole reports whether requester may assign role to another account.
// super_admin assigns anything; admin assigns admin or user; user assigns
// nothing. Handlers must re-check this on every write, never trusting the
// advisory AssignableRoles list alone.
func CanAssignRole(requester *entity.User, role entity.Role) bool {
	if requester == nil || !role.IsValid() {
		return false
	}
	if IsSuperAdmin(requester) {
		return true
	}
	if IsAdmin(requester) {
		return role == entity.RoleAdmin || role == entity.RoleUser
	}

	return false
}

// AssignableRoles returns the roles requester may assign, in descending
// authority order. The list is advisory (it populates selection widgets);
// CanAssignRole remains the enforcement point.
func AssignableRoles(requester *entity.User) []entity.Role {
	switch {
	case IsSuperAdmin(requester):
		return []entity.Role{entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleUser}
	case IsAdmin(requester):
		return []entity.Role{entity.RoleAdmin, entity.RoleUser}
	default:
		return nil
	}
}
