// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
// Roles are flat tags with a strict authority ordering
// (super_admin > admin > user); no role inherits from another.
type Role string

const (
	// RoleSuperAdmin has full control of the platform.
	RoleSuperAdmin Role = "super_admin"
	// RoleAdmin runs the operational backoffice.
	RoleAdmin Role = "admin"
	// RoleUser is the end customer.
	RoleUser Role = "user"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// AllRoles lists every role in descending authority order.
func AllRoles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleUser}
}
