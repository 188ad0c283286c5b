package domain

// Role is the closed set of staff role tiers
type Role string

const (
	RoleSystemAdmin  Role = "system_admin"
	RoleCompanyAdmin Role = "company_admin"
	RoleStaffUser    Role = "staff_user"
)

// ParseRole converts a raw string to a Role
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSystemAdmin, RoleCompanyAdmin, RoleStaffUser:
		return Role(s), true
	}
	return "", false
}

// Valid reports whether the role is one of the known tiers
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// String returns the role as stored in the database
func (r Role) String() string {
	return string(r)
}

// CanManage reports whether a caller with role r may create or edit
// an account with the target role. A system admin manages company
// admins, a company admin manages staff users. No tier manages its
// own tier or above, so no role can elevate itself.
func (r Role) CanManage(target Role) bool {
	switch r {
	case RoleSystemAdmin:
		return target == RoleCompanyAdmin || target == RoleStaffUser
	case RoleCompanyAdmin:
		return target == RoleStaffUser
	case RoleStaffUser:
		return false
	}
	return false
}
