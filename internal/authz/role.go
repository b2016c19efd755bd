package authz

// Role represents the privilege level of an actor. The three roles form a
// partial order: superadmin > admin > driver.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleDriver     Role = "driver"
)

// IsValid checks if the Role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleDriver:
		return true
	}
	return false
}

// Level returns the numeric rank of the role within the privilege order.
// Unknown roles rank below every valid role.
func (r Role) Level() int {
	switch r {
	case RoleSuperadmin:
		return 3
	case RoleAdmin:
		return 2
	case RoleDriver:
		return 1
	}
	return 0
}

// AtLeast reports whether the role ranks at or above other.
func (r Role) AtLeast(other Role) bool {
	return r.Level() >= other.Level()
}

// IsElevated reports whether the role is admin or superadmin.
func (r Role) IsElevated() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}
