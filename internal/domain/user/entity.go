package user

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Runs imports for the company
	RoleEmployee Role = "employee" // Regular employee
	RolePending  Role = "pending"  // Still in onboarding
)

// IsManager reports whether the role may act on company-wide attendance.
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleOwner
}
