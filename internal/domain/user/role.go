package user

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleAdmin    Role = "admin"    // Company administrator
	RoleHR       Role = "hr"       // HR staff
	RoleManager  Role = "manager"  // Can view team attendance
	RoleEmployee Role = "employee" // Regular employee
	RolePending  Role = "pending"  // Still in onboarding
)

// Identity is the authenticated principal carried by an access token.
type Identity struct {
	UserID         string
	EmployeeID     string
	OrganizationID string
	Role           Role
}
