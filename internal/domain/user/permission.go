package user

import "slices"

type Permission string

const (
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
)

var employeePermissions = []Permission{
	PermissionAttendanceViewOwn,
	PermissionAttendanceCreate,
}

var supervisorPermissions = []Permission{
	PermissionAttendanceViewOwn,
	PermissionAttendanceCreate,
	PermissionAttendanceViewAll,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner:    supervisorPermissions,
	RoleAdmin:    supervisorPermissions,
	RoleHR:       supervisorPermissions,
	RoleManager:  supervisorPermissions,
	RoleEmployee: employeePermissions,
	RolePending:  {
		// Pending role has no permissions
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}
	return slices.Contains(permissions, permission)
}
