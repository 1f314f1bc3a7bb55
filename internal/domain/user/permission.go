package user

type Permission string

const (
	// Reports
	PermissionReportsView       Permission = "reports.view"
	PermissionUnpaidAbsenceView Permission = "reports.unpaid_absence"

	// Timesheet maintenance
	PermissionDelayRepair    Permission = "timesheet.repair_delays"
	PermissionSettingsView   Permission = "timesheet.settings_view"
	PermissionSettingsManage Permission = "timesheet.settings_manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		// Owner has all permissions
		PermissionReportsView,
		PermissionUnpaidAbsenceView,
		PermissionDelayRepair,
		PermissionSettingsView,
		PermissionSettingsManage,
	},
	RoleManager: {
		PermissionReportsView,
		PermissionUnpaidAbsenceView,
		PermissionSettingsView,
	},
	RoleEmployee: {},
	RolePending: {
		// Pending role has no permissions
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
