package user

type Permission string

const (
	PermissionPolicyView      Permission = "deduction_policy.view"
	PermissionBiometricImport Permission = "biometric.import"
	PermissionBiometricExport Permission = "biometric.export"
	PermissionBiometricUpload Permission = "biometric.upload"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionPolicyView,
		PermissionBiometricImport,
		PermissionBiometricExport,
		PermissionBiometricUpload,
	},
	RoleManager: {
		PermissionPolicyView,
		PermissionBiometricImport,
		PermissionBiometricExport,
		PermissionBiometricUpload,
	},
	RoleEmployee: {
		PermissionPolicyView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
