package auth

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"

	PermReportsRead  = "reports.read"
	PermTargetsRead  = "targets.read"
	PermTargetsWrite = "targets.write"
	PermAuditRead    = "audit.read"
)

var RolePermissions = map[string][]string{
	RoleAdmin: {
		PermReportsRead,
		PermTargetsRead,
		PermTargetsWrite,
		PermAuditRead,
	},
	RoleViewer: {
		PermReportsRead,
		PermTargetsRead,
	},
}

func HasPermission(role, permission string) bool {
	for _, perm := range RolePermissions[role] {
		if perm == permission {
			return true
		}
	}
	return false
}
