package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"user": {
		"assessment:create",
		"reports:view-own",
		"analytics:view-own",
	},
	"admin": {
		"*", // everything
	},
}
