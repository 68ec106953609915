package auth

import "strings"

// Role built-in roles
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleClient Role = "client"
)

// Permission resource:action
type Permission string

const (
	PermClientView   Permission = "client:view"
	PermClientManage Permission = "client:manage"
	PermClientDelete Permission = "client:delete"

	PermProjectView   Permission = "project:view"
	PermProjectManage Permission = "project:manage"
	PermProjectDelete Permission = "project:delete"

	PermTaskView   Permission = "task:view"
	PermTaskManage Permission = "task:manage"

	PermInvoiceView   Permission = "invoice:view"
	PermInvoiceManage Permission = "invoice:manage"
	PermInvoiceDelete Permission = "invoice:delete"

	PermMessageView   Permission = "message:view"
	PermMessageManage Permission = "message:manage"

	PermFileView   Permission = "file:view"
	PermFileManage Permission = "file:manage"

	PermUserView   Permission = "user:view"
	PermUserManage Permission = "user:manage"

	PermPortalView Permission = "portal:view"
)

// RolePermissions permissions granted to each role; deletes of clients, projects and invoices stay admin only
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		"*",
	},
	RoleMember: {
		"client:view", "client:manage",
		"project:view", "project:manage",
		"task:*",
		"invoice:view", "invoice:manage",
		"message:*",
		"file:*",
		"user:view",
		"portal:view",
	},
	RoleClient: {
		"portal:view",
	},
}

// Allow reports whether any of roles grants need. Wildcards are supported.
func Allow(roles []string, need Permission) bool {
	permissions := collectPermissions(roles)

	return len(permissions) > 0 && allow(permissions, need)
}

func collectPermissions(roles []string) []Permission {
	perms := make([]Permission, 0)
	for _, r := range roles {
		if ps, ok := RolePermissions[Role(r)]; ok {
			perms = append(perms, ps...)
		}
	}
	return perms
}

func allow(have []Permission, need Permission) bool {
	for _, p := range have {
		if match(p, need) {
			return true
		}
	}
	return false
}

// match checks one granted permission; a "*" segment matches the rest of need
func match(granted, need Permission) bool {
	if granted == "*" || granted == need {
		return true
	}

	reqParts := strings.Split(string(need), ":")
	allParts := strings.Split(string(granted), ":")

	for i, part := range allParts {
		if part == "*" {
			return i < len(reqParts)
		}
		if i >= len(reqParts) || part != reqParts[i] {
			return false
		}
	}

	return len(allParts) == len(reqParts)
}
