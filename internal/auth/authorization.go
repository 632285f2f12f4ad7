package auth

import (
	datamodel "github.com/frahmantamala/notice-management/internal/core/datamodel/user"
)

// Operation is a named action a caller may attempt. Authorization is a pure
// lookup over (role, operation); handlers never consult request attributes.
type Operation string

const (
	OpCreateNotice      Operation = "notice:create"
	OpUpdateNotice      Operation = "notice:update"
	OpApproveNotice     Operation = "notice:approve"
	OpArchiveNotice     Operation = "notice:archive"
	OpViewTracking      Operation = "notice:view_tracking"
	OpManageDepartments Operation = "department:manage"
	OpRegisterUser      Operation = "user:register"
	OpViewDashboard     Operation = "dashboard:view"
	OpDirectNotify      Operation = "notify:direct"
)

// rolePermissions is the whole authorization model. Department heads and IT
// managers share the admin's notice workflow permissions; user registration
// stays admin-only.
var rolePermissions = map[string]map[Operation]bool{
	datamodel.RoleAdmin: {
		OpCreateNotice:      true,
		OpUpdateNotice:      true,
		OpApproveNotice:     true,
		OpArchiveNotice:     true,
		OpViewTracking:      true,
		OpManageDepartments: true,
		OpRegisterUser:      true,
		OpViewDashboard:     true,
		OpDirectNotify:      true,
	},
	datamodel.RoleDepartmentHead: {
		OpCreateNotice:      true,
		OpUpdateNotice:      true,
		OpApproveNotice:     true,
		OpArchiveNotice:     true,
		OpViewTracking:      true,
		OpManageDepartments: true,
		OpViewDashboard:     true,
		OpDirectNotify:      true,
	},
	datamodel.RoleITManager: {
		OpCreateNotice:      true,
		OpUpdateNotice:      true,
		OpApproveNotice:     true,
		OpArchiveNotice:     true,
		OpViewTracking:      true,
		OpManageDepartments: true,
		OpViewDashboard:     true,
		OpDirectNotify:      true,
	},
	// Section chiefs and staff hold no privileged operations; their read
	// access to approved notices needs no grant here.
	datamodel.RoleSectionChief: {},
	datamodel.RoleStaff:        {},
}

// Can reports whether the role may perform the operation. Unknown roles and
// unknown operations are both denied.
func Can(role string, op Operation) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[op]
}
