package models

// Role is the closed set of user roles. Free-text role strings from the
// legacy data are normalized into this set at import time; anything else is
// rejected at the API boundary.
type Role string

const (
	RoleCEO        Role = "CEO"
	RoleSuperadmin Role = "superadmin"
	RoleMD         Role = "MD"
	RoleManager    Role = "Manager"
	RoleHOD        Role = "HOD"
	RoleAgent      Role = "Agent"
)

// Capability is a coarse-grained action a role may perform.
type Capability string

const (
	CapManageUsers    Capability = "manage_users"
	CapManageCatalogs Capability = "manage_catalogs"
	CapWorkLeads      Capability = "work_leads"
	CapViewReports    Capability = "view_reports"
)

// GlobalRoles see every lead and deal regardless of pipeline or branch.
var GlobalRoles = []Role{RoleCEO, RoleSuperadmin, RoleMD}

// PipelineRoles gain visibility only for their own pipeline and branch.
var PipelineRoles = []Role{RoleManager, RoleHOD}

// ParseRole validates a role string against the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCEO, RoleSuperadmin, RoleMD, RoleManager, RoleHOD, RoleAgent:
		return Role(s), true
	}
	return "", false
}

// IsGlobal reports whether the role has organization-wide visibility.
func (r Role) IsGlobal() bool {
	return r == RoleCEO || r == RoleSuperadmin || r == RoleMD
}

// Can reports whether the role carries the given capability.
func Can(r Role, cap Capability) bool {
	switch r {
	case RoleCEO, RoleSuperadmin:
		return true
	case RoleMD:
		return cap == CapWorkLeads || cap == CapViewReports || cap == CapManageCatalogs
	case RoleManager, RoleHOD:
		return cap == CapWorkLeads || cap == CapViewReports
	case RoleAgent:
		return cap == CapWorkLeads
	}
	return false
}
