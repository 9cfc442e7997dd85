package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"CEO", "superadmin", "MD", "Manager", "HOD", "Agent"} {
		role, ok := ParseRole(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, Role(valid), role)
	}

	for _, invalid := range []string{"", "ceo", "admin", "Sales Agent", "manager "} {
		_, ok := ParseRole(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestIsGlobal(t *testing.T) {
	assert.True(t, RoleCEO.IsGlobal())
	assert.True(t, RoleSuperadmin.IsGlobal())
	assert.True(t, RoleMD.IsGlobal())
	assert.False(t, RoleManager.IsGlobal())
	assert.False(t, RoleHOD.IsGlobal())
	assert.False(t, RoleAgent.IsGlobal())
}

func TestCan(t *testing.T) {
	assert.True(t, Can(RoleCEO, CapManageUsers))
	assert.True(t, Can(RoleSuperadmin, CapManageCatalogs))

	assert.False(t, Can(RoleMD, CapManageUsers))
	assert.True(t, Can(RoleMD, CapManageCatalogs))
	assert.True(t, Can(RoleMD, CapViewReports))

	assert.False(t, Can(RoleManager, CapManageCatalogs))
	assert.True(t, Can(RoleManager, CapViewReports))
	assert.True(t, Can(RoleHOD, CapWorkLeads))
	assert.False(t, Can(RoleHOD, CapManageUsers))

	assert.True(t, Can(RoleAgent, CapWorkLeads))
	assert.False(t, Can(RoleAgent, CapViewReports))

	assert.False(t, Can(Role("nobody"), CapWorkLeads))
}
