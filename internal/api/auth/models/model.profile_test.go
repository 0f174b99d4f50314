package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, RoleSuperAdmin.AtLeast(RoleAdmin))
	assert.True(t, RoleAdmin.AtLeast(RoleAdmin))
	assert.False(t, RoleUser.AtLeast(RoleAdmin))
	assert.False(t, Role("root").AtLeast(RoleUser))
}

func TestCanAssignRole(t *testing.T) {
	cases := []struct {
		caller, target Role
		want           bool
	}{
		{RoleSuperAdmin, RoleSuperAdmin, true},
		{RoleSuperAdmin, RoleUser, true},
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleUser, true},
		{RoleAdmin, RoleSuperAdmin, false},
		{RoleUser, RoleUser, false},
		{RoleSuperAdmin, Role("owner"), false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanAssignRole(tc.caller, tc.target), "%s -> %s", tc.caller, tc.target)
	}
}
