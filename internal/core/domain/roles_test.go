package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"system_admin", "company_admin", "staff_user"} {
		role, ok := ParseRole(valid)
		assert.True(t, ok)
		assert.Equal(t, valid, role.String())
		assert.True(t, role.Valid())
	}

	for _, invalid := range []string{"", "admin", "SYSTEM_ADMIN", "root"} {
		role, ok := ParseRole(invalid)
		assert.False(t, ok, invalid)
		assert.False(t, role.Valid(), invalid)
	}
}

func TestCanManage(t *testing.T) {
	cases := []struct {
		caller Role
		target Role
		want   bool
	}{
		{RoleSystemAdmin, RoleCompanyAdmin, true},
		{RoleSystemAdmin, RoleStaffUser, true},
		{RoleSystemAdmin, RoleSystemAdmin, false},
		{RoleCompanyAdmin, RoleStaffUser, true},
		{RoleCompanyAdmin, RoleCompanyAdmin, false},
		{RoleCompanyAdmin, RoleSystemAdmin, false},
		{RoleStaffUser, RoleStaffUser, false},
		{RoleStaffUser, RoleCompanyAdmin, false},
		{RoleStaffUser, RoleSystemAdmin, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, c.caller.CanManage(c.target), "%s -> %s", c.caller, c.target)
	}
}
