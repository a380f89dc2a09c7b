package models

import "testing"

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role     Role
		required Role
		want     bool
	}{
		{RoleStaff, RoleStaff, true},
		{RoleStaff, RoleManager, false},
		{RoleStaff, RoleAdmin, false},
		{RoleManager, RoleStaff, true},
		{RoleManager, RoleManager, true},
		{RoleManager, RoleAdmin, false},
		{RoleAdmin, RoleStaff, true},
		{RoleAdmin, RoleManager, true},
		{RoleAdmin, RoleAdmin, true},
	}

	for _, tt := range tests {
		if got := tt.role.AtLeast(tt.required); got != tt.want {
			t.Errorf("%s.AtLeast(%s) = %v, want %v", tt.role, tt.required, got, tt.want)
		}
	}
}

func TestRoleAtLeast_Unknown(t *testing.T) {
	if Role("superuser").AtLeast(RoleStaff) {
		t.Error("unknown role should not rank at or above STAFF")
	}
	if RoleAdmin.AtLeast(Role("superuser")) {
		t.Error("no role should satisfy an unknown requirement")
	}
}
