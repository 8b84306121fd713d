package core

import (
	"errors"
	"testing"
)

func TestDashboardPath(t *testing.T) {
	tests := []struct {
		role    Role
		want    string
		wantErr bool
	}{
		{role: RoleAdmin, want: "/admin"},
		{role: RoleSuperAdmin, want: "/super-admin"},
		{role: RoleStudent, want: "/student"},
		{role: "guest", wantErr: true},
		{role: "Admin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			got, err := DashboardPath(tt.role)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownRole) {
					t.Errorf("DashboardPath(%q) error = %v, want ErrUnknownRole", tt.role, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("DashboardPath(%q) = %q, %v, want %q", tt.role, got, err, tt.want)
			}
		})
	}
}

func TestRolesHaveDashboards(t *testing.T) {
	for _, r := range Roles {
		if _, err := DashboardPath(r); err != nil {
			t.Errorf("role %q has no dashboard: %v", r, err)
		}
	}
}
