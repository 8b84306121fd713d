package core

import (
	"errors"
	"fmt"
)

// Role is the kind of account a dashboard is built for.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
	RoleStudent    Role = "student"
)

// ErrUnknownRole is returned for a role outside the routing table.
var ErrUnknownRole = errors.New("unknown role")

// dashboards maps each role to its landing page.
var dashboards = map[Role]string{
	RoleAdmin:      "/admin",
	RoleSuperAdmin: "/super-admin",
	RoleStudent:    "/student",
}

// Roles lists every role in display order.
var Roles = []Role{RoleAdmin, RoleSuperAdmin, RoleStudent}

// DashboardPath returns the landing page for role.
func DashboardPath(role Role) (string, error) {
	path, ok := dashboards[role]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return path, nil
}
