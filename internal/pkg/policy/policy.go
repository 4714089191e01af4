// internal/pkg/policy/policy.go
package policy

import "strings"

// Role is the closed set of employee designations. Keeping this a typed
// enum (instead of free strings keyed into a map) means an unknown role can
// only come from data, not from a typo in the policy table.
type Role string

const (
	RoleSuperAdmin       Role = "Super Admin"
	RoleAdmin            Role = "Admin"
	RoleMarketingManager Role = "Marketing Manager"
	RoleTechnicalManager Role = "Technical Manager"
	RoleTechnician       Role = "Technician"
	RoleAccountant       Role = "Accountant"
)

// Decision is the outcome of an access check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

// allRoutes marks a role with unrestricted access.
const allRoutes = "*"

// rolePrefixes maps each role to its allowed route prefixes. A role absent
// from this table is denied everything. Loaded once, immutable, safe for
// concurrent reads.
var rolePrefixes = map[Role][]string{
	RoleSuperAdmin:       {allRoutes},
	RoleAdmin:            {allRoutes},
	RoleMarketingManager: {"/leads", "/"},
	RoleTechnicalManager: {"/service", "/employee", "/customer"},
	RoleTechnician:       {"/employee/workspace"},
	RoleAccountant:       {"/account", "/payment"},
}

// landingRoutes maps each role to the path it lands on right after
// authenticating. Used to bounce an already-authenticated user forward off
// the auth pages.
var landingRoutes = map[Role]string{
	RoleSuperAdmin:       "/customer",
	RoleAdmin:            "/customer",
	RoleMarketingManager: "/leads",
	RoleTechnicalManager: "/service",
	RoleTechnician:       "/employee/workspace",
	RoleAccountant:       "/account",
}

// Valid reports whether r is one of the known designations.
func (r Role) Valid() bool {
	_, ok := rolePrefixes[r]
	return ok
}

// Decide returns Allow when the role may access the given request path.
// Prefix matching is on segment boundaries: "/employee" covers "/employee"
// and "/employee/workspace" but not "/employeeX". The bare "/" entry covers
// the root path only.
func Decide(role Role, path string) Decision {
	prefixes, ok := rolePrefixes[role]
	if !ok {
		return Deny
	}
	for _, prefix := range prefixes {
		if prefix == allRoutes {
			return Allow
		}
		if matchesPrefix(path, prefix) {
			return Allow
		}
	}
	return Deny
}

// DefaultLandingRoute returns the post-login destination for a role.
// Unknown roles fall back to the login page.
func DefaultLandingRoute(role Role) string {
	if route, ok := landingRoutes[role]; ok {
		return route
	}
	return "/login"
}

func matchesPrefix(path, prefix string) bool {
	if prefix == "/" {
		return path == "/"
	}
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}
