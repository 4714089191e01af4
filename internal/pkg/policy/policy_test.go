package policy

import "testing"

func TestDecideWildcardRoles(t *testing.T) {
	paths := []string{"/", "/customer", "/service/42", "/employee/workspace", "/account", "/anything/else"}
	for _, role := range []Role{RoleSuperAdmin, RoleAdmin} {
		for _, path := range paths {
			if Decide(role, path) != Allow {
				t.Errorf("expected %s to access %s", role, path)
			}
		}
	}
}

func TestDecideUnknownRoleDeniedEverything(t *testing.T) {
	for _, path := range []string{"/", "/customer", "/login"} {
		if Decide(Role("Intern"), path) != Deny {
			t.Errorf("expected unknown role to be denied %s", path)
		}
	}
	if Decide(Role(""), "/customer") != Deny {
		t.Error("expected empty role to be denied")
	}
}

func TestDecidePrefixScopes(t *testing.T) {
	tests := []struct {
		role Role
		path string
		want Decision
	}{
		{RoleTechnicalManager, "/service", Allow},
		{RoleTechnicalManager, "/service/17", Allow},
		{RoleTechnicalManager, "/employee", Allow},
		{RoleTechnicalManager, "/customer/3/upcoming-services", Allow},
		{RoleTechnicalManager, "/account", Deny},
		{RoleTechnicalManager, "/leads", Deny},

		{RoleTechnician, "/employee/workspace", Allow},
		{RoleTechnician, "/employee", Deny},
		{RoleTechnician, "/employee/7", Deny},
		{RoleTechnician, "/customer", Deny},

		{RoleAccountant, "/account", Allow},
		{RoleAccountant, "/payment", Allow},
		{RoleAccountant, "/payment/receipts", Allow},
		{RoleAccountant, "/service", Deny},

		{RoleMarketingManager, "/leads", Allow},
		{RoleMarketingManager, "/leads/9", Allow},
		{RoleMarketingManager, "/", Allow},
		{RoleMarketingManager, "/customer", Deny},
	}
	for _, tt := range tests {
		if got := Decide(tt.role, tt.path); got != tt.want {
			t.Errorf("Decide(%s, %s) = %v, want %v", tt.role, tt.path, got, tt.want)
		}
	}
}

func TestDecideSegmentBoundary(t *testing.T) {
	// A prefix must match on a path segment, not on raw characters.
	if Decide(RoleTechnicalManager, "/serviceman") != Deny {
		t.Error("expected /serviceman to be outside the /service scope")
	}
	if Decide(RoleTechnician, "/employee/workspaces") != Deny {
		t.Error("expected /employee/workspaces to be outside the workspace scope")
	}
}

func TestDefaultLandingRoute(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleSuperAdmin, "/customer"},
		{RoleAdmin, "/customer"},
		{RoleMarketingManager, "/leads"},
		{RoleTechnicalManager, "/service"},
		{RoleTechnician, "/employee/workspace"},
		{RoleAccountant, "/account"},
		{Role("Intern"), "/login"},
	}
	for _, tt := range tests {
		if got := DefaultLandingRoute(tt.role); got != tt.want {
			t.Errorf("DefaultLandingRoute(%s) = %s, want %s", tt.role, got, tt.want)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleSuperAdmin, RoleAdmin, RoleMarketingManager, RoleTechnicalManager, RoleTechnician, RoleAccountant} {
		if !role.Valid() {
			t.Errorf("expected %s to be valid", role)
		}
	}
	if Role("admin").Valid() {
		t.Error("role matching is case-sensitive, lowercase admin must be invalid")
	}
}
