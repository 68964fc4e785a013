package auth

import "testing"

func TestAllowed(t *testing.T) {
	cases := []struct {
		resource, action, role string
		want                   bool
	}{
		{"employees", "create", RoleAdmin, true},
		{"employees", "create", RoleManager, true},
		{"employees", "create", RoleEmployee, false},
		{"employees", "delete", RoleAdmin, true},
		{"employees", "delete", RoleManager, false},
		{"departments", "create", RoleManager, false},
		{"departments", "delete", RoleAdmin, true},
		{"leaves", "decide", RoleManager, true},
		{"leaves", "decide", RoleEmployee, false},
		{"contracts", "delete", RoleManager, false},
		{"reports", "export", RoleEmployee, false},
		// Operations absent from the table are open to everyone.
		{"employees", "read", RoleEmployee, true},
		{"dashboard", "stats", RoleEmployee, true},
	}

	for _, tc := range cases {
		if got := Allowed(tc.resource, tc.action, tc.role); got != tc.want {
			t.Errorf("Allowed(%q, %q, %q) = %v, want %v", tc.resource, tc.action, tc.role, got, tc.want)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleManager, RoleEmployee} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false", role)
		}
	}
	if ValidRole("superuser") {
		t.Error("ValidRole should reject unknown roles")
	}
}
