package utils

import "testing"

func TestRoleAuthorizer(t *testing.T) {
	auth := RoleAuthorizer{}

	tests := []struct {
		role     string
		action   string
		resource string
		want     bool
	}{
		{"admin", ActionDelete, "client", true},
		{"admin", ActionAdd, "bill", true},

		{"finance", ActionAdd, "bill", true},
		{"finance", ActionChange, "installment", true},
		{"finance", ActionDelete, "bill", true},
		{"finance", ActionDelete, "installment", true},
		{"finance", ActionDelete, "client", false},
		{"finance", ActionDelete, "office", false},
		{"finance", ActionDelete, "collaborator", false},

		{"viewer", ActionView, "bill", true},
		{"viewer", ActionAdd, "bill", false},
		{"viewer", ActionChange, "client", false},
		{"viewer", ActionDelete, "document", false},

		{"", ActionView, "bill", false},
		{"intern", ActionView, "bill", false},
	}

	for _, tt := range tests {
		if got := auth.Authorize(tt.role, tt.action, tt.resource); got != tt.want {
			t.Errorf("Authorize(%q, %q, %q) = %v, want %v",
				tt.role, tt.action, tt.resource, got, tt.want)
		}
	}
}
